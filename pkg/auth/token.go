package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const secretLen = 32

var ErrMalformedToken = errors.New("malformed token")

// Issue генерирует секрет для токена с публичным id tokenID.
// Возвращает открытый вид "<id>.<секрет>" и хэш секрета для хранения.
func Issue(tokenID uuid.UUID) (plaintext string, secretHash string, err error) {
	buf := make([]byte, secretLen)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	secret := base64.RawURLEncoding.EncodeToString(buf)
	return tokenID.String() + "." + secret, HashSecret(secret), nil
}

// Parse разбирает предъявленный токен на публичный id и секрет.
// Id служит ключом поиска, сам секрет в базе не ищется.
func Parse(plaintext string) (uuid.UUID, string, error) {
	idPart, secret, ok := strings.Cut(plaintext, ".")
	if !ok || secret == "" {
		return uuid.Nil, "", ErrMalformedToken
	}
	tokenID, err := uuid.Parse(idPart)
	if err != nil {
		return uuid.Nil, "", ErrMalformedToken
	}
	return tokenID, secret, nil
}

// HashSecret возвращает sha256-хэш секрета в hex.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// VerifySecret сравнивает секрет с сохраненным хэшем за константное время.
func VerifySecret(secret, secretHash string) bool {
	stored, err := hex.DecodeString(secretHash)
	if err != nil {
		return false
	}
	sum := sha256.Sum256([]byte(secret))
	return subtle.ConstantTimeCompare(sum[:], stored) == 1
}

// ExtractTokenFromHeader извлекает токен из Authorization header
func ExtractTokenFromHeader(r *http.Request) (string, error) {
	hdr := r.Header.Get("Authorization")
	parts := strings.SplitN(hdr, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid Authorization header")
	}
	return parts[1], nil
}
