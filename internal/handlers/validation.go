package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// validationErrors раскладывает ошибку биндинга в карту поле -> сообщения.
func validationErrors(err error) gin.H {
	out := gin.H{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["body"] = []string{"The request body is invalid."}
		return out
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		out[field] = []string{validationMessage(field, fe)}
	}
	return out
}

func validationMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "The " + field + " field is required."
	case "email":
		return "The " + field + " must be a valid email address."
	case "min":
		return "The " + field + " must be at least " + fe.Param() + " characters."
	case "max":
		return "The " + field + " may not be greater than " + fe.Param() + " characters."
	}
	return "The " + field + " is invalid."
}
