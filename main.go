package main

import "github.com/thereayou/chirp/cmd/server"

func main() {
	s := server.NewServer()
	s.Run()
}
