package main

import "rpe/internal/app/server"

func main() {
	server.Run()
}
