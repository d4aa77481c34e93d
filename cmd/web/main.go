package main

import "buildlink_backend/internal/app"

func main() {
	app.Run()
}
