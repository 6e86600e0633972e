package main

import "designmatch_backend/internal/app"

func main() {
	app.Run()
}
