package main

import "pipetrack/internal/app"

func main() {
	app.Run()
}
