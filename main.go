package main

import "video-edit-service/app"

func main() {
	app.Run()
}
