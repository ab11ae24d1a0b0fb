package main

import "blogsyte/internal/app"

// @title           Blogsyte API
// @version         1.0
// @description     REST backend for the Blogsyte blogging platform.
// @BasePath        /api
func main() {
	app.Run()
}
