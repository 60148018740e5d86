package main

import "scroll-agent/internal/bootstrap"

func main() {
	bootstrap.NewApp().Run()
}
