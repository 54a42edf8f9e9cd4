package main

import "github.com/adanyl0v/go-todo-crud/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadConfig()
	app.InitApplicationLogger()

	app.MustOpenStorage()
	defer app.CloseStorage()

	app.MustListenAndServeHTTP()
}
