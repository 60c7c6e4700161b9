package main

import (
	"github.com/jfbenitezz/Tutorly-Backend/cmd/tutorly/cmd"
)

func main() {
	cmd.Execute()
}
