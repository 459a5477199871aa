package main

import (
	"os"

	"github.com/userhub/userhub/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
