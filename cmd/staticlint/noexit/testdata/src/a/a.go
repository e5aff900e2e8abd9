package main

import (
	"os"
	sys "os"
)

func main() {
	defer func() {
		os.Exit(3)
	}()
	if len(os.Args) > 5 {
		sys.Exit(2) // want "os.Exit called in main func in main package"
	}
	os.Exit(1) // want "os.Exit called in main func in main package"
}

func helper() {
	os.Exit(0)
}

type app struct{}

func (app) main() {
	os.Exit(0)
}
