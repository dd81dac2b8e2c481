package main

import (
	"os"

	"selectd/internal/selectctl"
)

func main() {
	os.Exit(selectctl.Main(os.Args[1:]))
}
