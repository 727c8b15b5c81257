package main

import (
	"os"

	"github.com/quillhq/quill/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
