package main

import (
	"os"

	"github.com/aminaaguel/Guess-My-Emotion/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
