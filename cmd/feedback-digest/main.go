package main

import (
	"os"

	"feedbackdigest/cmd/feedback-digest/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
