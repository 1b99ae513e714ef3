// Package utils holds small output helpers shared by the CLI commands.
package utils

import (
	"fmt"

	"github.com/fatih/color"
)

// PrintMessage prints the message to the console.
func PrintMessage(message string) {
	fmt.Println(message)
}

// PrintfMessage prints the formatted message to the console.
func PrintfMessage(format string, args ...any) {
	fmt.Printf(format, args...)
}

// PrintMessageInColor prints the message to the console using the provided color.
func PrintMessageInColor(message string, messageColor *color.Color) {
	_, _ = messageColor.Print(message)
}
