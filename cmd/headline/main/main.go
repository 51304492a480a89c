package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/headline/cmd/headline"
	"github.com/arthur-debert/headline/pkg/ui/styles"
)

func main() {
	rootCmd := headline.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
