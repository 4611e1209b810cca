// Package main is the entry point for the investigator API server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "investigator-api",
	Short: "Call of Cthulhu investigator creation API",
	Long:  `investigator-api serves the guided Call of Cthulhu 7e investigator creation flow over a JSON HTTP interface, backed by Redis.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
