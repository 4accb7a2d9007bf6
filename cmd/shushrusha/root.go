package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shushrusha",
	Short: "Shushrusha is a protocol-practice simulator for health workers",
	Long: `Shushrusha runs scripted patient dialogues for community health
workers, matches each reply against protocol checklists and scores the
session into a practice report.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to the YAML config file")
	rootCmd.PersistentFlags().String("data", "", "Directory containing scenario JSON files (overrides config)")
}
