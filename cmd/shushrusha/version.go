package main

import (
	"fmt"
	"strings"

	shushrusha "github.com/Akhilesh30Jadhav/Shushrusha"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of shushrusha",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("shushrusha version %s\n", strings.TrimSpace(shushrusha.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
