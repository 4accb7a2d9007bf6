package main

import (
	"fmt"
	"os"

	"github.com/Akhilesh30Jadhav/Shushrusha/internal/config"
	"github.com/Akhilesh30Jadhav/Shushrusha/internal/validator"
	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/adapters/file"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check scenario content for consistency",
	Long: `Loads every scenario JSON file and reports structural problems:
missing start nodes, dead-end nodes, transitions to unknown nodes and
malformed checklists.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		dir := cfg.Content.Dir
		if dataDir != "" {
			dir = dataDir
		}
		if len(args) > 0 {
			dir = args[0]
		}

		graphs, err := file.NewSource(dir).LoadAll()
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}

		findings := validator.ValidateAll(graphs)
		if len(findings) > 0 {
			for _, f := range findings {
				fmt.Println(f)
			}
			fmt.Printf("\n%d problem(s) in %d scenario(s)\n", len(findings), len(graphs))
			os.Exit(1)
		}

		fmt.Printf("All %d scenario(s) are valid! ✅\n", len(graphs))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
