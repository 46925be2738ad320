package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"iotexsetup/internal/catalog"
)

func init() {
	rootCmd.AddCommand(modelsCmd)
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models the gateway serves",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Chat models:")
		printEntries(catalog.LLMModels())

		fmt.Println("\nAudio transcription models:")
		printEntries(catalog.AudioModels())
	},
}

func printEntries(entries []catalog.Entry) {
	for i, e := range entries {
		marker := ""
		if i == 0 {
			marker = " (recommended)"
		}
		fmt.Printf("  %-20s %s, %s%s\n", e.ID, e.Name, e.PriceNote, marker)
	}
}
