package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/claimdeck/claimdeck/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the claimdeck version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("claimdeck %s (%s)\n", version.Version, version.Commit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
