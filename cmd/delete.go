package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <entry-id>",
	Short: "Delete a claim by its entry id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		id := args[0]
		if !deleteYes {
			fmt.Printf("delete claim %s? [y/N] ", id)
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if strings.ToLower(strings.TrimSpace(answer)) != "y" {
				fmt.Println("aborted")
				return nil
			}
		}
		client := newClient(cfg)
		if err := client.DeleteClaim(cmd.Context(), id); err != nil {
			return err
		}
		color.Green("deleted claim %s", id)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteYes, "yes", false, "skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}
