package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/claimdeck/claimdeck/internal/claims"
)

var queryFlags struct {
	from     string
	to       string
	customer string
	workItem string
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "List claims in a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		from, to, err := queryRange()
		if err != nil {
			return err
		}
		client := newClient(cfg)
		entries, err := client.ClaimsBetween(cmd.Context(), from, to)
		if err != nil {
			return err
		}

		var total float64
		table := uitable.New()
		table.AddRow("ID", "DATE", "ACTIVITY", "CUSTOMER", "WORK ITEM", "HOURS", "COMMENT")
		for _, e := range entries {
			if !e.Matches(queryFlags.customer, queryFlags.workItem) {
				continue
			}
			table.AddRow(e.ID, e.Date.Format(claims.DateFormat), e.Activity.String(),
				e.Customer, e.WorkItem, claims.FormatHours(e.Hours), e.Comment)
			total += e.Hours
		}
		fmt.Println(table)
		color.Green("total: %sh", claims.FormatHours(total))
		return nil
	},
}

func queryRange() (time.Time, time.Time, error) {
	now := time.Now()
	from := claims.Monday(now)
	to := from.AddDate(0, 0, 4)
	if queryFlags.from != "" {
		parsed, err := claims.ParseDate(queryFlags.from)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
		to = parsed
	}
	if queryFlags.to != "" {
		parsed, err := claims.ParseDate(queryFlags.to)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to %s precedes --from %s",
			to.Format(claims.DateFormat), from.Format(claims.DateFormat))
	}
	return from, to, nil
}

func init() {
	queryCmd.Flags().StringVar(&queryFlags.from, "from", "", "start date (defaults to this week's Monday)")
	queryCmd.Flags().StringVar(&queryFlags.to, "to", "", "end date (defaults to --from, or Friday)")
	queryCmd.Flags().StringVar(&queryFlags.customer, "customer", "", "filter by customer substring")
	queryCmd.Flags().StringVar(&queryFlags.workItem, "work-item", "", "filter by work item substring")
	rootCmd.AddCommand(queryCmd)
}
