package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/claimdeck/claimdeck/internal/cachedb"
	"github.com/claimdeck/claimdeck/internal/claims"
)

var addFlags struct {
	date     string
	activity string
	customer string
	workItem string
	hours    float64
	comment  string
	days     int
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create one or more claims without the interactive browser",
	Long: `Create a claim from flags. With --days N the claim is repeated
across N working days starting at --date, skipping weekends.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		date, err := claims.ParseDate(addFlags.date)
		if err != nil {
			return err
		}
		activity, err := claims.ParseActivity(addFlags.activity)
		if err != nil {
			return err
		}
		if addFlags.hours < 0 || addFlags.hours > 24 {
			return &claims.ValidationError{Field: "hours", Reason: "must be between 0 and 24"}
		}
		if addFlags.days < 1 {
			return &claims.ValidationError{Field: "days", Reason: "must be at least 1"}
		}

		workItem := addFlags.workItem
		if workItem == "" {
			if auto, ok := activity.AutoWorkItem(); ok {
				workItem = auto
			}
		}

		client := newClient(cfg)
		days := claims.WorkingDates(date, addFlags.days)
		for _, day := range days {
			entry := claims.ClaimEntry{
				Date:     day,
				Activity: activity,
				Customer: addFlags.customer,
				WorkItem: workItem,
				Hours:    addFlags.hours,
				Comment:  addFlags.comment,
			}
			created, err := client.CreateClaim(cmd.Context(), entry)
			if err != nil {
				return fmt.Errorf("create claim for %s: %w", day.Format(claims.DateFormat), err)
			}
			color.Green("created %s  %s  %sh (id %s)",
				day.Format(claims.DateFormat), created.Title(), claims.FormatHours(created.Hours), created.ID)
		}

		// Feed the pair to the interactive quick-select list. The cache is
		// advisory, so failures here never fail the add.
		if addFlags.customer != "" && workItem != "" {
			if user, err := client.Me(cmd.Context()); err == nil {
				if db, err := cachedb.Open(cfg.CacheFile); err == nil {
					_ = db.Touch(user.ID, addFlags.customer, workItem, days[len(days)-1])
					db.Close()
				}
			}
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addFlags.date, "date", "", "claim date (YYYY-MM-DD, YYYY.MM.DD or YYYY/MM/DD)")
	addCmd.Flags().StringVar(&addFlags.activity, "activity", "billable", "activity type name or code")
	addCmd.Flags().StringVar(&addFlags.customer, "customer", "", "customer name")
	addCmd.Flags().StringVar(&addFlags.workItem, "work-item", "", "work item identifier")
	addCmd.Flags().Float64Var(&addFlags.hours, "hours", 8, "hours to claim")
	addCmd.Flags().StringVar(&addFlags.comment, "comment", "", "free-form comment")
	addCmd.Flags().IntVar(&addFlags.days, "days", 1, "number of working days to repeat the claim across")
	addCmd.MarkFlagRequired("date")
	rootCmd.AddCommand(addCmd)
}
