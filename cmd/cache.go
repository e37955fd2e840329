package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/claimdeck/claimdeck/internal/cache"
	"github.com/claimdeck/claimdeck/internal/cachedb"
	"github.com/claimdeck/claimdeck/internal/claims"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or rebuild the quick-select cache",
}

var cacheShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the cached customer / work item pairs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client := newClient(cfg)
		user, err := client.Me(cmd.Context())
		if err != nil {
			return err
		}
		db, err := cachedb.Open(cfg.CacheFile)
		if err != nil {
			return err
		}
		defer db.Close()
		entries, err := db.Load(user.ID)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("cache is empty; run `claimdeck cache refresh`")
			return nil
		}
		table := uitable.New()
		table.AddRow("#", "CUSTOMER", "WORK ITEM", "LAST USED")
		for i, e := range cache.NewStore(entries).Entries(0) {
			table.AddRow(i+1, e.Customer, e.WorkItem, e.LastUsed.Format(claims.DateFormat))
		}
		fmt.Println(table)
		if at, err := db.LastRefreshed(user.ID); err == nil && !at.IsZero() {
			fmt.Printf("last refreshed %s\n", at.Format(time.RFC3339))
		}
		return nil
	},
}

var cacheRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rebuild the cache from recent claims",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client := newClient(cfg)
		user, err := client.Me(cmd.Context())
		if err != nil {
			return err
		}
		now := time.Now()
		entries, err := client.ClaimsBetween(cmd.Context(), cache.RefreshSince(now), now)
		if err != nil {
			return err
		}
		store := cache.NewStore(cache.FromEntries(entries))

		db, err := cachedb.Open(cfg.CacheFile)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.Save(user.ID, store.Entries(0)); err != nil {
			return err
		}
		if err := db.MarkRefreshed(user.ID, now); err != nil {
			return err
		}
		color.Green("cache rebuilt: %d pairs from the last %d days", store.Len(), cache.RefreshWindowDays)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheShowCmd, cacheRefreshCmd)
	rootCmd.AddCommand(cacheCmd)
}
