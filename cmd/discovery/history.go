package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zagdt/e-library-backend-sub001/internal/searchlog"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches from the search log",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := searchlog.Open(cfg.SearchLog.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No recorded searches.")
			return nil
		}

		fmt.Printf("%-20s  %-40s  %-6s  %-8s  %s\n", "When", "Term", "Total", "Took", "Sources")
		for _, e := range entries {
			fmt.Printf("%-20s  %-40s  %-6d  %-8s  %s\n",
				e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				e.Term,
				e.Total,
				e.Duration.Round(time.Millisecond),
				strings.Join(e.Sources, ","),
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "number of entries to show")

	rootCmd.AddCommand(historyCmd)
}
