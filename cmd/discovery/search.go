package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/zagdt/e-library-backend-sub001/internal/discovery"
	"github.com/zagdt/e-library-backend-sub001/internal/logging"
)

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Run one federated search from the terminal",
	Long: `Search queries the configured academic sources concurrently, merges and
deduplicates their results, and prints one ranked page.

A search can be saved to a YAML file with --save and re-run later with
--load.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")
		sources, _ := cmd.Flags().GetStringSlice("source")
		asJSON, _ := cmd.Flags().GetBool("json")
		savePath, _ := cmd.Flags().GetString("save")
		loadPath, _ := cmd.Flags().GetString("load")

		var query discovery.Query
		switch {
		case loadPath != "":
			qf, err := discovery.ReadQueryFile(loadPath)
			if err != nil {
				return err
			}
			query = qf.Query.ToQuery()
			fmt.Fprintf(os.Stderr, "Re-running saved query %q\n", query.Term)
		case len(args) == 1:
			query = discovery.Query{Term: args[0], Page: page, Limit: limit, Sources: sources}
		default:
			return fmt.Errorf("either a search term or --load is required")
		}

		log, err := logging.New(cfg.Log)
		if err != nil {
			return err
		}
		defer log.Sync()

		httpClient := &http.Client{Timeout: cfg.Discovery.Timeout}
		registry := discovery.BuildRegistry(cfg.Discovery, httpClient)
		aggregator := discovery.NewAggregator(registry, cfg.Discovery, log)

		result, err := aggregator.Search(cmd.Context(), query)
		if err != nil {
			return err
		}

		if savePath != "" {
			if err := discovery.WriteQueryFile(savePath, query, result); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Saved query and results to %s\n", savePath)
		}

		if asJSON {
			return discovery.FormatJSON(result, os.Stdout)
		}
		discovery.FormatTable(result, os.Stdout)
		return nil
	},
}

func init() {
	searchCmd.Flags().Int("page", 1, "page number of the merged result set")
	searchCmd.Flags().Int("limit", 0, "page size (default: configured default page size)")
	searchCmd.Flags().StringSlice("source", nil, "restrict to specific sources (repeatable)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("save", "", "save query and results to a YAML file")
	searchCmd.Flags().String("load", "", "re-run a previously saved query file")

	rootCmd.AddCommand(searchCmd)
}
