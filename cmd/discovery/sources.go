package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/zagdt/e-library-backend-sub001/internal/discovery"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the configured academic sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		registry := discovery.BuildRegistry(cfg.Discovery, &http.Client{Timeout: cfg.Discovery.Timeout})
		catalog := registry.Catalog()
		if len(catalog) == 0 {
			fmt.Fprintln(os.Stderr, "No sources enabled.")
			return nil
		}

		fmt.Printf("%-16s  %-20s  %-5s  %s\n", "ID", "Name", "Free", "Description")
		for _, info := range catalog {
			fmt.Printf("%-16s  %-20s  %-5t  %s\n", info.ID, info.Name, info.Free, info.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
