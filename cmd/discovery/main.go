// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the discovery service CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zagdt/e-library-backend-sub001/internal/secrets"
	"github.com/zagdt/e-library-backend-sub001/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the discovery CLI.
var rootCmd = &cobra.Command{
	Use:   "discovery",
	Short: "Federated academic search service for the e-library backend",
	Long: `discovery queries multiple external academic content providers concurrently,
normalizes their responses into one canonical result shape, removes duplicates
across providers, ranks the merged set, and returns stable pages.

Run it as an HTTP service with "discovery serve" or issue one-off federated
queries from the terminal with "discovery search".`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./discovery.yaml or ~/.config/discovery/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("discovery")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "discovery"))
		}
	}

	viper.SetEnvPrefix("DISCOVERY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.shutdown_timeout", "10s")

	viper.SetDefault("discovery.timeout", "15s")
	viper.SetDefault("discovery.user_agent", "elibrary-discovery/0.1")
	viper.SetDefault("discovery.default_page_size", 20)
	viper.SetDefault("discovery.max_page_size", 50)
	viper.SetDefault("discovery.enable_arxiv", true)
	viper.SetDefault("discovery.enable_openalex", true)
	viper.SetDefault("discovery.enable_semantic_scholar", true)
	viper.SetDefault("discovery.enable_crossref", true)
	viper.SetDefault("discovery.enable_doaj", true)
	viper.SetDefault("discovery.enable_core", true)
	viper.SetDefault("discovery.enable_pubmed", true)
	viper.SetDefault("discovery.pubmed_min_interval", "350ms")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("log.output", "stderr")
	viper.SetDefault("log.file.path", "logs/discovery.log")
	viper.SetDefault("log.file.max_size_mb", 50)
	viper.SetDefault("log.file.max_backups", 5)
	viper.SetDefault("log.file.max_age_days", 30)

	viper.SetDefault("search_log.enabled", false)
	viper.SetDefault("search_log.path", "data/searchlog.db")
}

// loadConfig assembles the service configuration from viper and merges
// secrets into empty credential fields.
func loadConfig() types.Config {
	cfg := types.Config{
		Server: types.ServerConfig{
			Host:            viper.GetString("server.host"),
			Port:            viper.GetInt("server.port"),
			ShutdownTimeout: viper.GetDuration("server.shutdown_timeout"),
		},
		Discovery: types.DiscoveryConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("discovery.timeout"),
				UserAgent: viper.GetString("discovery.user_agent"),
			},
			DefaultPageSize:       viper.GetInt("discovery.default_page_size"),
			MaxPageSize:           viper.GetInt("discovery.max_page_size"),
			EnableArxiv:           viper.GetBool("discovery.enable_arxiv"),
			EnableOpenAlex:        viper.GetBool("discovery.enable_openalex"),
			EnableSemanticScholar: viper.GetBool("discovery.enable_semantic_scholar"),
			EnableCrossref:        viper.GetBool("discovery.enable_crossref"),
			EnableDOAJ:            viper.GetBool("discovery.enable_doaj"),
			EnableCORE:            viper.GetBool("discovery.enable_core"),
			EnablePubMed:          viper.GetBool("discovery.enable_pubmed"),
			SemanticScholarAPIKey: viper.GetString("discovery.semantic_scholar_api_key"),
			COREAPIKey:            viper.GetString("discovery.core_api_key"),
			PubMedAPIKey:          viper.GetString("discovery.pubmed_api_key"),
			OpenAlexEmail:         viper.GetString("discovery.openalex_email"),
			CrossrefMailto:        viper.GetString("discovery.crossref_mailto"),
			PubMedMinInterval:     viper.GetDuration("discovery.pubmed_min_interval"),
		},
		Log: types.LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
			Output: viper.GetString("log.output"),
			File: types.LogFileConfig{
				Path:       viper.GetString("log.file.path"),
				MaxSizeMB:  viper.GetInt("log.file.max_size_mb"),
				MaxBackups: viper.GetInt("log.file.max_backups"),
				MaxAgeDays: viper.GetInt("log.file.max_age_days"),
				Compress:   viper.GetBool("log.file.compress"),
			},
		},
		SearchLog: types.SearchLogConfig{
			Enabled: viper.GetBool("search_log.enabled"),
			Path:    viper.GetString("search_log.path"),
		},
	}

	applySecrets(&cfg.Discovery, loadedSecrets)
	return cfg
}

// applySecrets fills empty credential fields from the .secrets/ directory.
// Explicit configuration wins over secrets files.
func applySecrets(cfg *types.DiscoveryConfig, s map[string]string) {
	fill := func(dst *string, key string) {
		if *dst == "" {
			*dst = s[key]
		}
	}
	fill(&cfg.COREAPIKey, "core-api-key")
	fill(&cfg.SemanticScholarAPIKey, "semantic-scholar-api-key")
	fill(&cfg.PubMedAPIKey, "pubmed-api-key")
	fill(&cfg.OpenAlexEmail, "openalex-email")
	fill(&cfg.CrossrefMailto, "crossref-mailto")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
