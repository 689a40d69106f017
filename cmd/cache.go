package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schmittjoh/pdepend/pkg/cache"
	"github.com/schmittjoh/pdepend/pkg/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or reset the parse cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the number of cached files, types and functions",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCacheStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		files, types, functions, err := store.Stats()
		if err != nil {
			return fmt.Errorf("failed to read cache stats: %w", err)
		}
		fmt.Printf("Cached files: %d\n", files)
		fmt.Printf("Types:        %d\n", types)
		fmt.Printf("Functions:    %d\n", functions)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every cached entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCacheStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Clear(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		fmt.Println("Cache cleared.")
		return nil
	},
}

func openCacheStore(cmd *cobra.Command) (*cache.Store, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		cfgPath = config.DefaultFileName
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", cfgPath, err)
	}
	return cache.Open(cfg.CacheDir + "/cache.sqlite")
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
