package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dokzlo13/huecatalog/internal/bridge"
	"github.com/dokzlo13/huecatalog/internal/config"
)

var (
	cfgPath       string
	inventoryPath string
	cfg           *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "huecatalog",
	Short:         "Resolve Hue light and sensor models from a bridge dump",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if inventoryPath != "" {
			loaded.Inventory.Path = inventoryPath
		}
		cfg = loaded

		setupLogging(cfg.Log.GetLevel(), cfg.Log.UseJSON, cfg.Log.Colors)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", config.DefaultPath, "configuration file")
	rootCmd.PersistentFlags().StringVarP(&inventoryPath, "inventory", "i", "", "bridge datastore dump (overrides inventory.path)")
}

func loadInventory() (*bridge.Inventory, error) {
	return bridge.LoadInventory(cfg.Inventory.Path)
}
