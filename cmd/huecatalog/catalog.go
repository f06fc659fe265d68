package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dokzlo13/huecatalog/internal/bridge"
	"github.com/dokzlo13/huecatalog/internal/lightmodel"
	"github.com/dokzlo13/huecatalog/internal/lua"
	"github.com/dokzlo13/huecatalog/internal/sensormodel"
	"github.com/dokzlo13/huecatalog/internal/sensortype"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List supported light models, sensor models and sensor types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data := pterm.TableData{{"Domain", "Codes"}}
		data = append(data,
			[]string{"light", strings.Join(lightmodel.Models.Codes(), " ")},
			[]string{"sensor", strings.Join(sensormodel.Models.Codes(), " ")},
			[]string{"sensor_type", strings.Join(sensortype.Types.Codes(), " ")},
		)
		return renderTable(cmd.OutOrStdout(), data)
	},
}

var resolveCmd = &cobra.Command{
	Use:       "resolve <light|sensor|sensor_type> <code>",
	Short:     "Resolve a single code and print the selected variant",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"light", "sensor", "sensor_type"},
	RunE: func(cmd *cobra.Command, args []string) error {
		domain, code := args[0], args[1]

		var v any
		switch domain {
		case "light":
			v = lightmodel.New(code)
		case "sensor":
			v = sensormodel.New(code)
		case "sensor_type":
			pair, err := sensortype.NewPair(code, json.RawMessage(configPayload), json.RawMessage(statePayload))
			if err != nil {
				return err
			}
			v = pair
		default:
			return fmt.Errorf("unknown domain %q", domain)
		}
		return writeJSON(cmd.OutOrStdout(), v)
	},
}

var (
	configPayload string
	statePayload  string
)

var scriptCmd = &cobra.Command{
	Use:   "script [file]",
	Short: "Run a Lua script with the catalog and inventory modules",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Script.Path
		if len(args) == 1 {
			path = args[0]
		}

		inv, err := loadInventory()
		if err != nil {
			log.Warn().Err(err).Msg("Inventory unavailable, running script without devices")
			inv = &bridge.Inventory{}
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		runtime := lua.NewRuntime(inv, cfg.Script.Timeout.Duration())
		defer runtime.Close()

		return runtime.LoadScript(ctx, path)
	},
}

func init() {
	resolveCmd.Flags().StringVar(&configPayload, "config-json", "", "sensor config JSON (sensor_type only)")
	resolveCmd.Flags().StringVar(&statePayload, "state-json", "", "sensor state JSON (sensor_type only)")

	rootCmd.AddCommand(modelsCmd, resolveCmd, scriptCmd)
}
