package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/dokzlo13/huecatalog/internal/bridge"
	"github.com/dokzlo13/huecatalog/internal/lightmodel"
	"github.com/dokzlo13/huecatalog/internal/sensormodel"
	"github.com/dokzlo13/huecatalog/internal/sensortype"
)

var jsonOutput bool

var lightsCmd = &cobra.Command{
	Use:   "lights",
	Short: "List inventory lights with their resolved model",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := loadInventory()
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), lightRows(inv.Lights))
		}
		return writeLightsTable(cmd.OutOrStdout(), inv.Lights)
	},
}

var sensorsCmd = &cobra.Command{
	Use:   "sensors",
	Short: "List inventory sensors with their resolved model and type",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := loadInventory()
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), sensorRows(inv.Sensors))
		}
		return writeSensorsTable(cmd.OutOrStdout(), inv.Sensors)
	},
}

func init() {
	for _, c := range []*cobra.Command{lightsCmd, sensorsCmd} {
		c.Flags().BoolVar(&jsonOutput, "json", false, "print JSON instead of a table")
		rootCmd.AddCommand(c)
	}
}

type lightRow struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	ModelID string            `json:"modelid"`
	Model   *lightmodel.Model `json:"model"`
}

func lightRows(lights []bridge.Light) []lightRow {
	rows := make([]lightRow, 0, len(lights))
	for _, l := range lights {
		rows = append(rows, lightRow{ID: l.ID, Name: l.Name, ModelID: l.ModelID, Model: l.Model})
	}
	return rows
}

type sensorRow struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Type       string             `json:"type"`
	ModelID    string             `json:"modelid"`
	Model      *sensormodel.Model `json:"model"`
	SensorType string             `json:"sensor_type"`
	Config     sensortype.Config  `json:"config"`
	State      sensortype.State   `json:"state"`
}

func sensorRows(sensors []bridge.Sensor) []sensorRow {
	rows := make([]sensorRow, 0, len(sensors))
	for _, s := range sensors {
		rows = append(rows, sensorRow{
			ID:         s.ID,
			Name:       s.Name,
			Type:       s.Type,
			ModelID:    s.ModelID,
			Model:      s.Model,
			SensorType: s.State.SensorType(),
			Config:     s.Config,
			State:      s.State,
		})
	}
	return rows
}

func writeLightsTable(w io.Writer, lights []bridge.Light) error {
	data := pterm.TableData{{"ID", "Name", "Model ID", "Model", "Type", "Gamut"}}
	for _, l := range lights {
		gamut := "-"
		if l.Model.Gamut != nil {
			gamut = l.Model.Gamut.Name
		}
		data = append(data, []string{l.ID, l.Name, l.ModelID, l.Model.Name, l.Model.Type, gamut})
	}
	return renderTable(w, data)
}

func writeSensorsTable(w io.Writer, sensors []bridge.Sensor) error {
	data := pterm.TableData{{"ID", "Name", "Model ID", "Model", "Type", "State"}}
	for _, s := range sensors {
		data = append(data, []string{s.ID, s.Name, s.ModelID, s.Model.Name, s.State.SensorType(), describeState(s)})
	}
	return renderTable(w, data)
}

// describeState renders the interesting value of a sensor state
func describeState(s bridge.Sensor) string {
	switch st := s.State.(type) {
	case *sensortype.ButtonState:
		if desc, ok := s.Model.DescribeEvent(st.ButtonEvent); ok {
			return fmt.Sprintf("%d (%s)", st.ButtonEvent, desc)
		}
		return strconv.Itoa(st.ButtonEvent)
	case *sensortype.TemperatureState:
		return fmt.Sprintf("%.2f °C", st.Celsius())
	case *sensortype.HumidityState:
		return fmt.Sprintf("%.2f %%", st.Percent())
	case *sensortype.PresenceState:
		return strconv.FormatBool(st.Presence)
	case *sensortype.OpenCloseState:
		return strconv.FormatBool(st.Open)
	case *sensortype.FlagState:
		return strconv.FormatBool(st.Flag)
	case *sensortype.StatusState:
		return strconv.Itoa(st.Status)
	case *sensortype.DaylightState:
		if st.Daylight == nil {
			return "unconfigured"
		}
		return strconv.FormatBool(*st.Daylight)
	}
	return "-"
}

func renderTable(w io.Writer, data pterm.TableData) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
