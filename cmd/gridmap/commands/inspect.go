package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/gridmap/display"
	"github.com/teranos/gridmap/pipeline"
	"github.com/teranos/gridmap/report"
)

// InspectCmd prints the report summary without writing the map
var InspectCmd = &cobra.Command{
	Use:   "inspect <report-id>",
	Short: "Print the region and edge summary without writing a map",
	Long: `Run the report pipeline for <report-id> and print the per-region demand and
installed capacity, and the resolved transmission edges. Nothing is written.

Examples:
  gridmap inspect load_shedding_update
  gridmap inspect load_shedding_update --json`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	InspectCmd.Flags().BoolP("json", "j", false, "Output the report as JSON")
}

func runInspect(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	var emitter pipeline.ProgressEmitter = pipeline.NopEmitter{}
	asJSON := display.ShouldOutputJSON(cmd)
	if !asJSON {
		emitter = newEmitter(cmd)
	}

	res, err := pipeline.Run(cmd.Context(), pipeline.Options{
		Settings: settings,
		ReportID: args[0],
		DryRun:   true,
		Emitter:  emitter,
	})
	if err != nil {
		return err
	}

	if asJSON {
		return display.OutputJSON(cmd.OutOrStdout(), res)
	}
	return renderInspect(res)
}

func renderInspect(res *pipeline.Result) error {
	rep := res.Report

	pterm.DefaultSection.Printf("%s (%s)", res.Project, res.ReportID)
	pterm.Printf("Network: %s [%s], timestep %s h\n",
		res.NetworkPath, res.Format, pterm.Cyan(fmt.Sprintf("%g", rep.TimestepHours)))

	if len(rep.Regions) == 0 {
		pterm.Warning.Println("No two-letter regions in this network; the map would be empty")
	} else {
		rows := pterm.TableData{{"Region", "Lon", "Lat", "Demand (TWh)", "Capacity (GW)", "Generators", "Storage"}}
		for _, r := range rep.Regions {
			rows = append(rows, []string{
				r.ID,
				fmt.Sprintf("%.4f", r.X),
				fmt.Sprintf("%.4f", r.Y),
				fmt.Sprintf("%.6f", r.Energy),
				fmt.Sprintf("%.6f", r.Capacity),
				techSummary(r.SortedGeneration()),
				techSummary(r.SortedStorage()),
			})
		}
		energy, capacity := rep.Totals()
		rows = append(rows, []string{"Total", "", "", fmt.Sprintf("%.6f", energy), fmt.Sprintf("%.6f", capacity), "", ""})
		if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
			return err
		}
	}

	if len(rep.Edges) == 0 {
		pterm.Info.Println("No edges between regions")
		return nil
	}
	rows := pterm.TableData{{"Kind", "Name", "Bus0", "Bus1", "Transfer capacity"}}
	for _, e := range rep.Edges {
		rows = append(rows, []string{string(e.Kind), e.Name, e.Bus0, e.Bus1, e.Capacity.Label()})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		return err
	}
	if rep.Suppressed > 0 {
		pterm.Info.Printf("%d line(s) hidden by links on the same corridor\n", rep.Suppressed)
	}
	return nil
}

func techSummary(rows []report.TechCapacity) string {
	if len(rows) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(rows))
	for _, row := range rows {
		parts = append(parts, fmt.Sprintf("%s %.3f", row.Label, row.GW))
	}
	return strings.Join(parts, ", ")
}
