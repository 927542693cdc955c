package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/gridmap/config"
	"github.com/teranos/gridmap/errors"
	"github.com/teranos/gridmap/logger"
	"github.com/teranos/gridmap/pipeline"
)

// RootCmd is the gridmap command tree
var RootCmd = &cobra.Command{
	Use:   "gridmap",
	Short: "Build interactive network maps from power-system models",
	Long: `gridmap - Interactive network maps for power-system models.

Reads the network model configured in config/<report-id>/onepager.yaml and
writes output/<report-id>/network_map.html: one marker per two-letter region
with demand and installed capacity, and one edge per line or link between
regions (links take precedence over lines on the same corridor).

Available commands:
  build   - Build the network map for a report
  inspect - Print the region and edge summary without writing a map
  watch   - Rebuild the map whenever its config or network changes
  config  - Show and validate gridmap settings
  version - Show version information

Examples:
  gridmap build load_shedding_update         # Write output/load_shedding_update/network_map.html
  gridmap build load_shedding_update --open  # ...and open it in a browser
  gridmap inspect load_shedding_update       # Region table in the terminal
  gridmap config show --format yaml          # Effective settings`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLog, _ := cmd.Flags().GetBool("json-log")
		if !jsonLog {
			if s, err := config.Load(); err == nil {
				jsonLog = s.Log.JSON
			}
		}
		if err := logger.Initialize(jsonLog, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		if jsonLog {
			pterm.DisableStyling()
		}
		logger.Debugw("Logger initialized", "level", logger.LevelName(verbosity), "json", jsonLog)
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	RootCmd.PersistentFlags().Bool("json-log", false, "Write logs as JSON lines to stderr")

	RootCmd.AddCommand(BuildCmd)
	RootCmd.AddCommand(InspectCmd)
	RootCmd.AddCommand(WatchCmd)
	RootCmd.AddCommand(ConfigCmd)
	RootCmd.AddCommand(VersionCmd)
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// loadSettings loads and validates tool settings
func loadSettings() (*config.Settings, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load settings")
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// newEmitter picks the progress output for a command
func newEmitter(cmd *cobra.Command) pipeline.ProgressEmitter {
	verbosity, _ := cmd.Flags().GetCount("verbose")
	if logger.JSONOutput {
		return pipeline.NewJSONEmitter(cmd.OutOrStdout())
	}
	return pipeline.NewCLIEmitter(verbosity)
}
