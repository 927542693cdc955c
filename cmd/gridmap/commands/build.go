package commands

import (
	"github.com/spf13/cobra"
	"github.com/teranos/gridmap/pipeline"
)

// BuildCmd builds the network map of one report
var BuildCmd = &cobra.Command{
	Use:   "build <report-id>",
	Short: "Build the network map for a report",
	Long: `Build output/<report-id>/network_map.html from the network configured in
config/<report-id>/onepager.yaml.

The command fails without writing anything when the config file is missing,
the network_file key is absent, or the network file does not exist.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	BuildCmd.Flags().Bool("open", false, "Open the written map in the default browser")
}

func runBuild(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	open, _ := cmd.Flags().GetBool("open")
	_, err = pipeline.Run(cmd.Context(), pipeline.Options{
		Settings: settings,
		ReportID: args[0],
		Open:     open || settings.Map.Open,
		Emitter:  newEmitter(cmd),
	})
	return err
}
