package commands

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/gridmap/config"
	"github.com/teranos/gridmap/display"
	"github.com/teranos/gridmap/errors"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and validate gridmap settings",
	Long: `Display and validate gridmap settings.

Settings sources (later overrides earlier):
1. Default values
2. gridmap.toml (searched from the working directory upwards)
3. Environment variables (GRIDMAP_* prefix, e.g. GRIDMAP_MAP_ZOOM_START=5)

Examples:
  gridmap config show                  # Show settings as TOML
  gridmap config show --format json    # Show settings as JSON
  gridmap config where                 # Show which settings file is used
  gridmap config validate demo         # Validate settings and config/demo/onepager.yaml`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where settings are loaded from",
	RunE:  runConfigWhere,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [report-id]",
	Short: "Validate settings and, optionally, one report's config",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigValidate,
}

func init() {
	configShowCmd.Flags().String("format", display.FormatTOML, "Output format: toml, json, yaml")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configWhereCmd)
	ConfigCmd.AddCommand(configValidateCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load settings")
	}
	format, _ := cmd.Flags().GetString("format")
	return display.Write(cmd.OutOrStdout(), format, "gridmap settings", settings)
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Settings cascade (later overrides earlier):")
	fmt.Fprintln(out, "  1. [DEFAULT]  Built-in defaults")
	fmt.Fprintf(out, "  2. [PROJECT]  ./%s (searches up directories)\n", config.SettingsFileName)
	fmt.Fprintf(out, "  3. [ENV]      %s_* environment variables\n", config.EnvPrefix)
	fmt.Fprintln(out)

	if path := config.SettingsFile(); path != "" {
		fmt.Fprintf(out, "Settings file: %s\n", path)
	} else {
		fmt.Fprintf(out, "Settings file: none found (using defaults)\n")
	}

	for _, env := range os.Environ() {
		if len(env) > len(config.EnvPrefix)+1 && env[:len(config.EnvPrefix)+1] == config.EnvPrefix+"_" {
			fmt.Fprintf(out, "Environment:   %s\n", env)
		}
	}
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load settings")
	}
	if err := settings.Validate(); err != nil {
		return errors.Wrap(err, "settings validation failed")
	}
	pterm.Success.Println("Settings are valid")

	if len(args) == 0 {
		return nil
	}

	project, err := config.LoadProject(settings.BaseDir, args[0])
	if err != nil {
		return err
	}
	if err := project.Validate(); err != nil {
		return err
	}
	pterm.Success.Printf("%s is valid (network_file: %s)\n", project.ConfigPath, project.NetworkFile)
	return nil
}
