package commands

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/gridmap/config"
	"github.com/teranos/gridmap/errors"
	"github.com/teranos/gridmap/logger"
	"github.com/teranos/gridmap/network"
	"github.com/teranos/gridmap/pipeline"
)

// WatchCmd rebuilds a map whenever its inputs change
var WatchCmd = &cobra.Command{
	Use:   "watch <report-id>",
	Short: "Rebuild the map whenever its config or network changes",
	Long: `Build the map for <report-id>, then watch config/<report-id>/onepager.yaml and
the local network file and rebuild after each change. Stop with Ctrl+C.

A failed rebuild is reported and the watch continues; fix the input and save again.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	WatchCmd.Flags().Duration("debounce", config.DefaultDebounce, "Quiet period after a change before rebuilding")
}

func runWatch(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	reportID := args[0]
	debounce, _ := cmd.Flags().GetDuration("debounce")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := pipeline.Options{
		Settings: settings,
		ReportID: reportID,
		Emitter:  newEmitter(cmd),
	}

	// The first build must succeed so there is something to watch
	if _, err := pipeline.Run(ctx, opts); err != nil {
		return err
	}

	project, err := config.LoadProject(settings.BaseDir, reportID)
	if err != nil {
		return err
	}
	paths := []string{project.ConfigPath}
	if !network.IsRemote(project.NetworkFile, settings.BaseDir) {
		paths = append(paths, project.NetworkPath(settings.BaseDir))
	}

	watcher, err := config.NewWatcher(paths, debounce)
	if err != nil {
		return errors.Wrap(err, "failed to start watching")
	}
	defer watcher.Stop()

	log := logger.ComponentLogger("watch")
	watcher.OnChange(func() error {
		start := time.Now()
		_, err := pipeline.Run(ctx, opts)
		if err == nil {
			log.Infow("Rebuilt map", logger.FieldDurationMS, time.Since(start).Milliseconds())
		} else if hints := errors.FlattenHints(err); hints != "" {
			pterm.Warning.Printf("%v\nHint: %s\n", err, hints)
		} else {
			pterm.Warning.Println(err.Error())
		}
		return err
	})
	watcher.Start()

	pterm.Info.Printf("Watching %d path(s) for changes, press Ctrl+C to stop\n", len(paths))
	<-ctx.Done()
	pterm.Info.Println("Stopped watching")
	return nil
}
