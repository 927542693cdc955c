// Package pipeline runs one report end to end: configuration, network model,
// report construction and map rendering.
package pipeline

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/teranos/gridmap/config"
	"github.com/teranos/gridmap/errors"
	"github.com/teranos/gridmap/internal/httpclient"
	"github.com/teranos/gridmap/logger"
	"github.com/teranos/gridmap/mapview"
	"github.com/teranos/gridmap/network"
	"github.com/teranos/gridmap/report"
)

// Options controls a single run
type Options struct {
	Settings *config.Settings
	ReportID string

	// DryRun builds the report without writing the document
	DryRun bool

	// Open previews the written document in a browser, best effort
	Open bool

	// Emitter receives stage announcements; nil discards them
	Emitter ProgressEmitter
}

// Result describes a completed run
type Result struct {
	RunID       string         `json:"run_id"`
	ReportID    string         `json:"report_id"`
	Project     string         `json:"project"`
	ConfigPath  string         `json:"config_path"`
	NetworkPath string         `json:"network_path"`
	Format      string         `json:"format"`
	OutputPath  string         `json:"output_path,omitempty"`
	Stats       network.Stats  `json:"stats"`
	Report      *report.Report `json:"report"`
	Duration    time.Duration  `json:"duration"`
}

// Summary returns the key facts of a run for progress output
func (r *Result) Summary() map[string]interface{} {
	return map[string]interface{}{
		"run_id":     r.RunID,
		"project":    r.Project,
		"network":    r.NetworkPath,
		"format":     r.Format,
		"output":     r.OutputPath,
		"regions":    len(r.Report.Regions),
		"edges":      len(r.Report.Edges),
		"suppressed": r.Report.Suppressed,
		"timestep_h": r.Report.TimestepHours,
	}
}

// Run executes the whole pipeline once. Configuration errors abort before any
// output is written.
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	emitter := opts.Emitter
	if emitter == nil {
		emitter = NopEmitter{}
	}
	if opts.Settings == nil {
		return nil, errors.New("pipeline: settings are required")
	}
	settings := opts.Settings

	result := &Result{
		RunID:    uuid.New().String(),
		ReportID: opts.ReportID,
	}
	ctx = logger.WithRunID(ctx, result.RunID)
	ctx = logger.WithProject(ctx, opts.ReportID)
	ctx = logger.WithComponent(ctx, "pipeline")
	log := logger.LoggerFromContext(ctx)

	fail := func(stage string, err error) (*Result, error) {
		emitter.EmitError(stage, err)
		log.Errorw("Run failed", logger.FieldStage, stage, logger.FieldError, err)
		return nil, err
	}

	// Configuration
	if err := config.ValidateReportID(opts.ReportID); err != nil {
		return fail(StageConfig, err)
	}
	project, err := config.LoadProject(settings.BaseDir, opts.ReportID)
	if err != nil {
		return fail(StageConfig, err)
	}
	result.Project = project.Name
	result.ConfigPath = project.ConfigPath
	emitter.EmitStage(StageConfig, "Using project: "+project.Name)
	emitter.EmitInfo("Reading config: " + project.ConfigPath)
	log.Infow("Loaded project config", logger.FieldConfig, project.ConfigPath)

	// Network location
	netPath, err := resolveNetwork(ctx, settings, project, emitter)
	if err != nil {
		return fail(StageFetch, err)
	}
	result.NetworkPath = netPath

	reader, format, err := network.Open(netPath)
	if err != nil {
		if errors.Is(err, errors.ErrNetworkNotFound) {
			err = errors.WithHintf(err, "configured in %s as network_file: %s", project.ConfigPath, project.NetworkFile)
		}
		return fail(StageNetwork, err)
	}
	result.Format = format

	emitter.EmitStage(StageNetwork, "Loading network: "+netPath)
	net, err := reader.Read(ctx)
	if err != nil {
		return fail(StageNetwork, errors.Wrapf(err, "failed to read network %s", netPath))
	}
	result.Stats = net.Stats()
	log.Infow("Loaded network",
		logger.FieldNetwork, netPath,
		logger.FieldFormat, format,
		"buses", result.Stats.Buses,
		logger.FieldSnapshots, result.Stats.Snapshots)

	// Report
	rep := report.Build(net, report.Options{
		FallbackLat: settings.Map.FallbackLat,
		FallbackLon: settings.Map.FallbackLon,
	})
	result.Report = rep
	emitter.EmitStage(StageReport, pluralize(len(rep.Regions), "region")+", "+pluralize(len(rep.Edges), "edge"))
	log.Infow("Built report",
		logger.FieldRegions, len(rep.Regions),
		logger.FieldEdges, len(rep.Edges),
		logger.FieldSuppressed, rep.Suppressed,
		logger.FieldTimestep, rep.TimestepHours)

	// Render
	if !opts.DryRun {
		var assets *mapview.Assets
		if settings.Map.LeafletDir != "" {
			assets, err = mapview.LoadAssets(settings.ResolvePath(settings.Map.LeafletDir))
			if err != nil {
				return fail(StageRender, err)
			}
		}

		out := settings.OutputPath(opts.ReportID)
		m := mapview.New(rep, mapview.Options{
			Title:  project.Name,
			Tiles:  settings.Map.Tiles,
			Zoom:   settings.Map.ZoomStart,
			Assets: assets,
		})
		if err := m.Save(out); err != nil {
			return fail(StageRender, err)
		}
		result.OutputPath = out
		log.Infow("Saved map", logger.FieldOutput, out)

		if opts.Open {
			if err := mapview.Preview(out); err != nil {
				log.Warnw("Preview failed", logger.FieldError, err)
			}
		}
	}

	result.Duration = time.Since(start)
	log.Debugw("Run complete", logger.FieldDurationMS, result.Duration.Milliseconds())
	emitter.EmitComplete(result.Summary())
	return result, nil
}

// resolveNetwork returns the local path of the configured network model,
// fetching remote sources into the cache first
func resolveNetwork(ctx context.Context, settings *config.Settings, project *config.Project, emitter ProgressEmitter) (string, error) {
	if network.IsRemote(project.NetworkFile, settings.BaseDir) {
		emitter.EmitStage(StageFetch, "Fetching network: "+project.NetworkFile)
		client := httpclient.New(httpclient.Options{
			Timeout:      time.Duration(settings.Fetch.TimeoutSeconds) * time.Second,
			BlockPrivate: settings.Fetch.BlockPrivate,
		})
		return network.Fetch(ctx, project.NetworkFile, settings.CachePath(project.ID), settings.BaseDir,
			network.WithHTTPClient(client))
	}

	path := project.NetworkPath(settings.BaseDir)
	if _, err := os.Stat(path); err != nil {
		return "", errors.WithHintf(
			errors.Wrapf(errors.ErrNetworkNotFound, "network file not found at %s", path),
			"configured in %s as network_file: %s", project.ConfigPath, project.NetworkFile,
		)
	}
	return path, nil
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
