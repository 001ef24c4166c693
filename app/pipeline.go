// Package app wires the pipeline stages together: fetch (optional), read,
// sequence building, correlation and report rendering. One Run call is one
// batch execution over the configured dataset.
package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	montanaflynn "github.com/montanaflynn/stats"

	"recentstats/adapters/report"
	"recentstats/adapters/statcast"
	"recentstats/domain/batting"
	"recentstats/internal"
	"recentstats/internal/config"
	"recentstats/internal/correlation"
	"recentstats/internal/errors"
	"recentstats/internal/sequence"
)

const codeVersion = "v0.1.0"

// Fetcher downloads the raw dataset when the local cache is absent.
type Fetcher interface {
	FetchSeasons(ctx context.Context, startYear, endYear int, outPath string) error
}

// Pipeline executes the full rolling-correlation computation.
type Pipeline struct {
	cfg     *config.Config
	logger  *internal.Logger
	fetcher Fetcher
}

// NewPipeline creates a pipeline. The fetcher may be nil when the dataset is
// expected to exist locally.
func NewPipeline(cfg *config.Config, logger *internal.Logger, fetcher Fetcher) *Pipeline {
	return &Pipeline{cfg: cfg, logger: logger, fetcher: fetcher}
}

// Result is the outcome of one pipeline run.
type Result struct {
	RunID      string
	Rows       []correlation.Row
	ReadStats  statcast.ReadStats
	BuildStats sequence.BuildStats
	Profile    report.PACountProfile
	Artifacts  []string
	Elapsed    time.Duration
}

// Run executes fetch, sequence building, correlation and reporting. Fatal
// conditions (absent or structurally unusable dataset) abort before any
// report artifact is produced.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	p.logger.Info("run %s starting (windows 1..%d, %d workers)", runID, p.cfg.Compute.MaxWindow, p.cfg.Compute.Workers)

	if p.cfg.Data.FetchEnabled && p.fetcher != nil {
		if err := p.fetcher.FetchSeasons(ctx, p.cfg.Data.StartYear, p.cfg.Data.EndYear, p.cfg.Data.File); err != nil {
			return nil, errors.Wrap(err, "fetching dataset")
		}
	}

	events, readStats, err := statcast.ReadFile(p.cfg.Data.File)
	if err != nil {
		return nil, err
	}
	p.logger.Info("read %d rows: %d plate appearances, %d pitch-level, %d malformed",
		readStats.TotalRows, readStats.EventRows, readStats.PitchRows, readStats.MalformedRows)

	seqs, buildStats := sequence.Build(events, p.cfg.Compute.MinPlayerPA)
	p.logger.Info("built %d player sequences holding %d appearances (%d players below %d PA threshold)",
		buildStats.PlayersKept, buildStats.AppearancesKept, buildStats.PlayersSkipped, p.cfg.Compute.MinPlayerPA)
	p.logger.Debug("dropped rows: %d unknown outcome, %d missing order key, %d duplicate keys",
		buildStats.UnknownOutcome, buildStats.MissingOrderKey, buildStats.DuplicateKey)
	if buildStats.AppearancesKept == 0 {
		return nil, errors.DatasetInvalid("dataset contains no usable plate appearances")
	}

	profile := paCountProfile(seqs)
	p.logger.Info("plate appearances per player: mean %.1f, median %.1f, min %.0f, max %.0f",
		profile.Mean, profile.Median, profile.Min, profile.Max)

	rows, err := correlation.Compute(ctx, seqs, p.cfg.Compute.MaxWindow, p.cfg.Compute.Workers)
	if err != nil {
		return nil, errors.Wrap(err, "computing correlations")
	}

	result := &Result{
		RunID:      runID,
		Rows:       rows,
		ReadStats:  readStats,
		BuildStats: buildStats,
		Profile:    profile,
	}

	if err := p.writeReports(result); err != nil {
		return nil, err
	}

	result.Elapsed = time.Since(start)
	if err := p.writeManifest(result); err != nil {
		return nil, err
	}

	p.logger.Info("run %s finished in %s", runID, result.Elapsed.Round(time.Millisecond))
	return result, nil
}

func (p *Pipeline) writeReports(result *Result) error {
	dir := p.cfg.Output.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating output dir %s", dir)
	}

	csvPath := filepath.Join(dir, "correlation_table.csv")
	if err := report.WriteCSV(csvPath, result.Rows); err != nil {
		return err
	}
	result.Artifacts = append(result.Artifacts, csvPath)

	xlsxPath := filepath.Join(dir, "correlation_table.xlsx")
	if err := report.WriteWorkbook(xlsxPath, result.Rows); err != nil {
		return err
	}
	result.Artifacts = append(result.Artifacts, xlsxPath)

	plots, err := report.WritePlots(dir, result.Rows)
	if err != nil {
		return err
	}
	result.Artifacts = append(result.Artifacts, plots...)

	if err := report.WriteSummary(dir, report.Summary{
		RunID:       result.RunID,
		GeneratedAt: time.Now(),
		DataFile:    p.cfg.Data.File,
		Players:     result.BuildStats.PlayersKept,
		Appearances: result.BuildStats.AppearancesKept,
		Profile:     result.Profile,
		Rows:        result.Rows,
	}); err != nil {
		return err
	}
	result.Artifacts = append(result.Artifacts,
		filepath.Join(dir, "summary.md"), filepath.Join(dir, "summary.html"))

	return nil
}

type runManifest struct {
	RunID       string              `json:"run_id"`
	CreatedAt   time.Time           `json:"created_at"`
	CodeVersion string              `json:"code_version"`
	DataFile    string              `json:"data_file"`
	StartYear   int                 `json:"start_year"`
	EndYear     int                 `json:"end_year"`
	MaxWindow   int                 `json:"max_window"`
	MinPlayerPA int                 `json:"min_player_pa"`
	Workers     int                 `json:"workers"`
	ReadStats   statcast.ReadStats  `json:"read_stats"`
	BuildStats  sequence.BuildStats `json:"build_stats"`
	RuntimeMs   int64               `json:"runtime_ms"`
	Artifacts   []string            `json:"artifacts"`
}

func (p *Pipeline) writeManifest(result *Result) error {
	manifest := runManifest{
		RunID:       result.RunID,
		CreatedAt:   time.Now().UTC(),
		CodeVersion: codeVersion,
		DataFile:    p.cfg.Data.File,
		StartYear:   p.cfg.Data.StartYear,
		EndYear:     p.cfg.Data.EndYear,
		MaxWindow:   p.cfg.Compute.MaxWindow,
		MinPlayerPA: p.cfg.Compute.MinPlayerPA,
		Workers:     p.cfg.Compute.Workers,
		ReadStats:   result.ReadStats,
		BuildStats:  result.BuildStats,
		RuntimeMs:   result.Elapsed.Milliseconds(),
		Artifacts:   result.Artifacts,
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding run manifest")
	}

	path := filepath.Join(p.cfg.Output.Dir, "run_manifest.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing run manifest %s", path)
	}
	result.Artifacts = append(result.Artifacts, path)
	return nil
}

// paCountProfile summarizes how many plate appearances each kept player
// contributed.
func paCountProfile(seqs []*batting.PlayerSequence) report.PACountProfile {
	if len(seqs) == 0 {
		return report.PACountProfile{}
	}

	counts := make([]float64, len(seqs))
	for i, seq := range seqs {
		counts[i] = float64(seq.Len())
	}

	mean, _ := montanaflynn.Mean(counts)
	median, _ := montanaflynn.Median(counts)
	min, _ := montanaflynn.Min(counts)
	max, _ := montanaflynn.Max(counts)
	q25, _ := montanaflynn.Percentile(counts, 25)
	q75, _ := montanaflynn.Percentile(counts, 75)

	return report.PACountProfile{
		Mean:   mean,
		Median: median,
		Min:    min,
		Max:    max,
		Q25:    q25,
		Q75:    q75,
	}
}
