package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"lifeexp/internal"
	"lifeexp/internal/catalog"
	"lifeexp/internal/config"
	"lifeexp/internal/storage"
)

type ProcessingService struct {
	cfg    config.Config
	openDB func(path string) (*storage.DB, error)
}

func NewProcessingService(cfg config.Config) *ProcessingService {
	return &ProcessingService{cfg: cfg, openDB: storage.Open}
}

type Request struct {
	Format       string
	Region       string
	Input        string
	Output       string
	OutputFormat string
}

type Result struct {
	RunID   string
	Region  catalog.Region
	Input   string
	Output  string
	Rows    int
	Summary Summary
}

type plan struct {
	region    catalog.Region
	format    Format
	loader    Loader
	input     string
	output    string
	outFormat OutputFormat
}

// resolve validates the request and fills defaults. It never touches the filesystem.
func (s *ProcessingService) resolve(req Request) (plan, error) {
	regionCode := firstNonEmpty(req.Region, s.cfg.DefaultRegion, string(catalog.PT))
	region, err := catalog.ParseRegion(regionCode)
	if err != nil {
		return plan{}, err
	}

	format, err := ParseFormat(firstNonEmpty(req.Format, s.cfg.DefaultFormat, string(FormatTSV)))
	if err != nil {
		return plan{}, err
	}

	outFormat, err := ParseOutputFormat(firstNonEmpty(req.OutputFormat, s.cfg.OutputFormat))
	if err != nil {
		return plan{}, err
	}

	input := firstNonEmpty(req.Input, s.cfg.RawPath(format.Extension()))
	output := req.Output
	if strings.TrimSpace(output) == "" && outFormat == OutputSQLite {
		output = s.cfg.DBPath
	}
	if strings.TrimSpace(output) == "" {
		output = filepath.Join(s.cfg.OutputDir, fmt.Sprintf("%s_life_expectancy.%s", strings.ToLower(region.String()), outFormat.Extension()))
	}

	return plan{
		region:    region,
		format:    format,
		loader:    loaders[format],
		input:     input,
		output:    output,
		outFormat: outFormat,
	}, nil
}

// Run loads, cleans and writes one region. Nothing is written unless every earlier step succeeded.
func (s *ProcessingService) Run(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	p, err := s.resolve(req)
	if err != nil {
		return Result{}, err
	}
	logger := slog.Default().With("region", p.region.String(), "format", string(p.format), "input", p.input)

	raw, err := p.loader.Load(p.input)
	if err != nil {
		return Result{}, err
	}
	logger.Debug("loaded raw table", "rows", raw.Len(), "columns", len(raw.Columns()))

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	cleaned, err := Clean(raw, p.region)
	if err != nil {
		return Result{}, err
	}
	summary := Summarize(cleaned)

	runID := uuid.NewString()
	if err := s.write(p, runID, cleaned, summary); err != nil {
		return Result{}, err
	}

	logger.Info("run complete", "run_id", runID, "rows", len(cleaned), "output", p.output, "duration", time.Since(start))
	return Result{
		RunID:   runID,
		Region:  p.region,
		Input:   p.input,
		Output:  p.output,
		Rows:    len(cleaned),
		Summary: summary,
	}, nil
}

func (s *ProcessingService) write(p plan, runID string, cleaned internal.CleanedTable, summary Summary) error {
	switch p.outFormat {
	case OutputCSV:
		return ExportCSV(cleaned, p.output)
	case OutputXLSX:
		return ExportXLSX(cleaned, p.output)
	case OutputSQLite:
		db, err := s.openDB(p.output)
		if err != nil {
			return err
		}
		defer db.Close()
		return db.SaveRun(internal.RunRow{
			ID:           runID,
			Region:       p.region.String(),
			Format:       string(p.format),
			Source:       p.input,
			Output:       p.output,
			OutputFormat: string(p.outFormat),
		}, cleaned, summary)
	default:
		return fmt.Errorf("unhandled output format %s", p.outFormat)
	}
}

type DiscoveredRegion struct {
	Code  string
	Known bool
	Rows  int
}

// DiscoverRegions lists the region codes present in a raw feed, in first-seen order.
func (s *ProcessingService) DiscoverRegions(format, input string) ([]DiscoveredRegion, error) {
	f, err := ParseFormat(firstNonEmpty(format, s.cfg.DefaultFormat, string(FormatTSV)))
	if err != nil {
		return nil, err
	}
	raw, err := loaders[f].Load(firstNonEmpty(input, s.cfg.RawPath(f.Extension())))
	if err != nil {
		return nil, err
	}
	all, err := Normalize(raw)
	if err != nil {
		return nil, err
	}

	out := []DiscoveredRegion{}
	pos := map[string]int{}
	for _, r := range all {
		i, ok := pos[r.Region]
		if !ok {
			i = len(out)
			pos[r.Region] = i
			out = append(out, DiscoveredRegion{Code: r.Region, Known: catalog.IsKnown(r.Region)})
		}
		out[i].Rows++
	}
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
