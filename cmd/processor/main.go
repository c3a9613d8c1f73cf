// Command processor translates vendor futures feed files into canonical tick
// CSVs. It processes a single feed file or every feed file in a directory,
// skipping malformed rows and reporting per-symbol totals when done.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"fmdcli/internal/config"
	"fmdcli/internal/exporter"
	"fmdcli/internal/feed"
	"fmdcli/internal/files"
	"fmdcli/internal/infrastructure"
	"fmdcli/internal/securities"
)

func main() {
	file := flag.String("file", "", "single feed file to process (.csv, .csv.gz, .csv.zip)")
	dir := flag.String("dir", "", "directory of feed files (defaults to data/feeds)")
	properties := flag.String("properties", "", "contract reference-data file (defaults to configured properties file)")
	symbols := flag.String("symbols", "", "comma-separated symbol allow-list, e.g. ES,VX (overrides config)")
	out := flag.String("out", "", "output directory for reports (defaults to data/reports)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	paths, err := cfg.BuildPaths()
	if err != nil {
		slog.Error("failed to resolve paths", "error", err)
		os.Exit(1)
	}
	if *out != "" {
		paths.ReportsDir = *out
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("failed to create required directories", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	logger = logger.With(slog.String("run_id", uuid.NewString()))

	filter := cfg.Feed.Symbols
	if *symbols != "" {
		filter = splitSymbols(*symbols)
	}

	propertiesFile := paths.PropertiesFile
	if *properties != "" {
		propertiesFile = *properties
	}

	table, err := securities.LoadProperties(propertiesFile)
	if err != nil {
		logger.Error("failed to load contract properties",
			slog.String("file", propertiesFile),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("loaded contract properties",
		slog.String("file", propertiesFile),
		slog.Int("contracts", len(table)))

	resolver := securities.NewResolver()
	if markets := table.Markets(); len(markets) > 0 {
		resolver = securities.NewResolverWithMarkets(markets)
	}

	feedFiles, err := collectFeedFiles(*file, *dir, paths)
	if err != nil {
		logger.Error("failed to locate feed files", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(feedFiles) == 0 {
		logger.Error("no feed files to process")
		os.Exit(1)
	}

	tickExporter := exporter.NewTickExporter(paths)
	totals := make(map[string]int)
	failed := false

	for _, path := range feedFiles {
		counts, err := processFile(path, resolver, table.Multipliers(), filter, tickExporter, logger)
		if err != nil {
			logger.Error("failed to process feed file",
				slog.String("file", path),
				slog.String("error", err.Error()))
			failed = true
			continue
		}
		for symbol, n := range counts {
			totals[symbol] += n
		}
	}

	if err := tickExporter.WriteSummary(totals, "summary.csv"); err != nil {
		logger.Error("failed to write summary", slog.String("error", err.Error()))
		failed = true
	}

	total := 0
	for _, n := range totals {
		total += n
	}
	logger.Info("processing complete",
		slog.Int("files", len(feedFiles)),
		slog.Int("symbols", len(totals)),
		slog.Int("ticks", total))

	if failed {
		os.Exit(1)
	}
}

// processFile streams one feed file into a tick report named after it.
func processFile(path string, resolver feed.Resolver, multipliers map[string]float64, filter []string, tickExporter *exporter.TickExporter, logger *slog.Logger) (map[string]int, error) {
	logger.Info("processing feed file", slog.String("file", path))

	src, err := files.Open(path)
	if err != nil {
		return nil, err
	}

	reader, err := feed.NewTickReader(src, resolver, feed.Options{
		Multipliers: multipliers,
		Symbols:     filter,
		Logger:      logger,
	})
	if err != nil {
		src.Close()
		return nil, err
	}
	defer reader.Close()

	counts, err := tickExporter.ExportStream(reader, reportName(path))
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// reportName derives the tick report filename from a feed file path,
// stripping compression suffixes.
func reportName(path string) string {
	name := filepath.Base(path)
	for _, ext := range []string{".gz", ".zip"} {
		name = strings.TrimSuffix(name, ext)
	}
	name = strings.TrimSuffix(name, ".csv")
	return fmt.Sprintf("%s-ticks.csv", name)
}

func collectFeedFiles(file, dir string, paths *config.Paths) ([]string, error) {
	if file != "" {
		return []string{file}, nil
	}
	if dir == "" {
		dir = paths.FeedsDir
	}
	return files.Discover(dir)
}

func splitSymbols(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
