package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains the resolved application paths. This is the single source
// of truth for file locations; every other package receives paths from here.
type Paths struct {
	BaseDir    string
	DataDir    string
	FeedsDir   string
	ReportsDir string
	LogsDir    string

	PropertiesFile string
}

// BuildPaths resolves the path layout for this configuration. When no base
// directory is configured, paths anchor at the executable location so the
// tool behaves the same regardless of the working directory it is launched
// from.
//
// Layout under the base directory:
//
//	data/
//	  feeds/      (raw feed files, possibly compressed)
//	  reports/    (exported tick CSVs and summaries)
//	logs/
func (c *Config) BuildPaths() (*Paths, error) {
	base := c.Paths.BaseDir
	if base == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to get executable path: %w", err)
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		base = filepath.Dir(exe)
	}

	dataDir := c.Paths.DataDir
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(base, dataDir)
	}

	propertiesFile := c.Feed.PropertiesFile
	if propertiesFile != "" && !filepath.IsAbs(propertiesFile) {
		propertiesFile = filepath.Join(dataDir, propertiesFile)
	}

	return &Paths{
		BaseDir:        base,
		DataDir:        dataDir,
		FeedsDir:       filepath.Join(dataDir, "feeds"),
		ReportsDir:     filepath.Join(dataDir, "reports"),
		LogsDir:        filepath.Join(base, "logs"),
		PropertiesFile: propertiesFile,
	}, nil
}

// EnsureDirectories creates the writable directories if they do not exist.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.FeedsDir, p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetReportPath returns the full path for a report file.
func (p *Paths) GetReportPath(name string) string {
	return filepath.Join(p.ReportsDir, name)
}

// GetLogPath returns the full path for a log file.
func (p *Paths) GetLogPath(name string) string {
	return filepath.Join(p.LogsDir, name)
}
