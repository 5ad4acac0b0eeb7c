package app

import "errors"

// Config holds everything an App needs to run one command.
type Config struct {
	// SourcePath is a .view file or a directory containing them.
	SourcePath string
	// ProjectDir is where viewgen.hcl is looked up.
	ProjectDir string

	LogFormat string
	LogLevel  string

	CacheDir string
	NoCache  bool

	// CheckOnly suppresses writing generated files.
	CheckOnly bool
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SourcePath == "" {
		return nil, errors.New("SourcePath is a required configuration field and cannot be empty")
	}
	if cfg.ProjectDir == "" {
		cfg.ProjectDir = "."
	}
	return &cfg, nil
}
