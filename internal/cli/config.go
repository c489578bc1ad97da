package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/born-ml/graphcodec/internal/serialization"
)

// defaultConfigFile is read from the working directory when --config is not given.
const defaultConfigFile = "graphcodec.toml"

// Config holds settings read from graphcodec.toml. Command-line flags
// override these values.
type Config struct {
	Output OutputConfig `toml:"output"`
	Render RenderConfig `toml:"render"`
	Log    LogConfig    `toml:"log"`
}

// OutputConfig controls how documents are written.
type OutputConfig struct {
	Format       string `toml:"format"`        // "json" or "yaml"
	NormalizeIDs bool   `toml:"normalize_ids"` // rebase ids to start at 0
}

// RenderConfig controls diagram output.
type RenderConfig struct {
	RankDir  string `toml:"rankdir"`  // "TB" or "LR"
	Literals bool   `toml:"literals"` // draw inline payloads as nodes
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

func defaultConfig() Config {
	return Config{
		Output: OutputConfig{Format: string(serialization.FormatJSON), NormalizeIDs: true},
		Render: RenderConfig{RankDir: "TB"},
		Log:    LogConfig{Level: "info"},
	}
}

// loadConfig reads the TOML file at path over the defaults. A missing file
// is only an error when it was named explicitly. Unknown keys are returned
// so the caller can warn about them.
func loadConfig(path string, explicit bool) (Config, []string, error) {
	cfg := defaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return defaultConfig(), nil, nil
		}
		return Config{}, nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, nil, fmt.Errorf("config %s: %w", path, err)
	}

	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, key.String())
	}
	return cfg, unknown, nil
}

func (c Config) validate() error {
	if _, err := serialization.ParseFormat(c.Output.Format); err != nil {
		return err
	}
	if !validRankDir(c.Render.RankDir) {
		return fmt.Errorf("invalid render.rankdir %q (must be TB, LR, BT or RL)", c.Render.RankDir)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level %q: %w", c.Log.Level, err)
	}
	return nil
}

func validRankDir(s string) bool {
	switch strings.ToUpper(s) {
	case "TB", "LR", "BT", "RL":
		return true
	default:
		return false
	}
}
