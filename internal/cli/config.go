package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/gzrlab/gzrsteg/pkg/errors"
	"github.com/gzrlab/gzrsteg/pkg/pipeline"
)

// Config holds user-level defaults read from an optional TOML file.
// Flags always win over file values; file values win over built-ins.
type Config struct {
	// OutputSuffix is appended to the carrier's base name when no
	// explicit output path is given (default "_stego").
	OutputSuffix string `toml:"output_suffix"`

	// PlotDir is the default directory for analyze --plots output.
	PlotDir string `toml:"plot_dir"`

	// ServerAddr is the default listen address for the serve command.
	ServerAddr string `toml:"server_addr"`
}

func defaultConfig() *Config {
	return &Config{
		OutputSuffix: pipeline.DefaultOutputSuffix,
		PlotDir:      "plots",
		ServerAddr:   ":8080",
	}
}

// configPath returns the location of the user config file,
// typically ~/.config/gzrsteg/config.toml.
func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gzrsteg", "config.toml"), nil
}

// loadConfig reads the user config file if it exists. A missing file is not
// an error; it simply yields the built-in defaults.
func loadConfig() (*Config, error) {
	cfg := defaultConfig()

	path, err := configPath()
	if err != nil {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid config file %s", path)
	}
	if cfg.OutputSuffix == "" {
		cfg.OutputSuffix = pipeline.DefaultOutputSuffix
	}
	return cfg, nil
}

// stegoOutputPath derives the default stego path from the carrier path by
// inserting suffix before the extension and forcing .png.
func stegoOutputPath(carrier, suffix string) string {
	ext := filepath.Ext(carrier)
	base := carrier[:len(carrier)-len(ext)]
	return base + suffix + ".png"
}
