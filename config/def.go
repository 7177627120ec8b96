package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config covers both binaries. The predictor only reads the first block;
// the agent uses the rest.
type Config struct {
	APIURL           string  `yaml:"apiURL"`
	HealthURL        string  `yaml:"healthURL"`
	ImagePath        string  `yaml:"imagePath"`
	OutputPath       string  `yaml:"outputPath"`
	TimeoutSeconds   int     `yaml:"timeoutSeconds"`
	WaitReadySeconds int     `yaml:"waitReadySeconds"`

	RetryCount  int     `yaml:"retryCount"`
	WatchDir    string  `yaml:"watchDir"`
	ResultsDir  string  `yaml:"resultsDir"`
	ReviewDir   string  `yaml:"reviewDir"`
	Threshold   float64 `yaml:"threshold"`
	ScanOnly    bool    `yaml:"scanOnly"`
	MetricsPort int     `yaml:"metricsPort"`
}

func Default() Config {
	return Config{
		APIURL:         "http://localhost:8000/predict",
		HealthURL:      "http://localhost:8000/healthz",
		ImagePath:      "images/test.jpg",
		OutputPath:     "result.json",
		TimeoutSeconds: 30,
		RetryCount:     2,
		WatchDir:       "images",
		ResultsDir:     "results",
		ReviewDir:      "for_review",
		Threshold:      0.8,
	}
}

// Load reads a yaml config from path. A missing file is not an error:
// the defaults match the service's standard local setup, so the
// predictor runs with no configuration at all.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 30
	}
	if cfg.RetryCount < 0 {
		cfg.RetryCount = 0
	}
	return cfg, nil
}
