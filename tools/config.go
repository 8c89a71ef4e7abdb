package tools

import (
	"fmt"
	"os"

	"github.com/atmoscan/calipso_cloud/internal/cloud"
	"gopkg.in/yaml.v3"
)

// TuningConfig is the optional YAML tuning file loaded with -config. Flags
// still win over the file; the file wins over the built-in defaults.
type TuningConfig struct {
	MaxPoints           int     `yaml:"max_points"`
	CellSizeDegrees     float64 `yaml:"cell_size_degrees"`
	ColorMode           string  `yaml:"color_mode"`
	Ramp                string  `yaml:"ramp"`
	FixedIntensityRange bool    `yaml:"fixed_intensity_range"`
	BaseRadius          float64 `yaml:"base_radius"`
	Exaggeration        float64 `yaml:"exaggeration"`
}

// NewDefaultTuningConfig returns the built-in tuning values.
func NewDefaultTuningConfig() *TuningConfig {
	return &TuningConfig{
		MaxPoints:           cloud.DefaultMaxPoints,
		CellSizeDegrees:     cloud.DefaultCellSizeDegrees,
		ColorMode:           "elevation",
		Ramp:                "viridis",
		FixedIntensityRange: true,
		BaseRadius:          100,
		Exaggeration:        1,
	}
}

// LoadTuningConfig reads and validates a YAML tuning file, filling omitted
// fields with the defaults.
func LoadTuningConfig(filePath string) (*TuningConfig, error) {
	buf, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	cfg := NewDefaultTuningConfig()
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse tuning config %s: %w", filePath, err)
	}

	if cfg.MaxPoints <= 0 {
		return nil, fmt.Errorf("max_points must be positive, got %d", cfg.MaxPoints)
	}
	if cfg.CellSizeDegrees <= 0 {
		return nil, fmt.Errorf("cell_size_degrees must be positive, got %v", cfg.CellSizeDegrees)
	}

	return cfg, nil
}
