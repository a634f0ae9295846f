package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dossier-ai/dossier/internal/organize"
)

const (
	EnvPipelineInputFolder  = "DOSSIER_PIPELINE_INPUT_FOLDER"
	EnvPipelineOutputFolder = "DOSSIER_PIPELINE_OUTPUT_FOLDER"
	EnvPipelineMode         = "DOSSIER_PIPELINE_MODE"
	EnvPipelineBatchLimit   = "DOSSIER_PIPELINE_BATCH_LIMIT"
	EnvPipelinePreviewLimit = "DOSSIER_PIPELINE_PREVIEW_LIMIT"
	EnvPipelineMaxImages    = "DOSSIER_PIPELINE_MAX_IMAGES"
)

// PipelineConfig holds document pipeline parameters.
type PipelineConfig struct {
	InputFolder  string `toml:"input_folder"`
	OutputFolder string `toml:"output_folder"`
	Mode         string `toml:"mode"`
	BatchLimit   int    `toml:"batch_limit"`
	PreviewLimit int    `toml:"preview_limit"`
	MaxImages    int    `toml:"max_images"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *PipelineConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *PipelineConfig) Merge(overlay *PipelineConfig) {
	if overlay.InputFolder != "" {
		c.InputFolder = overlay.InputFolder
	}
	if overlay.OutputFolder != "" {
		c.OutputFolder = overlay.OutputFolder
	}
	if overlay.Mode != "" {
		c.Mode = overlay.Mode
	}
	if overlay.BatchLimit != 0 {
		c.BatchLimit = overlay.BatchLimit
	}
	if overlay.PreviewLimit != 0 {
		c.PreviewLimit = overlay.PreviewLimit
	}
	if overlay.MaxImages != 0 {
		c.MaxImages = overlay.MaxImages
	}
}

func (c *PipelineConfig) loadDefaults() {
	if c.InputFolder == "" {
		c.InputFolder = "documents/incoming"
	}
	if c.OutputFolder == "" {
		c.OutputFolder = "documents/sorted"
	}
	if c.Mode == "" {
		c.Mode = organize.ModeCopy
	}
	if c.BatchLimit == 0 {
		c.BatchLimit = 4
	}
	if c.PreviewLimit == 0 {
		c.PreviewLimit = 2000
	}
	if c.MaxImages == 0 {
		c.MaxImages = 3
	}
}

func (c *PipelineConfig) loadEnv() {
	if v := os.Getenv(EnvPipelineInputFolder); v != "" {
		c.InputFolder = v
	}
	if v := os.Getenv(EnvPipelineOutputFolder); v != "" {
		c.OutputFolder = v
	}
	if v := os.Getenv(EnvPipelineMode); v != "" {
		c.Mode = v
	}
	if v := os.Getenv(EnvPipelineBatchLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BatchLimit = n
		}
	}
	if v := os.Getenv(EnvPipelinePreviewLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.PreviewLimit = n
		}
	}
	if v := os.Getenv(EnvPipelineMaxImages); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxImages = n
		}
	}
}

func (c *PipelineConfig) validate() error {
	if c.Mode != organize.ModeCopy && c.Mode != organize.ModeMove {
		return fmt.Errorf("invalid mode: %q", c.Mode)
	}
	if c.BatchLimit < 1 {
		return fmt.Errorf("batch_limit must be positive")
	}
	if c.PreviewLimit < 1 {
		return fmt.Errorf("preview_limit must be positive")
	}
	if c.MaxImages < 1 {
		return fmt.Errorf("max_images must be positive")
	}
	return nil
}
