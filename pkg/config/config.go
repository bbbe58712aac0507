// Package config loads bake settings from a YAML file. Values not present
// in the file keep their defaults; CLI flags override file values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vertexbake/go-vertex-bake/pkg/baker"
	"github.com/vertexbake/go-vertex-bake/pkg/sampler"
)

// Config holds one bake operation's settings
type Config struct {
	Image        string   `yaml:"image"`          // source image path
	Meshes       []string `yaml:"meshes"`         // PLY mesh paths
	Radius       int      `yaml:"radius"`         // sample radius, >= 1
	Shape        string   `yaml:"shape"`          // point, square or circle
	Overwrite    bool     `yaml:"overwrite"`      // replace existing vertex colors
	Workers      int      `yaml:"workers"`        // 0 = one per CPU
	OutputDir    string   `yaml:"output_dir"`     // where baked meshes are written
	MaxImageSize int      `yaml:"max_image_size"` // longest image edge, 0 = no downscale
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Radius:    1,
		Shape:     sampler.ShapePoint.String(),
		Overwrite: true,
		OutputDir: "baked",
	}
}

// Load reads a YAML config file on top of the defaults
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings that must hold before any file is touched
func (c *Config) Validate() error {
	if c.Image == "" {
		return fmt.Errorf("no image configured")
	}
	if len(c.Meshes) == 0 {
		return fmt.Errorf("no meshes configured")
	}
	if _, err := c.BakeOptions(); err != nil {
		return err
	}
	return nil
}

// BakeOptions converts the file representation into baker options,
// rejecting unknown shapes and invalid radii
func (c *Config) BakeOptions() (baker.Options, error) {
	shape, err := sampler.ParseShape(c.Shape)
	if err != nil {
		return baker.Options{}, err
	}
	// BuildMask owns the radius rules; run it once here so a bad radius is
	// reported at config time.
	if _, err := sampler.BuildMask(shape, c.Radius); err != nil {
		return baker.Options{}, err
	}
	return baker.Options{
		Radius:    c.Radius,
		Shape:     shape,
		Overwrite: c.Overwrite,
		Workers:   c.Workers,
	}, nil
}
