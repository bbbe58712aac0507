package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vertexbake/go-vertex-bake/pkg/baker"
	"github.com/vertexbake/go-vertex-bake/pkg/config"
	"github.com/vertexbake/go-vertex-bake/pkg/loaders"
	"github.com/vertexbake/go-vertex-bake/pkg/mesh"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "YAML config file (flags override file values)")
	imagePath := flag.String("image", "", "Source image (PNG, JPEG, BMP, TIFF or WebP)")
	meshList := flag.String("mesh", "", "Comma-separated PLY mesh files")
	radius := flag.Int("radius", 1, "Sample radius: 1 picks a single pixel, larger values average a neighborhood")
	shape := flag.String("shape", "point", "Neighborhood shape: 'point', 'square' or 'circle'")
	outDir := flag.String("out", "baked", "Output directory for baked meshes")
	overwrite := flag.Bool("overwrite", true, "Replace existing vertex colors")
	workers := flag.Int("workers", 0, "Parallel workers (0 = one per CPU)")
	maxSize := flag.Int("max-size", 0, "Downscale images whose longest edge exceeds this (0 = off)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Vertex Color Baker")
		fmt.Println("Usage: vertexbake [options]")
		fmt.Println()
		fmt.Println("Transfers image colors onto mesh vertex colors via each vertex's UV coordinate.")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Baked meshes are saved to <out>/<name>_baked.ply")
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Flags that were explicitly set override the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "image":
			cfg.Image = *imagePath
		case "mesh":
			cfg.Meshes = splitList(*meshList)
		case "radius":
			cfg.Radius = *radius
		case "shape":
			cfg.Shape = *shape
		case "out":
			cfg.OutputDir = *outDir
		case "overwrite":
			cfg.Overwrite = *overwrite
		case "workers":
			cfg.Workers = *workers
		case "max-size":
			cfg.MaxImageSize = *maxSize
		}
	})

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	opts, err := cfg.BakeOptions()
	if err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loading image %s...\n", cfg.Image)
	buf, err := loaders.LoadImage(cfg.Image, loaders.ImageOptions{MaxSize: cfg.MaxImageSize})
	if err != nil {
		fmt.Printf("Error loading image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Image is %dx%d\n", buf.Width, buf.Height)

	meshes := make([]*mesh.Mesh, 0, len(cfg.Meshes))
	for _, path := range cfg.Meshes {
		m, err := loaders.LoadPLY(path)
		if err != nil {
			fmt.Printf("Error loading mesh: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Loaded %s: %d vertices, %d triangles\n", m.Name, m.VertexCount(), len(m.Faces)/3)
		meshes = append(meshes, m)
	}

	logger := baker.NewDefaultLogger()
	b, err := baker.New(buf, opts, logger)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	startTime := time.Now()
	summary, err := b.BakeAll(meshes)
	if err != nil {
		fmt.Printf("Bake failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Baked %d mesh(es), skipped %d in %v\n", summary.Baked, summary.Skipped, time.Since(startTime))

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}
	for _, m := range meshes {
		if !m.HasColors() {
			continue
		}
		filename := filepath.Join(cfg.OutputDir, fmt.Sprintf("%s_baked.ply", m.Name))
		if err := loaders.SavePLY(filename, m); err != nil {
			fmt.Printf("Error saving mesh: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved %s\n", filename)
	}
}

// splitList splits a comma-separated flag value, dropping empty entries
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
