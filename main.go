package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/nfnt/resize"

	"github.com/df07/go-sdf-raymarcher/pkg/renderer"
	"github.com/df07/go-sdf-raymarcher/pkg/scene"
)

func main() {
	sceneID := flag.String("scene", "default", "Scene to render (see -help for the list)")
	width := flag.Int("width", 0, "Image width in pixels (0 = scene default)")
	height := flag.Int("height", 0, "Image height in pixels (0 = scene default)")
	samples := flag.Int("samples", 0, "Maximum samples per pixel (0 = scene default)")
	animTime := flag.Float64("time", 0, "Animation time in seconds")
	scale := flag.Float64("scale", 1.0, "Output scale factor (e.g. 0.5 for a half-size image)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("SDF Raymarcher")
		fmt.Println("Usage: raymarcher [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, group := range scene.ListAllScenes().Groups {
			for _, info := range group.Scenes {
				fmt.Printf("  %-10s %s\n", info.ID, info.Description)
			}
		}
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
		return
	}

	if err := run(*sceneID, *width, *height, *samples, *animTime, *scale); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(sceneID string, width, height, samples int, animTime, scale float64) error {
	selectedScene, err := scene.NewSceneByID(sceneID, animTime)
	if err != nil {
		return err
	}

	// Apply command line overrides to the scene's sampling config
	selectedScene.SamplingConfig = renderer.MergeSamplingConfig(selectedScene.SamplingConfig, renderer.SamplingConfig{
		Width:           width,
		Height:          height,
		SamplesPerPixel: samples,
	})

	if err := selectedScene.Validate(); err != nil {
		return err
	}
	if scale <= 0 {
		return fmt.Errorf("scale must be positive, got %f", scale)
	}

	fmt.Printf("Rendering scene %q at %dx%d, up to %d samples per pixel...\n",
		sceneID, selectedScene.SamplingConfig.Width, selectedScene.SamplingConfig.Height,
		selectedScene.SamplingConfig.SamplesPerPixel)

	rt := renderer.NewRenderer(selectedScene)

	startTime := time.Now()
	img, stats, err := rt.RenderFrame(context.Background())
	if err != nil {
		return err
	}
	renderTime := time.Since(startTime)

	fmt.Printf("Render completed in %v\n", renderTime)
	fmt.Printf("Samples per pixel: %.1f (range %d - %d)\n",
		stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed)

	output := scaleImage(img, scale)

	outputDir := filepath.Join("output", sceneID)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(outputDir, outputFilename(time.Now()))
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, output); err != nil {
		return fmt.Errorf("failed to save PNG: %w", err)
	}

	fmt.Printf("Render saved as %s\n", filename)
	return nil
}

// scaleImage resizes the rendered frame by the given factor. Scale 1
// returns the image untouched.
func scaleImage(img *image.RGBA, scale float64) image.Image {
	if scale == 1.0 {
		return img
	}
	bounds := img.Bounds()
	newWidth := uint(float64(bounds.Dx()) * scale)
	newHeight := uint(float64(bounds.Dy()) * scale)
	return resize.Resize(newWidth, newHeight, img, resize.Lanczos3)
}

// outputFilename builds a timestamped PNG filename
func outputFilename(now time.Time) string {
	return fmt.Sprintf("render_%s.png", now.Format("20060102_150405"))
}
