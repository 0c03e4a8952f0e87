package renderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/df07/go-sdf-raymarcher/pkg/core"
	"github.com/df07/go-sdf-raymarcher/pkg/marcher"
	"github.com/df07/go-sdf-raymarcher/pkg/sdf"
	"github.com/df07/go-sdf-raymarcher/pkg/shading"
)

// shadowSalt decorrelates the shading seed from the sub-pixel jitter
// seed so the two hash chains never overlap
const shadowSalt = 0xa24baed4963ee407

// SamplingConfig contains frame and sampling configuration
type SamplingConfig struct {
	Width              int     // Image width in pixels
	Height             int     // Image height in pixels
	SamplesPerPixel    int     // Maximum rays per pixel
	AdaptiveMinSamples float64 // Fraction of max samples before adaptive stopping kicks in
	AdaptiveThreshold  float64 // Relative luminance error below which sampling stops
	Seed               uint64  // Base seed for all per-pixel hash chains
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:              800,
		Height:             450,
		SamplesPerPixel:    16,
		AdaptiveMinSamples: 0.25,
		AdaptiveThreshold:  0.01,
		Seed:               42,
	}
}

// MergeSamplingConfig merges override values into a base config. Zero-value
// fields in the override leave the base value in place.
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	merged := base
	if override.Width > 0 {
		merged.Width = override.Width
	}
	if override.Height > 0 {
		merged.Height = override.Height
	}
	if override.SamplesPerPixel > 0 {
		merged.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.AdaptiveMinSamples > 0 {
		merged.AdaptiveMinSamples = override.AdaptiveMinSamples
	}
	if override.AdaptiveThreshold > 0 {
		merged.AdaptiveThreshold = override.AdaptiveThreshold
	}
	if override.Seed != 0 {
		merged.Seed = override.Seed
	}
	return merged
}

// Validate checks the sampling configuration
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.AdaptiveMinSamples < 0 || c.AdaptiveMinSamples > 1 {
		return fmt.Errorf("adaptive minimum fraction must be in [0,1], got %f", c.AdaptiveMinSamples)
	}
	if c.AdaptiveThreshold < 0 {
		return fmt.Errorf("adaptive threshold must be non-negative, got %f", c.AdaptiveThreshold)
	}
	return nil
}

// Scene interface to avoid circular imports
type Scene interface {
	GetField() sdf.Field
	GetMaterials() []shading.Material
	GetLights() []shading.Light
	GetCameraConfig() CameraConfig
	GetSamplingConfig() SamplingConfig
	GetMarchConfig() marcher.Config
	GetShadingConfig() shading.Config
	GetPostConfig() PostConfig
}

// Renderer handles the rendering process. It carries no mutable state
// during a render, so a single instance is safe to share across workers.
type Renderer struct {
	scene    Scene
	width    int
	height   int
	camera   *Camera
	shader   *shading.Shader
	field    sdf.Field
	march    marcher.Config
	sampling SamplingConfig
	post     PostConfig
}

// NewRenderer creates a renderer over the scene's field, camera and configs
func NewRenderer(scene Scene) *Renderer {
	sampling := MergeSamplingConfig(DefaultSamplingConfig(), scene.GetSamplingConfig())
	cameraConfig := MergeCameraConfig(DefaultCameraConfig(), scene.GetCameraConfig())
	camera := NewCamera(cameraConfig, sampling.Width, sampling.Height)

	field := scene.GetField()
	march := scene.GetMarchConfig()
	shader := shading.NewShader(field, scene.GetMaterials(), scene.GetLights(), march, scene.GetShadingConfig())

	return &Renderer{
		scene:    scene,
		width:    sampling.Width,
		height:   sampling.Height,
		camera:   camera,
		shader:   shader,
		field:    field,
		march:    march,
		sampling: sampling,
		post:     scene.GetPostConfig(),
	}
}

// renderPixelSample traces one primary ray through pixel (x, y). Color
// depends only on (x, y, sampleIndex, seed), never on tiling or worker
// order, so any schedule reproduces the same frame.
func (rt *Renderer) renderPixelSample(x, y, sampleIndex int) core.Vec3 {
	ray := rt.camera.GetRay(x, y, rt.sampleJitter(x, y, sampleIndex))

	var colorVec core.Vec3
	if hit, ok := marcher.March(rt.field, ray, rt.march); ok {
		seed := core.PixelSeed(x, y, sampleIndex, rt.sampling.Seed^shadowSalt)
		colorVec = rt.shader.Shade(ray, hit, seed)
	} else {
		colorVec = rt.shader.Background(ray)
	}

	// Never accumulate NaN or Inf into the pixel stats
	if !colorVec.IsFinite() {
		return core.Vec3{}
	}
	return colorVec
}

// sampleJitter returns the sub-pixel offset for a sample. The first
// sample is centered so single-sample preview passes are stable.
func (rt *Renderer) sampleJitter(x, y, sampleIndex int) core.Vec2 {
	if sampleIndex == 0 {
		return core.NewVec2(0.5, 0.5)
	}
	sampler := core.NewHashSampler(core.PixelSeed(x, y, sampleIndex, rt.sampling.Seed))
	return sampler.Get2D()
}

// RenderBounds renders pixels within the specified bounds into the shared
// pixel stats array, continuing from each pixel's current sample count up
// to targetSamples
func (rt *Renderer) RenderBounds(bounds image.Rectangle, pixelStats [][]PixelStats, targetSamples int) RenderStats {
	stats := rt.initRenderStatsForBounds(bounds, targetSamples)

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			samplesUsed := rt.adaptiveSamplePixel(i, j, &pixelStats[j][i], targetSamples)
			rt.updateStats(&stats, samplesUsed)
		}
	}

	rt.finalizeStats(&stats)
	return stats
}

// adaptiveSamplePixel samples a pixel until it converges or reaches the
// sample budget
func (rt *Renderer) adaptiveSamplePixel(i, j int, ps *PixelStats, maxSamples int) int {
	initialSampleCount := ps.SampleCount

	for ps.SampleCount < maxSamples && !rt.shouldStopSampling(ps, maxSamples) {
		color := rt.renderPixelSample(i, j, ps.SampleCount)
		ps.AddSample(color)
	}

	return ps.SampleCount - initialSampleCount
}

// shouldStopSampling determines if adaptive sampling should stop based on
// perceptual relative error
func (rt *Renderer) shouldStopSampling(ps *PixelStats, maxSamples int) bool {
	// Calculate minimum samples as percentage of max samples, but ensure at least 1 sample
	minSamples := max(1, int(float64(maxSamples)*rt.sampling.AdaptiveMinSamples))

	// Don't stop before minimum samples
	if ps.SampleCount < minSamples {
		return false
	}

	return ps.RelativeError() < rt.sampling.AdaptiveThreshold
}

// initRenderStatsForBounds initializes the render statistics tracking for specific bounds
func (rt *Renderer) initRenderStatsForBounds(bounds image.Rectangle, maxSamples int) RenderStats {
	pixelCount := bounds.Dx() * bounds.Dy()
	return RenderStats{
		TotalPixels:    pixelCount,
		TotalSamples:   0,
		AverageSamples: 0,
		MaxSamples:     maxSamples,
		MinSamples:     maxSamples, // Start with max, will be reduced
		MaxSamplesUsed: 0,
	}
}

// updateStats updates the render statistics with data from a single pixel
func (rt *Renderer) updateStats(stats *RenderStats, samplesUsed int) {
	stats.TotalSamples += samplesUsed
	stats.MinSamples = min(stats.MinSamples, samplesUsed)
	stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, samplesUsed)
}

// finalizeStats calculates final statistics after all pixels are rendered
func (rt *Renderer) finalizeStats(stats *RenderStats) {
	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
}

// vec3ToColor converts a linear Vec3 color to RGBA, running the full
// post-processing chain for the pixel's screen position
func (rt *Renderer) vec3ToColor(colorVec core.Vec3, x, y int) color.RGBA {
	ndc := rt.camera.NDC(float64(x)+0.5, float64(y)+0.5)
	colorVec = rt.post.Process(colorVec, ndc)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}
