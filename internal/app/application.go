package app

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"textvid/internal/config"
	"textvid/internal/layout"
	"textvid/internal/passage"
	"textvid/internal/speech"
	"textvid/internal/subtitle"
	"textvid/internal/timeline"
)

// AudioMixer is the audio-mixing collaborator. It concatenates the units'
// synthesized audio with pauseSeconds of silence between consecutive units,
// writes the mixed track to outputPath, and returns each unit's measured
// duration in seconds. The measured durations are authoritative for
// timeline placement.
type AudioMixer interface {
	Mix(ctx context.Context, audioPaths []string, pauseSeconds float64, outputPath string) ([]float64, error)
}

// RenderSpan pairs a frame span with the positioned subtitle lines the
// renderer draws while the span is active
type RenderSpan struct {
	Span  timeline.FrameSpan
	Lines []layout.LineBox
}

// RenderPlan is everything the renderer needs to produce the video: the
// ordered spans with pre-laid-out lines, the total frame count, and the
// frame geometry. The renderer walks frames 0..TotalFrames once.
type RenderPlan struct {
	Spans       []RenderSpan
	TotalFrames int
	FPS         float64
	FrameWidth  int
	FrameHeight int
	AudioPath   string
}

// Renderer is the frame-encoding collaborator that composites subtitle
// lines onto background frames and writes the output file
type Renderer interface {
	Render(ctx context.Context, plan *RenderPlan) error
}

// Application orchestrates the narration pipeline: passage parsing, speech
// synthesis, cue segmentation, audio mixing, frame-span mapping, line
// layout, and the hand-off to the renderer.
type Application struct {
	cfg         *config.Configuration
	logger      *zap.Logger
	synthesizer speech.Synthesizer
	mixer       AudioMixer
	measurer    layout.Measurer
	renderer    Renderer
	segmenter   *subtitle.Segmenter
}

// NewApplication creates an Application with the given collaborators
func NewApplication(
	cfg *config.Configuration,
	logger *zap.Logger,
	synthesizer speech.Synthesizer,
	mixer AudioMixer,
	measurer layout.Measurer,
	renderer Renderer,
) *Application {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Application{
		cfg:         cfg,
		logger:      logger,
		synthesizer: synthesizer,
		mixer:       mixer,
		measurer:    measurer,
		renderer:    renderer,
		segmenter:   subtitle.NewSegmenterWithLogger(logger),
	}
}

// Run narrates the raw passage text into the output video file
func (a *Application) Run(ctx context.Context, rawText string) error {
	p := passage.Parse(rawText)
	a.logger.Info("parsed passage",
		zap.String("title", p.Title),
		zap.String("author", p.Author),
		zap.Int("contents", len(p.Contents)))

	units, audioPaths, err := a.synthesizeUnits(ctx, p.Contents)
	if err != nil {
		return err
	}

	if err := a.segmenter.SegmentAll(units); err != nil {
		return fmt.Errorf("failed to segment units: %w", err)
	}

	mixedPath := filepath.Join(a.cfg.GetTmpDir(), "audio.mp3")
	durations, err := a.mixer.Mix(ctx, audioPaths, a.cfg.GetPauseSeconds(), mixedPath)
	if err != nil {
		return fmt.Errorf("failed to mix audio: %w", err)
	}
	if len(durations) != len(units) {
		return fmt.Errorf("mixer returned %d durations for %d units", len(durations), len(units))
	}
	for i, d := range durations {
		units[i].AudioDurationSeconds = d
	}

	plan, err := a.BuildPlan(units)
	if err != nil {
		return err
	}
	plan.AudioPath = mixedPath

	a.logger.Info("rendering video",
		zap.Int("spans", len(plan.Spans)),
		zap.Int("total_frames", plan.TotalFrames))

	if err := a.renderer.Render(ctx, plan); err != nil {
		return fmt.Errorf("failed to render video: %w", err)
	}

	a.logger.Info("narration complete")
	return nil
}

// BuildPlan maps segmented, measured units onto the frame timeline and
// lays out each cue's subtitle lines
func (a *Application) BuildPlan(units []*subtitle.Unit) (*RenderPlan, error) {
	mapper := timeline.NewMapperWithLogger(a.cfg.GetFPS(), a.cfg.GetPauseSeconds(), a.logger)
	spans, totalFrames, err := mapper.MapSpans(units)
	if err != nil {
		return nil, fmt.Errorf("failed to map frame spans: %w", err)
	}

	planner := layout.NewPlanner(
		a.cfg.GetMaxCharsPerLine(),
		a.cfg.GetFrameWidth(),
		a.cfg.GetFrameHeight(),
		a.cfg.GetBottomMargin(),
		a.measurer,
	)

	renderSpans := make([]RenderSpan, len(spans))
	for i, span := range spans {
		renderSpans[i] = RenderSpan{
			Span:  span,
			Lines: planner.PlanLines(span.Cue.Text),
		}
	}

	return &RenderPlan{
		Spans:       renderSpans,
		TotalFrames: totalFrames,
		FPS:         a.cfg.GetFPS(),
		FrameWidth:  a.cfg.GetFrameWidth(),
		FrameHeight: a.cfg.GetFrameHeight(),
	}, nil
}

// synthesizeUnits runs each content line through the speech collaborator,
// collecting the per-unit word timestamps and audio paths
func (a *Application) synthesizeUnits(ctx context.Context, contents []string) ([]*subtitle.Unit, []string, error) {
	units := make([]*subtitle.Unit, 0, len(contents))
	audioPaths := make([]string, 0, len(contents))

	for i, content := range contents {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		a.logger.Info("synthesizing unit",
			zap.Int("index", i),
			zap.Int("total", len(contents)))

		result, err := a.synthesizer.Synthesize(ctx, content)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to synthesize unit %d: %w", i, err)
		}

		unit := subtitle.NewUnit(content)
		unit.Timestamps = result.Timestamps
		units = append(units, unit)
		audioPaths = append(audioPaths, result.AudioPath)
	}

	return units, audioPaths, nil
}
