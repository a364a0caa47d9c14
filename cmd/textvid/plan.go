package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"textvid/internal/app"
	"textvid/internal/logger"
	"textvid/internal/speech"
)

func newPlanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <manifest.json>",
		Short: "Compute frame spans and subtitle layout from a narration manifest",
		Long: "Reads a narration manifest (the passage, and per unit the captured " +
			"word-boundary events, audio path and measured audio duration), maps " +
			"every cue onto the video frame timeline, and writes the resulting " +
			"plan as JSON lines: one object per frame span, then a summary line.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, args[0])
		},
	}

	cmd.Flags().String("out", "", "Write the plan to a file instead of stdout")
	return cmd
}

// narrationManifest captures one passage's synthesis results so timing can
// be recomputed without calling the speech engine again
type narrationManifest struct {
	Title  string         `json:"title"`
	Author string         `json:"author"`
	Units  []manifestUnit `json:"units"`
}

type manifestUnit struct {
	Text                 string                 `json:"text"`
	AudioPath            string                 `json:"audio_path"`
	AudioDurationSeconds float64                `json:"audio_duration_seconds"`
	Boundaries           []speech.BoundaryEvent `json:"boundaries"`
}

func runPlan(cmd *cobra.Command, manifestPath string) error {
	cfg, err := loadConfiguration(cmd)
	if err != nil {
		return err
	}

	zapLogger := logger.NewLogger()
	defer zapLogger.Sync()

	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}
	var manifest narrationManifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return fmt.Errorf("failed to parse manifest: %w", err)
	}

	var out io.Writer = cmd.OutOrStdout()
	if outPath, _ := cmd.Flags().GetString("out"); outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.NewApplication(
		cfg,
		zapLogger,
		&manifestSynthesizer{units: manifest.Units},
		&manifestMixer{units: manifest.Units},
		charCellMeasurer{size: cfg.GetFontSize()},
		&planWriter{w: out},
	)

	return application.Run(ctx, rebuildPassageText(manifest))
}

// rebuildPassageText reassembles the raw passage form the parser expects:
// title line, author line, one line per unit
func rebuildPassageText(manifest narrationManifest) string {
	lines := make([]string, 0, len(manifest.Units)+2)
	lines = append(lines, manifest.Title, manifest.Author)
	for _, unit := range manifest.Units {
		lines = append(lines, unit.Text)
	}
	return strings.Join(lines, "\n")
}

// manifestSynthesizer replays captured boundary events instead of calling
// the speech engine. Units are consumed in manifest order.
type manifestSynthesizer struct {
	units []manifestUnit
	next  int
}

func (m *manifestSynthesizer) Synthesize(_ context.Context, text string) (*speech.Result, error) {
	if m.next >= len(m.units) {
		return nil, fmt.Errorf("manifest has no unit for %q", text)
	}
	unit := m.units[m.next]
	if unit.Text != text {
		return nil, fmt.Errorf("manifest unit %d is %q, expected %q", m.next, unit.Text, text)
	}
	m.next++

	return &speech.Result{
		AudioPath:  unit.AudioPath,
		Timestamps: speech.CollectTimestamps(unit.Boundaries),
	}, nil
}

// manifestMixer reports the audio durations measured when the manifest was
// captured; the mixed track already exists, so nothing is written
type manifestMixer struct {
	units []manifestUnit
}

func (m *manifestMixer) Mix(_ context.Context, audioPaths []string, _ float64, _ string) ([]float64, error) {
	if len(audioPaths) != len(m.units) {
		return nil, fmt.Errorf("manifest has %d units, got %d audio paths", len(m.units), len(audioPaths))
	}
	durations := make([]float64, len(m.units))
	for i, unit := range m.units {
		durations[i] = unit.AudioDurationSeconds
	}
	return durations, nil
}

// charCellMeasurer estimates text size from the font size alone, treating
// every character as a full em cell. Good enough for planning CJK subtitle
// positions without a font rasterizer attached.
type charCellMeasurer struct {
	size int
}

func (m charCellMeasurer) Measure(text string) (int, int) {
	return utf8.RuneCountInString(text) * m.size, m.size
}

// planWriter emits the render plan as JSON lines
type planWriter struct {
	w io.Writer
}

type planSpanRecord struct {
	Text       string        `json:"text"`
	StartFrame int           `json:"start_frame"`
	EndFrame   int           `json:"end_frame"`
	Lines      []planLineBox `json:"lines"`
}

type planLineBox struct {
	Text   string `json:"text"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type planSummaryRecord struct {
	TotalFrames int     `json:"total_frames"`
	FPS         float64 `json:"fps"`
	FrameWidth  int     `json:"frame_width"`
	FrameHeight int     `json:"frame_height"`
	AudioPath   string  `json:"audio_path,omitempty"`
}

func (p *planWriter) Render(_ context.Context, plan *app.RenderPlan) error {
	encoder := json.NewEncoder(p.w)

	for _, span := range plan.Spans {
		record := planSpanRecord{
			Text:       span.Span.Cue.Text,
			StartFrame: span.Span.StartFrame,
			EndFrame:   span.Span.EndFrame,
			Lines:      make([]planLineBox, len(span.Lines)),
		}
		for i, line := range span.Lines {
			record.Lines[i] = planLineBox(line)
		}
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("failed to write span record: %w", err)
		}
	}

	summary := planSummaryRecord{
		TotalFrames: plan.TotalFrames,
		FPS:         plan.FPS,
		FrameWidth:  plan.FrameWidth,
		FrameHeight: plan.FrameHeight,
		AudioPath:   plan.AudioPath,
	}
	if err := encoder.Encode(summary); err != nil {
		return fmt.Errorf("failed to write summary record: %w", err)
	}
	return nil
}
