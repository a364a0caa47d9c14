package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"textvid/internal/speech"
	"textvid/internal/subtitle"
)

func newCuesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cues <text-file>",
		Short: "Segment one unit's word-boundary stream into SRT cues",
		Long: "Reads a unit's source text and the word-boundary events its synthesis " +
			"produced (NDJSON, one event per line), groups the words into subtitle " +
			"cues, and prints them in SubRip format.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCues(cmd, args[0])
		},
	}

	cmd.Flags().String("boundaries", "-", `Boundary event stream file, "-" for stdin`)
	return cmd
}

func runCues(cmd *cobra.Command, textPath string) error {
	raw, err := os.ReadFile(textPath)
	if err != nil {
		return fmt.Errorf("failed to read text file: %w", err)
	}
	sourceText := strings.TrimSpace(string(raw))

	boundariesPath, err := cmd.Flags().GetString("boundaries")
	if err != nil {
		return err
	}

	var stream io.Reader = cmd.InOrStdin()
	if boundariesPath != "-" {
		f, err := os.Open(boundariesPath)
		if err != nil {
			return fmt.Errorf("failed to open boundary stream: %w", err)
		}
		defer f.Close()
		stream = f
	}

	timestamps, err := speech.ReadTimestamps(stream)
	if err != nil {
		return err
	}

	cues, err := subtitle.NewSegmenter().Segment(sourceText, timestamps)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), subtitle.ComposeSRT(cues))
	return nil
}
