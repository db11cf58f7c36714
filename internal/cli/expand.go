package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgpai22/subscroll/internal/config"
	"github.com/mgpai22/subscroll/internal/expand"
	"github.com/mgpai22/subscroll/internal/video"
	"github.com/spf13/cobra"
)

var expandCmd = &cobra.Command{
	Use:   "expand [subtitle_or_video_file]",
	Short: "Expand every dialogue event into a previous/current/next triple",
	Long: `Expand the Dialogue events of an ASS/SSA script into scrolling triples.

The header (everything that is not a Dialogue line in the [Events] section)
is copied verbatim, followed by three lines per event. Context lines reuse
the timing of the event and switch to the P and F styles.

A video file may be given instead of a script: its subtitle track (see
--track) is extracted with ffmpeg first.

Examples:
  subscroll expand
  subscroll expand episode.ass
  subscroll expand episode.ass -o episode.scroll.ass --atomic
  subscroll expand movie.mkv --track 1
  subscroll expand legacy.ssa -e windows-1252 --on-missing-marker style-field`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExpand,
}

func init() {
	rootCmd.AddCommand(expandCmd)

	expandCmd.Flags().
		IntP("track", "t", 0, "Subtitle track to extract when the input is a video file")
}

func runExpand(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := configFromFlags(cmd, args)
	if err != nil {
		return err
	}

	if video.IsVideoFile(cfg.InputPath) {
		// root command has no --track flag, GetInt yields 0 there
		track, _ := cmd.Flags().GetInt("track")

		tempDir, err := os.MkdirTemp("", "subscroll-*")
		if err != nil {
			return fmt.Errorf("failed to create temp directory: %w", err)
		}
		defer os.RemoveAll(tempDir)

		extracted := filepath.Join(tempDir, "track.ass")
		logger.Infow("Extracting subtitle track",
			"video", cfg.InputPath,
			"track", track,
		)
		processor := video.NewProcessor()
		if err := processor.ExtractSubtitles(ctx, cfg.InputPath, extracted, track); err != nil {
			return fmt.Errorf("failed to extract subtitles: %w", err)
		}
		cfg.InputPath = extracted
	}

	logger.Infow("Starting expansion",
		"input", cfg.InputPath,
		"output", cfg.OutputPath,
		"encoding", cfg.Encoding,
		"on_missing_marker", cfg.MissingMarker,
		"atomic", cfg.Atomic,
	)

	result, err := expand.Convert(ctx, cfg, logger)
	if err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(cfg.OutputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Subtitles expanded successfully: %s\n", absOutput)
	fmt.Fprintf(cmd.OutOrStdout(), "  Events: %d\n", result.Events)
	fmt.Fprintf(cmd.OutOrStdout(), "  Stride: %d\n", result.Stride)
	fmt.Fprintf(cmd.OutOrStdout(), "  Lines written: %d\n", result.HeaderLines+result.DerivedLines)

	return nil
}

// builds the conversion config from the persistent flags; a positional
// input overrides --input and, unless --output is set, names the output
// after it
func configFromFlags(cmd *cobra.Command, args []string) (config.Config, error) {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	encodingName, _ := cmd.Flags().GetString("encoding")
	markerStr, _ := cmd.Flags().GetString("on-missing-marker")
	atomic, _ := cmd.Flags().GetBool("atomic")

	if len(args) > 0 {
		inputPath = args[0]
		if !cmd.Flags().Changed("output") {
			outputPath = defaultOutputFor(inputPath)
		}
	}

	marker, err := config.ParseMissingMarker(markerStr)
	if err != nil {
		return config.Config{}, err
	}

	cfg := config.Config{
		InputPath:     inputPath,
		OutputPath:    outputPath,
		Encoding:      encodingName,
		MissingMarker: marker,
		Atomic:        atomic,
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func defaultOutputFor(inputPath string) string {
	baseName := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return baseName + ".scroll.ass"
}
