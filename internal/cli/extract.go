package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mgpai22/subscroll/internal/video"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [video_file]",
	Short: "Extract an ASS subtitle track from a video file",
	Long: `Extract a subtitle track from a video container and save it as an ASS
script that can be fed to expand.

Examples:
  subscroll extract movie.mkv
  subscroll extract movie.mkv --list
  subscroll extract movie.mkv --track 1 -o movie.en.ass`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().
		IntP("track", "t", 0, "Subtitle track to extract (0 = first subtitle stream)")
	extractCmd.Flags().
		Bool("list", false, "List the subtitle streams instead of extracting")
}

func runExtract(cmd *cobra.Command, args []string) error {
	videoPath := args[0]
	ctx := context.Background()

	track, _ := cmd.Flags().GetInt("track")
	list, _ := cmd.Flags().GetBool("list")
	outputPath, _ := cmd.Flags().GetString("output")

	if !video.IsVideoFile(videoPath) {
		return fmt.Errorf(
			"unsupported file type: %s (expected a video file)",
			filepath.Ext(videoPath),
		)
	}

	processor := video.NewProcessor()

	if list {
		streams, err := processor.ListSubtitleStreams(ctx, videoPath)
		if err != nil {
			return fmt.Errorf("failed to list subtitle streams: %w", err)
		}
		if len(streams) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No subtitle streams found")
			return nil
		}
		for _, s := range streams {
			fmt.Fprintf(cmd.OutOrStdout(), "  track %d: stream #%d %s lang=%s %s\n",
				s.Track, s.Index, s.Codec, s.Language, s.Title)
		}
		return nil
	}

	if !cmd.Flags().Changed("output") {
		outputPath = strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".ass"
	}

	logger.Infow("Extracting subtitles",
		"video", videoPath,
		"output", outputPath,
		"track", track,
	)

	if err := processor.ExtractSubtitles(ctx, videoPath, outputPath, track); err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Subtitles extracted successfully: %s\n", absOutput)

	return nil
}
