package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/mgpai22/subscroll/internal/ffmpeg"
)

// subtitle stream inside a video container
type SubtitleStream struct {
	// position among subtitle streams, as used by -map 0:s:N
	Track    int
	Index    int
	Codec    string
	Language string
	Title    string
}

// defines interface for video processing operations
type Processor interface {
	// lists the subtitle streams of a container
	ListSubtitleStreams(ctx context.Context, videoPath string) ([]SubtitleStream, error)

	// extracts one subtitle stream as an ASS script
	ExtractSubtitles(ctx context.Context, videoPath, outputPath string, track int) error
}

// default implementation using ffmpeg
type DefaultProcessor struct{}

func NewProcessor() *DefaultProcessor {
	return &DefaultProcessor{}
}

var _ Processor = (*DefaultProcessor)(nil)

// JSON output from ffprobe -show_streams
type ffprobeStreams struct {
	Streams []struct {
		Index     int               `json:"index"`
		CodecName string            `json:"codec_name"`
		CodecType string            `json:"codec_type"`
		Tags      map[string]string `json:"tags"`
	} `json:"streams"`
}

func (p *DefaultProcessor) ListSubtitleStreams(
	ctx context.Context,
	videoPath string,
) ([]SubtitleStream, error) {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("video file not found: %s", videoPath)
	}

	ffprobePath, err := ffmpegbin.FFprobePath()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-select_streams", "s",
		videoPath,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	return parseSubtitleStreams(out.Bytes())
}

func parseSubtitleStreams(data []byte) ([]SubtitleStream, error) {
	var probe ffprobeStreams
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	streams := make([]SubtitleStream, 0, len(probe.Streams))
	for _, s := range probe.Streams {
		if s.CodecType != "" && s.CodecType != "subtitle" {
			continue
		}
		streams = append(streams, SubtitleStream{
			Track:    len(streams),
			Index:    s.Index,
			Codec:    s.CodecName,
			Language: s.Tags["language"],
			Title:    s.Tags["title"],
		})
	}
	return streams, nil
}

// extracts subtitle track N of videoPath into outputPath as ASS,
// overwriting any existing file
func (p *DefaultProcessor) ExtractSubtitles(
	ctx context.Context,
	videoPath, outputPath string,
	track int,
) error {
	if track < 0 {
		return fmt.Errorf("subtitle track must not be negative, got %d", track)
	}
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", videoPath)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return err
	}

	err = ffmpeg.Input(videoPath).
		Output(outputPath, extractArgs(track)).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Run()

	if err != nil {
		return fmt.Errorf("ffmpeg subtitle extraction failed: %w", err)
	}

	return nil
}

func extractArgs(track int) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"map": fmt.Sprintf("0:s:%d", track),
		"c:s": "ass",
		"f":   "ass",
	}
}

// reports whether path has a video container extension
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	videoExts := map[string]bool{
		".mp4":  true,
		".mkv":  true,
		".avi":  true,
		".mov":  true,
		".webm": true,
		".m4v":  true,
		".ts":   true,
		".m2ts": true,
	}
	return videoExts[ext]
}
