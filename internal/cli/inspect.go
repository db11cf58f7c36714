package cli

import (
	"fmt"
	"io"

	"github.com/mgpai22/subscroll/internal/config"
	"github.com/mgpai22/subscroll/internal/expand"
	"github.com/mgpai22/subscroll/internal/subtitle"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [subtitle_file]",
	Short: "Show how a script would be expanded without writing anything",
	Long: `Load and split a subtitle script and report the header size, the number
of Dialogue events, the stride and the lines an expansion would produce.

Dialogue lines without a ",Default" style field are listed, since they
fail the expansion unless --on-missing-marker style-field is used.

Examples:
  subscroll inspect
  subscroll inspect episode.ass -e windows-1252`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

// what inspect found in a script
type report struct {
	HeaderLines    int
	Events         int
	Stride         int
	DerivedLines   int
	MissingMarkers []int
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := configFromFlags(cmd, args)
	if err != nil {
		return err
	}

	rep, err := inspectScript(cfg)
	if err != nil {
		return err
	}

	logger.Debugw("Inspected script",
		"input", cfg.InputPath,
		"events", rep.Events,
	)

	printReport(cmd.OutOrStdout(), cfg.InputPath, rep)
	return nil
}

func inspectScript(cfg config.Config) (*report, error) {
	enc, err := cfg.TextEncoding()
	if err != nil {
		return nil, err
	}

	script, err := subtitle.LoadScript(cfg.InputPath, enc)
	if err != nil {
		return nil, err
	}

	rep := &report{
		HeaderLines:  len(script.Header),
		Events:       len(script.Events),
		Stride:       expand.Stride(script.Events),
		DerivedLines: 3 * len(script.Events),
	}
	for i, event := range script.Events {
		if _, ok := subtitle.SplicePrefix(event); !ok {
			rep.MissingMarkers = append(rep.MissingMarkers, i)
		}
	}
	return rep, nil
}

func printReport(w io.Writer, path string, rep *report) {
	fmt.Fprintf(w, "Script: %s\n", path)
	fmt.Fprintf(w, "  Header lines: %d\n", rep.HeaderLines)
	fmt.Fprintf(w, "  Dialogue events: %d\n", rep.Events)
	fmt.Fprintf(w, "  Stride: %d\n", rep.Stride)
	fmt.Fprintf(w, "  Derived lines: %d\n", rep.DerivedLines)
	if len(rep.MissingMarkers) > 0 {
		fmt.Fprintf(w, "  Events without splice marker: %v\n", rep.MissingMarkers)
	}
}
