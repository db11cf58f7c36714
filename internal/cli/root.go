package cli

import (
	"github.com/mgpai22/subscroll/internal/config"
	"github.com/mgpai22/subscroll/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "subscroll",
	Short: "Expand ASS subtitles into scrolling context triples",
	Long: `Subscroll rewrites an ASS/SSA subtitle script so that every Dialogue
event is surrounded by a preview of the previous and the next line.

Each event becomes three events: the text that came before it (style P),
the original line, and the text that comes after it (style F). The
distance to the context lines is the word count of the first event.

Run without arguments to convert ./original_subtitles.ass into
./processed_subtitles.ass.`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
	RunE:         runExpand,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	addConversionFlags(rootCmd.PersistentFlags())
}

func addConversionFlags(flags *pflag.FlagSet) {
	flags.StringP("input", "i", config.DefaultInputPath, "Input subtitle file path")
	flags.StringP("output", "o", config.DefaultOutputPath, "Output file path")
	flags.StringP("encoding", "e", config.DefaultEncoding,
		"Text encoding for input and output (e.g., utf-8, windows-1252, shift_jis)")
	flags.String("on-missing-marker", string(config.MissingMarkerError),
		"What to do with Dialogue lines without a Default style (error, style-field)")
	flags.Bool("atomic", false, "Write the output through a temp file and rename")
}
