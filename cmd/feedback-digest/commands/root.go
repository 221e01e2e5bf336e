package commands

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"feedbackdigest/internal/app"
)

var (
	cfg app.Config
	log zerolog.Logger

	days    int
	output  string
	outDir  string
	relays  []string
	timeout time.Duration
	verbose bool
)

func Execute() error {
	root := &cobra.Command{
		Use:   "feedback-digest",
		Short: "Fetch and summarize encrypted feedback from the relay network",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
				Level(level).
				With().Timestamp().Logger()

			cfg = app.FromEnv()
			cfg.Days = days
			cfg.Output = output
			cfg.OutputDir = outDir
			cfg.RelayTimeout = timeout
			if len(relays) > 0 {
				cfg.Relays = relays
			}
			return nil
		},
	}

	root.PersistentFlags().IntVar(&days, "days", app.DefaultDays, "days to look back")
	root.PersistentFlags().StringVar(&output, "output", app.OutputTerminal, "output mode: terminal, file, or json")
	root.PersistentFlags().StringVar(&outDir, "out-dir", "", "directory for file output (default current directory)")
	root.PersistentFlags().StringSliceVar(&relays, "relay", nil, "relay URL (repeatable; overrides NOSTR_RELAYS)")
	root.PersistentFlags().DurationVar(&timeout, "timeout", app.DefaultRelayTimeout, "per-relay query timeout")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(digestCmd(), recipientCmd())
	return root.Execute()
}
