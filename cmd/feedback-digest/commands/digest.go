package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"feedbackdigest/internal/app"
	"feedbackdigest/internal/domain"
	"feedbackdigest/internal/services/digest"
)

// digest: fetch gift wraps, unwrap them, and emit the report.
func digestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "digest",
		Short: "Fetch, decrypt, and summarize recent feedback",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := app.NewWire(cfg, log)
			if err != nil {
				return err
			}

			since := time.Now().AddDate(0, 0, -cfg.Days).Unix()
			filter := domain.Filter{
				Kinds: []int{domain.KindGiftWrap},
				PTags: []string{w.Recipient.Hex()},
				Since: since,
			}
			log.Info().
				Str("recipient", w.Recipient.Hex()).
				Int("relays", len(cfg.Relays)).
				Int("days", cfg.Days).
				Msg("fetching gift wraps")

			events, err := w.Relays.Fetch(cmd.Context(), filter)
			if err != nil {
				return err
			}
			records := w.Unwrap.UnwrapAll(events)

			if cfg.Output == app.OutputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			body, err := w.Digest.Generate(cmd.Context(), records)
			if err != nil {
				return err
			}
			report := digest.Render(body, len(records), cfg.Days, time.Now())

			if cfg.Output == app.OutputFile {
				path, err := w.Reports.SaveDigest(report, time.Now())
				if err != nil {
					return err
				}
				log.Info().Str("path", path).Msg("report saved")
				return nil
			}
			fmt.Println(report)
			return nil
		},
	}
}
