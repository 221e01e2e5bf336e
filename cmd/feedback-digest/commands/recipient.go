package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"feedbackdigest/internal/app"
	"feedbackdigest/internal/crypto"
)

// recipient: show which identity the relay filter targets, so a mismatch
// between SUPPORT_NSEC and SUPPORT_NPUB can be spotted before a run.
func recipientCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recipient",
		Short: "Print the recipient public key used for the relay filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := app.NewWire(cfg, log)
			if err != nil {
				return err
			}
			npub, err := crypto.EncodePublicKey(w.Recipient)
			if err != nil {
				return err
			}
			fmt.Printf("hex:  %s\nnpub: %s\n", w.Recipient.Hex(), npub)
			return nil
		},
	}
}
