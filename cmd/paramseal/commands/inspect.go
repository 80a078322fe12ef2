package commands

import (
	"encoding/hex"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"paramseal/internal/envelope"
	"paramseal/internal/token"
)

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [envelope]",
		Short: "Describe an envelope without opening it",
		Long: `Print the structure of an envelope: wrapped key size and the token's
version, timestamp, IV and ciphertext length. Nothing is decrypted and the
header is not authenticated.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			env, err := envelope.Parse(strings.TrimSpace(in))
			if err != nil {
				return err
			}
			wrapped, err := env.WrappedKey()
			if err != nil {
				return err
			}
			h, err := token.Inspect(env.Payload)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "wrapped key:\t%d bytes (%d-bit key)\n", len(wrapped), len(wrapped)*8)
			fmt.Fprintf(tw, "token version:\t0x%02x\n", h.Version)
			fmt.Fprintf(tw, "issued at:\t%s\n", h.IssuedAt.Format(time.RFC3339))
			fmt.Fprintf(tw, "iv:\t%s\n", hex.EncodeToString(h.IV[:]))
			fmt.Fprintf(tw, "ciphertext:\t%d bytes\n", h.CiphertextLen)
			fmt.Fprintf(tw, "token:\t%d bytes\n", h.Size)
			return tw.Flush()
		},
	}
}
