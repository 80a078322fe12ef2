package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func fingerprintCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the stored public key fingerprint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fp, err := st.wire.Keys.Fingerprint()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fingerprint: %s\n", fp)
			return nil
		},
	}
}
