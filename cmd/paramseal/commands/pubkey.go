package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"paramseal/internal/crypto"
)

func pubkeyCmd(st *rootState) *cobra.Command {
	var asPEM bool

	cmd := &cobra.Command{
		Use:   "pubkey",
		Short: "Print the stored public key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := st.wire.Keys.PublicKey()
			if err != nil {
				return err
			}
			if asPEM {
				b, err := crypto.EncodePublicKeyPEM(pub.Key)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			b64, err := crypto.MarshalPublicKey(pub.Key)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), b64)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asPEM, "pem", false, "print a PEM PUBLIC KEY block instead of base64")
	return cmd
}
