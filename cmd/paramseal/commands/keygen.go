package commands

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"paramseal/internal/crypto"
)

func keygenCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a recipient key pair and store it securely",
		Long: `Generate a 2048-bit RSA key pair for development and testing.

The private key is stored in the keystore sealed under --passphrase. The
public key is printed to stdout as base64 SubjectPublicKeyInfo, the form the
backend serves and 'seal --public-key' accepts. An existing pair is replaced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if st.passphrase == "" {
				return errors.New("passphrase required (-p or PARAMSEAL_PASSPHRASE)")
			}
			pub, fp, err := st.wire.Keys.GenerateKeyPair(st.passphrase)
			if err != nil {
				return err
			}
			b64, err := crypto.MarshalPublicKey(pub.Key)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Key pair created.\nKey ID: %s\nFingerprint: %s\n", pub.ID, fp)
			fmt.Fprintln(cmd.OutOrStdout(), b64)
			return nil
		},
	}
}
