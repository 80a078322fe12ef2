package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"paramseal/internal/crypto"
	"paramseal/internal/domain"
	"paramseal/internal/services/seal"
)

func sealCmd(st *rootState) *cobra.Command {
	var (
		publicKey     string
		publicKeyFile string
		asParam       bool
	)

	cmd := &cobra.Command{
		Use:   "seal [cleartext]",
		Short: "Seal a secret parameter value",
		Long: `Seal a secret parameter value so only the backend can read it.

The cleartext is taken from the argument or, when absent, from stdin (one
trailing newline is dropped). The recipient key is the first of:
--public-key, --public-key-file, the key served at --key-url, and the local
keystore.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cleartext, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			src, err := st.keySource(publicKey, publicKeyFile)
			if err != nil {
				return err
			}
			svc := st.wire.SealService(src)

			if !asParam {
				out, err := svc.Seal(cmd.Context(), cleartext)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}

			param, err := svc.SealParam(cmd.Context(), cleartext)
			if err != nil {
				return err
			}
			b, err := json.Marshal(param)
			if err != nil {
				return errors.Wrap(err, "encode parameter")
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}

	cmd.Flags().StringVar(&publicKey, "public-key", "", "recipient public key, base64 SubjectPublicKeyInfo")
	cmd.Flags().StringVar(&publicKeyFile, "public-key-file", "", "recipient public key, PEM file")
	cmd.Flags().BoolVar(&asParam, "param", false, `print {"type":"secret","encrypted":...} instead of the bare envelope`)
	return cmd
}

// keySource picks where the recipient key comes from.
func (st *rootState) keySource(publicKey, publicKeyFile string) (domain.KeyFetcher, error) {
	switch {
	case publicKey != "":
		pub, err := crypto.ParsePublicKey(publicKey)
		if err != nil {
			return nil, err
		}
		return seal.NewStaticKey(pub)
	case publicKeyFile != "":
		pub, err := crypto.LoadPublicKeyFromPEMFile(publicKeyFile)
		if err != nil {
			return nil, err
		}
		return seal.NewStaticKey(pub)
	case st.wire.Fetcher != nil:
		return st.wire.Fetcher, nil
	default:
		return seal.LocalKey{Keys: st.wire.Keys}, nil
	}
}

// readInput returns args[0], or stdin without its trailing newline.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", errors.Wrap(err, "read stdin")
	}
	s := strings.TrimSuffix(string(b), "\n")
	return strings.TrimSuffix(s, "\r"), nil
}
