package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"paramseal/internal/app"
	"paramseal/internal/logs"
)

const envPrefix = "PARAMSEAL_"

// rootState is shared by the root command and its subcommands.
type rootState struct {
	home       string
	configPath string
	passphrase string
	keyURL     string
	logOpts    logs.Options

	wire *app.Wire
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	st := &rootState{}

	root := &cobra.Command{
		Use:          "paramseal",
		Short:        "Seal secret job parameters for the scheduler backend",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setFlagsFromEnv(envPrefix, cmd.Flags())
			return st.init(cmd.Flags())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&st.home, "home", "", "config dir (default ~/.paramseal)")
	pf.StringVar(&st.configPath, "config", "", "config file (default <home>/config.yaml)")
	pf.StringVarP(&st.passphrase, "passphrase", "p", "", "passphrase protecting the local private key")
	pf.StringVar(&st.keyURL, "key-url", "", "backend base URL serving /api/public_key")
	logs.AddFlags(pf, &st.logOpts)

	root.AddCommand(
		keygenCmd(st),
		pubkeyCmd(st),
		fingerprintCmd(st),
		sealCmd(st),
		inspectCmd(),
	)
	return root
}

// init resolves configuration (defaults, then config file, then flags and
// environment) and builds the wire.
func (st *rootState) init(fs *pflag.FlagSet) error {
	if st.home == "" {
		home, err := app.DefaultHome()
		if err != nil {
			return err
		}
		st.home = home
	}
	if st.configPath == "" {
		st.configPath = filepath.Join(st.home, app.ConfigFileName)
	}

	cfg := app.DefaultConfig(st.home)
	fc, _, err := app.LoadFile(st.configPath)
	if err != nil {
		return err
	}
	cfg = cfg.Apply(fc)
	if fs.Changed("key-url") {
		cfg.KeyURL = st.keyURL
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = st.logOpts.Level
	}

	if err := logs.Initialize(logs.Options{Level: cfg.LogLevel, Format: st.logOpts.Format}, nil); err != nil {
		return err
	}
	w, err := app.NewWire(cfg)
	if err != nil {
		return errors.Wrap(err, "initialise")
	}
	st.wire = w
	return nil
}

// setFlagsFromEnv fills every flag not given on the command line from
// <prefix>_<FLAG_NAME>, if that variable is set.
func setFlagsFromEnv(prefix string, fs *pflag.FlagSet) {
	set := map[string]bool{}
	fs.Visit(func(f *pflag.Flag) {
		set[f.Name] = true
	})
	fs.VisitAll(func(f *pflag.Flag) {
		// ignore flags set from the commandline
		if set[f.Name] {
			return
		}
		// remove trailing _ to reduce common errors with the prefix, i.e. people setting it to MY_PROG_
		cleanPrefix := strings.TrimSuffix(prefix, "_")
		name := fmt.Sprintf("%s_%s", cleanPrefix, strings.Replace(strings.ToUpper(f.Name), "-", "_", -1))
		if e, ok := os.LookupEnv(name); ok {
			// Set through the flag set so Changed reports it.
			_ = fs.Set(f.Name, e)
		}
	})
}
