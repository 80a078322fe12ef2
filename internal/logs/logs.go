// Package logs configures the process logger.
//
// Logs go to stderr so stdout stays clean for envelopes and key material
// that commands print for piping. Nothing in paramseal logs cleartext,
// secrets or private keys at any level.
package logs

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// Log is the process-wide logger. Packages take entries derived from it.
var Log = logrus.New()

// Options holds the logging flags.
type Options struct {
	Level  string
	Format string
}

// AddFlags adds log related flags to the supplied flag set.
func AddFlags(fs *pflag.FlagSet, o *Options) {
	fs.StringVar(&o.Level, "log-level", "warning", `Log level: "debug", "info", "warning" or "error".`)
	fs.StringVar(&o.Format, "log-format", "text", `Sets the log format. Permitted formats: "json", "text".`)
}

// Initialize applies o to Log, writing to out (stderr when nil).
func Initialize(o Options, out io.Writer) error {
	if out == nil {
		out = os.Stderr
	}
	level, err := logrus.ParseLevel(o.Level)
	if err != nil {
		return errors.Wrap(err, "invalid --log-level")
	}

	var formatter logrus.Formatter
	switch strings.ToLower(o.Format) {
	case "", "text":
		formatter = &logrus.TextFormatter{FullTimestamp: true}
	case "json":
		formatter = &logrus.JSONFormatter{}
	default:
		return errors.Errorf("invalid --log-format %q: permitted formats are \"json\" and \"text\"", o.Format)
	}

	Log.SetOutput(out)
	Log.SetLevel(level)
	Log.SetFormatter(formatter)
	return nil
}

// For returns an entry tagged with the component name.
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}
