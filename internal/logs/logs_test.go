package logs_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paramseal/internal/logs"
)

func TestAddFlags_Defaults(t *testing.T) {
	var o logs.Options
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	logs.AddFlags(fs, &o)
	require.NoError(t, fs.Parse([]string{"--log-level", "debug"}))

	assert.Equal(t, "debug", o.Level)
	assert.Equal(t, "text", o.Format)
}

func TestInitialize_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, logs.Initialize(logs.Options{Level: "info", Format: "json"}, &buf))

	logs.For("keyfetch").WithField("key_bits", 2048).Info("fetched public key")
	logs.For("keyfetch").Debug("dropped")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "fetched public key", line["msg"])
	assert.Equal(t, "keyfetch", line["component"])
	assert.EqualValues(t, 2048, line["key_bits"])
	assert.Equal(t, logrus.InfoLevel, logs.Log.GetLevel())
}

func TestInitialize_Invalid(t *testing.T) {
	err := logs.Initialize(logs.Options{Level: "loud", Format: "text"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--log-level")

	err = logs.Initialize(logs.Options{Level: "info", Format: "xml"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--log-format")
}
