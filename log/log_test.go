package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOutput_Prod(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewWithOutput("prod", "", buf)

	l.Debug("hidden")
	l.WithField("file_id", 42).Printf("downloaded %s", "report.pdf")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), "prod logs should be a single json line")
	assert.Equal(t, "downloaded report.pdf", line["msg"])
	assert.Equal(t, "prod", line["env"])
	assert.Equal(t, float64(42), line["file_id"])
}

func TestNewWithOutput_Level(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewWithOutput("dev", "error", buf)

	l.Print("info is filtered")
	assert.Empty(t, buf.String())

	l.Error("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestWithField_Chains(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewWithOutput("test", "warn", buf)

	l.WithField("component", "cache").WithField("key", "files/nil").Warnf("stale %s", "entry")
	l.Debug("filtered")

	out := buf.String()
	assert.Contains(t, out, "component=cache")
	assert.Contains(t, out, "key=files/nil")
	assert.Contains(t, out, `msg="stale entry"`)
	assert.NotContains(t, out, "filtered")
}
