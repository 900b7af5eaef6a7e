package diag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerboseLoggerEmitsDebug(t *testing.T) {
	var buf bytes.Buffer

	log := NewWithWriter(true, &buf)
	log.Debugf("resolving %s", "triple")

	assert.Contains(t, buf.String(), "resolving triple")
	assert.Contains(t, buf.String(), "debug")
}

func TestQuietLoggerSuppressesDebug(t *testing.T) {
	var buf bytes.Buffer

	log := NewWithWriter(false, &buf)
	log.Debugf("hidden")
	log.Infof("also hidden")
	log.Warnf("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
}

func TestWithAddsContext(t *testing.T) {
	var buf bytes.Buffer

	log := NewWithWriter(true, &buf).With("stage", "fetch")
	log.Debugf("downloading")

	assert.Contains(t, buf.String(), "fetch")
}

func TestNopLoggerIsSafe(t *testing.T) {
	log := Nop()
	log.Debugf("nothing")
	log.Errorf("still nothing")
	assert.NoError(t, log.Sync())
}
