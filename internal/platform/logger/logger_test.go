package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn")

	l.Infof("hidden %d", 1)
	assert.Empty(t, buf.String())

	l.Warnf("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
	assert.Contains(t, buf.String(), "level=warning")
}

func TestEventFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "bogus").With("component", "sim")

	l.Event("vote", "alice", false, "already voted today")

	out := buf.String()
	assert.Contains(t, out, "action=vote")
	assert.Contains(t, out, "actor=alice")
	assert.Contains(t, out, "applied=false")
	assert.Contains(t, out, "component=sim")
}
