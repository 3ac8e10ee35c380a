package logger

import (
	"bytes"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestNew_Level(t *testing.T) {
	tests := []struct {
		cfg  Config
		want log.Level
	}{
		{Config{}, log.InfoLevel},
		{Config{Level: "warn"}, log.WarnLevel},
		{Config{Level: "bogus"}, log.InfoLevel},
		{Config{Level: "error", Debug: true}, log.DebugLevel},
	}
	for _, tt := range tests {
		if got := New(tt.cfg).GetLevel(); got != tt.want {
			t.Errorf("New(%+v).GetLevel() = %v, want %v", tt.cfg, got, tt.want)
		}
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Format: "json", Out: &buf})
	l.WithField("key", "linux-amd64").Info("staged")

	out := buf.String()
	if !strings.Contains(out, `"key":"linux-amd64"`) || !strings.Contains(out, `"msg":"staged"`) {
		t.Errorf("unexpected JSON output: %s", out)
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Info("dropped")
}
