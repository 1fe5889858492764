package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/km-arc/go-utilities/framework/config"
	"github.com/km-arc/go-utilities/framework/logging"
)

// ── New ──────────────────────────────────────────────────────────────────────

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(config.LogConfig{Level: "info", Format: "json"}, &buf)
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("hello", "k", "v")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %q: %v", buf.String(), err)
	}
	if line["k"] != "v" {
		t.Errorf("attr k: got %v, want v", line["k"])
	}
	if !strings.Contains(buf.String(), `"hello"`) {
		t.Errorf("message missing from %q", buf.String())
	}
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(config.LogConfig{Level: "debug", Format: "text"}, &buf)
	if err != nil {
		t.Fatal(err)
	}

	logger.Debug("details", "n", 3)

	out := buf.String()
	if !strings.Contains(out, "msg=details") || !strings.Contains(out, "n=3") {
		t.Errorf("text output: got %q", out)
	}
}

func TestNew_LevelFilters(t *testing.T) {
	for _, format := range []string{"json", "text"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := logging.New(config.LogConfig{Level: "warn", Format: format}, &buf)
			if err != nil {
				t.Fatal(err)
			}
			logger.Info("dropped")
			if buf.Len() != 0 {
				t.Errorf("info should be filtered at warn, got %q", buf.String())
			}
			logger.Error("kept")
			if buf.Len() == 0 {
				t.Error("error should pass at warn")
			}
		})
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := logging.New(config.LogConfig{Format: "xml"}, nil)
	if !errors.Is(err, logging.ErrUnknownFormat) {
		t.Errorf("got %v, want ErrUnknownFormat", err)
	}
}

// ── ParseLevel ───────────────────────────────────────────────────────────────

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "INFO", false},
		{"debug", "DEBUG", false},
		{"INFO", "INFO", false},
		{"warn", "WARN", false},
		{"error", "ERROR", false},
		{"loud", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := logging.ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err: got %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got.String() != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDiscard(t *testing.T) {
	logging.Discard().Error("nothing happens")
}
