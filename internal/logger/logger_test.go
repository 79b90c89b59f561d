package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: INFO, Format: JSON, Output: &buf, Service: "scheduler"})

	log.Info("reserved", "appointment_id", 7)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not json: %v (%s)", err, buf.String())
	}
	if line["msg"] != "reserved" {
		t.Errorf("expected msg 'reserved', got %v", line["msg"])
	}
	if line[SERVICE] != "scheduler" {
		t.Errorf("expected service attr, got %v", line[SERVICE])
	}
}

func TestLevelFiltering(t *testing.T) {
	cases := []struct {
		level   string
		logInfo bool
	}{
		{level: DEBUG, logInfo: true},
		{level: INFO, logInfo: true},
		{level: WARN, logInfo: false},
		{level: ERROR, logInfo: false},
		{level: EMPTY, logInfo: false},
		{level: "bogus", logInfo: false},
	}

	for _, c := range cases {
		var buf bytes.Buffer
		log := New(Config{Level: c.level, Output: &buf})
		log.Info("hello")
		if got := strings.Contains(buf.String(), "hello"); got != c.logInfo {
			t.Fatalf("level %q: info logged = %v, want %v", c.level, got, c.logInfo)
		}
	}
}
