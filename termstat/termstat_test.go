package termstat

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestCollectorCount(t *testing.T) {
	buf := &bytes.Buffer{}
	c := NewCollector(buf, time.Hour)
	c.Count("fetched", 200, 1)
	c.Count("fetched", 150, 1)
	c.Count("dropped", 1, 1)
	c.Stop()

	out := buf.String()
	if !strings.Contains(out, "fetched: 350") {
		t.Fatalf("expected accumulated count in output, got %q", out)
	}
	if !strings.Contains(out, "dropped: 1") {
		t.Fatalf("expected dropped count in output, got %q", out)
	}
	if !strings.HasPrefix(out, "dropped") {
		t.Fatalf("expected counters sorted by name, got %q", out)
	}
}

func TestCollectorZeroRate(t *testing.T) {
	buf := &bytes.Buffer{}
	c := NewCollector(buf, time.Hour)
	c.Count("sampled", 100, 0)
	c.Stop()
	if strings.Contains(buf.String(), "sampled") {
		t.Fatalf("rate 0 counter should never record, got %q", buf.String())
	}
}

func TestCollectorTiming(t *testing.T) {
	buf := &bytes.Buffer{}
	c := NewCollector(buf, time.Hour)
	c.Timing("run", 2*time.Second, 1)
	c.Stop()
	if !strings.Contains(buf.String(), "run: 2s") {
		t.Fatalf("expected timing in output, got %q", buf.String())
	}
}
