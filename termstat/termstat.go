// Package termstat provides a stats implementation which accumulates counters
// in memory and prints them to the given writer, periodically and once more
// when the stage finishes. It stands in for a real collector writing to an
// external tool, which the pipeline stages don't assume exists.
package termstat

import (
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"
)

// Collector collects stats and prints them to a writer.
type Collector struct {
	lock    sync.Mutex
	counts  map[string]int64
	timings map[string]time.Duration
	changed bool
	out     io.Writer
	done    chan struct{}
}

// NewCollector initializes and returns a new Collector which reports every
// interval until Stop is called.
func NewCollector(out io.Writer, interval time.Duration) *Collector {
	c := &Collector{
		counts:  make(map[string]int64),
		timings: make(map[string]time.Duration),
		out:     out,
		done:    make(chan struct{}),
	}
	go func() {
		tick := time.NewTicker(interval)
		defer tick.Stop()
		for {
			select {
			case <-tick.C:
				c.write()
			case <-c.done:
				return
			}
		}
	}()
	return c
}

// Stop halts periodic reporting and writes the final counter values. A batch
// stage calls this once its run is over.
func (c *Collector) Stop() {
	close(c.done)
	c.lock.Lock()
	c.changed = len(c.counts) > 0 || len(c.timings) > 0
	c.lock.Unlock()
	c.write()
}

// Count adds value to the named counter at the specified rate.
func (c *Collector) Count(name string, value int64, rate float64, tags ...string) {
	if rate < 1 && rand.Float64() > rate {
		return
	}
	c.lock.Lock()
	c.counts[name] += value
	c.changed = true
	c.lock.Unlock()
}

// Gauge sets the named counter to value, discarding its history.
func (c *Collector) Gauge(name string, value float64, rate float64, tags ...string) {
	c.lock.Lock()
	c.counts[name] = int64(value)
	c.changed = true
	c.lock.Unlock()
}

// Timing records the most recent duration for the named stat.
func (c *Collector) Timing(name string, value time.Duration, rate float64, tags ...string) {
	c.lock.Lock()
	c.timings[name] = value
	c.changed = true
	c.lock.Unlock()
}

func (c *Collector) write() {
	c.lock.Lock()
	if !c.changed {
		c.lock.Unlock()
		return
	}
	names := make([]string, 0, len(c.counts))
	for name := range c.counts {
		names = append(names, name)
	}
	sort.Strings(names)
	sb := strings.Builder{}
	for _, name := range names {
		fmt.Fprintf(&sb, "%s: %d ", name, c.counts[name])
	}
	names = names[:0]
	for name := range c.timings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "%s: %v ", name, c.timings[name])
	}
	c.changed = false
	c.lock.Unlock()
	fmt.Fprintln(c.out, strings.TrimSpace(sb.String()))
}
