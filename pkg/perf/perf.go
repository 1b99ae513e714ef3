// Package perf provides lightweight call tracking for labctl operations.
// Callers add `defer perf.Track(nil, "pkg.Func")()` at the top of a function;
// the registry accumulates call counts and total durations, and Summary
// returns them for trace-level reporting on exit.
package perf

import (
	"sort"
	"sync"
	"time"

	"github.com/workshoplabs/labctl/pkg/schema"
)

// Stat holds accumulated timings for one tracked call site.
type Stat struct {
	Name  string
	Count int64
	Total time.Duration
}

var (
	mu    sync.Mutex
	stats = map[string]*Stat{}
)

// Track records one invocation of the named call site. The returned func
// must be invoked (normally via defer) to stop the timer. The config
// parameter is accepted for call-site uniformity; tracking is always on
// and only surfaces in trace-level output.
func Track(_ *schema.Configuration, name string) func() {
	start := time.Now()
	return func() {
		elapsed := time.Since(start)
		mu.Lock()
		defer mu.Unlock()
		s, ok := stats[name]
		if !ok {
			s = &Stat{Name: name}
			stats[name] = s
		}
		s.Count++
		s.Total += elapsed
	}
}

// Summary returns a copy of all recorded stats sorted by total duration,
// longest first.
func Summary() []Stat {
	mu.Lock()
	defer mu.Unlock()
	out := make([]Stat, 0, len(stats))
	for _, s := range stats {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	return out
}

// Reset clears the registry. Used by tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	stats = map[string]*Stat{}
}
