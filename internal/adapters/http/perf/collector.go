// Package perf keeps a bounded in-memory history of request and query
// timings for the analytics page.
package perf

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRingSize is the default capacity of the ring buffer.
const DefaultRingSize = 10000

// EntryKind distinguishes request vs query entries.
type EntryKind uint8

const (
	KindRequest EntryKind = iota
	KindQuery
)

// Entry is a single timing record.
type Entry struct {
	Kind       EntryKind
	Label      string // "GET /user" or "SELECT courses"
	Status     int    // HTTP status, 0 for queries
	DurationMs float64
	At         time.Time
}

// Collector is a fixed-size ring buffer of timing entries.
// When full, the oldest entries are overwritten. Aggregation happens on read.
type Collector struct {
	mu      sync.Mutex
	entries []Entry
	pos     int
	total   atomic.Int64
}

// NewCollector creates a collector holding at most size entries.
// A non-positive size uses DefaultRingSize.
func NewCollector(size int) *Collector {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Collector{entries: make([]Entry, size)}
}

// Record stores e, overwriting the oldest entry when the buffer is full.
func (c *Collector) Record(e Entry) {
	c.mu.Lock()
	c.entries[c.pos] = e
	c.pos = (c.pos + 1) % len(c.entries)
	c.mu.Unlock()
	c.total.Add(1)
}

// TotalRecorded returns the number of entries ever recorded, including overwritten ones.
func (c *Collector) TotalRecorded() int64 {
	return c.total.Load()
}

// Stat aggregates timings for one label.
type Stat struct {
	Label   string
	Count   int
	AvgMs   float64
	MaxMs   float64
	totalMs float64
}

// Snapshot is the aggregated view of the buffer since a point in time.
type Snapshot struct {
	Requests       int
	Queries        int
	ClientErrors   int // 4xx
	ServerErrors   int // 5xx
	RequestP50Ms   float64
	RequestP95Ms   float64
	RequestP99Ms   float64
	SlowestRoutes  []Stat
	SlowestQueries []Stat
}

// Snapshot aggregates the entries recorded at or after since.
// SlowestRoutes and SlowestQueries hold at most topN items, slowest average first.
func (c *Collector) Snapshot(since time.Time, topN int) Snapshot {
	c.mu.Lock()
	buf := make([]Entry, len(c.entries))
	copy(buf, c.entries)
	c.mu.Unlock()

	var snap Snapshot
	var durations []float64
	routes := make(map[string]*Stat)
	queries := make(map[string]*Stat)

	for _, e := range buf {
		if e.At.IsZero() || e.At.Before(since) {
			continue
		}
		switch e.Kind {
		case KindRequest:
			snap.Requests++
			durations = append(durations, e.DurationMs)
			switch {
			case e.Status >= 500:
				snap.ServerErrors++
			case e.Status >= 400:
				snap.ClientErrors++
			}
			add(routes, e)
		case KindQuery:
			snap.Queries++
			add(queries, e)
		}
	}

	snap.SlowestRoutes = top(routes, topN)
	snap.SlowestQueries = top(queries, topN)
	if len(durations) > 0 {
		sort.Float64s(durations)
		snap.RequestP50Ms = percentile(durations, 50)
		snap.RequestP95Ms = percentile(durations, 95)
		snap.RequestP99Ms = percentile(durations, 99)
	}
	return snap
}

func add(stats map[string]*Stat, e Entry) {
	s, ok := stats[e.Label]
	if !ok {
		s = &Stat{Label: e.Label}
		stats[e.Label] = s
	}
	s.Count++
	s.totalMs += e.DurationMs
	s.MaxMs = math.Max(s.MaxMs, e.DurationMs)
}

// percentile interpolates the p-th percentile of a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	idx := (p / 100) * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))
	if lower == upper {
		return sorted[lower]
	}
	frac := idx - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

func top(stats map[string]*Stat, n int) []Stat {
	list := make([]Stat, 0, len(stats))
	for _, s := range stats {
		s.AvgMs = s.totalMs / float64(s.Count)
		list = append(list, *s)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].AvgMs != list[j].AvgMs {
			return list[i].AvgMs > list[j].AvgMs
		}
		return list[i].Label < list[j].Label
	})
	if n >= 0 && len(list) > n {
		list = list[:n]
	}
	return list
}
