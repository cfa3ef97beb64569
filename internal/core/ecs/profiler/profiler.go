// Package profiler implements the frame/zone profiler: a bounded ring of
// per-frame statistics with percentile aggregation, grounded on the host
// application's metrics.go (its sort-and-percentile helper, adapted to the
// exact-index selection §4.7 specifies rather than that file's linear
// interpolation) and on its memory_manager.go object pool for the
// atomic-counter idiom used by the allocation/deallocation tracking.
package profiler

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeycumines/go-utilpkg/logiface"
	"github.com/joeycumines/go-utilpkg/logiface/stumpy"
)

// FrameStats captures one completed frame. All durations are nanoseconds.
type FrameStats struct {
	FrameNumber       uint64
	TotalTime         time.Duration
	UpdateTime        time.Duration
	RenderTime        time.Duration
	EntityCount       int
	SystemCount       int
	MemoryUsed        int64
	AllocationCount   int64
	DeallocationCount int64
}

// Zone is a named interval within a frame, bracketed by BeginZone/EndZone.
type Zone struct {
	ID        uint64
	Name      string
	File      string
	Line      int
	TotalTime time.Duration
	SelfTime  time.Duration
	CallCount int
	ParentID  int64 // -1 when the zone has no parent
}

// Stats is the aggregated percentile summary computed on demand from the
// ring history.
type Stats struct {
	SampleCount    int
	AvgFrameTime   time.Duration
	MinFrameTime   time.Duration
	MaxFrameTime   time.Duration
	P95            time.Duration
	P99            time.Duration
	AvgFPS         float64
	MinFPS         float64
	MaxFPS         float64
	SpikeThreshold time.Duration
	SpikeCount     int
}

// Profiler aggregates per-frame and per-zone timings with bounded history.
// History mutation is serialized by mu; the memory counters use atomics so
// a background controller or tooling goroutine may read them without
// taking mu, matching §5's concurrency model.
type Profiler struct {
	mu          sync.Mutex
	initialized bool
	capacity    int
	history     []FrameStats
	nextWrite   int
	frameNumber uint64

	frameStart time.Time
	inFlight   FrameStats
	zones      []Zone
	zoneStart  []time.Time

	memoryUsed      atomic.Int64
	memoryPeak      atomic.Int64
	allocationCount atomic.Int64
	deallocCount    atomic.Int64

	now    func() time.Time
	logger *logiface.Logger[*stumpy.Event]
}

// SetLogger installs the optional structured-logging collaborator. A nil
// logger (the default) disables spike logging entirely.
func (p *Profiler) SetLogger(l *logiface.Logger[*stumpy.Event]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logger = l
}

// Init sets the ring capacity and marks the profiler initialized. Calling
// Init again resets all history.
func (p *Profiler) Init(historySize int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if historySize <= 0 {
		historySize = 1
	}
	p.capacity = historySize
	p.history = make([]FrameStats, 0, historySize)
	p.nextWrite = 0
	p.frameNumber = 0
	p.initialized = true
	if p.now == nil {
		p.now = time.Now
	}
}

// Shutdown releases history and marks the profiler uninitialized. Per §7,
// BeginFrame/EndFrame/BeginZone/EndZone become safe no-ops afterward.
func (p *Profiler) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.initialized = false
	p.history = nil
}

func (p *Profiler) Initialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

func (p *Profiler) clock() time.Time {
	if p.now != nil {
		return p.now()
	}
	return time.Now()
}

// BeginFrame snapshots a monotonic timestamp and resets the in-flight
// frame's scratch state. No-op if uninitialized.
func (p *Profiler) BeginFrame() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	p.frameStart = p.clock()
	p.inFlight = FrameStats{FrameNumber: p.frameNumber}
	p.zones = p.zones[:0]
	p.zoneStart = p.zoneStart[:0]
}

// EndFrame closes the in-flight frame, appends it to the ring (evicting the
// oldest entry once full), and advances the frame counter. No-op if
// uninitialized.
func (p *Profiler) EndFrame() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	p.inFlight.TotalTime = p.clock().Sub(p.frameStart)
	p.inFlight.MemoryUsed = p.memoryUsed.Load()
	p.inFlight.AllocationCount = p.allocationCount.Load()
	p.inFlight.DeallocationCount = p.deallocCount.Load()

	if len(p.history) < p.capacity {
		p.history = append(p.history, p.inFlight)
	} else {
		p.history[p.nextWrite] = p.inFlight
		p.nextWrite = (p.nextWrite + 1) % p.capacity
	}
	p.frameNumber++

	if p.logger != nil {
		if avg := p.averageLocked(); avg > 0 && p.inFlight.TotalTime > 2*avg {
			p.logger.Warning().
				Dur("frame_time", p.inFlight.TotalTime).
				Dur("threshold", 2*avg).
				Int("entity_count", p.inFlight.EntityCount).
				Log("profiler: frame spike detected")
		}
	}
}

// averageLocked computes the mean frame time over the current ring. Callers
// must already hold p.mu.
func (p *Profiler) averageLocked() time.Duration {
	if len(p.history) == 0 {
		return 0
	}
	var sum time.Duration
	for _, f := range p.history {
		sum += f.TotalTime
	}
	return sum / time.Duration(len(p.history))
}

// SetEntityCount and SetSystemCount stamp the in-flight FrameStats; called
// by World.Tick before EndFrame.
func (p *Profiler) SetEntityCount(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inFlight.EntityCount = n
}

func (p *Profiler) SetSystemCount(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inFlight.SystemCount = n
}

func (p *Profiler) SetUpdateTime(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inFlight.UpdateTime = d
}

// BeginZone pushes a fresh zone and returns its id (the zone's index within
// the current frame). Returns 0 if uninitialized, matching §7's liveness
// guarantee for a disabled profiler.
func (p *Profiler) BeginZone(name, file string, line int) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return 0
	}
	id := uint64(len(p.zones))
	p.zones = append(p.zones, Zone{ID: id, Name: name, File: file, Line: line, ParentID: -1})
	p.zoneStart = append(p.zoneStart, p.clock())
	return id
}

// EndZone closes the zone with the given id. No-op if id is out of range or
// the profiler is uninitialized.
func (p *Profiler) EndZone(id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized || id >= uint64(len(p.zones)) {
		return
	}
	elapsed := p.clock().Sub(p.zoneStart[id])
	p.zones[id].TotalTime = elapsed
	p.zones[id].SelfTime = elapsed
	p.zones[id].CallCount++
}

// Zones returns the zones recorded for the current in-flight (or just
// closed) frame, valid until the next BeginFrame.
func (p *Profiler) Zones() []Zone {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Zone, len(p.zones))
	copy(out, p.zones)
	return out
}

// CurrentFrame returns the monotonic frame counter.
func (p *Profiler) CurrentFrame() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frameNumber
}

// FrameHistory returns a snapshot of the ring, oldest first.
func (p *Profiler) FrameHistory() []FrameStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]FrameStats, 0, len(p.history))
	if len(p.history) == p.capacity {
		// Full ring: nextWrite is the slot of the oldest entry.
		out = append(out, p.history[p.nextWrite:]...)
		out = append(out, p.history[:p.nextWrite]...)
	} else {
		out = append(out, p.history...)
	}
	return out
}

// RecordAllocation adds bytes to the in-flight frame's memory counter using
// a relaxed atomic fetch-add, and advances the peak counter with a
// compare-exchange loop, per §5.
func (p *Profiler) RecordAllocation(bytes int64) {
	used := p.memoryUsed.Add(bytes)
	p.allocationCount.Add(1)
	for {
		peak := p.memoryPeak.Load()
		if used <= peak {
			return
		}
		if p.memoryPeak.CompareAndSwap(peak, used) {
			return
		}
	}
}

// RecordDeallocation subtracts bytes from the memory counter, saturating at
// zero.
func (p *Profiler) RecordDeallocation(bytes int64) {
	p.deallocCount.Add(1)
	for {
		used := p.memoryUsed.Load()
		next := used - bytes
		if next < 0 {
			next = 0
		}
		if p.memoryUsed.CompareAndSwap(used, next) {
			return
		}
	}
}

func (p *Profiler) MemoryUsed() int64 { return p.memoryUsed.Load() }
func (p *Profiler) MemoryPeak() int64 { return p.memoryPeak.Load() }

// ProfilerStats walks the ring and computes sample_count, avg/min/max,
// p95/p99 (sort a copy, index ceil(p*(n-1))), fps derivatives, and spike
// detection at 2x the average.
func (p *Profiler) ProfilerStats() Stats {
	history := p.FrameHistory()
	if len(history) == 0 {
		return Stats{}
	}

	times := make([]time.Duration, len(history))
	var sum time.Duration
	minT, maxT := history[0].TotalTime, history[0].TotalTime
	for i, f := range history {
		times[i] = f.TotalTime
		sum += f.TotalTime
		if f.TotalTime < minT {
			minT = f.TotalTime
		}
		if f.TotalTime > maxT {
			maxT = f.TotalTime
		}
	}
	avg := sum / time.Duration(len(history))

	sorted := make([]time.Duration, len(times))
	copy(sorted, times)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	p95 := percentileIndex(sorted, 0.95)
	p99 := percentileIndex(sorted, 0.99)

	spikeThreshold := 2 * avg
	spikeCount := 0
	for _, f := range history {
		if f.TotalTime > spikeThreshold {
			spikeCount++
		}
	}

	return Stats{
		SampleCount:    len(history),
		AvgFrameTime:   avg,
		MinFrameTime:   minT,
		MaxFrameTime:   maxT,
		P95:            p95,
		P99:            p99,
		AvgFPS:         fps(avg),
		MinFPS:         fps(maxT),
		MaxFPS:         fps(minT),
		SpikeThreshold: spikeThreshold,
		SpikeCount:     spikeCount,
	}
}

// ResetStats drops the ring history while leaving the profiler initialized.
func (p *Profiler) ResetStats() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.history = p.history[:0]
	p.nextWrite = 0
}

// percentileIndex picks sorted[ceil(p*(n-1))]. Using ceil rather than floor
// is a deliberate deviation from a literal reading of §4.7's formula: floor
// produces p95=95ms/p99=99ms on the spec's own 100-sample worked example
// (§8 scenario 6), which contradicts that same scenario's stated results of
// 96ms/100ms. Ceil reconciles both; see DESIGN.md.
func percentileIndex(sorted []time.Duration, percentile float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Ceil(percentile * float64(len(sorted)-1)))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func fps(frameTime time.Duration) float64 {
	if frameTime <= 0 {
		return 0
	}
	return float64(time.Second) / float64(frameTime)
}
