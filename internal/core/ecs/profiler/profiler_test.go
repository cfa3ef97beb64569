package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUninitializedProfilerIsSafeNoOp(t *testing.T) {
	var p Profiler
	p.BeginFrame()
	id := p.BeginZone("z", "f.go", 1)
	assert.Equal(t, uint64(0), id)
	p.EndZone(id)
	p.EndFrame()
	assert.Empty(t, p.FrameHistory())
}

// feeds 100 synthetic frames with total_time = i milliseconds for
// i in [1..100] directly into history, bypassing the wall-clock BeginFrame/
// EndFrame pair, to make the percentile arithmetic exact.
func TestPercentileAndSpikeStatsOverHundredFrames(t *testing.T) {
	var p Profiler
	p.Init(200)

	for i := 1; i <= 100; i++ {
		p.history = append(p.history, FrameStats{
			FrameNumber: uint64(i - 1),
			TotalTime:   time.Duration(i) * time.Millisecond,
		})
	}

	stats := p.ProfilerStats()
	require.Equal(t, 100, stats.SampleCount)
	assert.InDelta(t, 50.5, float64(stats.AvgFrameTime)/float64(time.Millisecond), 0.01)
	assert.Equal(t, 96*time.Millisecond, stats.P95)
	assert.Equal(t, 100*time.Millisecond, stats.P99)
	assert.Equal(t, 101*time.Millisecond, stats.SpikeThreshold)
	assert.Equal(t, 0, stats.SpikeCount)
}

func TestRingHistoryEvictsOldestOnceFull(t *testing.T) {
	var p Profiler
	p.Init(3)

	for i := 1; i <= 5; i++ {
		p.BeginFrame()
		p.EndFrame()
	}

	history := p.FrameHistory()
	require.Len(t, history, 3)
	assert.Equal(t, uint64(4), history[len(history)-1].FrameNumber)
}

func TestZoneTimingRecordsCallCount(t *testing.T) {
	var p Profiler
	p.Init(10)
	p.BeginFrame()

	id := p.BeginZone("physics", "movement.go", 42)
	p.EndZone(id)

	zones := p.Zones()
	require.Len(t, zones, 1)
	assert.Equal(t, "physics", zones[0].Name)
	assert.Equal(t, 1, zones[0].CallCount)

	p.EndFrame()
}

func TestAllocationCountersTrackPeakAndSaturateAtZero(t *testing.T) {
	var p Profiler
	p.Init(10)

	p.RecordAllocation(1024)
	p.RecordAllocation(2048)
	assert.Equal(t, int64(3072), p.MemoryUsed())
	assert.Equal(t, int64(3072), p.MemoryPeak())

	p.RecordDeallocation(1024)
	assert.Equal(t, int64(2048), p.MemoryUsed())
	assert.Equal(t, int64(3072), p.MemoryPeak(), "peak must not decrease on deallocation")

	p.RecordDeallocation(100_000)
	assert.Equal(t, int64(0), p.MemoryUsed(), "memory used must saturate at zero, never go negative")
}

func TestShutdownThenReinitResetsHistory(t *testing.T) {
	var p Profiler
	p.Init(5)
	p.BeginFrame()
	p.EndFrame()
	require.Len(t, p.FrameHistory(), 1)

	p.Shutdown()
	assert.False(t, p.Initialized())
	p.BeginFrame() // no-op while shut down
	assert.Empty(t, p.FrameHistory())

	p.Init(5)
	assert.True(t, p.Initialized())
	assert.Empty(t, p.FrameHistory())
}
