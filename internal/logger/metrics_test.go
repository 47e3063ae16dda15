package logger

import (
	"sync"
	"testing"
	"time"
)

func TestMetrics_Counter(t *testing.T) {
	m := NewMetrics()

	m.IncrCounter("test_counter")
	m.IncrCounter("test_counter")
	m.IncrCounter("test_counter")

	snapshot := m.Snapshot()
	if snapshot.Counters["test_counter"] != 3 {
		t.Errorf("Counter = %v, want 3", snapshot.Counters["test_counter"])
	}
}

func TestMetrics_Gauge(t *testing.T) {
	m := NewMetrics()

	m.SetGauge("matches", 21)
	m.SetGauge("matches", 22)

	snapshot := m.Snapshot()
	if snapshot.Gauges["matches"] != 22 {
		t.Errorf("Gauge = %v, want 22", snapshot.Gauges["matches"])
	}
}

func TestMetrics_Timing(t *testing.T) {
	m := NewMetrics()

	m.RecordTiming("scrape.fetch", 100*time.Millisecond)
	m.RecordTiming("scrape.fetch", 200*time.Millisecond)
	m.RecordTiming("scrape.fetch", 150*time.Millisecond)

	stats, ok := m.Snapshot().Timings["scrape.fetch"]
	if !ok {
		t.Fatal("timing scrape.fetch missing from snapshot")
	}
	if stats.Count != 3 {
		t.Errorf("Timing count = %v, want 3", stats.Count)
	}
	if stats.Min != "100ms" {
		t.Errorf("Min timing = %v, want 100ms", stats.Min)
	}
	if stats.Max != "200ms" {
		t.Errorf("Max timing = %v, want 200ms", stats.Max)
	}
	if stats.Average != "150ms" {
		t.Errorf("Average timing = %v, want 150ms", stats.Average)
	}
}

func TestMetrics_SnapshotIsCopy(t *testing.T) {
	m := NewMetrics()
	m.IncrCounter("requests")

	snapshot := m.Snapshot()
	m.IncrCounter("requests")

	if snapshot.Counters["requests"] != 1 {
		t.Errorf("snapshot changed after update: %v", snapshot.Counters["requests"])
	}
}

func TestMetrics_Concurrent(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncrCounter("requests")
			m.RecordTiming("latency", time.Millisecond)
		}()
	}
	wg.Wait()

	snapshot := m.Snapshot()
	if snapshot.Counters["requests"] != 50 {
		t.Errorf("Counter = %v, want 50", snapshot.Counters["requests"])
	}
	if snapshot.Timings["latency"].Count != 50 {
		t.Errorf("Timing count = %v, want 50", snapshot.Timings["latency"].Count)
	}
}

func TestPackageLevelMetrics(t *testing.T) {
	IncrCounter("test")
	SetGauge("test", 42.0)
	RecordTiming("test", time.Second)

	snapshot := GetMetricsSnapshot()
	if snapshot.Counters["test"] < 1 {
		t.Error("package-level counter not recorded")
	}
	if snapshot.Gauges["test"] != 42.0 {
		t.Errorf("Gauge = %v, want 42", snapshot.Gauges["test"])
	}
	if DefaultMetrics() == nil {
		t.Error("DefaultMetrics() returned nil")
	}
}
