package monitoring

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Monitor tracks the outcome of the most recent blueprint run. It is
// read by the HTTP health endpoint while the scheduler writes to it, so
// access is guarded.
type Monitor struct {
	mu             sync.RWMutex
	lastRunSuccess bool
	lastRunTime    time.Time
	lastSummary    string
	totalRuns      int
	failedRuns     int
}

func NewMonitor() *Monitor {
	return &Monitor{}
}

func (m *Monitor) RecordSuccess(summary string, duration time.Duration) {
	m.mu.Lock()
	m.lastRunSuccess = true
	m.lastRunTime = time.Now()
	m.lastSummary = summary
	m.totalRuns++
	m.mu.Unlock()

	log.Printf("✅ Run completed successfully - %s (took %v)", summary, duration)
}

// RecordDegraded notes a run that finished with concept fallbacks or
// other degraded stages. Health status is unaffected.
func (m *Monitor) RecordDegraded(summary string, duration time.Duration) {
	m.mu.Lock()
	m.lastRunSuccess = true
	m.lastRunTime = time.Now()
	m.lastSummary = summary
	m.totalRuns++
	m.mu.Unlock()

	log.Printf("⚠️  DEGRADED RUN: %s (took %v)", summary, duration)
}

func (m *Monitor) RecordFailure(err error, duration time.Duration) {
	m.mu.Lock()
	m.lastRunSuccess = false
	m.lastRunTime = time.Now()
	m.lastSummary = err.Error()
	m.totalRuns++
	m.failedRuns++
	m.mu.Unlock()

	log.Printf("🚨 RUN FAILED: %s (Duration: %v)", err.Error(), duration)
}

func (m *Monitor) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.lastRunTime.IsZero() {
		return true // No runs yet, assume healthy
	}
	return m.lastRunSuccess
}

func (m *Monitor) GetStatusSummary() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.lastRunTime.IsZero() {
		return "No runs yet"
	}

	if m.lastRunSuccess {
		return fmt.Sprintf("✅ Last run: %s - %s", m.lastRunTime.Format("Jan 2 15:04"), m.lastSummary)
	}
	return fmt.Sprintf("❌ Last run failed: %s - %s", m.lastRunTime.Format("Jan 2 15:04"), m.lastSummary)
}

// Counters returns total and failed run counts since startup.
func (m *Monitor) Counters() (total, failed int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalRuns, m.failedRuns
}
