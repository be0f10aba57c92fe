// Package monitor logs process resource usage at a fixed interval.
package monitor

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// Monitor periodically samples CPU and memory usage of this process.
type Monitor struct {
	interval time.Duration
	logger   *slog.Logger
	wg       sync.WaitGroup
	proc     *process.Process
}

// New creates a monitor with the given collection interval. Returns nil if
// the process handle cannot be obtained.
func New(interval time.Duration, logger *slog.Logger) *Monitor {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		logger.Error("failed to get process handle", "error", err)
		return nil
	}

	return &Monitor{
		interval: interval,
		logger:   logger,
		proc:     proc,
	}
}

// Run starts the sampling loop in a background goroutine.
func (m *Monitor) Run(ctx context.Context) {
	m.wg.Go(func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		m.collect()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.collect()
			}
		}
	})
}

// Wait blocks until the sampling goroutine exits.
func (m *Monitor) Wait() {
	m.wg.Wait()
}

func (m *Monitor) collect() {
	cpu, err := m.proc.CPUPercent()
	if err != nil {
		m.logger.Warn("failed to get CPU percent", "error", err)
		cpu = 0
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	m.logger.Info("resource usage",
		"cpu_pct", cpu,
		"goroutines", runtime.NumGoroutine(),
		"heap_mb", float64(ms.HeapAlloc)/(1024*1024),
		"gc_runs", ms.NumGC,
	)
}
