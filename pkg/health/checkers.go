package health

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/go-faster/errors"
)

// GoroutineCountCheck returns a CheckFunc that reports unhealthy when the
// number of goroutines exceeds the given threshold. This is useful as a
// liveness check to detect goroutine leaks.
func GoroutineCountCheck(threshold int) CheckFunc {
	return func(_ context.Context) error {
		count := runtime.NumGoroutine()
		if count > threshold {
			return errors.Errorf("goroutine count %d exceeds threshold %d", count, threshold)
		}
		return nil
	}
}

// GCMaxPauseCheck returns a CheckFunc that reports unhealthy when the maximum
// GC pause (stop-the-world) duration exceeds the given threshold. This is
// useful as a liveness check to detect memory pressure or excessively large
// heaps causing long GC pauses.
func GCMaxPauseCheck(threshold time.Duration) CheckFunc {
	return func(_ context.Context) error {
		var stats debug.GCStats
		debug.ReadGCStats(&stats)

		for _, pause := range stats.Pause {
			if pause > threshold {
				return errors.Errorf("GC pause %s exceeds threshold %s", pause, threshold)
			}
		}
		return nil
	}
}

// DataDirCheck returns a CheckFunc that probes the data directory by writing
// and removing a marker file. A read-only or missing volume makes every
// write endpoint fail, so readiness should gate on it.
func DataDirCheck(dir string) CheckFunc {
	return func(_ context.Context) error {
		probe := filepath.Join(dir, ".healthcheck")
		if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
			return errors.Wrap(err, "data dir not writable")
		}
		if err := os.Remove(probe); err != nil {
			return errors.Wrap(err, "data dir cleanup")
		}
		return nil
	}
}
