package benchmark

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"testing"

	"github.com/yndnr/formseal-go/pkg/csrf"
)

// benchSecret is long enough for the guard's minimum and stays fixed so
// runs are comparable.
const benchSecret = "0123456789abcdef0123456789abcdef0123456789abc"

// ClientCounts defines the distinct client counts for rate limiter
// benchmarks.
var ClientCounts = []int{100, 1000, 10000}

// newBenchGuard creates a guard with the fixed benchmark secret.
func newBenchGuard(b *testing.B) *csrf.Guard {
	b.Helper()

	guard, err := csrf.New(csrf.Config{Secret: benchSecret})
	if err != nil {
		b.Fatalf("csrf.New failed: %v", err)
	}
	return guard
}

// clientAddr returns a distinct source address per client index.
func clientAddr(i int) string {
	return fmt.Sprintf("10.%d.%d.%d", i/65536%256, i/256%256, i%256)
}

// quietLogger drops everything below error level.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}
