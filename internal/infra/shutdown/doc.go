// Package shutdown provides graceful shutdown for FormSeal.
//
// This package handles process termination signals:
//
//   - Signal handling (SIGINT, SIGTERM)
//   - Timeout-based forced shutdown
//   - Cleanup callback registration
//   - Shutdown coordination
//
// Usage:
//
//	h := shutdown.NewHandler(30 * time.Second)
//	h.OnShutdown(func(ctx context.Context) error {
//		return srv.Shutdown(ctx)
//	})
//	if err := h.Wait(); err != nil {
//		log.Error("shutdown", "error", err)
//	}
//
// Hooks run in reverse registration order, so dependencies registered
// first are torn down last.
//
// @design DS-0501
package shutdown
