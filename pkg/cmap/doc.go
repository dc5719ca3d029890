// Package cmap provides a concurrent map implementation for FormSeal.
//
// This package implements a sharded concurrent map keyed by string,
// sized for per-client registries (rate limiters, last-seen stamps)
// with the following features:
//
//   - Sharding: Configurable shard count for parallelism
//   - Fine-grained Locking: Per-shard RWMutex for minimal contention
//   - Lazy Insertion: GetOrCompute builds a value at most once per key
//   - Sweeping: DeleteFunc removes entries matching a predicate
//
// Usage:
//
//	m := cmap.New[*rate.Limiter]()
//	lim, _ := m.GetOrCompute(addr, newLimiter)
//
// Thread Safety:
//
// All operations are thread-safe. Read operations (Get, Has) use RLock,
// write operations (Set, Delete, GetOrCompute) use Lock.
//
// @adr AD-0102
package cmap
