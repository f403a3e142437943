// Package resilience provides the bulkhead used to bound concurrent
// recognition-engine invocations.
//
// The underlying engine runtime gives no guarantee about safe
// concurrency, so the pipeline funnels every invocation through a
// fixed-size bulkhead: requests wait up to a configured window for a
// slot and are rejected once it elapses.
package resilience
