// Package pipeline orchestrates one full run: read candidates, chunk them
// onto the task queue, fan out to the worker pool, and collect the report.
//
// The orchestrator is single-threaded relative to the pool: it submits
// every chunk, broadcasts exactly one shutdown marker per worker, waits for
// every worker to terminate, and only then runs the collector.
package pipeline
