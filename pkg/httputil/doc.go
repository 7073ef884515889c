// Package httputil fetches community pages over HTTP for capture tabs.
//
// # Overview
//
//   - [Fetcher]: GET with retry and an optional snapshot cache
//   - [Cache]: file-based snapshot cache keyed by URL
//   - [Retry]: automatic retry with exponential backoff
//
// # Snapshots
//
// Every CLI invocation opens a fresh tab, so a capture session that spans
// several commands would otherwise see a different page each time. [Cache]
// keeps the fetched HTML under ~/.cache/stc/pages/ for a configurable TTL,
// giving consecutive commands the same snapshot (and the same elements).
// The cache can be cleared via `stc cache clear`.
//
// # Retry
//
// [Retry] re-attempts transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Default settings: 3 attempts, 1 second initial backoff, doubling.
package httputil
