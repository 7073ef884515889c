// Package host simulates the browser that the capture surfaces run in.
//
// A [Browser] owns tabs, tracks which one is active and routes control
// messages to the capture agent injected into each page tab. It implements
// the interfaces the control panel depends on, so the panel can be driven
// from the CLI, the interactive picker or the HTTP API alike.
//
// # Message Delivery
//
// Each tab has its own lock. Messages and pointer events for a tab are
// delivered one at a time, so commands from one sender are handled in the
// order they were sent. Different tabs proceed independently; their writes
// to storage are last-write-wins.
//
// # Lifecycle
//
// The [Worker] is the lifecycle shim. Installing it requests that it take
// over without waiting; activating it claims every open tab. Messages sent
// to a tab that no active worker controls are dropped silently. Tabs opened
// after activation are controlled from the start.
package host
