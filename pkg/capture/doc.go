// Package capture implements the page capture agent injected into every tab.
//
// The agent owns the tab's capture state: the active [selection.Mode] and an
// in-memory mirror of the persisted selection. It is driven exclusively by
// control messages ([Agent.Handle]) and by pointer events on the elements it
// decorates.
//
// # Decoration
//
// Switching to a capture mode first removes every decoration from the page,
// then marks each element matched by the mode's selectors with the class
// [HighlightClass] and three listeners:
//
//   - pointerenter adds [HoverClass]
//   - pointerleave removes [HoverClass]
//   - click captures the element's visible text
//
// Matches from several selectors are deduplicated by element identity, so
// an element is decorated at most once per mode switch.
//
// # Capturing
//
// A click on a decorated element suppresses the page's own handling,
// trims the element's visible text and, if anything remains, appends
// {type: mode, text} to the mirror and persists the whole mirror under the
// "selectedItems" key. Writes are last-write-wins.
package capture
