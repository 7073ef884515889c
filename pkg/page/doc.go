// Package page models a community page loaded into a tab.
//
// A [Document] wraps a parsed HTML tree and adds the small amount of browser
// behaviour the capture agent relies on: CSS selection, class toggling,
// per-element event listeners and an approximation of rendered text.
//
// # Element Identity
//
// Elements are identified by their *html.Node pointer. Two queries that match
// the same element return the same pointer, so a set keyed by node
// deduplicates matches across selectors.
//
// # Events
//
// Three event types are modelled: [PointerEnter], [PointerLeave] and [Click].
// [Document.Dispatch] runs listeners on the target and, for clicks only,
// bubbles to each ancestor in turn. A listener may call
// [Event.StopPropagation] to end bubbling and [Event.PreventDefault] to
// suppress the default action. The only default action modelled is link
// navigation, recorded by [Document.LastNavigation].
//
// # Concurrency
//
// A Document is not safe for concurrent use. The host serialises all access
// to a tab's document.
package page
