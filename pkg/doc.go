// Package pkg provides the core libraries for stc, a testimonial capture and
// composition tool.
//
// # Overview
//
// stc loads community pages, highlights posts that can be captured as
// testimonials or member highlights, records the ones a user clicks, and
// renders the recorded selection onto a square PNG graphic. The pkg
// directory is organized into four areas:
//
//  1. Domain: [selection] (items and modes), [capture] (page capture agent),
//     [compose] (layout and PNG rendering)
//  2. Browser glue: [page] (DOM and events), [message] (wire commands),
//     [panel] (control panel), [host] (tabs and lifecycle worker)
//  3. Infrastructure: [storage] (file, memory, Redis, MongoDB), [httputil]
//     (page fetching and snapshots), [observability], [errors], [fonts]
//  4. Surfaces: [server] (HTTP API)
//
// # Data Flow
//
//	control panel ──setMode/clearSelected──▶ capture agent (one per tab)
//	                                              │ click
//	                                              ▼
//	                                  storage["selectedItems"]
//	                                              │ load
//	                                              ▼
//	                                 composer ──▶ skool-testimonials.png
//
// The store is the only channel between the capture agents and the
// composer. Every in-memory selection is a cache of it.
//
// # Quick Start
//
//	repo := selection.NewRepository(storage.NewMemoryStore())
//	b, _, _ := host.Start(ctx, host.Options{Repo: repo})
//	tab, _ := b.Open(ctx, "https://community.example.com/feed")
//
//	p := panel.New(b, nil)
//	_ = p.Testimonial(ctx)
//	_, _ = b.Click(ctx, tab, "#post-42")
//
//	editor, _ := p.OpenComposer(ctx)
//	c, _ := b.Composer(editor)
//	_, _ = c.Render(ctx, compose.Options{Footer: "example.com"})
//	path, _ := c.Download(ctx, ".")
package pkg
