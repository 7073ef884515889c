// Package compose lays captured items out on a raster canvas and exports it
// as a PNG testimonial graphic.
//
// # Pipeline
//
// Rendering is split into a pure layout step and a paint step:
//
//	items, options ──► Layout ──► []Op ──► Renderer (gg) ──► *image.RGBA ──► PNG
//
// [Layout] and [Wrap] depend only on a [Measurer], so line breaking can be
// tested without fonts. The renderer paints with github.com/fogleman/gg using
// the embedded Go fonts and scales the logo with github.com/disintegration/imaging.
//
// # Layout Rules
//
// At most [MaxItems] items are drawn. The vertical space between the margins,
// less the footer reserve, is split into equal slots. Each slot starts with a
// bold heading ("Testimonial" or "Member Highlight") followed by the item's
// text wrapped to the canvas width minus both margins. The footer is drawn
// left-aligned near the bottom and the logo is anchored to the bottom-right
// corner, both inset by [Margin].
//
// # Logos
//
// A logo that fails to decode does not abort the render. [Composer.Render]
// logs "logo failed to load, continuing without it", draws everything else
// and reports the decode error in [Result.LogoErr].
//
// # Determinism
//
// Rendering the same items with the same options twice yields pixel-identical
// images.
package compose
