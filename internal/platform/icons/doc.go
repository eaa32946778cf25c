// Package icons maps catalog classifications to display icons.
//
// Renderers depend on the small resolver interfaces rather than on the
// catalog tables, so a theme can swap the glyph set without touching card
// markup.
package icons
