// Package rolodex implements the card-carousel terminal interface: a grid
// compositor, the per-component card and trend graph renderers, the carousel
// layout, and the Bubble Tea model that drives them from keyboard events.
//
// Rendering is split from IO on purpose. The model caches store snapshots on
// every state-changing event, and everything below it (Compose, FormatCard,
// RenderGraph) is a pure function from values to a Grid. Tests assert on
// exact cell buffers via Grid.Plain and Grid.Get without a terminal.
package rolodex
