// Package render drives the droplet array one tick per frame and writes only the cells that changed.
//
// Each moving droplet repaints its whole visible trail with fresh random glyphs, then blanks the
// cell just behind its tail. Static droplets and freshly respawned droplets write nothing.
package render
