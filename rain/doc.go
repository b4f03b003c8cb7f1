// Package rain models a single falling glyph stream, one per terminal column.
//
// A Droplet is plain data with a per-tick transition; it performs no I/O and owns no
// randomness. Construction draws its parameters from an injected Random so callers can
// replay identical rain from a seed.
package rain
