package parameter

// Droplet Geometry
const (
	// DropletMinLength and DropletMaxLength bound the trail length a droplet grows to (inclusive)
	DropletMinLength = 2
	DropletMaxLength = 20

	// DropletSpawnBandDivisor limits respawned droplets to the top 1/N of the screen
	DropletSpawnBandDivisor = 4
)

// Droplet Speed, rows per tick
// Upper bound must not exceed 1.0: a droplet advances at most one row per tick
const (
	DropletMinSpeed = 0.2
	DropletMaxSpeed = 1.0
)

// Glyph Block
const (
	// GlyphFirst is half-width katakana 'ｦ'
	GlyphFirst rune = 0xFF66

	// GlyphCount is the size of the contiguous block, 'ｦ' through 'ﾜ'
	GlyphCount = 55
)
