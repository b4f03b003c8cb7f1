package rain

import (
	"fmt"

	"github.com/lixenwraith/rain/parameter"
)

// Droplet is the fall state of one column
type Droplet struct {
	Row    int     // head row, may run past the bottom edge while the tail drains
	Len    int     // visible trail length, 1..MaxLen
	MaxLen int     // trail length the droplet grows to
	Frame  float64 // tick accumulator; a row step happens once it reaches 1.0
	Speed  float64 // accumulator increment per tick, (0, 1]
}

// Spawn creates a droplet for a column whose previous droplet drained off screen.
// The head starts in the top band of the screen with a single-cell trail.
func Spawn(rng Random, rowBound int) Droplet {
	return Droplet{
		Row:    rng.Intn(rowBound / parameter.DropletSpawnBandDivisor),
		Len:    1,
		MaxLen: rng.IntRange(parameter.DropletMinLength, parameter.DropletMaxLength),
		Frame:  1.0,
		Speed:  rng.FloatRange(parameter.DropletMinSpeed, parameter.DropletMaxSpeed),
	}
}

// InitialSpawn creates a startup droplet anywhere on screen, already at full length,
// so the first frame does not show a row of identical one-cell droplets
func InitialSpawn(rng Random, rows int) Droplet {
	row := rng.Intn(rows)
	maxLen := rng.IntRange(parameter.DropletMinLength, parameter.DropletMaxLength)
	return Droplet{
		Row:    row,
		Len:    maxLen,
		MaxLen: maxLen,
		Frame:  1.0,
		Speed:  rng.FloatRange(parameter.DropletMinSpeed, parameter.DropletMaxSpeed),
	}
}

// Advance accumulates one tick and reports whether the head moved down a row.
// At most one row is stepped per call.
func (d *Droplet) Advance() bool {
	d.Frame += d.Speed
	if d.Frame < 1.0 {
		return false
	}
	d.Frame -= 1.0
	d.Row++
	d.Len = min(d.Len+1, d.MaxLen)
	return true
}

// IsExhausted reports whether head and tail have both scrolled past the bottom edge
func (d Droplet) IsExhausted(rows int) bool {
	return d.Row >= rows+d.Len
}

// Valid reports the first broken invariant, nil if none
func (d Droplet) Valid() error {
	switch {
	case d.Len < 1:
		return fmt.Errorf("droplet length %d below 1", d.Len)
	case d.Len > d.MaxLen:
		return fmt.Errorf("droplet length %d exceeds max %d", d.Len, d.MaxLen)
	case d.Speed <= 0 || d.Speed > 1.0:
		return fmt.Errorf("droplet speed %v outside (0, 1]", d.Speed)
	case d.Frame > 1.0:
		return fmt.Errorf("droplet frame %v exceeds 1.0", d.Frame)
	case d.Row < 0:
		return fmt.Errorf("droplet row %d negative", d.Row)
	}
	return nil
}

func (d Droplet) String() string {
	return fmt.Sprintf("row=%d len=%d/%d frame=%.2f speed=%.2f", d.Row, d.Len, d.MaxLen, d.Frame, d.Speed)
}
