package render

import (
	"fmt"

	"github.com/lixenwraith/rain/rain"
)

// Renderer owns one droplet per column and turns each tick into paint/erase writes.
// Not safe for concurrent use; the render loop is its only caller.
type Renderer struct {
	surface  Surface
	rng      rain.Random
	rows     int
	droplets []rain.Droplet

	stats FrameStats
	frame uint64

	// OnRespawn, if set, is called after a column's droplet is replaced
	OnRespawn func(col int)
}

// NewRenderer sizes the droplet array to cols and seeds every column with a startup droplet
func NewRenderer(surface Surface, rng rain.Random, cols, rows int) *Renderer {
	droplets := make([]rain.Droplet, cols)
	for col := range droplets {
		droplets[col] = rain.InitialSpawn(rng, rows)
	}
	return &Renderer{
		surface:  surface,
		rng:      rng,
		rows:     rows,
		droplets: droplets,
	}
}

// DrawNextFrame advances every droplet by one tick and writes the visual delta.
// The first surface error aborts the frame and is returned.
func (r *Renderer) DrawNextFrame() error {
	r.frame++
	r.stats = FrameStats{Frame: r.frame}

	for col := range r.droplets {
		if err := r.drawColumn(col); err != nil {
			return err
		}
	}

	if err := r.surface.Show(); err != nil {
		return fmt.Errorf("show frame %d: %w", r.frame, err)
	}
	return nil
}

func (r *Renderer) drawColumn(col int) error {
	d := &r.droplets[col]

	if !d.Advance() {
		return nil
	}
	r.stats.Moved++

	if d.IsExhausted(r.rows) {
		// Replacement starts invisible; it is drawn on its own first step
		*d = rain.Spawn(r.rng, r.rows)
		r.stats.Respawned++
		if r.OnRespawn != nil {
			r.OnRespawn(col)
		}
		return nil
	}

	// Whole visible trail, head first, each cell with a new glyph
	for dist := 0; dist <= d.Len; dist++ {
		row := d.Row - dist
		if row < 0 || row >= r.rows {
			continue
		}
		if err := r.surface.Paint(col, row, Gradient(d.Len, dist), Glyph(r.rng)); err != nil {
			return fmt.Errorf("paint %d,%d: %w", col, row, err)
		}
		r.stats.Painted++
	}

	// Blank the cell behind the tail once the trail is fully on screen
	if d.Row > d.Len-1 {
		row := d.Row - d.Len
		if err := r.surface.Erase(col, row); err != nil {
			return fmt.Errorf("erase %d,%d: %w", col, row, err)
		}
		r.stats.Erased++
	}
	return nil
}

// Stats returns the counters of the most recent frame
func (r *Renderer) Stats() FrameStats {
	return r.stats
}

// Droplets returns a copy of the per-column state
func (r *Renderer) Droplets() []rain.Droplet {
	out := make([]rain.Droplet, len(r.droplets))
	copy(out, r.droplets)
	return out
}

// SetDroplet replaces the droplet of one column, for seeding specific states
func (r *Renderer) SetDroplet(col int, d rain.Droplet) {
	r.droplets[col] = d
}
