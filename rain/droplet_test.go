package rain

import (
	"testing"

	"github.com/lixenwraith/rain/parameter"
	"github.com/lixenwraith/rain/vmath"
)

// scriptedRandom replays fixed values and records the bounds it was asked for
type scriptedRandom struct {
	ints   []int
	floats []float64
	intns  []int
}

func (s *scriptedRandom) Intn(n int) int {
	s.intns = append(s.intns, n)
	if n <= 0 {
		return 0
	}
	v := s.nextInt()
	return v % n
}

func (s *scriptedRandom) IntRange(lo, hi int) int {
	v := s.nextInt()
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (s *scriptedRandom) FloatRange(lo, hi float64) float64 {
	if len(s.floats) == 0 {
		return lo
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedRandom) nextInt() int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v
}

func TestSpawn_TopBandSingleCell(t *testing.T) {
	rng := &scriptedRandom{ints: []int{7, 12}, floats: []float64{0.5}}

	d := Spawn(rng, 40)

	if d.Row != 7 {
		t.Errorf("Row = %d, want 7", d.Row)
	}
	if d.Len != 1 {
		t.Errorf("Len = %d, want 1", d.Len)
	}
	if d.MaxLen != 12 {
		t.Errorf("MaxLen = %d, want 12", d.MaxLen)
	}
	if d.Frame != 1.0 {
		t.Errorf("Frame = %v, want primed 1.0", d.Frame)
	}
	if d.Speed != 0.5 {
		t.Errorf("Speed = %v, want 0.5", d.Speed)
	}
	if len(rng.intns) != 1 || rng.intns[0] != 10 {
		t.Errorf("row bound requested = %v, want [10]", rng.intns)
	}
}

func TestSpawn_ShortScreen(t *testing.T) {
	// rows/4 == 0 leaves only row 0
	rng := vmath.NewFastRand(3)
	for i := 0; i < 50; i++ {
		d := Spawn(rng, 3)
		if d.Row != 0 {
			t.Fatalf("Row = %d on a 3-row screen, want 0", d.Row)
		}
	}
}

func TestSpawn_RandomRanges(t *testing.T) {
	rng := vmath.NewFastRand(42)
	const rows = 48

	for i := 0; i < 10000; i++ {
		d := Spawn(rng, rows)
		if d.Row < 0 || d.Row >= rows/4 {
			t.Fatalf("Row %d outside [0, %d)", d.Row, rows/4)
		}
		if d.MaxLen < parameter.DropletMinLength || d.MaxLen > parameter.DropletMaxLength {
			t.Fatalf("MaxLen %d outside [%d, %d]", d.MaxLen, parameter.DropletMinLength, parameter.DropletMaxLength)
		}
		if d.Speed < parameter.DropletMinSpeed || d.Speed > parameter.DropletMaxSpeed {
			t.Fatalf("Speed %v outside [%v, %v]", d.Speed, parameter.DropletMinSpeed, parameter.DropletMaxSpeed)
		}
		if err := d.Valid(); err != nil {
			t.Fatalf("spawned droplet invalid: %v (%s)", err, d)
		}
	}
}

func TestInitialSpawn_FullLength(t *testing.T) {
	rng := vmath.NewFastRand(7)
	const rows = 30
	seen := make(map[int]bool)

	for i := 0; i < 5000; i++ {
		d := InitialSpawn(rng, rows)
		if d.Len != d.MaxLen {
			t.Fatalf("Len %d != MaxLen %d at startup", d.Len, d.MaxLen)
		}
		if d.Row < 0 || d.Row >= rows {
			t.Fatalf("Row %d outside [0, %d)", d.Row, rows)
		}
		if d.Frame != 1.0 {
			t.Fatalf("Frame = %v, want 1.0", d.Frame)
		}
		seen[d.Row] = true
	}

	// Startup rows must cover the whole screen, not just the top band
	if !seen[rows-1] {
		t.Errorf("bottom row never chosen in 5000 startup spawns")
	}
}

func TestAdvance_GrowthScenario(t *testing.T) {
	d := Droplet{Row: 0, Len: 1, MaxLen: 3, Frame: 0.0, Speed: 1.0}

	steps := []struct {
		row, len int
		frame    float64
	}{
		{1, 2, 0.0},
		{2, 3, 0.0},
		{3, 3, 0.0}, // clamped at MaxLen
	}

	for i, want := range steps {
		if !d.Advance() {
			t.Fatalf("step %d: Advance reported no row step at speed 1.0", i)
		}
		if d.Row != want.row || d.Len != want.len || d.Frame != want.frame {
			t.Errorf("step %d: got %s, want row=%d len=%d frame=%.1f", i, d, want.row, want.len, want.frame)
		}
	}
}

func TestAdvance_PrimedFrameStepsImmediately(t *testing.T) {
	d := Droplet{Row: 4, Len: 1, MaxLen: 5, Frame: 1.0, Speed: 0.2}

	if !d.Advance() {
		t.Fatal("primed droplet did not step on first tick")
	}
	if d.Row != 5 || d.Len != 2 {
		t.Errorf("got %s, want row=5 len=2", d)
	}
}

func TestAdvance_RestsBetweenSteps(t *testing.T) {
	d := Droplet{Row: 0, Len: 1, MaxLen: 4, Frame: 0.0, Speed: 0.25}

	moves := 0
	for i := 0; i < 8; i++ {
		if d.Advance() {
			moves++
		}
	}

	if moves != 2 {
		t.Errorf("moves = %d over 8 ticks at speed 0.25, want 2", moves)
	}
	if d.Row != 2 {
		t.Errorf("Row = %d, want 2", d.Row)
	}
}

func TestAdvance_Invariants(t *testing.T) {
	rng := vmath.NewFastRand(99)

	for n := 0; n < 200; n++ {
		d := Spawn(rng, 80)
		prevRow := d.Row
		for i := 0; i < 500; i++ {
			d.Advance()
			if d.Len < 1 || d.Len > d.MaxLen {
				t.Fatalf("len invariant broken: %s", d)
			}
			if d.Frame > 1.0 {
				t.Fatalf("frame exceeds 1.0 after Advance: %s", d)
			}
			if d.Row < prevRow {
				t.Fatalf("row decreased from %d to %d", prevRow, d.Row)
			}
			prevRow = d.Row
		}
	}
}

func TestIsExhausted(t *testing.T) {
	tests := []struct {
		name string
		row  int
		len  int
		rows int
		want bool
	}{
		{"on screen", 3, 3, 5, false},
		{"head below, tail visible", 7, 3, 5, false},
		{"tail just left", 8, 3, 5, true},
		{"far below", 30, 1, 5, true},
		{"single cell boundary", 6, 1, 5, true},
		{"single cell last visible tick", 5, 1, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Droplet{Row: tt.row, Len: tt.len, MaxLen: tt.len, Speed: 1}
			if got := d.IsExhausted(tt.rows); got != tt.want {
				t.Errorf("IsExhausted(%d) for row=%d len=%d = %v, want %v", tt.rows, tt.row, tt.len, got, tt.want)
			}
		})
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		name    string
		d       Droplet
		wantErr bool
	}{
		{"ok", Droplet{Row: 0, Len: 1, MaxLen: 2, Frame: 1, Speed: 1}, false},
		{"zero length", Droplet{Row: 0, Len: 0, MaxLen: 2, Frame: 0, Speed: 1}, true},
		{"overlong", Droplet{Row: 0, Len: 3, MaxLen: 2, Frame: 0, Speed: 1}, true},
		{"zero speed", Droplet{Row: 0, Len: 1, MaxLen: 2, Frame: 0, Speed: 0}, true},
		{"fast", Droplet{Row: 0, Len: 1, MaxLen: 2, Frame: 0, Speed: 1.5}, true},
		{"frame over", Droplet{Row: 0, Len: 1, MaxLen: 2, Frame: 1.1, Speed: 1}, true},
		{"negative frame ok", Droplet{Row: 0, Len: 1, MaxLen: 2, Frame: -0.5, Speed: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.Valid()
			if (err != nil) != tt.wantErr {
				t.Errorf("Valid() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSpawn_Deterministic(t *testing.T) {
	a := vmath.NewFastRand(1234)
	b := vmath.NewFastRand(1234)

	for i := 0; i < 100; i++ {
		da, db := Spawn(a, 60), Spawn(b, 60)
		if da != db {
			t.Fatalf("spawn %d diverged: %s vs %s", i, da, db)
		}
	}
}
