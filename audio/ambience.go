package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/rain/parameter"
	"github.com/lixenwraith/rain/status"
	"github.com/lixenwraith/rain/vmath"
)

const (
	sampleRate = beep.SampleRate(parameter.AudioSampleRate)
	lowPass    = parameter.AmbienceLowPass
	smoothing  = parameter.AmbienceSmoothing
)

// Ambience is the rain soundscape: a filtered noise bed that swells with droplet activity
// plus occasional drips on respawn. It is itself the streamer handed to the speaker.
type Ambience struct {
	// intensity is written by the render loop and read by the speaker goroutine
	intensity status.Level

	mu    sync.Mutex
	mixer *beep.Mixer
	noise *rainNoise
	rng   *vmath.FastRand

	ctl     sync.Mutex
	started bool
}

// NewAmbience builds the mixer graph without touching the audio device
func NewAmbience(seed uint64) *Ambience {
	rng := vmath.NewFastRand(seed)
	a := &Ambience{
		mixer: &beep.Mixer{},
		rng:   rng,
	}
	a.noise = newRainNoise(rng, &a.intensity, parameter.AmbienceFloor)
	a.mixer.Add(newVolume(a.noise, parameter.AmbienceMasterVolume))
	return a
}

// Start opens the speaker and begins playback; calling it twice is a no-op
func (a *Ambience) Start() error {
	a.ctl.Lock()
	defer a.ctl.Unlock()

	if a.started {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(a)
	a.started = true
	return nil
}

// Stop closes the speaker if Start succeeded
func (a *Ambience) Stop() {
	a.ctl.Lock()
	defer a.ctl.Unlock()

	if !a.started {
		return
	}
	speaker.Close()
	a.started = false
}

// SetIntensity sets the noise target from a 0..1 activity ratio, values outside are clamped.
// The bed never drops below the configured floor.
func (a *Ambience) SetIntensity(activity float64) {
	a.intensity.Store(activity)
}

// Drip plays a short pitched blip with a small fixed probability and reports whether it did
func (a *Ambience) Drip() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.rng.Unit() >= parameter.AmbienceDripChance {
		return false
	}
	freq := parameter.DripBaseFreq + parameter.DripFreqSpread*a.rng.Unit()
	blip := newEnvelope(
		newTone(freq, parameter.DripDuration, sampleRate),
		parameter.DripDuration, parameter.DripAttack, parameter.DripRelease, sampleRate,
	)
	a.mixer.Add(newVolume(blip, parameter.AmbienceMasterVolume))
	return true
}

// Stream mixes the bed and any live drips, called from the speaker goroutine
func (a *Ambience) Stream(samples [][2]float64) (n int, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mixer.Stream(samples)
}

func (a *Ambience) Err() error { return nil }
