package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Rain Ambience
const (
	// AmbienceMasterVolume is the linear gain applied to the noise bed
	AmbienceMasterVolume = 0.25

	// AmbienceFloor is the gain kept when no droplet moves, so the bed never fully drops out
	AmbienceFloor = 0.15

	// AmbienceSmoothing is the per-sample approach rate toward the target intensity
	AmbienceSmoothing = 0.0005

	// AmbienceLowPass is the one-pole filter coefficient; lower is darker
	AmbienceLowPass = 0.08

	// AmbienceDripChance is the per-respawn probability of an audible drip
	AmbienceDripChance = 0.02

	// DripDuration and DripRelease shape the short sine blip of a drip
	DripDuration = 60 * time.Millisecond
	DripAttack   = 2 * time.Millisecond
	DripRelease  = 40 * time.Millisecond

	// DripBaseFreq is the lowest drip pitch in Hz; DripFreqSpread adds a random offset on top
	DripBaseFreq   = 900.0
	DripFreqSpread = 700.0
)
