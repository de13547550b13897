package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Shape switch chime
const (
	// ChimeDuration is the length of the cue played on shape switch
	ChimeDuration = 60 * time.Millisecond

	// Chime pitches per shape (C5, E5, G5)
	ChimeFreqSaturn = 523.25
	ChimeFreqHeart  = 659.25
	ChimeFreqSphere = 783.99
)
