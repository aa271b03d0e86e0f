// Package audio synthesizes the celebration chime.
//
// The chime is a sine tone gliding exponentially from 880 Hz to 660 Hz under
// an exponential attack/decay envelope. Chime produces mono float samples for
// sample-oriented mixers; PCMStream renders the same signal as 16-bit
// little-endian stereo for byte-oriented players.
package audio

import (
	"fmt"
	"io"
	"math"
	"time"
)

// ChimeParams describes the tone and its envelope.
type ChimeParams struct {
	StartFreq float64       // Hz at t=0
	EndFreq   float64       // Hz once the glide is done
	Glide     time.Duration // exponential frequency ramp length
	Attack    time.Duration // gain ramp from Floor to Peak
	Release   time.Duration // time at which gain is back to Floor
	Duration  time.Duration // oscillator stop time
	Peak      float64
	Floor     float64 // exponential ramps cannot start from 0
}

// DefaultChime returns the celebration chime.
func DefaultChime() ChimeParams {
	return ChimeParams{
		StartFreq: 880,
		EndFreq:   660,
		Glide:     120 * time.Millisecond,
		Attack:    20 * time.Millisecond,
		Release:   1200 * time.Millisecond,
		Duration:  1250 * time.Millisecond,
		Peak:      0.25,
		Floor:     0.0001,
	}
}

// expRamp interpolates exponentially from v0 to v1 as x goes from 0 to 1.
func expRamp(v0, v1, x float64) float64 {
	if x <= 0 {
		return v0
	}
	if x >= 1 {
		return v1
	}
	return v0 * math.Pow(v1/v0, x)
}

// Frequency returns the oscillator frequency at t seconds.
func (p ChimeParams) Frequency(t float64) float64 {
	return expRamp(p.StartFreq, p.EndFreq, t/p.Glide.Seconds())
}

// Gain returns the envelope value at t seconds.
func (p ChimeParams) Gain(t float64) float64 {
	attack := p.Attack.Seconds()
	if t < attack {
		return expRamp(p.Floor, p.Peak, t/attack)
	}
	return expRamp(p.Peak, p.Floor, (t-attack)/(p.Release.Seconds()-attack))
}

// Chime is a running oscillator. It is not safe for concurrent use.
type Chime struct {
	params     ChimeParams
	sampleRate int
	phase      float64
	n          int
	total      int
}

// NewChime starts a chime rendered at sampleRate.
func NewChime(p ChimeParams, sampleRate int) *Chime {
	return &Chime{
		params:     p,
		sampleRate: sampleRate,
		total:      int(p.Duration.Seconds() * float64(sampleRate)),
	}
}

// Next returns the next sample in [-Peak, Peak]. Past the end it returns 0.
func (c *Chime) Next() float64 {
	if c.n >= c.total {
		return 0
	}
	t := float64(c.n) / float64(c.sampleRate)
	v := math.Sin(2*math.Pi*c.phase) * c.params.Gain(t)

	c.phase += c.params.Frequency(t) / float64(c.sampleRate)
	c.phase -= math.Floor(c.phase)
	c.n++
	return v
}

// Done reports whether every sample was produced.
func (c *Chime) Done() bool {
	return c.n >= c.total
}

// Len returns the total number of samples.
func (c *Chime) Len() int {
	return c.total
}

// PCMStream is the chime rendered to 16-bit little-endian stereo PCM.
// It implements io.ReadSeeker and Length for byte-oriented audio players.
type PCMStream struct {
	data   []byte
	offset int64
}

// RenderPCM renders p at sampleRate with the given volume (0..1). The peak
// gain maps to the full 16-bit range.
func RenderPCM(p ChimeParams, sampleRate int, volume float64) *PCMStream {
	c := NewChime(p, sampleRate)
	scale := volume / p.Peak * math.MaxInt16

	data := make([]byte, c.Len()*4)
	for i := 0; i < c.Len(); i++ {
		s := int16(math.Max(math.MinInt16, math.Min(math.MaxInt16, c.Next()*scale)))
		// left and right channel
		data[i*4] = byte(s)
		data[i*4+1] = byte(s >> 8)
		data[i*4+2] = byte(s)
		data[i*4+3] = byte(s >> 8)
	}
	return &PCMStream{data: data}
}

// Bytes returns the raw PCM.
func (s *PCMStream) Bytes() []byte {
	return s.data
}

// Read implements io.Reader.
func (s *PCMStream) Read(p []byte) (int, error) {
	if s.offset >= int64(len(s.data)) {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.offset:])
	s.offset += int64(n)
	return n, nil
}

// Seek implements io.Seeker.
func (s *PCMStream) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = s.offset + offset
	case io.SeekEnd:
		next = int64(len(s.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if next < 0 {
		return 0, fmt.Errorf("negative position: %d", next)
	}
	s.offset = next
	return next, nil
}

// Length returns the stream size in bytes.
func (s *PCMStream) Length() int64 {
	return int64(len(s.data))
}
