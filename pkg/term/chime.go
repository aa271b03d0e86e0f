package term

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	chime "github.com/decker502/rising/internal/audio"
	"github.com/decker502/rising/pkg/game"
)

// SampleRate is the speaker rate of the terminal host.
const SampleRate = beep.SampleRate(44100)

// Chimer plays the celebration chime through the beep speaker. It implements
// engine.Chimer. Without Init, or with a nil receiver, it stays silent.
type Chimer struct {
	mu       sync.Mutex
	settings *game.SettingsManager // 可为 nil（使用默认设置）
	params   chime.ChimeParams
	ready    bool
}

// NewChimer creates a chimer that follows the chime settings.
func NewChimer(settings *game.SettingsManager) *Chimer {
	return &Chimer{
		settings: settings,
		params:   chime.DefaultChime(),
	}
}

// Init opens the speaker.
func (c *Chimer) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ready {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return err
	}
	c.ready = true
	return nil
}

// Enabled reports the chime setting.
func (c *Chimer) Enabled() bool {
	if c == nil || c.settings == nil {
		return game.DefaultSettings().ChimeEnabled
	}
	return c.settings.Settings().ChimeEnabled
}

// Toggle flips and saves the chime setting, returning the new state.
func (c *Chimer) Toggle() bool {
	if c == nil || c.settings == nil {
		return false
	}
	enabled := c.settings.ToggleChime()
	if err := c.settings.Save(); err != nil {
		log.Printf("[Chimer] Warning: Failed to save settings: %v", err)
	}
	return enabled
}

// PlayChime implements engine.Chimer.
func (c *Chimer) PlayChime() bool {
	if c == nil || !c.Enabled() {
		return false
	}
	c.mu.Lock()
	ready := c.ready
	c.mu.Unlock()
	if !ready {
		return false
	}

	volume := game.DefaultSettings().ChimeVolume
	if c.settings != nil {
		volume = c.settings.Settings().ChimeVolume
	}
	speaker.Play(Streamer(c.params, SampleRate, volume))
	return true
}

// Streamer renders one chime as a finite stereo stream.
func Streamer(p chime.ChimeParams, sr beep.SampleRate, volume float64) beep.Streamer {
	osc := chime.NewChime(p, int(sr))
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			if osc.Done() {
				return i, i > 0
			}
			v := osc.Next() * volume
			samples[i][0] = v
			samples[i][1] = v
		}
		return len(samples), true
	})
}
