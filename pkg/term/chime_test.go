package term

import (
	"math"
	"testing"

	chime "github.com/decker502/rising/internal/audio"
)

func TestStreamerLength(t *testing.T) {
	p := chime.DefaultChime()
	st := Streamer(p, SampleRate, 1)

	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for {
		n, ok := st.Stream(buf)
		for _, s := range buf[:n] {
			if s[0] != s[1] {
				t.Fatal("channels should carry the same signal")
			}
			peak = math.Max(peak, math.Abs(s[0]))
		}
		total += n
		if !ok {
			break
		}
	}

	if want := chime.NewChime(p, int(SampleRate)).Len(); total != want {
		t.Errorf("expected %d samples, got %d", want, total)
	}
	if peak > p.Peak+1e-9 {
		t.Errorf("peak %.3f above %.3f", peak, p.Peak)
	}
}

func TestChimerWithoutSpeaker(t *testing.T) {
	var nilChimer *Chimer
	if nilChimer.PlayChime() || nilChimer.Toggle() {
		t.Error("nil chimer should stay silent")
	}

	c := NewChimer(nil)
	if !c.Enabled() {
		t.Error("chime is enabled by default")
	}
	if c.PlayChime() {
		t.Error("PlayChime before Init should report false")
	}
}
