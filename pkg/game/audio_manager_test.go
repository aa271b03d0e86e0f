package game

import "testing"

// TestAudioManagerWithoutContext 测试无音频设备时的降级模式
func TestAudioManagerWithoutContext(t *testing.T) {
	sm := NewSettingsManager(nil)
	am := NewAudioManager(nil, sm)

	if am.PlayChime() {
		t.Error("PlayChime() without audio context should report false")
	}
	if !am.ChimeEnabled() {
		t.Error("chime should be enabled by default")
	}
	if am.ToggleChime() {
		t.Error("ToggleChime() should disable the chime")
	}
	if am.ChimeEnabled() || sm.Settings().ChimeEnabled {
		t.Error("toggle should update the settings")
	}
}

// TestNilAudioManager 测试 nil 接收者
func TestNilAudioManager(t *testing.T) {
	var am *AudioManager
	if am.PlayChime() {
		t.Error("nil manager should not play")
	}
	if am.ToggleChime() {
		t.Error("nil manager toggle should report false")
	}
}

// fakeVoice 记录播放状态的假播放器
type fakeVoice struct {
	volume  float64
	playing bool
	paused  bool
}

func (v *fakeVoice) SetVolume(volume float64) { v.volume = volume }
func (v *fakeVoice) Play()                    { v.playing = true }
func (v *fakeVoice) Pause()                   { v.playing, v.paused = false, true }
func (v *fakeVoice) IsPlaying() bool          { return v.playing }

func newFakeAudioManager(sm *SettingsManager) (*AudioManager, *[]*fakeVoice) {
	var created []*fakeVoice
	am := NewAudioManager(nil, sm)
	am.newVoice = func() chimeVoice {
		v := &fakeVoice{}
		created = append(created, v)
		return v
	}
	return am, &created
}

// TestChimesOverlap 测试连续播放时前一个提示音不被打断
func TestChimesOverlap(t *testing.T) {
	am, created := newFakeAudioManager(NewSettingsManager(nil))

	if !am.PlayChime() || !am.PlayChime() {
		t.Fatal("PlayChime() should succeed")
	}
	voices := *created
	if len(voices) != 2 {
		t.Fatalf("expected one player per chime, got %d", len(voices))
	}
	if !voices[0].playing || voices[0].paused {
		t.Error("second chime must not cut off the first")
	}
	if voices[1].volume != DefaultSettings().ChimeVolume {
		t.Errorf("expected volume %.2f, got %.2f", DefaultSettings().ChimeVolume, voices[1].volume)
	}

	// 播放完毕的提示音被回收
	voices[0].playing = false
	am.PlayChime()
	if len(am.voices) != 2 {
		t.Errorf("finished chimes should be pruned, %d tracked", len(am.voices))
	}
}

// TestMuteStopsPlayingChimes 测试关闭提示音时停止正在播放的提示音
func TestMuteStopsPlayingChimes(t *testing.T) {
	am, created := newFakeAudioManager(NewSettingsManager(nil))
	am.PlayChime()
	am.PlayChime()

	if am.ToggleChime() {
		t.Fatal("ToggleChime() should disable the chime")
	}
	for i, v := range *created {
		if !v.paused {
			t.Errorf("chime %d should be paused on mute", i)
		}
	}
	if am.PlayChime() {
		t.Error("muted manager should not play")
	}
}
