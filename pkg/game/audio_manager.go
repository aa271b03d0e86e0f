package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	chime "github.com/decker502/rising/internal/audio"
)

// chimeVoice 一次提示音播放（*audio.Player 满足此接口）
type chimeVoice interface {
	SetVolume(volume float64)
	Play()
	Pause()
	IsPlaying() bool
}

// AudioManager 音频管理器
// 职责：
//   - 合成并缓存庆祝提示音 PCM
//   - 每次播放创建独立的播放器，连续庆祝时提示音可以重叠
//   - 与 SettingsManager 联动（开关、音量）
//
// audioContext 为 nil 时进入降级模式：所有播放调用静默返回 false。
type AudioManager struct {
	audioContext    *audio.Context   // 可为 nil（无音频设备）
	settingsManager *SettingsManager // 可为 nil（使用默认设置）

	newVoice func() chimeVoice // nil 表示降级模式
	voices   []chimeVoice      // 仍在播放的提示音
}

// NewAudioManager 创建音频管理器并预先合成提示音
func NewAudioManager(audioContext *audio.Context, sm *SettingsManager) *AudioManager {
	am := &AudioManager{
		audioContext:    audioContext,
		settingsManager: sm,
	}

	if audioContext == nil {
		log.Printf("[AudioManager] Warning: no audio context, chime disabled")
		return am
	}

	pcm := chime.RenderPCM(chime.DefaultChime(), audioContext.SampleRate(), 1).Bytes()
	am.newVoice = func() chimeVoice {
		return audioContext.NewPlayerFromBytes(pcm)
	}
	return am
}

// PlayChime 播放庆祝提示音，不会打断仍在播放的提示音
// 提示音被关闭或处于降级模式时返回 false
func (am *AudioManager) PlayChime() bool {
	if am == nil || am.newVoice == nil || !am.ChimeEnabled() {
		return false
	}

	am.pruneVoices()
	v := am.newVoice()
	v.SetVolume(am.chimeVolume())
	v.Play()
	am.voices = append(am.voices, v)
	return true
}

// pruneVoices 移除已播放完毕的提示音
func (am *AudioManager) pruneVoices() {
	live := am.voices[:0]
	for _, v := range am.voices {
		if v.IsPlaying() {
			live = append(live, v)
		}
	}
	clear(am.voices[len(live):])
	am.voices = live
}

// ChimeEnabled 返回提示音开关
func (am *AudioManager) ChimeEnabled() bool {
	if am == nil || am.settingsManager == nil {
		return DefaultSettings().ChimeEnabled
	}
	return am.settingsManager.Settings().ChimeEnabled
}

// ToggleChime 切换提示音开关并持久化，返回新状态
func (am *AudioManager) ToggleChime() bool {
	if am == nil || am.settingsManager == nil {
		return false
	}
	enabled := am.settingsManager.ToggleChime()
	if err := am.settingsManager.Save(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to save settings: %v", err)
	}
	if !enabled {
		for _, v := range am.voices {
			v.Pause()
		}
		am.voices = nil
	}
	log.Printf("[AudioManager] Chime enabled: %v", enabled)
	return enabled
}

func (am *AudioManager) chimeVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.Settings().ChimeVolume
	}
	return DefaultSettings().ChimeVolume
}
