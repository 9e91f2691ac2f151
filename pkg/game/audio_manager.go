package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioPlayer 音频提供者接口
//
// 物理/状态事件（落地、跳跃、受击、拾取）通过它触发音效，
// 调用是 fire-and-forget 的：缺失的音效记录日志后静默忽略，
// 绝不向游戏逻辑传播错误。
type AudioPlayer interface {
	// PlaySound 播放一个音效
	PlaySound(soundID string)
	// PlaySoundVolume 以指定音量（0~1，相对设置音量）播放一个音效
	PlaySoundVolume(soundID string, volume float64)
	// PlayMusic 循环播放背景音乐，同一时间只有一首
	PlayMusic(musicID string)
	// StopMusic 停止背景音乐
	StopMusic()
}

// AudioManager 基于 ebiten audio 的音频管理器
//
// 职责：
//   - 统一管理音效和背景音乐的播放
//   - 从 SettingsManager 读取音量设置并自动应用
//   - 音频数据由外部资源加载器通过 RegisterSound 注入
//     （资源加载本身不在引擎核心范围内）
type AudioManager struct {
	audioContext    *audio.Context
	settingsManager *SettingsManager

	soundData    map[string][]byte        // 资源ID -> 解码后的PCM数据
	soundPlayers map[string]*audio.Player // 音效播放器缓存

	currentMusic   *audio.Player
	currentMusicID string
}

// NewAudioManager 创建音频管理器
//
// 参数:
//   - ctx: ebiten 音频上下文
//   - sm: 设置管理器（用于读取音量设置，可为 nil）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		audioContext:    ctx,
		settingsManager: sm,
		soundData:       make(map[string][]byte),
		soundPlayers:    make(map[string]*audio.Player),
	}
}

// RegisterSound 注册一段解码后的音频数据
// 同一ID重复注册会覆盖旧数据并丢弃缓存的播放器
func (am *AudioManager) RegisterSound(soundID string, data []byte) {
	am.soundData[soundID] = data
	delete(am.soundPlayers, soundID)
}

// PlaySound 播放音效
func (am *AudioManager) PlaySound(soundID string) {
	am.PlaySoundVolume(soundID, 1.0)
}

// PlaySoundVolume 以指定相对音量播放音效
func (am *AudioManager) PlaySoundVolume(soundID string, volume float64) {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return
	}

	player := am.getPlayer(soundID)
	if player == nil {
		return
	}

	player.SetVolume(am.soundVolume() * volume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()
}

// PlayMusic 循环播放背景音乐
func (am *AudioManager) PlayMusic(musicID string) {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().MusicEnabled {
		return
	}
	if am.currentMusicID == musicID && am.currentMusic != nil && am.currentMusic.IsPlaying() {
		return
	}

	am.StopMusic()

	player := am.getPlayer(musicID)
	if player == nil {
		return
	}

	player.SetVolume(am.musicVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind music %s: %v", musicID, err)
	}
	player.Play()

	am.currentMusic = player
	am.currentMusicID = musicID
	log.Printf("[AudioManager] Playing music: %s", musicID)
}

// StopMusic 停止当前背景音乐
func (am *AudioManager) StopMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
		am.currentMusic = nil
		am.currentMusicID = ""
	}
}

// getPlayer 获取或创建指定资源的播放器
// 资源未注册时记录日志并返回 nil（调用方静默忽略）
func (am *AudioManager) getPlayer(soundID string) *audio.Player {
	if player, ok := am.soundPlayers[soundID]; ok {
		return player
	}

	data, ok := am.soundData[soundID]
	if !ok {
		log.Printf("[AudioManager] Warning: sound %s not registered, ignoring", soundID)
		return nil
	}

	player := am.audioContext.NewPlayerFromBytes(data)
	am.soundPlayers[soundID] = player
	return player
}

func (am *AudioManager) soundVolume() float64 {
	if am.settingsManager == nil {
		return 1.0
	}
	return am.settingsManager.GetSettings().SoundVolume
}

func (am *AudioManager) musicVolume() float64 {
	if am.settingsManager == nil {
		return 1.0
	}
	return am.settingsManager.GetSettings().MusicVolume
}

// NullAudioPlayer 空音频实现
// 测试和无音频环境下替代 AudioManager
type NullAudioPlayer struct{}

// PlaySound 什么也不做
func (NullAudioPlayer) PlaySound(string) {}

// PlaySoundVolume 什么也不做
func (NullAudioPlayer) PlaySoundVolume(string, float64) {}

// PlayMusic 什么也不做
func (NullAudioPlayer) PlayMusic(string) {}

// StopMusic 什么也不做
func (NullAudioPlayer) StopMusic() {}
