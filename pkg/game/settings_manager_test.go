package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// newTestGdataManager 在临时 HOME 下创建 gdata Manager
func newTestGdataManager(t *testing.T, appName string) *gdata.Manager {
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestDefaultSettings 测试默认设置值
func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.MusicVolume != 0.7 {
		t.Errorf("default music volume: got %v, want 0.7", s.MusicVolume)
	}
	if s.SoundVolume != 0.8 {
		t.Errorf("default sound volume: got %v, want 0.8", s.SoundVolume)
	}
	if !s.MusicEnabled || !s.SoundEnabled {
		t.Error("music and sound should be enabled by default")
	}
	if s.Fullscreen {
		t.Error("fullscreen should be off by default")
	}
}

// TestSettingsManagerDegradedMode 测试 gdata 不可用时的降级模式
func TestSettingsManagerDegradedMode(t *testing.T) {
	sm := NewSettingsManager(nil)

	if sm.GetSettings().MusicVolume != 0.7 {
		t.Error("degraded mode should use default settings")
	}

	// 降级模式下修改只存在于内存，不报错
	sm.SetMusicVolume(0.3)
	if sm.GetSettings().MusicVolume != 0.3 {
		t.Errorf("in-memory setting: got %v, want 0.3", sm.GetSettings().MusicVolume)
	}
	if err := sm.Save(); err != nil {
		t.Errorf("Save in degraded mode should be a no-op, got %v", err)
	}
}

// TestSettingsSaveLoadRoundTrip 测试设置持久化往返
func TestSettingsSaveLoadRoundTrip(t *testing.T) {
	m := newTestGdataManager(t, "platformer_settings_test")

	sm := NewSettingsManager(m)
	sm.SetMusicVolume(0.25)
	sm.SetSoundEnabled(false)
	sm.SetFullscreen(true)

	// 新的管理器从同一存储加载
	sm2 := NewSettingsManager(m)
	s := sm2.GetSettings()
	if s.MusicVolume != 0.25 {
		t.Errorf("loaded music volume: got %v, want 0.25", s.MusicVolume)
	}
	if s.SoundEnabled {
		t.Error("sound enabled flag should persist as false")
	}
	if !s.Fullscreen {
		t.Error("fullscreen flag should persist as true")
	}
	// 未修改的字段保持默认
	if s.SoundVolume != 0.8 {
		t.Errorf("untouched sound volume: got %v, want 0.8", s.SoundVolume)
	}
}

// TestVolumeClamping 测试音量钳制到 0~1
func TestVolumeClamping(t *testing.T) {
	sm := NewSettingsManager(nil)

	sm.SetMusicVolume(1.5)
	if sm.GetSettings().MusicVolume != 1.0 {
		t.Errorf("over-range volume should clamp to 1, got %v", sm.GetSettings().MusicVolume)
	}
	sm.SetSoundVolume(-0.5)
	if sm.GetSettings().SoundVolume != 0.0 {
		t.Errorf("negative volume should clamp to 0, got %v", sm.GetSettings().SoundVolume)
	}
}
