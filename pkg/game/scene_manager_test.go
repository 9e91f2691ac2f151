package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// stubScene 记录更新次数的测试场景
type stubScene struct {
	levelID string
	updates int
}

func (s *stubScene) Update(deltaTime float64) { s.updates++ }
func (s *stubScene) Draw(screen *ebiten.Image) {}

// TestSceneManagerSwitchAndUpdate 测试场景切换与更新分发
func TestSceneManagerSwitchAndUpdate(t *testing.T) {
	sm := NewSceneManager()

	if sm.CurrentScene() != nil {
		t.Fatal("new manager should have no active scene")
	}
	// 没有场景时更新是空操作
	sm.Update(1.0 / 60.0)

	scene := &stubScene{}
	sm.SwitchTo(scene)
	sm.Update(1.0 / 60.0)
	sm.Update(1.0 / 60.0)

	if scene.updates != 2 {
		t.Errorf("active scene updates: got %d, want 2", scene.updates)
	}
}

// TestLoadLevelUsesFactory 测试关卡加载经由工厂函数
func TestLoadLevelUsesFactory(t *testing.T) {
	sm := NewSceneManager()

	// 工厂未设置时加载被忽略
	sm.LoadLevel("1-1")
	if sm.CurrentScene() != nil {
		t.Fatal("LoadLevel without a factory must not switch scenes")
	}

	sm.SetSceneFactory(func(levelID string) Scene {
		if levelID == "broken" {
			return nil
		}
		return &stubScene{levelID: levelID}
	})

	sm.LoadLevel("1-1")
	scene, ok := sm.CurrentScene().(*stubScene)
	if !ok || scene.levelID != "1-1" {
		t.Fatalf("factory scene not active: %#v", sm.CurrentScene())
	}

	// 工厂返回 nil 时保持当前场景
	sm.LoadLevel("broken")
	if sm.CurrentScene() != Scene(scene) {
		t.Error("failed level load must keep the previous scene")
	}
}
