package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 表示一个游戏场景（主菜单、游戏关卡等）
// 每个场景有自己的更新和渲染逻辑
type Scene interface {
	// Update 根据流逝时间更新场景逻辑
	// deltaTime 为距上一次更新的时间（秒）
	Update(deltaTime float64)

	// Draw 将场景渲染到目标画面
	Draw(screen *ebiten.Image)
}
