package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/gonewx/platformer/pkg/game"
)

// defaultLevelID 主菜单确认后进入的关卡
const defaultLevelID = "1-1"

// MenuScene 主菜单场景
type MenuScene struct {
	sceneManager *game.SceneManager
	gameState    *game.GameState
	input        game.InputProvider
	audio        game.AudioPlayer
}

// NewMenuScene 创建主菜单场景
func NewMenuScene(sm *game.SceneManager, gs *game.GameState, input game.InputProvider, audio game.AudioPlayer) *MenuScene {
	return &MenuScene{
		sceneManager: sm,
		gameState:    gs,
		input:        input,
		audio:        audio,
	}
}

// Update 等待确认键开始游戏
func (s *MenuScene) Update(deltaTime float64) {
	if s.input.JustPressed(game.ActionConfirm) {
		if s.gameState.TransitionTo(game.StatePlaying) {
			s.audio.PlaySound("confirm")
			s.sceneManager.LoadLevel(defaultLevelID)
		}
	}
}

// Draw 渲染菜单文字
func (s *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 16, G: 18, B: 28, A: 255})
	ebitenutil.DebugPrintAt(screen, "PLATFORMER", ViewportWidth/2-40, ViewportHeight/2-40)
	ebitenutil.DebugPrintAt(screen, "Press Enter to start", ViewportWidth/2-70, ViewportHeight/2)
}
