// Package game 提供跨场景的管理器：输入、音频、设置、场景切换和全局游戏状态
package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action 逻辑输入动作
//
// 玩家控制系统只依赖逻辑动作，不关心具体按键/手柄设备。
type Action int

const (
	// ActionMoveLeft 向左移动
	ActionMoveLeft Action = iota
	// ActionMoveRight 向右移动
	ActionMoveRight
	// ActionJump 跳跃
	ActionJump
	// ActionDash 冲刺
	ActionDash
	// ActionPause 暂停
	ActionPause
	// ActionConfirm 确认（菜单）
	ActionConfirm
)

// InputProvider 输入提供者接口
//
// 玩家状态机只依赖这个抽象；测试中用脚本化实现替代真实设备。
type InputProvider interface {
	// IsHeld 动作当前是否按住
	IsHeld(action Action) bool
	// JustPressed 动作是否在本帧刚刚按下
	JustPressed(action Action) bool
	// JustReleased 动作是否在本帧刚刚松开
	JustReleased(action Action) bool
	// MoveAxis 返回归一化的水平移动输入（-1 ~ +1）
	MoveAxis() float64
}

// 默认键位绑定
var defaultBindings = map[Action][]ebiten.Key{
	ActionMoveLeft:  {ebiten.KeyA, ebiten.KeyArrowLeft},
	ActionMoveRight: {ebiten.KeyD, ebiten.KeyArrowRight},
	ActionJump:      {ebiten.KeySpace, ebiten.KeyW, ebiten.KeyArrowUp},
	ActionDash:      {ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
	ActionPause:     {ebiten.KeyEscape, ebiten.KeyP},
	ActionConfirm:   {ebiten.KeyEnter, ebiten.KeySpace},
}

// KeyboardInput 基于 ebiten 键盘的输入提供者
type KeyboardInput struct {
	bindings map[Action][]ebiten.Key
}

// NewKeyboardInput 创建使用默认键位的键盘输入提供者
func NewKeyboardInput() *KeyboardInput {
	return &KeyboardInput{bindings: defaultBindings}
}

// IsHeld 动作当前是否按住
func (k *KeyboardInput) IsHeld(action Action) bool {
	for _, key := range k.bindings[action] {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

// JustPressed 动作是否在本帧刚刚按下
func (k *KeyboardInput) JustPressed(action Action) bool {
	for _, key := range k.bindings[action] {
		if inpututil.IsKeyJustPressed(key) {
			return true
		}
	}
	return false
}

// JustReleased 动作是否在本帧刚刚松开
func (k *KeyboardInput) JustReleased(action Action) bool {
	for _, key := range k.bindings[action] {
		if inpututil.IsKeyJustReleased(key) {
			return true
		}
	}
	return false
}

// MoveAxis 返回归一化的水平移动输入
func (k *KeyboardInput) MoveAxis() float64 {
	axis := 0.0
	if k.IsHeld(ActionMoveLeft) {
		axis -= 1
	}
	if k.IsHeld(ActionMoveRight) {
		axis += 1
	}
	return axis
}
