package game

import "log"

// StateID 顶层游戏状态
type StateID int

const (
	// StateMenu 主菜单
	StateMenu StateID = iota
	// StatePlaying 游戏进行中
	StatePlaying
	// StatePaused 暂停
	StatePaused
	// StateGameOver 游戏结束
	StateGameOver
	// StateLevelComplete 关卡完成
	StateLevelComplete
)

// String 返回状态名（日志用）
func (s StateID) String() string {
	switch s {
	case StateMenu:
		return "MENU"
	case StatePlaying:
		return "PLAYING"
	case StatePaused:
		return "PAUSED"
	case StateGameOver:
		return "GAME_OVER"
	case StateLevelComplete:
		return "LEVEL_COMPLETE"
	}
	return "UNKNOWN"
}

// GameState 顶层游戏状态机
//
// 由 App 构造后显式传入需要它的场景和系统（依赖注入，
// 不使用包级全局变量），决定每帧哪些子系统参与更新。
type GameState struct {
	state StateID

	// 跨关卡的统计
	TotalScore   int
	CurrentLevel string
}

// NewGameState 创建初始处于主菜单的状态机
func NewGameState() *GameState {
	return &GameState{state: StateMenu}
}

// Current 返回当前状态
func (gs *GameState) Current() StateID {
	return gs.state
}

// IsPlaying 判断模拟是否应该推进（只有 PLAYING 状态推进物理和AI）
func (gs *GameState) IsPlaying() bool {
	return gs.state == StatePlaying
}

// 合法状态转换表
var validTransitions = map[StateID][]StateID{
	StateMenu:          {StatePlaying},
	StatePlaying:       {StatePaused, StateGameOver, StateLevelComplete, StateMenu},
	StatePaused:        {StatePlaying, StateMenu},
	StateGameOver:      {StateMenu, StatePlaying},
	StateLevelComplete: {StateMenu, StatePlaying},
}

// TransitionTo 切换状态
// 非法转换被拒绝并记录日志，返回 false
func (gs *GameState) TransitionTo(next StateID) bool {
	for _, allowed := range validTransitions[gs.state] {
		if allowed == next {
			log.Printf("[GameState] %v -> %v", gs.state, next)
			gs.state = next
			return true
		}
	}
	log.Printf("[GameState] 拒绝非法状态转换: %v -> %v", gs.state, next)
	return false
}

// TogglePause 在 PLAYING 和 PAUSED 之间切换
func (gs *GameState) TogglePause() {
	switch gs.state {
	case StatePlaying:
		gs.TransitionTo(StatePaused)
	case StatePaused:
		gs.TransitionTo(StatePlaying)
	}
}
