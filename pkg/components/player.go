package components

import "github.com/gonewx/platformer/pkg/geom"

// PowerUpType 能力强化效果类型
type PowerUpType int

const (
	// PowerUpSpeedBoost 移动速度 ×1.5
	PowerUpSpeedBoost PowerUpType = iota
	// PowerUpJumpBoost 跳跃力度 ×1.25
	PowerUpJumpBoost
	// PowerUpShield 持续期间免疫伤害
	PowerUpShield
)

// 能力强化的属性倍率
// 施加时乘上倍率，移除时除回，两者必须严格互逆，
// 否则反复叠加会造成属性漂移
const (
	SpeedBoostMultiplier = 1.5
	JumpBoostMultiplier  = 1.25
)

// PowerUpTypeFromEffect 将配置中的效果名转换为类型
// 未知效果名返回 false
func PowerUpTypeFromEffect(effect string) (PowerUpType, bool) {
	switch effect {
	case "speed_boost":
		return PowerUpSpeedBoost, true
	case "jump_boost":
		return PowerUpJumpBoost, true
	case "shield":
		return PowerUpShield, true
	}
	return 0, false
}

// PlayerComponent 玩家状态组件
//
// 玩家不是离散的枚举状态机，而是每帧连续更新的一组能力计时器。
// 所有计时器都是每个固定子步递减一次的倒计时字段，
// 只能由各自的触发事件重新装填。
type PlayerComponent struct {
	// 朝向
	FacingRight bool

	// 生命与得分
	Health int
	Lives  int
	Score  int
	Keys   int // 持有的钥匙数量

	// 跳跃能力
	CoyoteTimer     float64 // 离地后仍允许起跳的剩余窗口
	JumpBufferTimer float64 // 预按跳跃的剩余有效窗口
	DoubleJumpUsed  bool    // 本次滞空是否已用掉二段跳
	JumpsThisAir    int     // 本次滞空的起跳次数（统计用）

	// 滑墙与蹬墙跳
	WallSliding       bool
	WallOnRight       bool    // 贴靠的墙在右侧
	WallJumpLockTimer float64 // 蹬墙跳后禁止再次贴墙的剩余时长

	// 冲刺
	// 重新触发只由 DashTimer <= 0 控制，没有独立的冷却计时器
	DashTimer float64
	DashDir   float64 // 冲刺方向：+1 右，-1 左

	// 受击
	InvulnTimer     float64   // 无敌剩余时长
	KnockbackTimer  float64   // 击退期间不接受移动输入
	RespawnPosition geom.Vec2 // 最近激活的检查点（或出生点）

	// 能力强化：类型 -> 剩余时长
	// 重新拾取同类强化只刷新时长，不重复乘倍率
	PowerUps map[PowerUpType]float64

	// 当前生效的属性倍率（施加/移除能力强化时同步维护）
	SpeedMultiplier float64
	JumpMultiplier  float64
}

// NewPlayerComponent 创建初始玩家状态
func NewPlayerComponent(maxHealth, lives int, spawn geom.Vec2) *PlayerComponent {
	return &PlayerComponent{
		FacingRight:     true,
		Health:          maxHealth,
		Lives:           lives,
		RespawnPosition: spawn,
		PowerUps:        make(map[PowerUpType]float64),
		SpeedMultiplier: 1.0,
		JumpMultiplier:  1.0,
	}
}

// HasPowerUp 判断指定能力强化是否生效中
func (p *PlayerComponent) HasPowerUp(t PowerUpType) bool {
	_, ok := p.PowerUps[t]
	return ok
}

// IsDashing 判断是否处于冲刺中
func (p *PlayerComponent) IsDashing() bool {
	return p.DashTimer > 0
}

// IsInvulnerable 判断是否处于无敌状态（受击无敌或护盾强化）
func (p *PlayerComponent) IsInvulnerable() bool {
	return p.InvulnTimer > 0 || p.HasPowerUp(PowerUpShield)
}
