package components

import "github.com/gonewx/platformer/pkg/geom"

// EnemyKind 敌人种类
//
// 所有种类共享同一个AI状态机，种类只决定移动方式：
// Walker 沿地面巡逻，Flyer 悬浮并做正弦摆动，
// Jumper 在追击时周期性地朝玩家跳跃。
type EnemyKind int

const (
	// EnemyWalker 步行者
	EnemyWalker EnemyKind = iota
	// EnemyFlyer 飞行者
	EnemyFlyer
	// EnemyJumper 跳跃者
	EnemyJumper
)

// AIState 敌人AI状态
type AIState int

const (
	// StatePatrol 巡逻：在出生点附近往返
	StatePatrol AIState = iota
	// StateChase 追击：朝玩家移动
	StateChase
	// StateAttack 攻击：攻击动画播放中
	StateAttack
	// StateStunned 硬直：受到非致命伤害后短暂失去行动
	StateStunned
	// StateDead 死亡：终态，只有关卡 Reset 能复活
	StateDead
)

// String 返回状态名（日志用）
func (s AIState) String() string {
	switch s {
	case StatePatrol:
		return "PATROL"
	case StateChase:
		return "CHASE"
	case StateAttack:
		return "ATTACK"
	case StateStunned:
		return "STUNNED"
	case StateDead:
		return "DEAD"
	}
	return "UNKNOWN"
}

// 敌人AI固定参数
const (
	// LoseTargetTime 失去目标超过该时长后从追击退回巡逻（秒）
	LoseTargetTime = 3.0
	// LoseTargetRangeFactor 只有距离超过侦测范围的该倍数才算失去目标
	// （迟滞设计，避免在侦测边界上状态抖动）
	LoseTargetRangeFactor = 1.5
	// StunDuration 硬直持续时长（秒）
	StunDuration = 1.0
)

// EnemyComponent 敌人状态组件
type EnemyComponent struct {
	Kind  EnemyKind
	State AIState

	Health    int
	MaxHealth int

	// 侦测与攻击
	DetectionRange float64 // 发现玩家的距离
	AttackRange    float64 // 进入攻击状态的距离
	AttackDamage   int
	AttackCooldown float64 // 两次攻击的最小间隔
	AttackAnimTime float64 // 攻击动画时长

	// 计时器（每个固定子步递减）
	AttackCooldownTimer float64
	AttackAnimTimer     float64
	StunTimer           float64
	UndetectedTimer     float64 // 连续未侦测到玩家的累计时长
	InvulnTimer         float64

	// 移动
	MoveSpeed   float64
	FacingRight bool

	// 巡逻
	PatrolOrigin geom.Vec2
	PatrolRange  float64
	patrolRight  bool

	// Flyer 专用：悬浮正弦相位
	HoverPhase float64
	HoverBaseY float64

	// Jumper 专用：距下一次跳跃的剩余时长
	JumpTimer float64

	// 复活用出生状态
	SpawnPosition geom.Vec2
}

// PatrolMovingRight 返回当前巡逻方向是否向右
func (e *EnemyComponent) PatrolMovingRight() bool {
	return e.patrolRight
}

// SetPatrolDirection 设置巡逻方向
func (e *EnemyComponent) SetPatrolDirection(right bool) {
	e.patrolRight = right
	e.FacingRight = right
}

// Alive 判断敌人是否存活
func (e *EnemyComponent) Alive() bool {
	return e.State != StateDead
}
