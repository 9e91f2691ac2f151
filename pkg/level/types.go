// Package level 实现关卡运行时：静态几何、动态关卡对象和几何查询
package level

import (
	"github.com/gonewx/platformer/pkg/geom"
)

// PlatformType 平台类型
type PlatformType int

const (
	// PlatformSolid 普通实心平台，四面碰撞
	PlatformSolid PlatformType = iota
	// PlatformJumpThrough 单向平台，只能从上方落到平台上，从下方可穿过
	PlatformJumpThrough
	// PlatformMoving 移动平台，在 MoveBounds 范围内按 Velocity 往复运动
	PlatformMoving
	// PlatformBreakable 可破坏平台，玩家重踩后碎裂消失
	PlatformBreakable
	// PlatformIce 冰面平台，着地摩擦力大幅降低
	PlatformIce
	// PlatformBouncy 弹性平台，落上后给予向上的反弹冲量
	PlatformBouncy
)

// Platform 关卡平台
type Platform struct {
	Bounds geom.Rect
	Type   PlatformType

	// 移动平台专用：当前速度和往复运动范围
	Velocity   geom.Vec2
	MoveBounds geom.Rect

	// 可破坏平台专用
	Broken bool
}

// ObstacleType 障碍物类型
type ObstacleType int

const (
	// ObstacleSpike 地刺，静止
	ObstacleSpike ObstacleType = iota
	// ObstacleSaw 锯片，持续旋转
	ObstacleSaw
	// ObstacleLava 岩浆，静止
	ObstacleLava
	// ObstacleCrusher 压碎机，在 OriginalY 和 OriginalY-100 之间垂直往复
	ObstacleCrusher
)

// 障碍物固定伤害值
const (
	SpikeDamage   = 20
	SawDamage     = 30
	LavaDamage    = 50
	CrusherDamage = 40
)

// 障碍物运动参数
const (
	SawRotationSpeed = 6.0   // 锯片旋转角速度（弧度/秒）
	CrusherSpeed     = 120.0 // 压碎机垂直移动速度（像素/秒）
	CrusherTravel    = 100.0 // 压碎机行程（向上 100 像素）
)

// Obstacle 关卡障碍物
type Obstacle struct {
	Bounds geom.Rect
	Type   ObstacleType
	Damage int

	// 锯片专用：当前旋转角（仅供渲染）
	Rotation float64

	// 压碎机专用
	OriginalY float64
	movingUp  bool
}

// CollectibleType 收集品类型
type CollectibleType int

const (
	// CollectibleCoin 金币，增加分数
	CollectibleCoin CollectibleType = iota
	// CollectiblePowerUp 能力强化道具
	CollectiblePowerUp
	// CollectibleKey 钥匙，用于开启触发器锁定的机关
	CollectibleKey
	// CollectibleHealth 回复生命
	CollectibleHealth
)

// CollectibleSize 收集品碰撞盒边长（以 Position 为中心）
const CollectibleSize = 24.0

// Collectible 收集品
// Collected 只会从 false 变为 true 一次，只有关卡 Reset 才会复位
type Collectible struct {
	Position  geom.Vec2
	Type      CollectibleType
	Value     int
	Collected bool

	// PowerUp 类型专用：效果名称（如 "speed_boost"）
	Effect string
}

// Bounds 返回收集品的拾取判定盒
func (c *Collectible) Bounds() geom.Rect {
	half := CollectibleSize / 2
	return geom.Rect{
		X: c.Position.X - half,
		Y: c.Position.Y - half,
		W: CollectibleSize,
		H: CollectibleSize,
	}
}

// CheckpointSize 检查点激活判定盒边长
const CheckpointSize = 48.0

// Checkpoint 检查点
// Activated 单向置位，只有关卡 Reset 才会复位
type Checkpoint struct {
	Position  geom.Vec2
	Activated bool
}

// Bounds 返回检查点的激活判定盒
func (c *Checkpoint) Bounds() geom.Rect {
	half := CheckpointSize / 2
	return geom.Rect{
		X: c.Position.X - half,
		Y: c.Position.Y - half,
		W: CheckpointSize,
		H: CheckpointSize,
	}
}

// Trigger 触发器区域
// Triggered 单向置位，只有关卡 Reset 才会复位
type Trigger struct {
	Bounds    geom.Rect
	Action    string // 触发动作标识（如 "level_complete", "spawn_wave"）
	Triggered bool
}

// BackgroundLayer 视差背景层（纯渲染数据，不参与物理）
type BackgroundLayer struct {
	ImageID  string
	Parallax float64 // 视差系数：0 静止，1 跟随摄像机
	OffsetY  float64
}

// WallSide 墙面接触方向
type WallSide int

const (
	// WallNone 没有接触墙面
	WallNone WallSide = iota
	// WallLeft 接触左侧墙面（墙在实体左边）
	WallLeft
	// WallRight 接触右侧墙面（墙在实体右边）
	WallRight
)
