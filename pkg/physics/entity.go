// Package physics 实现平台跳跃游戏的2D物理引擎
//
// 引擎只处理轴对齐矩形（AABB）动力学：固定子步长积分、
// 重力/阻力/摩擦、两两碰撞检测、迭代位置修正与冲量速度求解，
// 以及针对静态几何体的射线检测。不支持旋转刚体。
package physics

import (
	"github.com/gonewx/platformer/pkg/geom"
)

// 实体默认物理参数
const (
	DefaultMass        = 1.0
	DefaultFriction    = 0.9   // 着地时水平速度每子步的保留比例
	DefaultRestitution = 0.2   // 弹性系数（0 不反弹，1 完全反弹）
	DefaultDrag        = 0.999 // 空气阻力：速度每子步的保留比例
	DefaultMaxVelocity = 1000.0
)

// Entity 是物理模拟的基本动态单元
//
// 不变式：
//   - IsStatic 实体不受重力/冲量影响，模拟过程中永不移动
//     （关卡系统可以在模拟之外直接改写它的位置，如移动平台）
//   - Bounds 始终等于 Position 平移出的 Size 大小矩形，
//     每次位置变化后由 UpdateBounds 同步
type Entity struct {
	Position     geom.Vec2
	Velocity     geom.Vec2
	acceleration geom.Vec2 // 每个积分子步结束后清零（力是按步施加的，不持久）

	Size   geom.Vec2 // 碰撞盒尺寸（宽、高）
	Bounds geom.Rect // 与 Position 同步的碰撞盒

	Mass        float64
	Friction    float64
	Restitution float64
	Drag        float64
	MaxVelocity float64
	IsStatic    bool

	// GravityScale 重力倍率：0 不受重力（悬浮敌人），1 正常
	GravityScale float64

	// 着地状态
	// WasOnGround 比 OnGround 延迟一个子步，用于检测离地/落地边沿
	OnGround     bool
	WasOnGround  bool
	GroundNormal geom.Vec2
}

// NewEntity 创建一个动态物理实体
// 质量小于等于0时按默认质量处理（防御性修正，见错误处理约定）
func NewEntity(position, size geom.Vec2, mass float64) *Entity {
	if mass <= 0 {
		mass = DefaultMass
	}
	e := &Entity{
		Position:    position,
		Size:        size,
		Mass:        mass,
		Friction:    DefaultFriction,
		Restitution: DefaultRestitution,
		Drag:        DefaultDrag,
		MaxVelocity: DefaultMaxVelocity,

		GravityScale: 1.0,
	}
	e.UpdateBounds()
	return e
}

// NewStaticEntity 创建一个静态实体（移动平台等由外部驱动的几何体）
func NewStaticEntity(position, size geom.Vec2) *Entity {
	e := NewEntity(position, size, DefaultMass)
	e.IsStatic = true
	return e
}

// UpdateBounds 将碰撞盒同步到当前位置
func (e *Entity) UpdateBounds() {
	e.Bounds = geom.Rect{X: e.Position.X, Y: e.Position.Y, W: e.Size.X, H: e.Size.Y}
}

// ApplyForce 施加一个力（本子步内转换为加速度，子步结束后清零）
// 静态实体忽略所有力
func (e *Entity) ApplyForce(force geom.Vec2) {
	if e.IsStatic {
		return
	}
	e.acceleration = e.acceleration.Add(force.Scaled(1 / e.Mass))
}

// ApplyImpulse 施加一个冲量（立即改变速度）
// 静态实体忽略所有冲量
func (e *Entity) ApplyImpulse(impulse geom.Vec2) {
	if e.IsStatic {
		return
	}
	e.Velocity = e.Velocity.Add(impulse.Scaled(1 / e.Mass))
}

// InvMass 返回质量倒数；静态实体视为无穷大质量，返回0
func (e *Entity) InvMass() float64 {
	if e.IsStatic {
		return 0
	}
	return 1 / e.Mass
}

// JustLanded 判断本子步是否刚刚落地（离地→着地的边沿）
func (e *Entity) JustLanded() bool {
	return e.OnGround && !e.WasOnGround
}

// JustLeftGround 判断本子步是否刚刚离地（着地→离地的边沿）
// 玩家的土狼时间计时器只在这个边沿启动
func (e *Entity) JustLeftGround() bool {
	return !e.OnGround && e.WasOnGround
}
