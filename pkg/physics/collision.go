package physics

import (
	"github.com/gonewx/platformer/pkg/geom"
)

// CollisionInfo 记录一次检测到的碰撞
//
// 每个子步的碰撞记录只在当前子步内有效，求解完成后即丢弃。
// Normal 从 B 指向 A 的分离方向；B 为 nil 表示与静态几何体
// （staticBodies 中的矩形）发生碰撞，视为无穷大质量。
type CollisionInfo struct {
	A *Entity
	B *Entity // nil 表示静态几何体

	Normal      geom.Vec2 // 分离方向（单位向量，轴对齐）
	Penetration float64   // 重叠深度（正值表示重叠）
	Contact     geom.Vec2 // 接触点（交集矩形中心）
}

// RelativeVelocity 返回 A 相对 B 的速度
func (c *CollisionInfo) RelativeVelocity() geom.Vec2 {
	if c.B == nil {
		return c.A.Velocity
	}
	return c.A.Velocity.Sub(c.B.Velocity)
}

// SeparatingVelocity 返回相对速度在法线方向上的投影
// 负值表示两者正在接近
func (c *CollisionInfo) SeparatingVelocity() float64 {
	return c.RelativeVelocity().Dot(c.Normal)
}

// restitution 返回本次碰撞使用的弹性系数（取双方较小值）
// 静态几何体按零弹性处理
func (c *CollisionInfo) restitution() float64 {
	if c.B == nil {
		return 0
	}
	return min(c.A.Restitution, c.B.Restitution)
}

// totalInvMass 返回双方质量倒数之和
func (c *CollisionInfo) totalInvMass() float64 {
	if c.B == nil {
		return c.A.InvMass()
	}
	return c.A.InvMass() + c.B.InvMass()
}

// invMassB 返回 B 的质量倒数（静态几何体为0）
func (c *CollisionInfo) invMassB() float64 {
	if c.B == nil {
		return 0
	}
	return c.B.InvMass()
}

// collideRects 对两个重叠的 AABB 计算分离轴、法线和穿透深度
//
// 采用最小平移启发式：交集矩形在哪个轴上更窄，就沿哪个轴分离
// （宽 < 高 沿X轴，否则沿Y轴），法线方向由两个矩形中心的相对
// 位置决定。两轴重叠接近相等的角碰撞可能选错轴，这是平台跳跃
// 游戏中可接受的已知简化。
//
// 返回的法线指向 a 的分离方向。不重叠时返回 false。
func collideRects(a, b geom.Rect) (normal geom.Vec2, penetration float64, contact geom.Vec2, ok bool) {
	overlap, overlaps := a.Intersection(b)
	if !overlaps {
		return geom.Vec2{}, 0, geom.Vec2{}, false
	}

	ca := a.Center()
	cb := b.Center()

	if overlap.W < overlap.H {
		// 沿X轴分离
		if ca.X < cb.X {
			normal = geom.Vec2{X: -1}
		} else {
			normal = geom.Vec2{X: 1}
		}
		penetration = overlap.W
	} else {
		// 沿Y轴分离
		if ca.Y < cb.Y {
			normal = geom.Vec2{Y: -1}
		} else {
			normal = geom.Vec2{Y: 1}
		}
		penetration = overlap.H
	}

	return normal, penetration, overlap.Center(), true
}

// calculateCollision 检测实体与静态矩形的碰撞
// 未重叠时返回 nil
func calculateCollision(e *Entity, body geom.Rect) *CollisionInfo {
	normal, penetration, contact, ok := collideRects(e.Bounds, body)
	if !ok {
		return nil
	}
	return &CollisionInfo{
		A:           e,
		Normal:      normal,
		Penetration: penetration,
		Contact:     contact,
	}
}

// calculateEntityCollision 检测两个实体之间的碰撞
// 未重叠时返回 nil
func calculateEntityCollision(a, b *Entity) *CollisionInfo {
	normal, penetration, contact, ok := collideRects(a.Bounds, b.Bounds)
	if !ok {
		return nil
	}
	return &CollisionInfo{
		A:           a,
		B:           b,
		Normal:      normal,
		Penetration: penetration,
		Contact:     contact,
	}
}
