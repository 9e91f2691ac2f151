// Package geom 提供2D几何基础类型
//
// Vec2 和 Rect 都是不可变的值类型：所有运算方法返回新值，
// 不修改接收者。可变状态只存在于物理实体自身的字段中，
// 避免多个字段共享同一个向量引起的别名问题。
package geom

import "math"

// Vec2 表示一个2D向量（值类型，不可变）
type Vec2 struct {
	X float64
	Y float64
}

// V 构造一个 Vec2
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add 返回两个向量的和
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub 返回两个向量的差
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scaled 返回向量乘以标量后的新向量
func (v Vec2) Scaled(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Length 返回向量长度
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// LengthSq 返回向量长度的平方（避免开方，用于距离比较）
func (v Vec2) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalized 返回单位向量
// 零向量归一化返回零向量（避免除零）
func (v Vec2) Normalized() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Dot 返回点积
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross 返回2D叉积（标量）
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Lerp 返回两个向量之间的线性插值，t 取值 [0,1]
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
	}
}

// Rotated 返回绕原点旋转 angle 弧度后的新向量
func (v Vec2) Rotated(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Clamped 返回每个分量被限制在 [-limit, limit] 内的新向量
func (v Vec2) Clamped(limit float64) Vec2 {
	return Vec2{
		X: clamp(v.X, -limit, limit),
		Y: clamp(v.Y, -limit, limit),
	}
}

// ClampedLength 返回长度不超过 maxLen 的新向量（保持方向）
func (v Vec2) ClampedLength(maxLen float64) Vec2 {
	l := v.Length()
	if l <= maxLen || l == 0 {
		return v
	}
	return v.Scaled(maxLen / l)
}

// Negated 返回反向向量
func (v Vec2) Negated() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// DistanceTo 返回两点之间的欧几里得距离
func (v Vec2) DistanceTo(o Vec2) float64 {
	return o.Sub(v).Length()
}

// IsZero 判断是否为零向量
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
