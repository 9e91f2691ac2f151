package geom

import "math"

// Rect 表示一个轴对齐矩形（AABB）
// 约定 W、H 均为非负值；构造函数会对负值做归一化处理
type Rect struct {
	X float64 // 左上角X坐标
	Y float64 // 左上角Y坐标
	W float64 // 宽度（>= 0）
	H float64 // 高度（>= 0）
}

// R 构造一个 Rect，负的宽高会被归一化为正值（同时平移原点）
func R(x, y, w, h float64) Rect {
	if w < 0 {
		x += w
		w = -w
	}
	if h < 0 {
		y += h
		h = -h
	}
	return Rect{X: x, Y: y, W: w, H: h}
}

// Left 返回左边界X坐标
func (r Rect) Left() float64 { return r.X }

// Right 返回右边界X坐标
func (r Rect) Right() float64 { return r.X + r.W }

// Top 返回上边界Y坐标
func (r Rect) Top() float64 { return r.Y }

// Bottom 返回下边界Y坐标
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center 返回矩形中心点
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Translated 返回平移后的新矩形
func (r Rect) Translated(d Vec2) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H}
}

// MovedTo 返回左上角移动到指定位置的新矩形
func (r Rect) MovedTo(pos Vec2) Rect {
	return Rect{X: pos.X, Y: pos.Y, W: r.W, H: r.H}
}

// Overlaps 判断两个矩形是否重叠
// 边缘刚好接触（零面积交集）不算重叠；退化矩形（零宽或零高）不会重叠任何矩形
func (r Rect) Overlaps(o Rect) bool {
	if r.W <= 0 || r.H <= 0 || o.W <= 0 || o.H <= 0 {
		return false
	}
	return r.X < o.Right() && r.Right() > o.X &&
		r.Y < o.Bottom() && r.Bottom() > o.Y
}

// Intersection 返回两个矩形的交集矩形
// 不重叠时第二个返回值为 false
func (r Rect) Intersection(o Rect) (Rect, bool) {
	left := math.Max(r.X, o.X)
	top := math.Max(r.Y, o.Y)
	right := math.Min(r.Right(), o.Right())
	bottom := math.Min(r.Bottom(), o.Bottom())
	if right <= left || bottom <= top {
		return Rect{}, false
	}
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}, true
}

// Union 返回包含两个矩形的最小矩形
func (r Rect) Union(o Rect) Rect {
	left := math.Min(r.X, o.X)
	top := math.Min(r.Y, o.Y)
	right := math.Max(r.Right(), o.Right())
	bottom := math.Max(r.Bottom(), o.Bottom())
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}
}

// Expanded 返回四边各向外扩展 amount 的新矩形
// 负值表示收缩；收缩超过自身尺寸时宽高截断为0
func (r Rect) Expanded(amount float64) Rect {
	w := r.W + amount*2
	h := r.H + amount*2
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: r.X - amount, Y: r.Y - amount, W: w, H: h}
}

// Contains 判断点是否在矩形内（含边界）
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.Right() &&
		p.Y >= r.Y && p.Y <= r.Bottom()
}

// ClosestPoint 返回矩形上（含内部）距离 p 最近的点
func (r Rect) ClosestPoint(p Vec2) Vec2 {
	return Vec2{
		X: clamp(p.X, r.X, r.Right()),
		Y: clamp(p.Y, r.Y, r.Bottom()),
	}
}

// DistanceTo 返回点到矩形的最短距离（点在矩形内时为0）
func (r Rect) DistanceTo(p Vec2) float64 {
	return r.ClosestPoint(p).DistanceTo(p)
}

// RayHit 描述一次射线与矩形的相交结果
type RayHit struct {
	Point    Vec2    // 命中点
	Normal   Vec2    // 命中面的法线（轴对齐单位向量）
	Distance float64 // 从射线起点到命中点的距离
}

// IntersectRay 使用 slab 方法计算射线与矩形的相交
//
// start 为射线起点，dir 为方向（内部会归一化），maxDist 为最大检测距离。
// 方向为零向量或超出距离时返回 false。
// 命中面法线按命中点贴近哪条边界判定，X轴边界优先于Y轴边界。
func (r Rect) IntersectRay(start, dir Vec2, maxDist float64) (RayHit, bool) {
	d := dir.Normalized()
	if d.IsZero() {
		return RayHit{}, false
	}

	tMin := 0.0
	tMax := maxDist

	// X方向 slab
	if d.X != 0 {
		t1 := (r.Left() - start.X) / d.X
		t2 := (r.Right() - start.X) / d.X
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
	} else if start.X < r.Left() || start.X > r.Right() {
		return RayHit{}, false
	}

	// Y方向 slab
	if d.Y != 0 {
		t1 := (r.Top() - start.Y) / d.Y
		t2 := (r.Bottom() - start.Y) / d.Y
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
	} else if start.Y < r.Top() || start.Y > r.Bottom() {
		return RayHit{}, false
	}

	if tMax < tMin {
		return RayHit{}, false
	}

	point := start.Add(d.Scaled(tMin))
	return RayHit{
		Point:    point,
		Normal:   r.surfaceNormal(point),
		Distance: tMin,
	}, true
}

// surfaceNormal 根据命中点贴近哪条边界返回轴对齐法线
// 判定顺序：左、右、上、下（X轴边界优先）
func (r Rect) surfaceNormal(p Vec2) Vec2 {
	const eps = 1e-9
	switch {
	case math.Abs(p.X-r.Left()) < eps:
		return Vec2{X: -1}
	case math.Abs(p.X-r.Right()) < eps:
		return Vec2{X: 1}
	case math.Abs(p.Y-r.Top()) < eps:
		return Vec2{Y: -1}
	case math.Abs(p.Y-r.Bottom()) < eps:
		return Vec2{Y: 1}
	}
	// 起点在矩形内部时没有明确的命中面
	return Vec2{}
}
