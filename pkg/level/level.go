package level

import (
	"math"

	"github.com/gonewx/platformer/pkg/geom"
)

// Level 关卡运行时
//
// 持有静态几何（平台、障碍物）和动态关卡对象（移动平台、
// 收集品、触发器、检查点），并提供基于几何基元的碰撞/射线查询。
type Level struct {
	ID     string
	Name   string
	Bounds geom.Rect // 关卡世界范围（摄像机钳制和出界判定使用）

	SpawnPoint geom.Vec2 // 玩家初始出生点

	Platforms    []*Platform
	Obstacles    []*Obstacle
	Collectibles []*Collectible
	Checkpoints  []*Checkpoint
	Triggers     []*Trigger
	Backgrounds  []*BackgroundLayer
}

// Update 推进关卡对象的每帧运动
//
//   - 移动平台在 MoveBounds 内沿速度方向运动，碰到边界后反向
//   - 锯片持续旋转
//   - 压碎机在 OriginalY 与 OriginalY-CrusherTravel 之间垂直往复
func (l *Level) Update(deltaTime float64) {
	for _, p := range l.Platforms {
		if p.Type != PlatformMoving || p.Broken {
			continue
		}
		p.Bounds = p.Bounds.Translated(p.Velocity.Scaled(deltaTime))

		// 往复运动：越过范围边界时夹回并反向
		if p.Bounds.X < p.MoveBounds.X {
			p.Bounds.X = p.MoveBounds.X
			p.Velocity.X = -p.Velocity.X
		}
		if p.Bounds.Right() > p.MoveBounds.Right() {
			p.Bounds.X = p.MoveBounds.Right() - p.Bounds.W
			p.Velocity.X = -p.Velocity.X
		}
		if p.Bounds.Y < p.MoveBounds.Y {
			p.Bounds.Y = p.MoveBounds.Y
			p.Velocity.Y = -p.Velocity.Y
		}
		if p.Bounds.Bottom() > p.MoveBounds.Bottom() {
			p.Bounds.Y = p.MoveBounds.Bottom() - p.Bounds.H
			p.Velocity.Y = -p.Velocity.Y
		}
	}

	for _, o := range l.Obstacles {
		switch o.Type {
		case ObstacleSaw:
			o.Rotation += SawRotationSpeed * deltaTime
			if o.Rotation > 2*math.Pi {
				o.Rotation -= 2 * math.Pi
			}
		case ObstacleCrusher:
			if o.movingUp {
				o.Bounds.Y -= CrusherSpeed * deltaTime
				if o.Bounds.Y <= o.OriginalY-CrusherTravel {
					o.Bounds.Y = o.OriginalY - CrusherTravel
					o.movingUp = false
				}
			} else {
				o.Bounds.Y += CrusherSpeed * deltaTime
				if o.Bounds.Y >= o.OriginalY {
					o.Bounds.Y = o.OriginalY
					o.movingUp = true
				}
			}
		}
	}
}

// Reset 将关卡恢复到初始状态
//
// 收集品、检查点、触发器的单向标志在这里统一复位，
// 可破坏平台恢复，压碎机回到原始位置。
func (l *Level) Reset() {
	for _, c := range l.Collectibles {
		c.Collected = false
	}
	for _, c := range l.Checkpoints {
		c.Activated = false
	}
	for _, t := range l.Triggers {
		t.Triggered = false
	}
	for _, p := range l.Platforms {
		p.Broken = false
	}
	for _, o := range l.Obstacles {
		if o.Type == ObstacleCrusher {
			o.Bounds.Y = o.OriginalY
			o.movingUp = true
		}
	}
}

// SolidPlatforms 返回参与实心碰撞的平台（排除单向平台和已破坏平台）
func (l *Level) SolidPlatforms() []*Platform {
	var result []*Platform
	for _, p := range l.Platforms {
		if p.Broken || p.Type == PlatformJumpThrough {
			continue
		}
		result = append(result, p)
	}
	return result
}

// PlatformRaycast 描述一次关卡射线检测的结果
type PlatformRaycast struct {
	Platform *Platform
	Point    geom.Vec2
	Normal   geom.Vec2
	Distance float64
}

// Raycast 对关卡平台做射线检测，返回最近被击中的平台
//
// 使用与物理引擎相同的 slab 相交方法，但返回的是平台引用，
// 供视线判定（敌人AI）和墙面探测使用。已破坏的平台被忽略。
func (l *Level) Raycast(start, direction geom.Vec2, maxDistance float64) (PlatformRaycast, bool) {
	if direction.IsZero() || maxDistance <= 0 {
		return PlatformRaycast{}, false
	}

	best := PlatformRaycast{Distance: math.Inf(1)}
	found := false

	for _, p := range l.Platforms {
		if p.Broken {
			continue
		}
		if hit, ok := p.Bounds.IntersectRay(start, direction, maxDistance); ok && hit.Distance < best.Distance {
			best = PlatformRaycast{
				Platform: p,
				Point:    hit.Point,
				Normal:   hit.Normal,
				Distance: hit.Distance,
			}
			found = true
		}
	}

	return best, found
}

// GetWallSide 判定实体碰撞盒贴靠的墙面方向
//
// 与碰撞法线选取相同的最小重叠启发式：对每个重叠的实心平台，
// 若交集在X轴上更窄（属于侧面接触而非踩踏/顶头），按两者中心
// 的相对位置归类为左墙或右墙。用于玩家滑墙状态判定。
func (l *Level) GetWallSide(bounds geom.Rect) WallSide {
	// 左右各外扩少许，让贴着墙但未穿透的情况也能判定
	probe := geom.Rect{X: bounds.X - 1, Y: bounds.Y, W: bounds.W + 2, H: bounds.H}

	for _, p := range l.SolidPlatforms() {
		overlap, ok := probe.Intersection(p.Bounds)
		if !ok {
			continue
		}
		if overlap.W >= overlap.H {
			// 上下接触，不算墙
			continue
		}
		if p.Bounds.Center().X < bounds.Center().X {
			return WallLeft
		}
		return WallRight
	}
	return WallNone
}

// PlatformsInArea 返回与区域重叠的平台（O(n) 遍历）
func (l *Level) PlatformsInArea(area geom.Rect) []*Platform {
	var result []*Platform
	for _, p := range l.Platforms {
		if !p.Broken && p.Bounds.Overlaps(area) {
			result = append(result, p)
		}
	}
	return result
}

// PlatformAt 返回包含给定点的第一个未破坏平台，没有则返回 nil
func (l *Level) PlatformAt(point geom.Vec2) *Platform {
	for _, p := range l.Platforms {
		if !p.Broken && p.Bounds.Contains(point) {
			return p
		}
	}
	return nil
}
