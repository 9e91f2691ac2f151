package physics

import (
	"math"

	"github.com/gonewx/platformer/pkg/geom"
)

// 引擎默认参数
const (
	DefaultTimeStep           = 1.0 / 60.0
	DefaultPositionIterations = 3    // 位置修正迭代次数
	DefaultVelocityIterations = 8    // 速度求解迭代次数
	DefaultCorrectionPercent  = 0.8  // 位置修正比例（每次迭代只修正一部分，避免过冲）
	DefaultSlop               = 0.01 // 允许残留的重叠深度（防止亚像素重叠反复抖动）
	DefaultGravityY           = 980.0
)

// Engine 物理引擎
//
// 持有一组动态实体和一组静态几何体，以固定子步长推进模拟。
// 碰撞检测为两两暴力遍历（O(n²)），适用于实体数量较少的场景，
// 这是一个已记录的规模上限。
type Engine struct {
	Gravity  geom.Vec2
	TimeStep float64

	PositionIterations int
	VelocityIterations int
	CorrectionPercent  float64
	Slop               float64

	entities     []*Entity
	staticBodies []geom.Rect

	// 当前子步收集到的碰撞，求解完成后清空
	collisions []*CollisionInfo
}

// NewEngine 创建一个使用默认参数的物理引擎
func NewEngine() *Engine {
	return &Engine{
		Gravity:            geom.Vec2{Y: DefaultGravityY},
		TimeStep:           DefaultTimeStep,
		PositionIterations: DefaultPositionIterations,
		VelocityIterations: DefaultVelocityIterations,
		CorrectionPercent:  DefaultCorrectionPercent,
		Slop:               DefaultSlop,
	}
}

// AddEntity 将实体加入模拟
func (eng *Engine) AddEntity(e *Entity) {
	if e == nil {
		return
	}
	eng.entities = append(eng.entities, e)
}

// RemoveEntity 将实体移出模拟
func (eng *Engine) RemoveEntity(e *Entity) {
	for i, other := range eng.entities {
		if other == e {
			eng.entities = append(eng.entities[:i], eng.entities[i+1:]...)
			return
		}
	}
}

// AddStaticBody 添加一块静态几何体（平台、墙壁等）
func (eng *Engine) AddStaticBody(body geom.Rect) {
	eng.staticBodies = append(eng.staticBodies, body)
}

// ClearStaticBodies 清空所有静态几何体（切换关卡时调用）
func (eng *Engine) ClearStaticBodies() {
	eng.staticBodies = eng.staticBodies[:0]
}

// Entities 返回当前模拟中的实体列表（只读访问）
func (eng *Engine) Entities() []*Entity {
	return eng.entities
}

// Update 将模拟推进 deltaTime 秒
//
// 内部拆分为固定长度的子步：子步数 = ceil(deltaTime/TimeStep)，
// 至少为1。引擎不会丢弃时间，但可能在一次调用中执行多个子步；
// 帧率可变的调用方应传入累积后的时间（见 GameScene 的累积器）。
func (eng *Engine) Update(deltaTime float64) {
	steps := int(math.Ceil(deltaTime / eng.TimeStep))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i < steps; i++ {
		eng.step(eng.TimeStep)
	}
}

// step 执行一个固定长度的模拟子步，顺序不可调换：
//
//  1. 快照着地标志（WasOnGround ← OnGround），并将 OnGround 复位为 false，
//     本子步的碰撞求解若仍然着地会重新置回 true —— 这会产生可被实体逻辑
//     检测到的一帧"离地边沿"（土狼时间依赖它）
//  2. 以力的形式施加重力（力 = 重力 × 质量，再除以质量得加速度，
//     净效果与质量无关，符合自由落体）
//  3. 积分速度并清零加速度
//  4. 施加空气阻力；着地时额外对水平分量施加地面摩擦
//  5. 按分量钳制速度
//  6. 积分位置并同步碰撞盒
//  7. 对静态几何体和所有其他实体做两两碰撞检测
//  8. 全部实体移动完毕后统一求解：先位置修正，再速度求解
//     （分开两个阶段，避免对仍在重叠的陈旧位置求解速度造成抖动）
func (eng *Engine) step(dt float64) {
	for _, e := range eng.entities {
		if e.IsStatic {
			e.UpdateBounds()
			continue
		}

		// 1. 着地边沿快照
		e.WasOnGround = e.OnGround
		e.OnGround = false

		// 2. 重力
		e.ApplyForce(eng.Gravity.Scaled(e.Mass * e.GravityScale))

		// 3. 速度积分
		e.Velocity = e.Velocity.Add(e.acceleration.Scaled(dt))
		e.acceleration = geom.Vec2{}

		// 4. 阻力与摩擦
		e.Velocity = e.Velocity.Scaled(e.Drag)
		if e.WasOnGround {
			e.Velocity.X *= e.Friction
		}

		// 5. 速度钳制
		e.Velocity = e.Velocity.Clamped(e.MaxVelocity)

		// 6. 位置积分
		e.Position = e.Position.Add(e.Velocity.Scaled(dt))
		e.UpdateBounds()
	}

	// 7. 碰撞检测
	eng.collisions = eng.collisions[:0]
	eng.detectCollisions()

	// 8. 求解
	eng.resolvePositions()
	eng.resolveVelocities()
}

// detectCollisions 收集本子步的全部碰撞
func (eng *Engine) detectCollisions() {
	for i, e := range eng.entities {
		// 动态实体 × 静态几何体
		if !e.IsStatic {
			for _, body := range eng.staticBodies {
				if c := calculateCollision(e, body); c != nil {
					eng.collisions = append(eng.collisions, c)
				}
			}
		}

		// 实体 × 实体（每对只检测一次，双静态对跳过）
		for j := i + 1; j < len(eng.entities); j++ {
			other := eng.entities[j]
			if e.IsStatic && other.IsStatic {
				continue
			}
			if c := calculateEntityCollision(e, other); c != nil {
				eng.collisions = append(eng.collisions, c)
			}
		}
	}
}

// resolvePositions 迭代位置修正
//
// 沿法线将双方推开，按各自质量倒数占总质量倒数的比例分摊
// （质量大的移动少），乘以修正比例并减去 slop，避免对亚像素
// 重叠无休止地修正。静态实体永不移动。
//
// 副作用：修正后的法线若带有明显向上的分量（Normal.Y < -0.5），
// 将 A 标记为着地；B 在相反符号下对称处理。
func (eng *Engine) resolvePositions() {
	for iter := 0; iter < eng.PositionIterations; iter++ {
		for _, c := range eng.collisions {
			pen := c.Penetration - eng.Slop
			if pen <= 0 {
				eng.markGrounded(c)
				continue
			}

			totalInvMass := c.totalInvMass()
			if totalInvMass <= 0 {
				continue
			}

			correction := c.Normal.Scaled(pen * eng.CorrectionPercent / totalInvMass)
			if !c.A.IsStatic {
				c.A.Position = c.A.Position.Add(correction.Scaled(c.A.InvMass()))
				c.A.UpdateBounds()
			}
			if c.B != nil && !c.B.IsStatic {
				c.B.Position = c.B.Position.Sub(correction.Scaled(c.B.InvMass()))
				c.B.UpdateBounds()
			}

			eng.markGrounded(c)

			// 为下一轮迭代更新残余穿透
			c.Penetration -= pen * eng.CorrectionPercent
		}
	}
}

// markGrounded 根据碰撞法线更新着地状态
func (eng *Engine) markGrounded(c *CollisionInfo) {
	if c.Normal.Y < -0.5 && !c.A.IsStatic {
		c.A.OnGround = true
		c.A.GroundNormal = c.Normal
	}
	if c.Normal.Y > 0.5 && c.B != nil && !c.B.IsStatic {
		c.B.OnGround = true
		c.B.GroundNormal = c.Normal.Negated()
	}
}

// resolveVelocities 迭代冲量速度求解
//
// 经典的法线方向冲量响应：已经在分离的（separatingVelocity > 0）
// 跳过；目标分离速度由双方较小的弹性系数决定；冲量按总质量倒数
// 折算后，等量反向地施加给双方。双方均为静态（总质量倒数为0）时跳过。
func (eng *Engine) resolveVelocities() {
	for iter := 0; iter < eng.VelocityIterations; iter++ {
		for _, c := range eng.collisions {
			sepVel := c.SeparatingVelocity()
			if sepVel > 0 {
				continue
			}

			totalInvMass := c.totalInvMass()
			if totalInvMass <= 0 {
				continue
			}

			newSepVel := -sepVel * c.restitution()
			deltaVel := newSepVel - sepVel
			impulse := c.Normal.Scaled(deltaVel / totalInvMass)

			if !c.A.IsStatic {
				c.A.Velocity = c.A.Velocity.Add(impulse.Scaled(c.A.InvMass()))
			}
			if c.B != nil && !c.B.IsStatic {
				c.B.Velocity = c.B.Velocity.Sub(impulse.Scaled(c.invMassB()))
			}
		}
	}
}

// RaycastHit 描述一次射线检测的结果
type RaycastHit struct {
	Point    geom.Vec2
	Normal   geom.Vec2
	Distance float64
	Entity   *Entity // 命中静态几何体时为 nil
}

// Raycast 对静态几何体和静态标记的实体做射线检测，返回最近的命中
//
// 方向为零向量时直接返回 false（归一化除零防护）。
func (eng *Engine) Raycast(start, direction geom.Vec2, maxDistance float64) (RaycastHit, bool) {
	if direction.IsZero() || maxDistance <= 0 {
		return RaycastHit{}, false
	}

	best := RaycastHit{Distance: math.Inf(1)}
	found := false

	for _, body := range eng.staticBodies {
		if hit, ok := body.IntersectRay(start, direction, maxDistance); ok && hit.Distance < best.Distance {
			best = RaycastHit{Point: hit.Point, Normal: hit.Normal, Distance: hit.Distance}
			found = true
		}
	}

	for _, e := range eng.entities {
		if !e.IsStatic {
			continue
		}
		if hit, ok := e.Bounds.IntersectRay(start, direction, maxDistance); ok && hit.Distance < best.Distance {
			best = RaycastHit{Point: hit.Point, Normal: hit.Normal, Distance: hit.Distance, Entity: e}
			found = true
		}
	}

	return best, found
}

// GetEntitiesInArea 返回碰撞盒与给定区域重叠的所有实体（O(n) 遍历）
func (eng *Engine) GetEntitiesInArea(area geom.Rect) []*Entity {
	var result []*Entity
	for _, e := range eng.entities {
		if e.Bounds.Overlaps(area) {
			result = append(result, e)
		}
	}
	return result
}

// GetStaticBodiesInArea 返回与给定区域重叠的所有静态几何体（O(n) 遍历）
func (eng *Engine) GetStaticBodiesInArea(area geom.Rect) []geom.Rect {
	var result []geom.Rect
	for _, body := range eng.staticBodies {
		if body.Overlaps(area) {
			result = append(result, body)
		}
	}
	return result
}
