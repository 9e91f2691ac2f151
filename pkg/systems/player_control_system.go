// Package systems 实现按固定步长驱动ECS实体的各个逻辑系统
package systems

import (
	"github.com/gonewx/platformer/pkg/components"
	"github.com/gonewx/platformer/pkg/config"
	"github.com/gonewx/platformer/pkg/ecs"
	"github.com/gonewx/platformer/pkg/game"
	"github.com/gonewx/platformer/pkg/level"
	"github.com/gonewx/platformer/pkg/physics"
)

// PlayerControlSystem 玩家控制系统
//
// 把输入意图转换为速度变化，并维护玩家的能力状态机：
// 土狼时间、跳跃缓冲、二段跳、滑墙/蹬墙跳、冲刺、
// 无敌计时和能力强化的生效与过期。
// 所有计时器每个固定子步递减一次，只由各自的触发事件重新装填。
type PlayerControlSystem struct {
	entityManager *ecs.EntityManager
	lvl           *level.Level
	input         game.InputProvider
	audio         game.AudioPlayer
	cfg           *config.PlayerConfig
}

// NewPlayerControlSystem 创建玩家控制系统
func NewPlayerControlSystem(em *ecs.EntityManager, lvl *level.Level, input game.InputProvider, audio game.AudioPlayer, cfg *config.PlayerConfig) *PlayerControlSystem {
	return &PlayerControlSystem{
		entityManager: em,
		lvl:           lvl,
		input:         input,
		audio:         audio,
		cfg:           cfg,
	}
}

// Update 更新所有玩家实体
func (s *PlayerControlSystem) Update(deltaTime float64) {
	ids := ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PhysicsBodyComponent](s.entityManager)
	for _, id := range ids {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		bodyComp, _ := ecs.GetComponent[*components.PhysicsBodyComponent](s.entityManager, id)
		s.updatePlayer(player, bodyComp.Body, deltaTime)
	}
}

// updatePlayer 单个玩家的每步更新
func (s *PlayerControlSystem) updatePlayer(p *components.PlayerComponent, body *physics.Entity, dt float64) {
	s.tickTimers(p, dt)

	// 跳跃缓冲：按键先记录，窗口内一旦合法立即起跳
	if s.input.JustPressed(game.ActionJump) {
		p.JumpBufferTimer = s.cfg.JumpBufferTime
	}

	// 土狼时间只在着地→离地的下落边沿装填一次，
	// 滞空期间绝不重复触发；主动起跳（向上速度）不装填
	if body.JustLeftGround() && body.Velocity.Y >= 0 {
		p.CoyoteTimer = s.cfg.CoyoteTime
	}

	// 落地：重置二段跳
	if body.JustLanded() {
		p.DoubleJumpUsed = false
		p.JumpsThisAir = 0
		s.audio.PlaySound("land")
	}

	s.updateWallSlide(p, body)

	// 消费跳跃缓冲
	if p.JumpBufferTimer > 0 && s.tryJump(p, body) {
		p.JumpBufferTimer = 0
	}

	// 冲刺：重新触发只由 DashTimer <= 0 控制
	if s.input.JustPressed(game.ActionDash) && !p.IsDashing() {
		p.DashTimer = s.cfg.DashDuration
		if p.FacingRight {
			p.DashDir = 1
		} else {
			p.DashDir = -1
		}
		axis := s.input.MoveAxis()
		if axis > 0 {
			p.DashDir = 1
		} else if axis < 0 {
			p.DashDir = -1
		}
		s.audio.PlaySound("dash")
	}

	if p.IsDashing() {
		// 冲刺覆盖常规水平加速度和摩擦，期间垂直速度清零
		body.Velocity.X = p.DashDir * s.cfg.DashSpeed
		body.Velocity.Y = 0
		return
	}

	// 击退期间不接受移动输入
	if p.KnockbackTimer > 0 {
		return
	}

	s.applyMovement(p, body, dt)
}

// tickTimers 递减全部倒计时字段并处理能力强化过期
func (s *PlayerControlSystem) tickTimers(p *components.PlayerComponent, dt float64) {
	p.CoyoteTimer -= dt
	p.JumpBufferTimer -= dt
	p.DashTimer -= dt
	p.WallJumpLockTimer -= dt
	p.InvulnTimer -= dt
	p.KnockbackTimer -= dt

	for t, remaining := range p.PowerUps {
		remaining -= dt
		if remaining <= 0 {
			RemovePowerUp(p, t)
		} else {
			p.PowerUps[t] = remaining
		}
	}
}

// updateWallSlide 更新滑墙状态
// 滑墙条件：滞空下落、贴靠墙面、向墙方向持续输入且不在蹬墙跳锁定期
func (s *PlayerControlSystem) updateWallSlide(p *components.PlayerComponent, body *physics.Entity) {
	p.WallSliding = false
	if body.OnGround || body.Velocity.Y <= 0 || p.WallJumpLockTimer > 0 {
		return
	}

	side := s.lvl.GetWallSide(body.Bounds)
	if side == level.WallNone {
		return
	}

	axis := s.input.MoveAxis()
	pressingIntoWall := (side == level.WallRight && axis > 0) || (side == level.WallLeft && axis < 0)
	if !pressingIntoWall {
		return
	}

	p.WallSliding = true
	p.WallOnRight = side == level.WallRight

	// 滑墙限制下落速度
	if body.Velocity.Y > s.cfg.WallSlideSpeed {
		body.Velocity.Y = s.cfg.WallSlideSpeed
	}
}

// tryJump 按优先级尝试起跳，成功返回 true
//
// 优先级（互斥）：
//  1. 着地或土狼时间窗口内 → 全力跳，重置二段跳
//  2. 滑墙且允许蹬墙跳 → 远离墙面的水平+垂直冲量，翻转朝向，
//     并施加短暂锁定防止立刻重新贴上同一面墙
//  3. 二段跳可用且本次滞空未用过 → 80% 力度跳，标记已用
func (s *PlayerControlSystem) tryJump(p *components.PlayerComponent, body *physics.Entity) bool {
	jumpForce := s.cfg.JumpForce * p.JumpMultiplier

	// 1. 地面跳 / 土狼跳
	if body.OnGround || p.CoyoteTimer > 0 {
		body.Velocity.Y = -jumpForce
		p.CoyoteTimer = 0
		p.DoubleJumpUsed = false
		p.JumpsThisAir++
		s.audio.PlaySound("jump")
		return true
	}

	// 2. 蹬墙跳（优先于二段跳，保留二段跳资源）
	if p.WallSliding && s.cfg.CanWallJump {
		away := 1.0
		if p.WallOnRight {
			away = -1.0
		}
		body.Velocity.X = away * s.cfg.WallJumpForceX
		body.Velocity.Y = -s.cfg.WallJumpForceY
		p.FacingRight = away > 0
		p.WallJumpLockTimer = s.cfg.WallJumpLockout
		p.WallSliding = false
		p.JumpsThisAir++
		s.audio.PlaySound("walljump")
		return true
	}

	// 3. 二段跳
	if !p.DoubleJumpUsed {
		body.Velocity.Y = -jumpForce * s.cfg.DoubleJumpFactor
		p.DoubleJumpUsed = true
		p.JumpsThisAir++
		s.audio.PlaySound("doublejump")
		return true
	}

	return false
}

// applyMovement 常规水平移动：向目标速度逼近
func (s *PlayerControlSystem) applyMovement(p *components.PlayerComponent, body *physics.Entity, dt float64) {
	axis := s.input.MoveAxis()

	// 蹬墙跳锁定期内忽略水平输入，保留蹬墙冲量
	if p.WallJumpLockTimer > 0 {
		return
	}

	if axis > 0 {
		p.FacingRight = true
	} else if axis < 0 {
		p.FacingRight = false
	}

	accel := s.cfg.AirAccel
	if body.OnGround {
		accel = s.cfg.GroundAccel
	}

	target := axis * s.cfg.MoveSpeed * p.SpeedMultiplier
	diff := target - body.Velocity.X
	maxStep := accel * dt
	if diff > maxStep {
		diff = maxStep
	} else if diff < -maxStep {
		diff = -maxStep
	}
	body.Velocity.X += diff
}

// ApplyPowerUp 施加能力强化
//
// 已生效的同类强化只刷新剩余时长，属性倍率不会重复相乘，
// 保证施加/移除严格互逆，反复叠加不产生属性漂移。
func ApplyPowerUp(p *components.PlayerComponent, t components.PowerUpType, duration float64) {
	if _, active := p.PowerUps[t]; active {
		p.PowerUps[t] = duration
		return
	}

	p.PowerUps[t] = duration
	switch t {
	case components.PowerUpSpeedBoost:
		p.SpeedMultiplier *= components.SpeedBoostMultiplier
	case components.PowerUpJumpBoost:
		p.JumpMultiplier *= components.JumpBoostMultiplier
	}
}

// RemovePowerUp 移除能力强化（过期或重生时调用）
func RemovePowerUp(p *components.PlayerComponent, t components.PowerUpType) {
	if _, active := p.PowerUps[t]; !active {
		return
	}

	delete(p.PowerUps, t)
	switch t {
	case components.PowerUpSpeedBoost:
		p.SpeedMultiplier /= components.SpeedBoostMultiplier
	case components.PowerUpJumpBoost:
		p.JumpMultiplier /= components.JumpBoostMultiplier
	}
}
