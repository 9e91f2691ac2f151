package systems

import (
	"log"
	"math"

	"github.com/gonewx/platformer/pkg/components"
	"github.com/gonewx/platformer/pkg/ecs"
	"github.com/gonewx/platformer/pkg/game"
	"github.com/gonewx/platformer/pkg/geom"
	"github.com/gonewx/platformer/pkg/level"
	"github.com/gonewx/platformer/pkg/physics"
)

// Flyer 悬浮参数
const (
	flyerHoverAmplitude = 14.0 // 正弦摆动幅度（像素）
	flyerHoverFrequency = 2.4  // 摆动角频率（弧度/秒）
	flyerVerticalGain   = 6.0  // 垂直位置纠正系数
)

// Jumper 跳跃参数
const (
	jumperLeapInterval = 1.4   // 两次跳跃的间隔（秒）
	jumperLeapForceY   = 420.0 // 跳跃垂直速度
)

// EnemyAISystem 敌人AI系统
//
// 所有敌人共享同一个状态机：
//
//	PATROL → CHASE    侦测到玩家（距离 ≤ 侦测范围且视线无遮挡）
//	CHASE  → PATROL   连续未侦测超过 LoseTargetTime
//	                  （迟滞：距离超过 1.5× 侦测范围才算失去目标）
//	CHASE  → ATTACK   进入攻击距离且冷却完毕
//	ATTACK → CHASE    攻击动画播完，装填冷却
//	非DEAD → STUNNED  受到非致命伤害
//	STUNNED→ PATROL   硬直 1 秒后
//	任意   → DEAD     生命归零，终态（只有 Reset 复活）
//
// 种类差异只在移动方式上分派：Walker 贴地移动，
// Flyer 悬浮正弦摆动，Jumper 追击时周期性朝玩家跳跃。
type EnemyAISystem struct {
	entityManager *ecs.EntityManager
	lvl           *level.Level
	audio         game.AudioPlayer
	combat        *CombatSystem
}

// NewEnemyAISystem 创建敌人AI系统
func NewEnemyAISystem(em *ecs.EntityManager, lvl *level.Level, audio game.AudioPlayer, combat *CombatSystem) *EnemyAISystem {
	return &EnemyAISystem{
		entityManager: em,
		lvl:           lvl,
		audio:         audio,
		combat:        combat,
	}
}

// Update 更新所有敌人实体
func (s *EnemyAISystem) Update(deltaTime float64) {
	playerBody, playerComp := s.findPlayer()

	ids := ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PhysicsBodyComponent](s.entityManager)
	for _, id := range ids {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
		bodyComp, _ := ecs.GetComponent[*components.PhysicsBodyComponent](s.entityManager, id)
		s.updateEnemy(enemy, bodyComp.Body, playerBody, playerComp, deltaTime)
	}
}

// findPlayer 返回第一个玩家实体的物理实体与组件，没有则为 nil
func (s *EnemyAISystem) findPlayer() (*physics.Entity, *components.PlayerComponent) {
	ids := ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PhysicsBodyComponent](s.entityManager)
	for _, id := range ids {
		p, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		b, _ := ecs.GetComponent[*components.PhysicsBodyComponent](s.entityManager, id)
		return b.Body, p
	}
	return nil, nil
}

// updateEnemy 单个敌人的每步更新
func (s *EnemyAISystem) updateEnemy(e *components.EnemyComponent, body *physics.Entity, playerBody *physics.Entity, player *components.PlayerComponent, dt float64) {
	// 计时器递减
	e.AttackCooldownTimer -= dt
	e.InvulnTimer -= dt
	e.JumpTimer -= dt

	switch e.State {
	case components.StateDead:
		body.Velocity.X = 0
		return

	case components.StateStunned:
		e.StunTimer -= dt
		body.Velocity.X = 0
		if e.StunTimer <= 0 {
			s.transition(e, components.StatePatrol)
		}
		return
	}

	if playerBody == nil || player == nil || player.Lives <= 0 {
		// 没有可追击的目标，回到巡逻
		if e.State != components.StatePatrol {
			s.transition(e, components.StatePatrol)
		}
		s.moveByKind(e, body, geom.Vec2{}, false, dt)
		return
	}

	dist := body.Bounds.Center().DistanceTo(playerBody.Bounds.Center())

	switch e.State {
	case components.StatePatrol:
		if dist <= e.DetectionRange && s.hasLineOfSight(body, playerBody) {
			e.UndetectedTimer = 0
			s.transition(e, components.StateChase)
			return
		}
		s.moveByKind(e, body, geom.Vec2{}, false, dt)

	case components.StateChase:
		// 迟滞：退回巡逻要求距离超过 1.5× 侦测范围（必要条件）
		// 且未侦测时间累计超过阈值，避免在侦测边界上状态抖动。
		// 玩家藏在范围内的掩体后只累计时间，不触发退出追击。
		withinRange := dist <= e.DetectionRange*components.LoseTargetRangeFactor
		if withinRange && s.hasLineOfSight(body, playerBody) {
			e.UndetectedTimer = 0
		} else {
			e.UndetectedTimer += dt
			if !withinRange && e.UndetectedTimer > components.LoseTargetTime {
				s.transition(e, components.StatePatrol)
				return
			}
		}

		if dist <= e.AttackRange && e.AttackCooldownTimer <= 0 {
			s.transition(e, components.StateAttack)
			e.AttackAnimTimer = e.AttackAnimTime
			body.Velocity.X = 0
			s.audio.PlaySound("enemy_attack")
			// 攻击判定在动画开始时结算一次
			s.combat.DamagePlayer(player, playerBody, e.AttackDamage, body.Bounds.Center().X)
			return
		}

		s.moveByKind(e, body, playerBody.Bounds.Center(), true, dt)

	case components.StateAttack:
		e.AttackAnimTimer -= dt
		body.Velocity.X = 0
		if e.AttackAnimTimer <= 0 {
			e.AttackCooldownTimer = e.AttackCooldown
			s.transition(e, components.StateChase)
		}
	}
}

// transition 执行状态切换并记录日志
func (s *EnemyAISystem) transition(e *components.EnemyComponent, next components.AIState) {
	if e.State == next {
		return
	}
	log.Printf("[EnemyAI] %v -> %v", e.State, next)
	e.State = next
}

// hasLineOfSight 视线判定：从敌人中心向玩家中心发射线，
// 中途被任何平台挡住则视线不通
func (s *EnemyAISystem) hasLineOfSight(from, to *physics.Entity) bool {
	start := from.Bounds.Center()
	end := to.Bounds.Center()
	dir := end.Sub(start)
	dist := dir.Length()
	if dist == 0 {
		return true
	}

	hit, ok := s.lvl.Raycast(start, dir, dist)
	return !ok || hit.Distance >= dist
}

// moveByKind 按敌人种类分派移动方式
// chasing 为 true 时 target 是玩家中心，否则执行巡逻移动
func (s *EnemyAISystem) moveByKind(e *components.EnemyComponent, body *physics.Entity, target geom.Vec2, chasing bool, dt float64) {
	switch e.Kind {
	case components.EnemyWalker:
		s.moveWalker(e, body, target, chasing)
	case components.EnemyFlyer:
		s.moveFlyer(e, body, target, chasing, dt)
	case components.EnemyJumper:
		s.moveJumper(e, body, target, chasing)
	}
}

// moveWalker 步行者：水平向目标/巡逻点移动
func (s *EnemyAISystem) moveWalker(e *components.EnemyComponent, body *physics.Entity, target geom.Vec2, chasing bool) {
	var dirX float64
	if chasing {
		dirX = sign(target.X - body.Bounds.Center().X)
	} else {
		dirX = s.patrolDirection(e, body)
	}
	body.Velocity.X = dirX * e.MoveSpeed
	if dirX != 0 {
		e.FacingRight = dirX > 0
	}
}

// moveFlyer 飞行者：不受重力，垂直方向围绕基准高度正弦摆动；
// 追击时直接朝玩家中心飞行（覆盖悬浮运动）
func (s *EnemyAISystem) moveFlyer(e *components.EnemyComponent, body *physics.Entity, target geom.Vec2, chasing bool, dt float64) {
	if chasing {
		dir := target.Sub(body.Bounds.Center()).Normalized()
		body.Velocity = dir.Scaled(e.MoveSpeed)
		e.FacingRight = dir.X > 0
		return
	}

	// 巡逻：水平往返 + 垂直正弦悬浮
	e.HoverPhase += flyerHoverFrequency * dt
	if e.HoverPhase > 2*math.Pi {
		e.HoverPhase -= 2 * math.Pi
	}
	dirX := s.patrolDirection(e, body)
	body.Velocity.X = dirX * e.MoveSpeed

	hoverY := e.HoverBaseY + math.Sin(e.HoverPhase)*flyerHoverAmplitude
	body.Velocity.Y = (hoverY - body.Position.Y) * flyerVerticalGain
	if dirX != 0 {
		e.FacingRight = dirX > 0
	}
}

// moveJumper 跳跃者：地面移动与步行者相同，
// 追击时着地且计时器到期就朝玩家跳一次
func (s *EnemyAISystem) moveJumper(e *components.EnemyComponent, body *physics.Entity, target geom.Vec2, chasing bool) {
	s.moveWalker(e, body, target, chasing)

	if chasing && body.OnGround && e.JumpTimer <= 0 {
		body.Velocity.Y = -jumperLeapForceY
		e.JumpTimer = jumperLeapInterval
	}
}

// patrolDirection 巡逻方向：超出巡逻范围边界时折返
func (s *EnemyAISystem) patrolDirection(e *components.EnemyComponent, body *physics.Entity) float64 {
	x := body.Position.X
	if e.PatrolMovingRight() && x >= e.PatrolOrigin.X+e.PatrolRange {
		e.SetPatrolDirection(false)
	} else if !e.PatrolMovingRight() && x <= e.PatrolOrigin.X-e.PatrolRange {
		e.SetPatrolDirection(true)
	}
	if e.PatrolMovingRight() {
		return 1
	}
	return -1
}

// DamageEnemy 对敌人结算一次伤害
//
// 无敌或已死亡时为空操作。非致命伤害进入硬直（STUNNED），
// 致命伤害进入终态 DEAD，物理实体停止运动。
func DamageEnemy(e *components.EnemyComponent, body *physics.Entity, amount int, audio game.AudioPlayer) {
	if !e.Alive() || e.InvulnTimer > 0 {
		return
	}

	e.Health -= amount
	if e.Health <= 0 {
		e.Health = 0
		log.Printf("[EnemyAI] %v -> %v", e.State, components.StateDead)
		e.State = components.StateDead
		body.Velocity = geom.Vec2{}
		audio.PlaySound("enemy_die")
		return
	}

	log.Printf("[EnemyAI] %v -> %v", e.State, components.StateStunned)
	e.State = components.StateStunned
	e.StunTimer = components.StunDuration
	e.InvulnTimer = components.StunDuration
	audio.PlaySound("enemy_hit")
}

// ResetEnemy 将敌人恢复到出生状态（关卡 Reset 时调用）
func ResetEnemy(e *components.EnemyComponent, body *physics.Entity) {
	e.State = components.StatePatrol
	e.Health = e.MaxHealth
	e.AttackCooldownTimer = 0
	e.AttackAnimTimer = 0
	e.StunTimer = 0
	e.UndetectedTimer = 0
	e.InvulnTimer = 0
	e.JumpTimer = 0
	e.HoverPhase = 0
	e.SetPatrolDirection(true)

	body.Position = e.SpawnPosition
	body.Velocity = geom.Vec2{}
	body.UpdateBounds()
}

func sign(x float64) float64 {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
