package systems

import (
	"log"

	"github.com/gonewx/platformer/pkg/components"
	"github.com/gonewx/platformer/pkg/config"
	"github.com/gonewx/platformer/pkg/ecs"
	"github.com/gonewx/platformer/pkg/game"
	"github.com/gonewx/platformer/pkg/geom"
	"github.com/gonewx/platformer/pkg/level"
	"github.com/gonewx/platformer/pkg/physics"
)

// 平台交互参数
const (
	// breakableDelay 玩家站上可破坏平台到碎裂的时长（秒）
	breakableDelay = 0.4
	// jumpThroughSnapDepth 单向平台向下穿越判定的容差（像素）
	jumpThroughSnapDepth = 6.0
)

// LevelSystem 关卡系统
//
// 驱动关卡对象的每帧运动并处理实体与关卡对象的交互：
// 移动平台（含载客）、单向平台、可破坏/冰面/弹性平台、
// 收集品、检查点和触发器。
type LevelSystem struct {
	entityManager *ecs.EntityManager
	lvl           *level.Level
	engine        *physics.Engine
	audio         game.AudioPlayer
	gameState     *game.GameState
	cfg           *config.PlayerConfig

	// 移动平台对应的静态物理实体
	movingBodies map[*level.Platform]*physics.Entity
	// 可破坏平台的站立累计时长
	breakTimers map[*level.Platform]float64
}

// NewLevelSystem 创建关卡系统
//
// 构造时把关卡几何注入物理引擎：实心平台成为静态几何体，
// 移动平台成为静态标记的物理实体（位置由本系统驱动）。
func NewLevelSystem(em *ecs.EntityManager, lvl *level.Level, eng *physics.Engine, audio game.AudioPlayer, gs *game.GameState, cfg *config.PlayerConfig) *LevelSystem {
	s := &LevelSystem{
		entityManager: em,
		lvl:           lvl,
		engine:        eng,
		audio:         audio,
		gameState:     gs,
		cfg:           cfg,
		movingBodies:  make(map[*level.Platform]*physics.Entity),
		breakTimers:   make(map[*level.Platform]float64),
	}

	for _, p := range lvl.Platforms {
		if p.Type != level.PlatformMoving {
			continue
		}
		body := physics.NewStaticEntity(
			geom.Vec2{X: p.Bounds.X, Y: p.Bounds.Y},
			geom.Vec2{X: p.Bounds.W, Y: p.Bounds.H},
		)
		eng.AddEntity(body)
		s.movingBodies[p] = body
	}

	s.syncStaticBodies()
	return s
}

// syncStaticBodies 将实心平台同步为物理引擎的静态几何体
// （排除移动平台——它们是静态标记的实体——和单向/已破坏平台）
func (s *LevelSystem) syncStaticBodies() {
	s.engine.ClearStaticBodies()
	for _, p := range s.lvl.SolidPlatforms() {
		if p.Type == level.PlatformMoving {
			continue
		}
		s.engine.AddStaticBody(p.Bounds)
	}
}

// Update 每步更新关卡对象和实体交互
func (s *LevelSystem) Update(deltaTime float64) {
	s.updateMovingPlatforms(deltaTime)

	ids := ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PhysicsBodyComponent](s.entityManager)
	for _, id := range ids {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		bodyComp, _ := ecs.GetComponent[*components.PhysicsBodyComponent](s.entityManager, id)
		body := bodyComp.Body

		s.updateJumpThrough(body, deltaTime)
		s.updateGroundSurface(player, body, deltaTime)
		s.updateCollectibles(player, body)
		s.updateCheckpoints(player, body)
		s.updateTriggers(player, body)
	}
}

// updateMovingPlatforms 推进关卡对象运动并同步物理代理，
// 站在移动平台上的实体随平台位移（载客）
func (s *LevelSystem) updateMovingPlatforms(dt float64) {
	s.lvl.Update(dt)

	for p, body := range s.movingBodies {
		delta := geom.Vec2{X: p.Bounds.X - body.Position.X, Y: p.Bounds.Y - body.Position.Y}
		body.Position = geom.Vec2{X: p.Bounds.X, Y: p.Bounds.Y}
		body.UpdateBounds()

		if delta.IsZero() {
			continue
		}

		// 载客：脚底贴着平台顶面的实体跟随平台移动
		for _, rider := range s.engine.Entities() {
			if rider.IsStatic || !rider.OnGround {
				continue
			}
			standsOn := rider.Bounds.Bottom() >= p.Bounds.Top()-2 &&
				rider.Bounds.Bottom() <= p.Bounds.Top()+jumpThroughSnapDepth &&
				rider.Bounds.Right() > p.Bounds.Left() &&
				rider.Bounds.Left() < p.Bounds.Right()
			if standsOn {
				rider.Position = rider.Position.Add(delta)
				rider.UpdateBounds()
			}
		}
	}
}

// updateJumpThrough 单向平台：只有从上方下落时才拦截
//
// 物理引擎不认识单向平台（它们不在静态几何体中），
// 这里手动做穿越判定：下落中脚底越过平台顶面时贴回顶面。
func (s *LevelSystem) updateJumpThrough(body *physics.Entity, dt float64) {
	if body.Velocity.Y < 0 {
		return
	}

	feet := body.Bounds.Bottom()
	prevFeet := feet - body.Velocity.Y*dt

	for _, p := range s.lvl.Platforms {
		if p.Type != level.PlatformJumpThrough || p.Broken {
			continue
		}
		top := p.Bounds.Top()
		crossed := prevFeet <= top+jumpThroughSnapDepth && feet >= top
		overlapX := body.Bounds.Right() > p.Bounds.Left() && body.Bounds.Left() < p.Bounds.Right()
		if crossed && overlapX {
			body.Position.Y = top - body.Size.Y
			body.Velocity.Y = 0
			body.OnGround = true
			body.GroundNormal = geom.Vec2{Y: -1}
			body.UpdateBounds()
			return
		}
	}
}

// updateGroundSurface 根据脚下平台类型处理表面效果：
// 冰面降低摩擦，弹性平台反弹，可破坏平台积累碎裂时间
func (s *LevelSystem) updateGroundSurface(player *components.PlayerComponent, body *physics.Entity, dt float64) {
	body.Friction = physics.DefaultFriction

	if !body.OnGround {
		return
	}

	probe := geom.Vec2{X: body.Bounds.Center().X, Y: body.Bounds.Bottom() + 2}
	p := s.lvl.PlatformAt(probe)
	if p == nil {
		return
	}

	switch p.Type {
	case level.PlatformIce:
		// 冰面：摩擦损耗按配置倍率缩减（倍率越小越滑）
		body.Friction = 1 - (1-physics.DefaultFriction)*s.cfg.IceFrictionMult

	case level.PlatformBouncy:
		body.Velocity.Y = -s.cfg.BounceForce
		body.OnGround = false
		player.DoubleJumpUsed = false
		s.audio.PlaySound("bounce")

	case level.PlatformBreakable:
		s.breakTimers[p] += dt
		if s.breakTimers[p] >= breakableDelay {
			p.Broken = true
			delete(s.breakTimers, p)
			s.syncStaticBodies()
			s.audio.PlaySound("break")
			log.Printf("[Level] 平台碎裂 (%.0f, %.0f)", p.Bounds.X, p.Bounds.Y)
		}
	}
}

// updateCollectibles 收集品拾取判定
//
// Collected 标志单向置位：一个收集品在关卡生命周期内
// 只能被拾取一次，只有关卡 Reset 才复位。
func (s *LevelSystem) updateCollectibles(player *components.PlayerComponent, body *physics.Entity) {
	for _, c := range s.lvl.Collectibles {
		if c.Collected || !body.Bounds.Overlaps(c.Bounds()) {
			continue
		}
		c.Collected = true

		switch c.Type {
		case level.CollectibleCoin:
			player.Score += c.Value
			s.audio.PlaySound("coin")

		case level.CollectibleHealth:
			player.Health += c.Value
			if player.Health > s.cfg.MaxHealth {
				player.Health = s.cfg.MaxHealth
			}
			s.audio.PlaySound("heal")

		case level.CollectibleKey:
			player.Keys++
			s.audio.PlaySound("key")

		case level.CollectiblePowerUp:
			if t, ok := components.PowerUpTypeFromEffect(c.Effect); ok {
				ApplyPowerUp(player, t, s.cfg.PowerUpDuration)
				s.audio.PlaySound("powerup")
			} else {
				log.Printf("[Level] 未知的能力强化效果: %q", c.Effect)
			}
		}
	}
}

// updateCheckpoints 检查点激活判定（单向置位）
// 激活的检查点成为玩家新的重生点
func (s *LevelSystem) updateCheckpoints(player *components.PlayerComponent, body *physics.Entity) {
	for _, c := range s.lvl.Checkpoints {
		if c.Activated || !body.Bounds.Overlaps(c.Bounds()) {
			continue
		}
		c.Activated = true
		player.RespawnPosition = geom.Vec2{
			X: c.Position.X - body.Size.X/2,
			Y: c.Position.Y - body.Size.Y,
		}
		s.audio.PlaySound("checkpoint")
		log.Printf("[Level] 检查点激活 (%.0f, %.0f)", c.Position.X, c.Position.Y)
	}
}

// updateTriggers 触发器判定（单向置位）
func (s *LevelSystem) updateTriggers(player *components.PlayerComponent, body *physics.Entity) {
	for _, t := range s.lvl.Triggers {
		if t.Triggered || !body.Bounds.Overlaps(t.Bounds) {
			continue
		}
		t.Triggered = true
		log.Printf("[Level] 触发器激活: %s", t.Action)

		switch t.Action {
		case "level_complete":
			// 本关得分计入跨关卡总分
			s.gameState.TotalScore += player.Score
			s.audio.PlaySound("level_complete")
			s.gameState.TransitionTo(game.StateLevelComplete)
		default:
			// 其他动作由场景层解释
		}
	}
}

// Reset 关卡系统复位：清空碎裂计时并重建静态几何
// 与 Level.Reset 配套使用
func (s *LevelSystem) Reset() {
	s.breakTimers = make(map[*level.Platform]float64)
	s.syncStaticBodies()

	for p, body := range s.movingBodies {
		body.Position = geom.Vec2{X: p.Bounds.X, Y: p.Bounds.Y}
		body.UpdateBounds()
	}
}
