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

// 踩踏判定参数
const (
	// StompDamage 玩家踩踏对敌人造成的伤害
	StompDamage = 20
	// stompBounceFactor 踩踏后反弹力度（相对跳跃力）
	stompBounceFactor = 0.55
	// stompMinFallSpeed 判定为踩踏所需的最小下落速度
	stompMinFallSpeed = 60.0
	// outOfBoundsMargin 掉出关卡底部多少像素后判定坠亡
	outOfBoundsMargin = 100.0
)

// CombatSystem 战斗系统
//
// 处理玩家与敌人/障碍物的接触伤害、踩踏击杀、击退、
// 无敌窗口、死亡与重生。重生重置生命、速度和能力强化，
// 但保留得分与统计。
type CombatSystem struct {
	entityManager *ecs.EntityManager
	lvl           *level.Level
	audio         game.AudioPlayer
	gameState     *game.GameState
	cfg           *config.PlayerConfig
}

// NewCombatSystem 创建战斗系统
func NewCombatSystem(em *ecs.EntityManager, lvl *level.Level, audio game.AudioPlayer, gs *game.GameState, cfg *config.PlayerConfig) *CombatSystem {
	return &CombatSystem{
		entityManager: em,
		lvl:           lvl,
		audio:         audio,
		gameState:     gs,
		cfg:           cfg,
	}
}

// Update 每步结算一次接触判定
func (s *CombatSystem) Update(deltaTime float64) {
	playerIDs := ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PhysicsBodyComponent](s.entityManager)
	for _, pid := range playerIDs {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, pid)
		bodyComp, _ := ecs.GetComponent[*components.PhysicsBodyComponent](s.entityManager, pid)
		body := bodyComp.Body

		s.checkEnemyContact(player, body)
		s.checkObstacles(player, body)
		s.checkOutOfBounds(player, body)
	}
}

// checkEnemyContact 玩家与敌人的接触判定
//
// 下落中从上方压到敌人判定为踩踏：敌人受伤、玩家反弹；
// 其他方向的接触对玩家造成接触伤害并击退。
func (s *CombatSystem) checkEnemyContact(player *components.PlayerComponent, playerBody *physics.Entity) {
	enemyIDs := ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PhysicsBodyComponent](s.entityManager)
	for _, eid := range enemyIDs {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, eid)
		bodyComp, _ := ecs.GetComponent[*components.PhysicsBodyComponent](s.entityManager, eid)
		enemyBody := bodyComp.Body

		if !enemy.Alive() {
			continue
		}
		if !playerBody.Bounds.Overlaps(enemyBody.Bounds) {
			continue
		}

		// 踩踏：玩家在下落且脚底高于敌人中心
		if playerBody.Velocity.Y > stompMinFallSpeed &&
			playerBody.Bounds.Bottom() < enemyBody.Bounds.Center().Y {
			DamageEnemy(enemy, enemyBody, StompDamage, s.audio)
			playerBody.Velocity.Y = -s.cfg.JumpForce * stompBounceFactor
			player.DoubleJumpUsed = false
			continue
		}

		// 接触伤害（硬直中的敌人不造成伤害）
		if enemy.State != components.StateStunned {
			s.DamagePlayer(player, playerBody, enemy.AttackDamage, enemyBody.Bounds.Center().X)
		}
	}
}

// checkObstacles 玩家与障碍物的接触判定
func (s *CombatSystem) checkObstacles(player *components.PlayerComponent, body *physics.Entity) {
	for _, o := range s.lvl.Obstacles {
		if body.Bounds.Overlaps(o.Bounds) {
			s.DamagePlayer(player, body, o.Damage, o.Bounds.Center().X)
		}
	}
}

// checkOutOfBounds 掉出关卡底部直接损失一条生命
func (s *CombatSystem) checkOutOfBounds(player *components.PlayerComponent, body *physics.Entity) {
	if body.Position.Y > s.lvl.Bounds.Bottom()+outOfBoundsMargin {
		s.loseLife(player, body)
	}
}

// DamagePlayer 对玩家结算一次伤害
//
// 无敌期间（受击无敌或护盾）为空操作。伤害附带远离伤害源的
// 击退冲量，并开启无敌窗口。生命归零损失一条命。
func (s *CombatSystem) DamagePlayer(player *components.PlayerComponent, body *physics.Entity, amount int, fromX float64) {
	if player.IsInvulnerable() || player.Lives <= 0 {
		return
	}

	player.Health -= amount
	player.InvulnTimer = s.cfg.InvulnerabilityTime
	s.audio.PlaySound("hurt")

	// 击退：水平方向远离伤害源，附带少量上抬
	away := 1.0
	if body.Bounds.Center().X < fromX {
		away = -1.0
	}
	body.Velocity = geom.Vec2{
		X: away * s.cfg.KnockbackForce,
		Y: -s.cfg.KnockbackForce * 0.5,
	}
	player.KnockbackTimer = 0.25
	player.DashTimer = 0

	if player.Health <= 0 {
		s.loseLife(player, body)
	}
}

// loseLife 损失一条生命
// 还有剩余生命时在最近检查点重生；否则进入游戏结束状态
func (s *CombatSystem) loseLife(player *components.PlayerComponent, body *physics.Entity) {
	player.Lives--
	log.Printf("[Combat] 玩家损失一条生命，剩余 %d", player.Lives)

	if player.Lives <= 0 {
		player.Health = 0
		body.Velocity = geom.Vec2{}
		s.audio.PlaySound("gameover")
		s.gameState.TransitionTo(game.StateGameOver)
		return
	}

	s.Respawn(player, body)
}

// Respawn 在最近激活的检查点（或出生点）重生
//
// 重置生命值、速度和能力强化状态；得分与统计保留。
func (s *CombatSystem) Respawn(player *components.PlayerComponent, body *physics.Entity) {
	player.Health = s.cfg.MaxHealth

	// 移除全部能力强化（倍率严格除回）
	for t := range player.PowerUps {
		RemovePowerUp(player, t)
	}

	player.CoyoteTimer = 0
	player.JumpBufferTimer = 0
	player.DashTimer = 0
	player.WallJumpLockTimer = 0
	player.KnockbackTimer = 0
	player.DoubleJumpUsed = false
	player.WallSliding = false
	player.InvulnTimer = s.cfg.InvulnerabilityTime

	body.Position = player.RespawnPosition
	body.Velocity = geom.Vec2{}
	body.UpdateBounds()

	s.audio.PlaySound("respawn")
	log.Printf("[Combat] 玩家重生于 (%.0f, %.0f)", body.Position.X, body.Position.Y)
}
