package systems

import (
	"testing"

	"github.com/gonewx/platformer/pkg/components"
	"github.com/gonewx/platformer/pkg/config"
	"github.com/gonewx/platformer/pkg/ecs"
	"github.com/gonewx/platformer/pkg/entities"
	"github.com/gonewx/platformer/pkg/game"
	"github.com/gonewx/platformer/pkg/geom"
	"github.com/gonewx/platformer/pkg/level"
	"github.com/gonewx/platformer/pkg/physics"
)

// enemyFixture 敌人AI测试夹具
type enemyFixture struct {
	em         *ecs.EntityManager
	lvl        *level.Level
	sys        *EnemyAISystem
	enemy      *components.EnemyComponent
	enemyBody  *physics.Entity
	player     *components.PlayerComponent
	playerBody *physics.Entity
}

// newEnemyFixture 创建一个 Walker 敌人和一个玩家
// 敌人出生于 (500, 560)，侦测范围 240，攻击范围 44
func newEnemyFixture(lvl *level.Level, kind components.EnemyKind) *enemyFixture {
	em := ecs.NewEntityManager()
	eng := physics.NewEngine()
	cfg := config.DefaultPlayerConfig()

	pid := entities.NewPlayerEntity(em, eng, cfg, geom.V(100, 556))
	player, _ := ecs.GetComponent[*components.PlayerComponent](em, pid)
	playerBody, _ := ecs.GetComponent[*components.PhysicsBodyComponent](em, pid)

	eid := entities.NewEnemyEntity(em, eng, kind, geom.V(500, 560), 120)
	enemy, _ := ecs.GetComponent[*components.EnemyComponent](em, eid)
	enemyBody, _ := ecs.GetComponent[*components.PhysicsBodyComponent](em, eid)

	combat := NewCombatSystem(em, lvl, game.NullAudioPlayer{}, game.NewGameState(), cfg)
	return &enemyFixture{
		em:         em,
		lvl:        lvl,
		sys:        NewEnemyAISystem(em, lvl, game.NullAudioPlayer{}, combat),
		enemy:      enemy,
		enemyBody:  enemyBody.Body,
		player:     player,
		playerBody: playerBody.Body,
	}
}

// movePlayerTo 将玩家移动到与敌人中心水平相距 dist 的位置
func (f *enemyFixture) movePlayerTo(dist float64) {
	c := f.enemyBody.Bounds.Center()
	f.playerBody.Position = geom.Vec2{
		X: c.X - dist - f.playerBody.Size.X/2,
		Y: c.Y - f.playerBody.Size.Y/2,
	}
	f.playerBody.UpdateBounds()
}

// TestEnemyDetectsPlayer 测试侦测范围内进入追击
func TestEnemyDetectsPlayer(t *testing.T) {
	f := newEnemyFixture(flatLevel(), components.EnemyWalker)

	// 玩家在侦测范围外：保持巡逻
	f.movePlayerTo(f.enemy.DetectionRange + 50)
	f.sys.Update(testStep)
	if f.enemy.State != components.StatePatrol {
		t.Fatalf("out of range: got %v, want PATROL", f.enemy.State)
	}

	// 进入侦测范围：切换到追击
	f.movePlayerTo(f.enemy.DetectionRange - 10)
	f.sys.Update(testStep)
	if f.enemy.State != components.StateChase {
		t.Errorf("in range: got %v, want CHASE", f.enemy.State)
	}
}

// TestEnemyChaseHysteresis 测试追击迟滞
// 距离在 1.0~1.5 倍侦测范围之间时保持追击，不在边界上抖动
func TestEnemyChaseHysteresis(t *testing.T) {
	f := newEnemyFixture(flatLevel(), components.EnemyWalker)

	f.movePlayerTo(f.enemy.DetectionRange - 10)
	f.sys.Update(testStep)
	if f.enemy.State != components.StateChase {
		t.Fatal("enemy should be chasing")
	}

	// 拉开到 1.2 倍侦测范围：持续数秒仍保持追击
	f.movePlayerTo(f.enemy.DetectionRange * 1.2)
	for i := 0; i < 300; i++ {
		f.sys.Update(testStep)
		f.movePlayerTo(f.enemy.DetectionRange * 1.2) // 敌人在移动，保持相对距离
	}
	if f.enemy.State != components.StateChase {
		t.Errorf("at 1.2x range: got %v, want CHASE (hysteresis)", f.enemy.State)
	}
}

// TestEnemyKeepsChasingWhenHiddenInRange 测试迟滞范围内的遮挡不丢失目标
// 距离超过 1.5 倍侦测范围是退回巡逻的必要条件：
// 玩家躲在范围内的掩体后，无论多久敌人都保持追击
func TestEnemyKeepsChasingWhenHiddenInRange(t *testing.T) {
	f := newEnemyFixture(flatLevel(), components.EnemyWalker)

	f.movePlayerTo(f.enemy.DetectionRange - 10)
	f.sys.Update(testStep)
	if f.enemy.State != components.StateChase {
		t.Fatal("enemy should be chasing")
	}

	// 在敌人与玩家之间立一面墙，玩家保持在 1.0 倍侦测范围
	f.lvl.Platforms = append(f.lvl.Platforms, &level.Platform{
		Bounds: geom.R(380, 0, 20, 600), Type: level.PlatformSolid,
	})
	distance := f.enemy.DetectionRange
	f.movePlayerTo(distance)

	// 远超 3 秒的未侦测时间也不放弃追击
	for i := 0; i < 240; i++ {
		f.sys.Update(testStep)
		f.movePlayerTo(distance)
	}
	if f.enemy.State != components.StateChase {
		t.Errorf("hidden player within 1.5x range: got %v, want CHASE", f.enemy.State)
	}
}

// TestEnemyLosesTarget 测试超出迟滞范围且超时后退回巡逻
func TestEnemyLosesTarget(t *testing.T) {
	f := newEnemyFixture(flatLevel(), components.EnemyWalker)

	f.movePlayerTo(f.enemy.DetectionRange - 10)
	f.sys.Update(testStep)
	if f.enemy.State != components.StateChase {
		t.Fatal("enemy should be chasing")
	}

	// 拉开到 2 倍侦测范围：未侦测计时开始累积
	distance := f.enemy.DetectionRange * 2
	f.movePlayerTo(distance)

	// 3 秒内仍在追击
	for i := 0; i < 150; i++ {
		f.sys.Update(testStep)
		f.movePlayerTo(distance)
	}
	if f.enemy.State != components.StateChase {
		t.Fatalf("before timeout: got %v, want CHASE", f.enemy.State)
	}

	// 超过 3 秒后放弃
	for i := 0; i < 60; i++ {
		f.sys.Update(testStep)
		f.movePlayerTo(distance)
	}
	if f.enemy.State != components.StatePatrol {
		t.Errorf("after timeout: got %v, want PATROL", f.enemy.State)
	}
}

// TestEnemyLineOfSightBlocked 测试视线被平台遮挡时不侦测
func TestEnemyLineOfSightBlocked(t *testing.T) {
	lvl := flatLevel()
	// 在敌人与玩家之间立一面高墙
	lvl.Platforms = append(lvl.Platforms, &level.Platform{
		Bounds: geom.R(380, 0, 20, 600), Type: level.PlatformSolid,
	})
	f := newEnemyFixture(lvl, components.EnemyWalker)

	f.movePlayerTo(f.enemy.DetectionRange - 10)
	f.sys.Update(testStep)

	if f.enemy.State != components.StatePatrol {
		t.Errorf("blocked line of sight: got %v, want PATROL", f.enemy.State)
	}
}

// TestEnemyAttack 测试进入攻击距离后的攻击流程
// 攻击开始时结算一次伤害，动画播完后装填冷却回到追击
func TestEnemyAttack(t *testing.T) {
	f := newEnemyFixture(flatLevel(), components.EnemyWalker)

	f.movePlayerTo(f.enemy.DetectionRange - 10)
	f.sys.Update(testStep)

	healthBefore := f.player.Health
	f.movePlayerTo(f.enemy.AttackRange - 5)
	f.sys.Update(testStep)

	if f.enemy.State != components.StateAttack {
		t.Fatalf("in attack range: got %v, want ATTACK", f.enemy.State)
	}
	if f.player.Health != healthBefore-f.enemy.AttackDamage {
		t.Errorf("player health: got %d, want %d", f.player.Health, healthBefore-f.enemy.AttackDamage)
	}

	// 动画播完回到追击并装填冷却
	steps := int(f.enemy.AttackAnimTime/testStep) + 2
	for i := 0; i < steps; i++ {
		f.sys.Update(testStep)
	}
	if f.enemy.State != components.StateChase {
		t.Errorf("after attack animation: got %v, want CHASE", f.enemy.State)
	}
	if f.enemy.AttackCooldownTimer <= 0 {
		t.Error("attack cooldown should be reloaded after the attack")
	}

	// 冷却期间贴近也不再次攻击
	f.movePlayerTo(f.enemy.AttackRange - 5)
	f.sys.Update(testStep)
	if f.enemy.State == components.StateAttack {
		t.Error("enemy must not attack again while on cooldown")
	}
}

// TestEnemyStun 测试非致命伤害进入硬直并在 1 秒后恢复巡逻
func TestEnemyStun(t *testing.T) {
	f := newEnemyFixture(flatLevel(), components.EnemyWalker)

	DamageEnemy(f.enemy, f.enemyBody, 10, game.NullAudioPlayer{})

	if f.enemy.State != components.StateStunned {
		t.Fatalf("non-lethal damage: got %v, want STUNNED", f.enemy.State)
	}
	if f.enemy.Health != f.enemy.MaxHealth-10 {
		t.Errorf("health: got %d, want %d", f.enemy.Health, f.enemy.MaxHealth-10)
	}

	// 硬直期间免疫二次伤害
	DamageEnemy(f.enemy, f.enemyBody, 10, game.NullAudioPlayer{})
	if f.enemy.Health != f.enemy.MaxHealth-10 {
		t.Errorf("stunned enemy should be invulnerable, health=%d", f.enemy.Health)
	}

	// 硬直结束后回到巡逻
	steps := int(components.StunDuration/testStep) + 2
	for i := 0; i < steps; i++ {
		f.sys.Update(testStep)
	}
	if f.enemy.State != components.StatePatrol {
		t.Errorf("after stun: got %v, want PATROL", f.enemy.State)
	}
}

// TestEnemyDeathIsTerminal 测试死亡为终态
func TestEnemyDeathIsTerminal(t *testing.T) {
	f := newEnemyFixture(flatLevel(), components.EnemyWalker)

	DamageEnemy(f.enemy, f.enemyBody, f.enemy.MaxHealth, game.NullAudioPlayer{})

	if f.enemy.State != components.StateDead {
		t.Fatalf("lethal damage: got %v, want DEAD", f.enemy.State)
	}
	if !f.enemyBody.Velocity.IsZero() {
		t.Error("dead enemy should stop moving")
	}

	// 继续更新、继续伤害：状态不变
	for i := 0; i < 120; i++ {
		f.sys.Update(testStep)
	}
	DamageEnemy(f.enemy, f.enemyBody, 100, game.NullAudioPlayer{})
	if f.enemy.State != components.StateDead {
		t.Errorf("DEAD is terminal: got %v", f.enemy.State)
	}
}

// TestResetEnemy 测试复位恢复出生状态
func TestResetEnemy(t *testing.T) {
	f := newEnemyFixture(flatLevel(), components.EnemyWalker)

	DamageEnemy(f.enemy, f.enemyBody, f.enemy.MaxHealth, game.NullAudioPlayer{})
	f.enemyBody.Position = geom.V(900, 100)

	ResetEnemy(f.enemy, f.enemyBody)

	if f.enemy.State != components.StatePatrol {
		t.Errorf("state after reset: got %v, want PATROL", f.enemy.State)
	}
	if f.enemy.Health != f.enemy.MaxHealth {
		t.Errorf("health after reset: got %d, want %d", f.enemy.Health, f.enemy.MaxHealth)
	}
	if f.enemyBody.Position != f.enemy.SpawnPosition {
		t.Errorf("position after reset: got %v, want %v", f.enemyBody.Position, f.enemy.SpawnPosition)
	}
}

// TestWalkerPatrolTurnsAround 测试步行者巡逻折返
func TestWalkerPatrolTurnsAround(t *testing.T) {
	f := newEnemyFixture(flatLevel(), components.EnemyWalker)
	// 玩家放到很远，敌人保持巡逻
	f.movePlayerTo(2000)

	// 手动把敌人推到巡逻范围右端之外
	f.enemyBody.Position.X = f.enemy.PatrolOrigin.X + f.enemy.PatrolRange + 1
	f.enemyBody.UpdateBounds()
	f.sys.Update(testStep)

	if f.enemyBody.Velocity.X >= 0 {
		t.Errorf("enemy past the right patrol edge should turn around, got Vx=%v", f.enemyBody.Velocity.X)
	}
	if f.enemy.PatrolMovingRight() {
		t.Error("patrol direction should flip to left")
	}
}

// TestFlyerHovers 测试飞行者巡逻时垂直速度由悬浮运动驱动
func TestFlyerHovers(t *testing.T) {
	f := newEnemyFixture(flatLevel(), components.EnemyFlyer)
	f.movePlayerTo(2000)

	// 把飞行者从基准高度挪开，悬浮纠正应产生回归速度
	f.enemyBody.Position.Y = f.enemy.HoverBaseY + 50
	f.enemyBody.UpdateBounds()
	f.sys.Update(testStep)

	if f.enemyBody.Velocity.Y >= 0 {
		t.Errorf("flyer below hover base should move up, got Vy=%v", f.enemyBody.Velocity.Y)
	}
}

// TestJumperLeapsWhenChasing 测试跳跃者追击时周期性起跳
func TestJumperLeapsWhenChasing(t *testing.T) {
	f := newEnemyFixture(flatLevel(), components.EnemyJumper)

	f.movePlayerTo(f.enemy.DetectionRange - 10)
	f.sys.Update(testStep)
	if f.enemy.State != components.StateChase {
		t.Fatal("jumper should be chasing")
	}

	// 着地且跳跃计时到期：下一步起跳
	f.enemyBody.OnGround = true
	f.enemy.JumpTimer = 0
	f.sys.Update(testStep)

	if f.enemyBody.Velocity.Y >= 0 {
		t.Errorf("chasing jumper on the ground should leap, got Vy=%v", f.enemyBody.Velocity.Y)
	}
	if f.enemy.JumpTimer <= 0 {
		t.Error("leap should reload the jump timer")
	}
}
