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

// combatFixture 战斗系统测试夹具
type combatFixture struct {
	em         *ecs.EntityManager
	lvl        *level.Level
	gameState  *game.GameState
	cfg        *config.PlayerConfig
	sys        *CombatSystem
	player     *components.PlayerComponent
	playerBody *physics.Entity
}

func newCombatFixture(lvl *level.Level) *combatFixture {
	em := ecs.NewEntityManager()
	eng := physics.NewEngine()
	cfg := config.DefaultPlayerConfig()
	gs := game.NewGameState()
	gs.TransitionTo(game.StatePlaying)

	pid := entities.NewPlayerEntity(em, eng, cfg, geom.V(100, 556))
	player, _ := ecs.GetComponent[*components.PlayerComponent](em, pid)
	bodyComp, _ := ecs.GetComponent[*components.PhysicsBodyComponent](em, pid)

	return &combatFixture{
		em:         em,
		lvl:        lvl,
		gameState:  gs,
		cfg:        cfg,
		sys:        NewCombatSystem(em, lvl, game.NullAudioPlayer{}, gs, cfg),
		player:     player,
		playerBody: bodyComp.Body,
	}
}

// addEnemy 在指定位置放一个 Walker 敌人
func (f *combatFixture) addEnemy(pos geom.Vec2) (*components.EnemyComponent, *physics.Entity) {
	eng := physics.NewEngine()
	eid := entities.NewEnemyEntity(f.em, eng, components.EnemyWalker, pos, 120)
	enemy, _ := ecs.GetComponent[*components.EnemyComponent](f.em, eid)
	bodyComp, _ := ecs.GetComponent[*components.PhysicsBodyComponent](f.em, eid)
	return enemy, bodyComp.Body
}

// TestStompDamagesEnemy 测试踩踏：下落中从上方压到敌人
// 敌人受伤，玩家反弹并恢复二段跳
func TestStompDamagesEnemy(t *testing.T) {
	f := newCombatFixture(flatLevel())
	enemy, enemyBody := f.addEnemy(geom.V(100, 560))

	// 玩家从敌人头顶下落（脚底高于敌人中心）
	f.playerBody.Position = geom.V(100, enemyBody.Bounds.Top()-f.cfg.Height+6)
	f.playerBody.Velocity = geom.V(0, 300)
	f.playerBody.UpdateBounds()
	f.player.DoubleJumpUsed = true

	f.sys.Update(testStep)

	if enemy.Health != enemy.MaxHealth-StompDamage {
		t.Errorf("stomped enemy health: got %d, want %d", enemy.Health, enemy.MaxHealth-StompDamage)
	}
	if f.playerBody.Velocity.Y >= 0 {
		t.Errorf("player should bounce upward after a stomp, got Vy=%v", f.playerBody.Velocity.Y)
	}
	if f.player.DoubleJumpUsed {
		t.Error("stomp should refund the double jump")
	}
	// 玩家不受伤
	if f.player.Health != f.cfg.MaxHealth {
		t.Errorf("stomping player should take no damage, health=%d", f.player.Health)
	}
}

// TestContactDamage 测试侧面接触伤害、击退与无敌窗口
func TestContactDamage(t *testing.T) {
	f := newCombatFixture(flatLevel())
	enemy, enemyBody := f.addEnemy(geom.V(120, 556))

	// 侧面重叠，不满足踩踏条件
	f.playerBody.Position = geom.V(100, 556)
	f.playerBody.Velocity = geom.Vec2{}
	f.playerBody.UpdateBounds()

	f.sys.Update(testStep)

	if f.player.Health != f.cfg.MaxHealth-enemy.AttackDamage {
		t.Errorf("contact damage: got health %d, want %d", f.player.Health, f.cfg.MaxHealth-enemy.AttackDamage)
	}
	if f.player.InvulnTimer <= 0 {
		t.Error("damage should open the invulnerability window")
	}
	// 击退方向远离敌人（敌人在右边，玩家被推向左）
	if f.playerBody.Velocity.X >= 0 {
		t.Errorf("knockback should push away from the enemy, got Vx=%v", f.playerBody.Velocity.X)
	}
	if f.playerBody.Velocity.Y >= 0 {
		t.Error("knockback should include an upward component")
	}

	// 无敌期间不再受伤
	healthAfter := f.player.Health
	f.sys.Update(testStep)
	if f.player.Health != healthAfter {
		t.Errorf("invulnerable player took damage: %d -> %d", healthAfter, f.player.Health)
	}

	// 硬直中的敌人不造成接触伤害
	f.player.InvulnTimer = 0
	enemy.State = components.StateStunned
	f.sys.Update(testStep)
	if f.player.Health != healthAfter {
		t.Error("stunned enemy must not deal contact damage")
	}
	_ = enemyBody
}

// TestShieldBlocksDamage 测试护盾强化期间免疫伤害
func TestShieldBlocksDamage(t *testing.T) {
	f := newCombatFixture(flatLevel())
	f.addEnemy(geom.V(120, 556))

	f.playerBody.Position = geom.V(100, 556)
	f.playerBody.UpdateBounds()
	ApplyPowerUp(f.player, components.PowerUpShield, 5)

	f.sys.Update(testStep)

	if f.player.Health != f.cfg.MaxHealth {
		t.Errorf("shielded player took damage, health=%d", f.player.Health)
	}
}

// TestObstacleDamage 测试障碍物接触伤害按类型取值
func TestObstacleDamage(t *testing.T) {
	lvl := flatLevel()
	lvl.Obstacles = []*level.Obstacle{
		{Bounds: geom.R(90, 560, 60, 40), Type: level.ObstacleLava, Damage: level.LavaDamage},
	}
	f := newCombatFixture(lvl)

	f.playerBody.Position = geom.V(100, 556)
	f.playerBody.UpdateBounds()

	f.sys.Update(testStep)

	if f.player.Health != f.cfg.MaxHealth-level.LavaDamage {
		t.Errorf("lava damage: got health %d, want %d", f.player.Health, f.cfg.MaxHealth-level.LavaDamage)
	}
}

// TestRespawnAtCheckpoint 测试死亡后在检查点重生
// 生命值和能力强化复位，得分保留
func TestRespawnAtCheckpoint(t *testing.T) {
	f := newCombatFixture(flatLevel())

	f.player.Score = 700
	f.player.RespawnPosition = geom.V(300, 500)
	ApplyPowerUp(f.player, components.PowerUpSpeedBoost, 10)

	f.player.Health = 5
	f.sys.DamagePlayer(f.player, f.playerBody, 10, 0)

	if f.player.Lives != f.cfg.Lives-1 {
		t.Errorf("lives: got %d, want %d", f.player.Lives, f.cfg.Lives-1)
	}
	if f.playerBody.Position != geom.V(300, 500) {
		t.Errorf("respawn position: got %v, want (300, 500)", f.playerBody.Position)
	}
	if f.player.Health != f.cfg.MaxHealth {
		t.Errorf("health after respawn: got %d, want %d", f.player.Health, f.cfg.MaxHealth)
	}
	if f.player.Score != 700 {
		t.Errorf("score must survive respawn: got %d, want 700", f.player.Score)
	}
	if f.player.HasPowerUp(components.PowerUpSpeedBoost) || f.player.SpeedMultiplier != 1.0 {
		t.Error("power-ups should be removed on respawn")
	}
	if !f.playerBody.Velocity.IsZero() {
		t.Error("velocity should be zeroed on respawn")
	}
}

// TestOutOfBoundsCostsLife 测试掉出关卡底部损失生命
func TestOutOfBoundsCostsLife(t *testing.T) {
	f := newCombatFixture(flatLevel())
	f.player.RespawnPosition = geom.V(100, 500)

	f.playerBody.Position = geom.V(100, f.lvl.Bounds.Bottom()+200)
	f.playerBody.UpdateBounds()

	f.sys.Update(testStep)

	if f.player.Lives != f.cfg.Lives-1 {
		t.Errorf("falling out of bounds should cost a life: lives=%d", f.player.Lives)
	}
	if f.playerBody.Position.Y >= f.lvl.Bounds.Bottom() {
		t.Error("player should be back at the respawn point")
	}
}

// TestGameOverOnLastLife 测试最后一条命耗尽进入游戏结束
func TestGameOverOnLastLife(t *testing.T) {
	f := newCombatFixture(flatLevel())

	f.player.Lives = 1
	f.player.Health = 5
	f.sys.DamagePlayer(f.player, f.playerBody, 10, 0)

	if f.player.Lives != 0 {
		t.Errorf("lives: got %d, want 0", f.player.Lives)
	}
	if f.gameState.Current() != game.StateGameOver {
		t.Errorf("game state: got %v, want GAME_OVER", f.gameState.Current())
	}

	// 游戏结束后的伤害是空操作
	f.sys.DamagePlayer(f.player, f.playerBody, 10, 0)
	if f.player.Lives != 0 {
		t.Error("damage after game over should be a no-op")
	}
}

// TestDamageCancelsDash 测试受击打断冲刺
func TestDamageCancelsDash(t *testing.T) {
	f := newCombatFixture(flatLevel())

	f.player.DashTimer = 0.15
	f.sys.DamagePlayer(f.player, f.playerBody, 10, 0)

	if f.player.IsDashing() {
		t.Error("taking damage should cancel an active dash")
	}
	if f.player.KnockbackTimer <= 0 {
		t.Error("damage should start the knockback window")
	}
}
