package entities

import (
	"log"

	"github.com/gonewx/platformer/pkg/components"
	"github.com/gonewx/platformer/pkg/ecs"
	"github.com/gonewx/platformer/pkg/geom"
	"github.com/gonewx/platformer/pkg/physics"
)

// enemyStats 各种类敌人的基础参数
type enemyStats struct {
	width, height  float64
	health         int
	moveSpeed      float64
	detectionRange float64
	attackRange    float64
	attackDamage   int
	attackCooldown float64
	attackAnimTime float64
	gravityScale   float64
}

var enemyKindStats = map[components.EnemyKind]enemyStats{
	components.EnemyWalker: {
		width: 32, height: 40,
		health: 40, moveSpeed: 70,
		detectionRange: 240, attackRange: 44,
		attackDamage: 10, attackCooldown: 1.2, attackAnimTime: 0.4,
		gravityScale: 1.0,
	},
	components.EnemyFlyer: {
		width: 36, height: 28,
		health: 30, moveSpeed: 95,
		detectionRange: 300, attackRange: 40,
		attackDamage: 8, attackCooldown: 1.0, attackAnimTime: 0.3,
		gravityScale: 0, // 悬浮，不受重力
	},
	components.EnemyJumper: {
		width: 30, height: 34,
		health: 50, moveSpeed: 60,
		detectionRange: 220, attackRange: 48,
		attackDamage: 14, attackCooldown: 1.6, attackAnimTime: 0.5,
		gravityScale: 1.0,
	},
}

// EnemyKindFromString 将配置中的种类名转换为枚举
// 未知名称按 Walker 处理
func EnemyKindFromString(s string) components.EnemyKind {
	switch s {
	case "flyer":
		return components.EnemyFlyer
	case "jumper":
		return components.EnemyJumper
	default:
		return components.EnemyWalker
	}
}

// NewEnemyEntity 创建敌人实体
//
// 所有种类共享同一个AI状态机组件，种类差异只体现在
// 基础参数和移动方式上（由 EnemyAISystem 按种类分派）。
//
// 参数:
//   - em: 实体管理器
//   - eng: 物理引擎
//   - kind: 敌人种类
//   - pos: 出生位置（碰撞盒左上角）
//   - patrolRange: 巡逻半程距离
//
// 返回:
//   - ecs.EntityID: 创建的敌人实体ID
func NewEnemyEntity(em *ecs.EntityManager, eng *physics.Engine, kind components.EnemyKind, pos geom.Vec2, patrolRange float64) ecs.EntityID {
	stats := enemyKindStats[kind]

	body := physics.NewEntity(pos, geom.Vec2{X: stats.width, Y: stats.height}, 1.0)
	body.Restitution = 0
	body.GravityScale = stats.gravityScale
	eng.AddEntity(body)

	enemy := &components.EnemyComponent{
		Kind:           kind,
		State:          components.StatePatrol,
		Health:         stats.health,
		MaxHealth:      stats.health,
		DetectionRange: stats.detectionRange,
		AttackRange:    stats.attackRange,
		AttackDamage:   stats.attackDamage,
		AttackCooldown: stats.attackCooldown,
		AttackAnimTime: stats.attackAnimTime,
		MoveSpeed:      stats.moveSpeed,
		PatrolOrigin:   pos,
		PatrolRange:    patrolRange,
		HoverBaseY:     pos.Y,
		SpawnPosition:  pos,
	}
	enemy.SetPatrolDirection(true)

	id := em.CreateEntity()
	em.AddComponent(id, &components.PhysicsBodyComponent{Body: body})
	em.AddComponent(id, enemy)

	log.Printf("[Entities] 创建敌人实体 #%d (kind=%d)，位置 (%.0f, %.0f)", id, kind, pos.X, pos.Y)
	return id
}
