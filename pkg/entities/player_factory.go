// Package entities 提供组合ECS组件和物理实体的工厂函数
package entities

import (
	"log"

	"github.com/gonewx/platformer/pkg/components"
	"github.com/gonewx/platformer/pkg/config"
	"github.com/gonewx/platformer/pkg/ecs"
	"github.com/gonewx/platformer/pkg/geom"
	"github.com/gonewx/platformer/pkg/physics"
)

// NewPlayerEntity 创建玩家实体
//
// 同时创建物理实体并加入物理引擎。spawn 为碰撞盒左上角的世界坐标。
//
// 参数:
//   - em: 实体管理器
//   - eng: 物理引擎
//   - cfg: 玩家配置
//   - spawn: 出生位置
//
// 返回:
//   - ecs.EntityID: 创建的玩家实体ID
func NewPlayerEntity(em *ecs.EntityManager, eng *physics.Engine, cfg *config.PlayerConfig, spawn geom.Vec2) ecs.EntityID {
	body := physics.NewEntity(spawn, geom.Vec2{X: cfg.Width, Y: cfg.Height}, 1.0)
	body.Restitution = 0 // 玩家落地不反弹
	eng.AddEntity(body)

	id := em.CreateEntity()
	em.AddComponent(id, &components.PhysicsBodyComponent{Body: body})
	em.AddComponent(id, components.NewPlayerComponent(cfg.MaxHealth, cfg.Lives, spawn))

	log.Printf("[Entities] 创建玩家实体 #%d，出生点 (%.0f, %.0f)", id, spawn.X, spawn.Y)
	return id
}
