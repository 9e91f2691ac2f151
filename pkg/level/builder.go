package level

import (
	"log"

	"github.com/gonewx/platformer/pkg/config"
	"github.com/gonewx/platformer/pkg/geom"
)

// FromConfig 根据关卡配置构建关卡运行时
//
// 配置已经过 config 包校验，这里只做形状转换。
// 敌人摆放（config.Enemies）不在关卡运行时内，由场景创建敌人实体。
func FromConfig(cfg *config.LevelConfig) *Level {
	l := &Level{
		ID:         cfg.ID,
		Name:       cfg.Name,
		Bounds:     geom.Rect{W: cfg.Width, H: cfg.Height},
		SpawnPoint: geom.Vec2{X: cfg.Spawn.X, Y: cfg.Spawn.Y},
	}

	for _, pc := range cfg.Platforms {
		p := &Platform{
			Bounds: geom.R(pc.Rect.X, pc.Rect.Y, pc.Rect.W, pc.Rect.H),
			Type:   platformTypeFromString(pc.Type),
		}
		if p.Type == PlatformMoving {
			p.Velocity = geom.Vec2{X: pc.Velocity.X, Y: pc.Velocity.Y}
			p.MoveBounds = geom.R(pc.MoveBounds.X, pc.MoveBounds.Y, pc.MoveBounds.W, pc.MoveBounds.H)
		}
		l.Platforms = append(l.Platforms, p)
	}

	for _, oc := range cfg.Obstacles {
		o := &Obstacle{
			Bounds: geom.R(oc.Rect.X, oc.Rect.Y, oc.Rect.W, oc.Rect.H),
			Type:   obstacleTypeFromString(oc.Type),
		}
		o.Damage = obstacleDamage(o.Type)
		if o.Type == ObstacleCrusher {
			o.OriginalY = o.Bounds.Y
			o.movingUp = true
		}
		l.Obstacles = append(l.Obstacles, o)
	}

	for _, cc := range cfg.Collectibles {
		l.Collectibles = append(l.Collectibles, &Collectible{
			Position: geom.Vec2{X: cc.Pos.X, Y: cc.Pos.Y},
			Type:     collectibleTypeFromString(cc.Type),
			Value:    cc.Value,
			Effect:   cc.Effect,
		})
	}

	for _, pc := range cfg.Checkpoints {
		l.Checkpoints = append(l.Checkpoints, &Checkpoint{
			Position: geom.Vec2{X: pc.X, Y: pc.Y},
		})
	}

	for _, tc := range cfg.Triggers {
		l.Triggers = append(l.Triggers, &Trigger{
			Bounds: geom.R(tc.Rect.X, tc.Rect.Y, tc.Rect.W, tc.Rect.H),
			Action: tc.Action,
		})
	}

	for _, bc := range cfg.Backgrounds {
		l.Backgrounds = append(l.Backgrounds, &BackgroundLayer{
			ImageID:  bc.Image,
			Parallax: bc.Parallax,
			OffsetY:  bc.OffsetY,
		})
	}

	log.Printf("[Level] 构建关卡 %s: %d 平台, %d 障碍物, %d 收集品, %d 检查点, %d 触发器",
		l.ID, len(l.Platforms), len(l.Obstacles), len(l.Collectibles), len(l.Checkpoints), len(l.Triggers))

	return l
}

func platformTypeFromString(s string) PlatformType {
	switch s {
	case "jumpthrough":
		return PlatformJumpThrough
	case "moving":
		return PlatformMoving
	case "breakable":
		return PlatformBreakable
	case "ice":
		return PlatformIce
	case "bouncy":
		return PlatformBouncy
	default:
		return PlatformSolid
	}
}

func collectibleTypeFromString(s string) CollectibleType {
	switch s {
	case "powerup":
		return CollectiblePowerUp
	case "key":
		return CollectibleKey
	case "health":
		return CollectibleHealth
	default:
		return CollectibleCoin
	}
}

func obstacleTypeFromString(s string) ObstacleType {
	switch s {
	case "saw":
		return ObstacleSaw
	case "lava":
		return ObstacleLava
	case "crusher":
		return ObstacleCrusher
	default:
		return ObstacleSpike
	}
}

func obstacleDamage(t ObstacleType) int {
	switch t {
	case ObstacleSaw:
		return SawDamage
	case ObstacleLava:
		return LavaDamage
	case ObstacleCrusher:
		return CrusherDamage
	default:
		return SpikeDamage
	}
}
