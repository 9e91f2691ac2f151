package systems

import (
	"github.com/gonewx/platformer/pkg/components"
	"github.com/gonewx/platformer/pkg/ecs"
	"github.com/gonewx/platformer/pkg/geom"
	"github.com/gonewx/platformer/pkg/level"
)

// CameraSystem 摄像机系统
// 平滑跟随玩家并把视口钳制在关卡范围内
type CameraSystem struct {
	entityManager *ecs.EntityManager
	lvl           *level.Level
}

// NewCameraSystem 创建摄像机系统
func NewCameraSystem(em *ecs.EntityManager, lvl *level.Level) *CameraSystem {
	return &CameraSystem{
		entityManager: em,
		lvl:           lvl,
	}
}

// Update 更新所有摄像机实体
func (s *CameraSystem) Update(deltaTime float64) {
	target, ok := s.playerCenter()
	if !ok {
		return
	}

	ids := ecs.GetEntitiesWith1[*components.CameraComponent](s.entityManager)
	for _, id := range ids {
		cam, _ := ecs.GetComponent[*components.CameraComponent](s.entityManager, id)

		desired := geom.Vec2{
			X: target.X - cam.ViewportW/2,
			Y: target.Y - cam.ViewportH/2,
		}

		// 指数平滑逼近目标
		t := cam.Smoothing * deltaTime
		if t > 1 {
			t = 1
		}
		cam.Position = cam.Position.Lerp(desired, t)

		// 钳制在关卡范围内
		maxX := s.lvl.Bounds.Right() - cam.ViewportW
		maxY := s.lvl.Bounds.Bottom() - cam.ViewportH
		if cam.Position.X < s.lvl.Bounds.X {
			cam.Position.X = s.lvl.Bounds.X
		} else if maxX > s.lvl.Bounds.X && cam.Position.X > maxX {
			cam.Position.X = maxX
		}
		if cam.Position.Y < s.lvl.Bounds.Y {
			cam.Position.Y = s.lvl.Bounds.Y
		} else if maxY > s.lvl.Bounds.Y && cam.Position.Y > maxY {
			cam.Position.Y = maxY
		}
	}
}

// playerCenter 返回玩家碰撞盒中心
func (s *CameraSystem) playerCenter() (geom.Vec2, bool) {
	ids := ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PhysicsBodyComponent](s.entityManager)
	for _, id := range ids {
		bodyComp, _ := ecs.GetComponent[*components.PhysicsBodyComponent](s.entityManager, id)
		return bodyComp.Body.Bounds.Center(), true
	}
	return geom.Vec2{}, false
}
