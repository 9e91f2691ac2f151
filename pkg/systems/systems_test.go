package systems

import (
	"github.com/gonewx/platformer/pkg/components"
	"github.com/gonewx/platformer/pkg/config"
	"github.com/gonewx/platformer/pkg/ecs"
	"github.com/gonewx/platformer/pkg/entities"
	"github.com/gonewx/platformer/pkg/game"
	"github.com/gonewx/platformer/pkg/geom"
	"github.com/gonewx/platformer/pkg/level"
	"github.com/gonewx/platformer/pkg/physics"
)

// testStep 测试用固定子步长
const testStep = 1.0 / 60.0

// scriptedInput 脚本化输入，替代真实键盘设备
type scriptedInput struct {
	axis    float64
	held    map[game.Action]bool
	pressed map[game.Action]bool
}

func newScriptedInput() *scriptedInput {
	return &scriptedInput{
		held:    make(map[game.Action]bool),
		pressed: make(map[game.Action]bool),
	}
}

func (s *scriptedInput) IsHeld(a game.Action) bool      { return s.held[a] }
func (s *scriptedInput) JustPressed(a game.Action) bool { return s.pressed[a] }
func (s *scriptedInput) JustReleased(game.Action) bool  { return false }
func (s *scriptedInput) MoveAxis() float64              { return s.axis }

// press 模拟本帧刚按下某个动作（下一步 step 后自动清除）
func (s *scriptedInput) press(a game.Action) { s.pressed[a] = true }

func (s *scriptedInput) clearPressed() {
	s.pressed = make(map[game.Action]bool)
}

// flatLevel 只有一块地面的测试关卡
func flatLevel() *level.Level {
	return &level.Level{
		ID:     "test",
		Bounds: geom.R(0, 0, 2000, 800),
		Platforms: []*level.Platform{
			{Bounds: geom.R(0, 600, 2000, 40), Type: level.PlatformSolid},
		},
	}
}

// wallLevel 带一面竖墙的测试关卡（墙位于 x=400..420）
func wallLevel() *level.Level {
	l := flatLevel()
	l.Platforms = append(l.Platforms, &level.Platform{
		Bounds: geom.R(400, 200, 20, 400), Type: level.PlatformSolid,
	})
	return l
}

// playerFixture 玩家系统测试夹具
//
// 物理引擎不参与：测试直接设置 body 的位置/速度/着地标志，
// 只驱动被测系统本身。
type playerFixture struct {
	em     *ecs.EntityManager
	lvl    *level.Level
	input  *scriptedInput
	sys    *PlayerControlSystem
	cfg    *config.PlayerConfig
	player *components.PlayerComponent
	body   *physics.Entity
}

func newPlayerFixture(lvl *level.Level) *playerFixture {
	em := ecs.NewEntityManager()
	eng := physics.NewEngine()
	cfg := config.DefaultPlayerConfig()
	input := newScriptedInput()

	id := entities.NewPlayerEntity(em, eng, cfg, geom.V(100, 556))
	player, _ := ecs.GetComponent[*components.PlayerComponent](em, id)
	bodyComp, _ := ecs.GetComponent[*components.PhysicsBodyComponent](em, id)

	return &playerFixture{
		em:     em,
		lvl:    lvl,
		input:  input,
		sys:    NewPlayerControlSystem(em, lvl, input, game.NullAudioPlayer{}, cfg),
		cfg:    cfg,
		player: player,
		body:   bodyComp.Body,
	}
}

// step 推进一个固定子步并清除单帧输入
func (f *playerFixture) step() {
	f.sys.Update(testStep)
	f.input.clearPressed()
}

// ground 将玩家置为稳定着地状态
func (f *playerFixture) ground() {
	f.body.OnGround = true
	f.body.WasOnGround = true
	f.body.Velocity = geom.Vec2{}
}

// airborne 将玩家置为滞空下落状态
func (f *playerFixture) airborne(fallSpeed float64) {
	f.body.OnGround = false
	f.body.WasOnGround = false
	f.body.Velocity = geom.Vec2{Y: fallSpeed}
}
