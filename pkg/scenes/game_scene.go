// Package scenes 实现具体场景：主菜单和游戏关卡
package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/platformer/pkg/components"
	"github.com/gonewx/platformer/pkg/config"
	"github.com/gonewx/platformer/pkg/ecs"
	"github.com/gonewx/platformer/pkg/entities"
	"github.com/gonewx/platformer/pkg/game"
	"github.com/gonewx/platformer/pkg/geom"
	"github.com/gonewx/platformer/pkg/level"
	"github.com/gonewx/platformer/pkg/physics"
	"github.com/gonewx/platformer/pkg/systems"
)

// 视口尺寸（逻辑分辨率）
const (
	ViewportWidth  = 1280
	ViewportHeight = 720
)

// maxAccumulated 累积时间上限，防止卡顿后一帧补做过多物理步
const maxAccumulated = 0.25

// GameScene 游戏关卡场景
//
// 持有一个关卡的全部运行时：ECS实体、物理引擎、逻辑系统。
// 外层帧循环的可变帧时间在这里被累积并以固定步长消费，
// 余量换算成渲染插值系数——物理行为与帧率无关。
type GameScene struct {
	sceneManager *game.SceneManager
	gameState    *game.GameState
	input        game.InputProvider
	audio        game.AudioPlayer

	playerCfg *config.PlayerConfig

	entityManager *ecs.EntityManager
	engine        *physics.Engine
	lvl           *level.Level

	playerControl *systems.PlayerControlSystem
	enemyAI       *systems.EnemyAISystem
	combat        *systems.CombatSystem
	levelSystem   *systems.LevelSystem
	cameraSystem  *systems.CameraSystem

	playerID ecs.EntityID
	cameraID ecs.EntityID

	// 固定步长累积器
	accumulator float64
	alpha       float64 // 渲染插值系数（本帧剩余的不足一步的时间比例）
}

// NewGameScene 创建游戏关卡场景
// 关卡配置加载失败时返回 nil（SceneManager 会记录错误）
func NewGameScene(
	levelID string,
	sm *game.SceneManager,
	gs *game.GameState,
	input game.InputProvider,
	audio game.AudioPlayer,
	physCfg *config.PhysicsConfig,
	playerCfg *config.PlayerConfig,
) *GameScene {
	levelCfg, err := config.LoadLevelConfig(fmt.Sprintf("data/levels/%s.yaml", levelID))
	if err != nil {
		log.Printf("[GameScene] 关卡配置加载失败: %v", err)
		return nil
	}

	s := &GameScene{
		sceneManager: sm,
		gameState:    gs,
		input:        input,
		audio:        audio,
		playerCfg:    playerCfg,
	}

	s.entityManager = ecs.NewEntityManager()

	s.engine = physics.NewEngine()
	s.engine.Gravity = geom.Vec2{Y: physCfg.GravityY}
	s.engine.TimeStep = physCfg.TimeStep
	s.engine.PositionIterations = physCfg.PositionIterations
	s.engine.VelocityIterations = physCfg.VelocityIterations
	s.engine.CorrectionPercent = physCfg.CorrectionPercent
	s.engine.Slop = physCfg.Slop

	s.lvl = level.FromConfig(levelCfg)

	s.playerID = entities.NewPlayerEntity(s.entityManager, s.engine, playerCfg, s.lvl.SpawnPoint)
	for _, ec := range levelCfg.Enemies {
		entities.NewEnemyEntity(
			s.entityManager, s.engine,
			entities.EnemyKindFromString(ec.Kind),
			geom.Vec2{X: ec.Pos.X, Y: ec.Pos.Y},
			ec.PatrolRange,
		)
	}

	s.cameraID = s.entityManager.CreateEntity()
	s.entityManager.AddComponent(s.cameraID, &components.CameraComponent{
		ViewportW: ViewportWidth,
		ViewportH: ViewportHeight,
		Smoothing: 8.0,
	})

	s.combat = systems.NewCombatSystem(s.entityManager, s.lvl, audio, gs, playerCfg)
	s.playerControl = systems.NewPlayerControlSystem(s.entityManager, s.lvl, input, audio, playerCfg)
	s.enemyAI = systems.NewEnemyAISystem(s.entityManager, s.lvl, audio, s.combat)
	s.levelSystem = systems.NewLevelSystem(s.entityManager, s.lvl, s.engine, audio, gs, playerCfg)
	s.cameraSystem = systems.NewCameraSystem(s.entityManager, s.lvl)

	s.gameState.CurrentLevel = levelID
	audio.PlayMusic("level_music")

	return s
}

// Update 场景每帧更新
func (s *GameScene) Update(deltaTime float64) {
	switch s.gameState.Current() {
	case game.StatePlaying, game.StatePaused:
		if s.input.JustPressed(game.ActionPause) {
			s.gameState.TogglePause()
		}

	case game.StateGameOver:
		if s.input.JustPressed(game.ActionConfirm) {
			s.restart()
		}
		return

	case game.StateLevelComplete:
		if s.input.JustPressed(game.ActionConfirm) {
			s.gameState.TransitionTo(game.StateMenu)
			s.sceneManager.SwitchTo(NewMenuScene(s.sceneManager, s.gameState, s.input, s.audio))
		}
		return
	}

	if !s.gameState.IsPlaying() {
		return
	}

	// 固定步长解耦：累积可变帧时间，按固定步长消费，
	// 余量作为渲染插值系数。相同输入序列的物理结果与帧率无关。
	s.accumulator += deltaTime
	if s.accumulator > maxAccumulated {
		s.accumulator = maxAccumulated
	}

	step := s.engine.TimeStep
	for s.accumulator >= step {
		s.stepOnce(step)
		s.accumulator -= step
	}
	s.alpha = s.accumulator / step
}

// stepOnce 执行一个固定长度的逻辑步
//
// 顺序即规格中的每帧数据流：输入意图 → 物理积分与碰撞求解 →
// 状态机响应（着地标志、能力重置）→ 关卡事件 → 摄像机
func (s *GameScene) stepOnce(dt float64) {
	s.playerControl.Update(dt)
	s.enemyAI.Update(dt)
	s.engine.Update(dt)
	s.levelSystem.Update(dt)
	s.combat.Update(dt)
	s.cameraSystem.Update(dt)
	s.entityManager.RemoveMarkedEntities()
}

// restart 游戏结束后整体重开本关
func (s *GameScene) restart() {
	s.lvl.Reset()
	s.levelSystem.Reset()

	// 敌人复位
	enemyIDs := ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PhysicsBodyComponent](s.entityManager)
	for _, id := range enemyIDs {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
		bodyComp, _ := ecs.GetComponent[*components.PhysicsBodyComponent](s.entityManager, id)
		systems.ResetEnemy(enemy, bodyComp.Body)
	}

	// 玩家完全复位（包括生命数和得分）
	player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, s.playerID)
	bodyComp, _ := ecs.GetComponent[*components.PhysicsBodyComponent](s.entityManager, s.playerID)
	*player = *components.NewPlayerComponent(s.playerCfg.MaxHealth, s.playerCfg.Lives, s.lvl.SpawnPoint)
	bodyComp.Body.Position = s.lvl.SpawnPoint
	bodyComp.Body.Velocity = geom.Vec2{}
	bodyComp.Body.UpdateBounds()

	s.gameState.TransitionTo(game.StatePlaying)
	log.Printf("[GameScene] 重新开始关卡 %s", s.lvl.ID)
}

// Draw 渲染场景
// 资源管线不在引擎核心范围内，这里用纯色矩形绘制占位画面
func (s *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 28, B: 40, A: 255})

	cam, _ := ecs.GetComponent[*components.CameraComponent](s.entityManager, s.cameraID)
	camX, camY := 0.0, 0.0
	if cam != nil {
		camX, camY = cam.Position.X, cam.Position.Y
	}

	// 视差背景层
	for _, bg := range s.lvl.Backgrounds {
		offsetX := float32(-camX * bg.Parallax)
		vector.DrawFilledRect(screen, offsetX, float32(bg.OffsetY-camY*bg.Parallax),
			float32(s.lvl.Bounds.W), 80, color.RGBA{R: 36, G: 42, B: 58, A: 255}, false)
	}

	// 平台
	for _, p := range s.lvl.Platforms {
		if p.Broken {
			continue
		}
		c := platformColor(p.Type)
		vector.DrawFilledRect(screen,
			float32(p.Bounds.X-camX), float32(p.Bounds.Y-camY),
			float32(p.Bounds.W), float32(p.Bounds.H), c, false)
	}

	// 障碍物
	for _, o := range s.lvl.Obstacles {
		vector.DrawFilledRect(screen,
			float32(o.Bounds.X-camX), float32(o.Bounds.Y-camY),
			float32(o.Bounds.W), float32(o.Bounds.H),
			color.RGBA{R: 200, G: 60, B: 60, A: 255}, false)
	}

	// 收集品与检查点
	for _, c := range s.lvl.Collectibles {
		if c.Collected {
			continue
		}
		b := c.Bounds()
		vector.DrawFilledRect(screen,
			float32(b.X-camX), float32(b.Y-camY),
			float32(b.W), float32(b.H),
			color.RGBA{R: 240, G: 200, B: 60, A: 255}, false)
	}
	for _, c := range s.lvl.Checkpoints {
		col := color.RGBA{R: 90, G: 90, B: 120, A: 255}
		if c.Activated {
			col = color.RGBA{R: 90, G: 220, B: 120, A: 255}
		}
		b := c.Bounds()
		vector.DrawFilledRect(screen,
			float32(b.X-camX), float32(b.Y-camY),
			float32(b.W), float32(b.H), col, false)
	}

	// 实体（速度插值让渲染平滑跨过固定步边界）
	for _, e := range s.engine.Entities() {
		if e.IsStatic {
			continue
		}
		pos := e.Position.Add(e.Velocity.Scaled(s.alpha * s.engine.TimeStep))
		vector.DrawFilledRect(screen,
			float32(pos.X-camX), float32(pos.Y-camY),
			float32(e.Size.X), float32(e.Size.Y),
			color.RGBA{R: 120, G: 200, B: 240, A: 255}, false)
	}

	s.drawHUD(screen)
}

// drawHUD 渲染状态文字
func (s *GameScene) drawHUD(screen *ebiten.Image) {
	player, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, s.playerID)
	if !ok {
		return
	}

	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("HP %d  Lives %d  Score %d  Keys %d", player.Health, player.Lives, player.Score, player.Keys),
		8, 8)

	switch s.gameState.Current() {
	case game.StatePaused:
		ebitenutil.DebugPrintAt(screen, "PAUSED", ViewportWidth/2-24, ViewportHeight/2)
	case game.StateGameOver:
		ebitenutil.DebugPrintAt(screen, "GAME OVER - press Enter to retry", ViewportWidth/2-110, ViewportHeight/2)
	case game.StateLevelComplete:
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("LEVEL COMPLETE - total score %d - press Enter", s.gameState.TotalScore),
			ViewportWidth/2-130, ViewportHeight/2)
	}
}

// platformColor 按平台类型返回占位颜色
func platformColor(t level.PlatformType) color.RGBA {
	switch t {
	case level.PlatformJumpThrough:
		return color.RGBA{R: 110, G: 90, B: 60, A: 255}
	case level.PlatformMoving:
		return color.RGBA{R: 80, G: 130, B: 170, A: 255}
	case level.PlatformBreakable:
		return color.RGBA{R: 150, G: 110, B: 80, A: 255}
	case level.PlatformIce:
		return color.RGBA{R: 170, G: 220, B: 240, A: 255}
	case level.PlatformBouncy:
		return color.RGBA{R: 120, G: 200, B: 110, A: 255}
	default:
		return color.RGBA{R: 90, G: 100, B: 110, A: 255}
	}
}
