// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被不同入口共用。
// 桌面端通过 main.go 调用 NewApp()。
package app

import (
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/quasilyte/gdata/v2"

	audioassets "github.com/gonewx/platformer/internal/audio"
	"github.com/gonewx/platformer/pkg/config"
	"github.com/gonewx/platformer/pkg/game"
	"github.com/gonewx/platformer/pkg/scenes"
)

// sampleRate 音频上下文采样率（Hz）
const sampleRate = 48000

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Level 指定要加载的关卡（如 "1-1"），为空则从主菜单开始
	Level string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager    *game.SceneManager
	gameState       *game.GameState
	settingsManager *game.SettingsManager
	verbose         bool
}

// NewApp 创建并初始化游戏应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(sampleRate)

	// 设置持久化：gdata 打开失败时降级为仅内存
	gdataManager, err := gdata.Open(gdata.Config{
		AppName: "platformer",
	})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable, settings will not persist: %v", err)
		gdataManager = nil
	}
	settingsManager := game.NewSettingsManager(gdataManager)
	audioManager := game.NewAudioManager(audioContext, settingsManager)

	// 音效资源：assets/sounds 下的 WAV 文件按文件名注册
	if err := audioassets.LoadSounds("assets/sounds", sampleRate, audioManager.RegisterSound); err != nil {
		log.Printf("[App] Warning: sound loading failed: %v", err)
	}

	input := game.NewKeyboardInput()
	gameState := game.NewGameState()

	// 物理和玩家配置对所有关卡共享，加载失败时使用内置默认值
	physCfg, err := config.LoadPhysicsConfig("data/physics.yaml")
	if err != nil {
		log.Printf("[App] Warning: physics config load failed, using defaults: %v", err)
		physCfg = config.DefaultPhysicsConfig()
	}
	playerCfg, err := config.LoadPlayerConfig("data/player.yaml")
	if err != nil {
		log.Printf("[App] Warning: player config load failed, using defaults: %v", err)
		playerCfg = config.DefaultPlayerConfig()
	}

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(levelID string) game.Scene {
		s := scenes.NewGameScene(levelID, sceneManager, gameState, input, audioManager, physCfg, playerCfg)
		if s == nil {
			return nil
		}
		return s
	})

	// 根据配置决定启动场景
	if cfg.Level != "" {
		log.Printf("[App] Starting directly at level: %s", cfg.Level)
		gameState.TransitionTo(game.StatePlaying)
		sceneManager.LoadLevel(cfg.Level)
	} else {
		sceneManager.SwitchTo(scenes.NewMenuScene(sceneManager, gameState, input, audioManager))
	}

	if settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager:    sceneManager,
		gameState:       gameState,
		settingsManager: settingsManager,
		verbose:         cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return scenes.ViewportWidth, scenes.ViewportHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
