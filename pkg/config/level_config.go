package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LevelConfig 关卡配置数据结构
// 定义关卡的基本信息、静态几何和各类关卡对象的摆放
type LevelConfig struct {
	ID     string  `yaml:"id"`     // 关卡ID，如 "1-1"
	Name   string  `yaml:"name"`   // 关卡名称
	Width  float64 `yaml:"width"`  // 关卡世界宽度（像素）
	Height float64 `yaml:"height"` // 关卡世界高度（像素）

	Spawn PointConfig `yaml:"spawn"` // 玩家出生点

	Platforms    []PlatformConfig    `yaml:"platforms"`
	Obstacles    []ObstacleConfig    `yaml:"obstacles"`
	Collectibles []CollectibleConfig `yaml:"collectibles"`
	Checkpoints  []PointConfig       `yaml:"checkpoints"`
	Triggers     []TriggerConfig     `yaml:"triggers"`
	Backgrounds  []BackgroundConfig  `yaml:"backgrounds"`
	Enemies      []EnemyConfig       `yaml:"enemies"`
}

// PointConfig 2D坐标配置
type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// RectConfig 矩形区域配置
type RectConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// PlatformConfig 单个平台配置
type PlatformConfig struct {
	Rect RectConfig `yaml:"rect"`
	// Type 平台类型: "solid", "jumpthrough", "moving", "breakable", "ice", "bouncy"
	// 缺省为 "solid"
	Type string `yaml:"type"`

	// 移动平台专用
	Velocity   PointConfig `yaml:"velocity"`
	MoveBounds RectConfig  `yaml:"moveBounds"`
}

// ObstacleConfig 单个障碍物配置
type ObstacleConfig struct {
	Rect RectConfig `yaml:"rect"`
	// Type 障碍物类型: "spike", "saw", "lava", "crusher"
	Type string `yaml:"type"`
}

// CollectibleConfig 单个收集品配置
type CollectibleConfig struct {
	Pos PointConfig `yaml:"pos"`
	// Type 收集品类型: "coin", "powerup", "key", "health"，缺省为 "coin"
	Type string `yaml:"type"`
	// Value 分值/回复量，缺省 coin=100, health=25
	Value int `yaml:"value"`
	// Effect 能力强化效果名（powerup 专用），如 "speed_boost"
	Effect string `yaml:"effect"`
}

// TriggerConfig 单个触发器配置
type TriggerConfig struct {
	Rect   RectConfig `yaml:"rect"`
	Action string     `yaml:"action"` // 触发动作，如 "level_complete"
}

// BackgroundConfig 单个视差背景层配置
type BackgroundConfig struct {
	Image    string  `yaml:"image"`    // 背景图片资源ID
	Parallax float64 `yaml:"parallax"` // 视差系数 0~1
	OffsetY  float64 `yaml:"offsetY"`
}

// EnemyConfig 单个敌人摆放配置
type EnemyConfig struct {
	Pos PointConfig `yaml:"pos"`
	// Kind 敌人种类: "walker", "flyer", "jumper"
	Kind string `yaml:"kind"`
	// PatrolRange 巡逻半程距离（像素），缺省 120
	PatrolRange float64 `yaml:"patrolRange"`
}

// 合法的类型字符串集合
var (
	validPlatformTypes = map[string]bool{
		"": true, "solid": true, "jumpthrough": true, "moving": true,
		"breakable": true, "ice": true, "bouncy": true,
	}
	validObstacleTypes = map[string]bool{
		"spike": true, "saw": true, "lava": true, "crusher": true,
	}
	validCollectibleTypes = map[string]bool{
		"": true, "coin": true, "powerup": true, "key": true, "health": true,
	}
	validEnemyKinds = map[string]bool{
		"": true, "walker": true, "flyer": true, "jumper": true,
	}
)

// LoadLevelConfig 从YAML文件加载关卡配置
//
// 参数:
//   - path: 关卡配置文件路径（如 "data/levels/1-1.yaml"）
//
// 返回:
//   - *LevelConfig: 解析后的关卡配置
//   - error: 读取、解析或校验失败时返回错误
func LoadLevelConfig(path string) (*LevelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level config file %s: %w", path, err)
	}

	var levelConfig LevelConfig
	if err := yaml.Unmarshal(data, &levelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse level config YAML from %s: %w", path, err)
	}

	applyLevelDefaults(&levelConfig)

	if err := validateLevelConfig(&levelConfig); err != nil {
		return nil, fmt.Errorf("invalid level config in %s: %w", path, err)
	}

	return &levelConfig, nil
}

// applyLevelDefaults 为缺失的可选字段设置默认值
func applyLevelDefaults(config *LevelConfig) {
	if config.Width == 0 {
		config.Width = 3200
	}
	if config.Height == 0 {
		config.Height = 720
	}
	for i := range config.Collectibles {
		c := &config.Collectibles[i]
		if c.Value == 0 {
			switch c.Type {
			case "", "coin":
				c.Value = 100
			case "health":
				c.Value = 25
			}
		}
	}
	for i := range config.Enemies {
		if config.Enemies[i].PatrolRange == 0 {
			config.Enemies[i].PatrolRange = 120
		}
	}
}

// validateLevelConfig 校验关卡配置
func validateLevelConfig(config *LevelConfig) error {
	if config.ID == "" {
		return fmt.Errorf("level id is required")
	}
	if config.Width <= 0 || config.Height <= 0 {
		return fmt.Errorf("level size must be positive, got %fx%f", config.Width, config.Height)
	}

	for i, p := range config.Platforms {
		if p.Rect.W < 0 || p.Rect.H < 0 {
			return fmt.Errorf("platform %d has negative size %fx%f", i, p.Rect.W, p.Rect.H)
		}
		if !validPlatformTypes[p.Type] {
			return fmt.Errorf("platform %d has unknown type %q", i, p.Type)
		}
		if p.Type == "moving" && p.MoveBounds.W == 0 && p.MoveBounds.H == 0 {
			return fmt.Errorf("moving platform %d requires moveBounds", i)
		}
	}

	for i, o := range config.Obstacles {
		if !validObstacleTypes[o.Type] {
			return fmt.Errorf("obstacle %d has unknown type %q", i, o.Type)
		}
	}

	for i, c := range config.Collectibles {
		if !validCollectibleTypes[c.Type] {
			return fmt.Errorf("collectible %d has unknown type %q", i, c.Type)
		}
		if c.Type == "powerup" && c.Effect == "" {
			return fmt.Errorf("powerup collectible %d requires effect", i)
		}
	}

	for i, t := range config.Triggers {
		if t.Action == "" {
			return fmt.Errorf("trigger %d requires action", i)
		}
	}

	for i, e := range config.Enemies {
		if !validEnemyKinds[e.Kind] {
			return fmt.Errorf("enemy %d has unknown kind %q", i, e.Kind)
		}
	}

	return nil
}
