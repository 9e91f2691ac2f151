package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PlayerConfig 玩家移动与能力调参配置
//
// 配置文件位置: data/player.yaml
// 所有时间字段单位为秒，速度/力字段单位为像素/秒。
type PlayerConfig struct {
	// 碰撞盒尺寸
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// 水平移动
	MoveSpeed       float64 `yaml:"moveSpeed"`       // 最大水平移动速度
	GroundAccel     float64 `yaml:"groundAccel"`     // 着地加速度
	AirAccel        float64 `yaml:"airAccel"`        // 空中加速度
	IceFrictionMult float64 `yaml:"iceFrictionMult"` // 冰面摩擦倍率（<1 更滑）

	// 跳跃
	JumpForce        float64 `yaml:"jumpForce"`        // 起跳初速度
	DoubleJumpFactor float64 `yaml:"doubleJumpFactor"` // 二段跳力度系数（相对 JumpForce）
	CoyoteTime       float64 `yaml:"coyoteTime"`       // 土狼时间窗口
	JumpBufferTime   float64 `yaml:"jumpBufferTime"`   // 跳跃输入缓冲窗口

	// 滑墙与蹬墙跳
	CanWallJump     bool    `yaml:"canWallJump"`
	WallSlideSpeed  float64 `yaml:"wallSlideSpeed"`  // 滑墙下落速度上限
	WallJumpForceX  float64 `yaml:"wallJumpForceX"`  // 蹬墙跳水平冲量
	WallJumpForceY  float64 `yaml:"wallJumpForceY"`  // 蹬墙跳垂直冲量
	WallJumpLockout float64 `yaml:"wallJumpLockout"` // 蹬墙跳后的输入锁定时长

	// 冲刺
	DashSpeed    float64 `yaml:"dashSpeed"`    // 冲刺水平速度
	DashDuration float64 `yaml:"dashDuration"` // 冲刺持续时长（同时兼作冷却）

	// 生命与受击
	MaxHealth           int     `yaml:"maxHealth"`
	Lives               int     `yaml:"lives"`
	InvulnerabilityTime float64 `yaml:"invulnerabilityTime"` // 受击后的无敌时长
	KnockbackForce      float64 `yaml:"knockbackForce"`      // 受击击退冲量

	// 弹性平台反弹速度
	BounceForce float64 `yaml:"bounceForce"`

	// 能力强化持续时长
	PowerUpDuration float64 `yaml:"powerUpDuration"`
}

// DefaultPlayerConfig 返回默认玩家配置
func DefaultPlayerConfig() *PlayerConfig {
	return &PlayerConfig{
		Width:  28,
		Height: 44,

		MoveSpeed:       240,
		GroundAccel:     2400,
		AirAccel:        1400,
		IceFrictionMult: 0.3,

		JumpForce:        520,
		DoubleJumpFactor: 0.8,
		CoyoteTime:       0.1,
		JumpBufferTime:   0.12,

		CanWallJump:     true,
		WallSlideSpeed:  90,
		WallJumpForceX:  320,
		WallJumpForceY:  460,
		WallJumpLockout: 0.15,

		DashSpeed:    560,
		DashDuration: 0.2,

		MaxHealth:           100,
		Lives:               3,
		InvulnerabilityTime: 1.5,
		KnockbackForce:      280,

		BounceForce: 720,

		PowerUpDuration: 8.0,
	}
}

// LoadPlayerConfig 从 YAML 文件加载玩家配置
func LoadPlayerConfig(path string) (*PlayerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read player config: %w", err)
	}

	config := DefaultPlayerConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse player config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid player config: %w", err)
	}

	return config, nil
}

// Validate 校验配置有效性
func (c *PlayerConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("player size must be positive, got %fx%f", c.Width, c.Height)
	}
	if c.MoveSpeed <= 0 {
		return fmt.Errorf("moveSpeed must be positive, got %f", c.MoveSpeed)
	}
	if c.JumpForce <= 0 {
		return fmt.Errorf("jumpForce must be positive, got %f", c.JumpForce)
	}
	if c.DoubleJumpFactor <= 0 || c.DoubleJumpFactor > 1 {
		return fmt.Errorf("doubleJumpFactor must be in (0, 1], got %f", c.DoubleJumpFactor)
	}
	if c.CoyoteTime < 0 || c.JumpBufferTime < 0 {
		return fmt.Errorf("timer windows must be non-negative")
	}
	if c.IceFrictionMult <= 0 || c.IceFrictionMult > 1 {
		return fmt.Errorf("iceFrictionMult must be in (0, 1], got %f", c.IceFrictionMult)
	}
	if c.DashDuration <= 0 {
		return fmt.Errorf("dashDuration must be positive, got %f", c.DashDuration)
	}
	if c.MaxHealth <= 0 {
		return fmt.Errorf("maxHealth must be positive, got %d", c.MaxHealth)
	}
	if c.Lives <= 0 {
		return fmt.Errorf("lives must be positive, got %d", c.Lives)
	}
	return nil
}
