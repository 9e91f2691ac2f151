// Package config 提供基于 YAML 的游戏配置加载与校验
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PhysicsConfig 物理引擎调参配置
//
// 配置文件位置: data/physics.yaml
// 所有字段缺省时使用引擎默认值，加载后统一校验。
type PhysicsConfig struct {
	// GravityY 重力加速度（像素/秒²，正值向下）
	GravityY float64 `yaml:"gravityY"`

	// TimeStep 固定子步长（秒）
	TimeStep float64 `yaml:"timeStep"`

	// PositionIterations 位置修正迭代次数
	PositionIterations int `yaml:"positionIterations"`

	// VelocityIterations 速度求解迭代次数
	VelocityIterations int `yaml:"velocityIterations"`

	// CorrectionPercent 每次位置修正的比例（0~1）
	CorrectionPercent float64 `yaml:"correctionPercent"`

	// Slop 允许残留的重叠深度（像素）
	Slop float64 `yaml:"slop"`
}

// DefaultPhysicsConfig 返回默认物理配置
func DefaultPhysicsConfig() *PhysicsConfig {
	return &PhysicsConfig{
		GravityY:           980.0,
		TimeStep:           1.0 / 60.0,
		PositionIterations: 3,
		VelocityIterations: 8,
		CorrectionPercent:  0.8,
		Slop:               0.01,
	}
}

// LoadPhysicsConfig 从 YAML 文件加载物理配置
//
// 参数:
//   - path: 配置文件路径（如 "data/physics.yaml"）
//
// 返回:
//   - *PhysicsConfig: 加载成功后的配置结构
//   - error: 读取、解析或校验失败时返回错误
func LoadPhysicsConfig(path string) (*PhysicsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read physics config: %w", err)
	}

	config := DefaultPhysicsConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse physics config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid physics config: %w", err)
	}

	return config, nil
}

// Validate 校验配置有效性
func (c *PhysicsConfig) Validate() error {
	if c.TimeStep <= 0 {
		return fmt.Errorf("timeStep must be positive, got %f", c.TimeStep)
	}
	if c.PositionIterations < 1 {
		return fmt.Errorf("positionIterations must be at least 1, got %d", c.PositionIterations)
	}
	if c.VelocityIterations < 1 {
		return fmt.Errorf("velocityIterations must be at least 1, got %d", c.VelocityIterations)
	}
	if c.CorrectionPercent <= 0 || c.CorrectionPercent > 1 {
		return fmt.Errorf("correctionPercent must be in (0, 1], got %f", c.CorrectionPercent)
	}
	if c.Slop < 0 {
		return fmt.Errorf("slop must be non-negative, got %f", c.Slop)
	}
	return nil
}
