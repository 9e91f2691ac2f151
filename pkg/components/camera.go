package components

import "github.com/gonewx/platformer/pkg/geom"

// CameraComponent 摄像机状态
//
// 摄像机平滑跟随目标，位置被钳制在关卡范围内。
// 渲染时配合固定步长累积器的插值系数使用。
type CameraComponent struct {
	Position geom.Vec2 // 当前摄像机位置（视口左上角）

	ViewportW float64
	ViewportH float64

	// Smoothing 跟随平滑系数（每秒逼近目标的比例，越大越紧）
	Smoothing float64
}
