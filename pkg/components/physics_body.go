// Package components 定义挂载在ECS实体上的纯数据组件
package components

import "github.com/gonewx/platformer/pkg/physics"

// PhysicsBodyComponent 将ECS实体关联到物理引擎中的模拟单元
//
// Body 由创建实体的工厂函数同时加入物理引擎；
// 实体销毁时必须调用 Engine.RemoveEntity 解除关联。
type PhysicsBodyComponent struct {
	Body *physics.Entity
}
