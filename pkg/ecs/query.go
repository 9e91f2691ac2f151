package ecs

import "reflect"

// GetComponent 获取实体的指定类型组件（泛型版本）
//
// 类型参数 T 必须是组件的指针类型，如 *components.PlayerComponent。
// 实体不存在或未挂载该组件时第二个返回值为 false。
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.GetComponentByType(id, reflect.TypeOf(zero))
	if !ok {
		return zero, false
	}
	return comp.(T), true
}

// GetEntitiesWith1 查询拥有组件类型 T1 的所有实体
func GetEntitiesWith1[T1 any](em *EntityManager) []EntityID {
	var t1 T1
	return em.GetEntitiesWith(reflect.TypeOf(t1))
}

// GetEntitiesWith2 查询同时拥有组件类型 T1、T2 的所有实体
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	var t1 T1
	var t2 T2
	return em.GetEntitiesWith(reflect.TypeOf(t1), reflect.TypeOf(t2))
}

// GetEntitiesWith3 查询同时拥有组件类型 T1、T2、T3 的所有实体
func GetEntitiesWith3[T1, T2, T3 any](em *EntityManager) []EntityID {
	var t1 T1
	var t2 T2
	var t3 T3
	return em.GetEntitiesWith(reflect.TypeOf(t1), reflect.TypeOf(t2), reflect.TypeOf(t3))
}
