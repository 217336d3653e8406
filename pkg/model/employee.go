// Package model 定义排班引擎的核心数据模型
package model

// Employee 员工。Name 在一次求解范围内是唯一标识，核心将其视为不透明的 key
type Employee struct {
	Name       string `json:"name"`
	IsLeader   bool   `json:"is_leader"`
	CanInject  bool   `json:"can_inject"`
	IsFulltime bool   `json:"is_fulltime"`

	// AvailableShifts 按星期映射到该天可用的班次集合；缺失的星期视为全天不可用，
	// 空集合同样视为全天不可用
	AvailableShifts map[Weekday]map[ShiftTime]bool `json:"available_shifts"`
}

// IsAvailable 检查该员工在指定星期的指定班次是否在其可用范围内
func (e Employee) IsAvailable(wd Weekday, st ShiftTime) bool {
	day, ok := e.AvailableShifts[wd]
	if !ok {
		return false
	}
	return day[st]
}

// HasLeaderOrInjector 检查该员工是否具备 leader 或 injector 任一能力
func (e Employee) HasLeaderOrInjector() bool {
	return e.IsLeader || e.CanInject
}
