// Package model 定义排班引擎的核心数据模型
package model

import "fmt"

// ShiftTime 是一天内三个固定班次之一，语义上是不透明的标签，彼此之间没有先后顺序
type ShiftTime string

const (
	Morning ShiftTime = "Morning" // 早
	Midday  ShiftTime = "Midday"  // 中
	Evening ShiftTime = "Evening" // 晚
)

// ShiftTimes 是模板构建器使用的固定班次顺序
var ShiftTimes = [...]ShiftTime{Morning, Midday, Evening}

// shiftTimeOrder 用于输出排序：Morning < Midday < Evening
var shiftTimeOrder = map[ShiftTime]int{Morning: 0, Midday: 1, Evening: 2}

// Order 返回班次在固定顺序中的位置，供排序使用
func (s ShiftTime) Order() int {
	if o, ok := shiftTimeOrder[s]; ok {
		return o
	}
	return len(shiftTimeOrder)
}

// Valid 检查是否为三个已知班次标签之一
func (s ShiftTime) Valid() bool {
	_, ok := shiftTimeOrder[s]
	return ok
}

// shiftTimeAliases 兼容中文源标签（早/中/晚）以及大小写不敏感输入
var shiftTimeAliases = map[string]ShiftTime{
	"morning": Morning, "早": Morning,
	"midday": Midday, "中": Midday,
	"evening": Evening, "晚": Evening,
}

// ParseShiftTime 解析班次标签字符串，未知标签返回 false（调用方据此静默丢弃）
func ParseShiftTime(label string) (ShiftTime, bool) {
	st, ok := shiftTimeAliases[normalizeLabel(label)]
	return st, ok
}

func normalizeLabel(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			r = r + ('a' - 'A')
		}
		out = append(out, r)
	}
	return string(out)
}

// ShiftRequirement 描述某个 (Weekday, ShiftTime) 对应槽位的人力需求
type ShiftRequirement struct {
	Weekday             Weekday
	ShiftTime           ShiftTime
	NumPeople           int // 精确需求人数
	NumLeaders          int // 最少 leader 人数
	NumInjectors        int // 最少 injector 人数
	NumLeaderOrInjector int // 最少 leader 或 injector 人数
}

// Key 返回用于以 (Weekday, ShiftTime) 索引需求表的键
func (r ShiftRequirement) Key() RequirementKey {
	return RequirementKey{Weekday: r.Weekday, ShiftTime: r.ShiftTime}
}

// RequirementKey 是需求表的索引键
type RequirementKey struct {
	Weekday   Weekday
	ShiftTime ShiftTime
}

// Validate 检查需求是否满足 §3 中列出的不变式，返回的 error 均为致命错误
func (r ShiftRequirement) Validate() error {
	if r.NumPeople < 0 || r.NumLeaders < 0 || r.NumInjectors < 0 || r.NumLeaderOrInjector < 0 {
		return fmt.Errorf("inconsistent requirement for %s %s: counts must be >= 0", r.Weekday, r.ShiftTime)
	}
	if r.NumLeaders > r.NumPeople {
		return fmt.Errorf("inconsistent requirement for %s %s: num_leaders %d > num_people %d", r.Weekday, r.ShiftTime, r.NumLeaders, r.NumPeople)
	}
	if r.NumInjectors > r.NumPeople {
		return fmt.Errorf("inconsistent requirement for %s %s: num_injectors %d > num_people %d", r.Weekday, r.ShiftTime, r.NumInjectors, r.NumPeople)
	}
	if r.NumLeaderOrInjector > r.NumPeople {
		return fmt.Errorf("inconsistent requirement for %s %s: num_leader_or_injector %d > num_people %d", r.Weekday, r.ShiftTime, r.NumLeaderOrInjector, r.NumPeople)
	}
	return nil
}

// Warning 在需求自洽但人数明显不足以覆盖各项能力下限时返回提示文案；不改变求解语义
func (r ShiftRequirement) Warning() string {
	floor := r.NumLeaders
	if r.NumInjectors > floor {
		floor = r.NumInjectors
	}
	if r.NumLeaderOrInjector > floor {
		floor = r.NumLeaderOrInjector
	}
	if r.NumPeople < floor {
		return fmt.Sprintf("requirement %s %s: num_people=%d is below the largest capability floor %d", r.Weekday, r.ShiftTime, r.NumPeople, floor)
	}
	return ""
}

// Shift 是求解结果中的一个已（部分）分配的槽位
type Shift struct {
	Date               Date
	ShiftTime          ShiftTime
	AssignedEmployees  []string // 按输入员工索引顺序排列的姓名
}

// HasEmployee 检查某员工是否出现在该班次中
func (s Shift) HasEmployee(name string) bool {
	for _, n := range s.AssignedEmployees {
		if n == name {
			return true
		}
	}
	return false
}

// Count 返回班次当前分配的人数
func (s Shift) Count() int {
	return len(s.AssignedEmployees)
}
