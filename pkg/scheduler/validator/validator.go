// Package validator 是排班求解完成后的可插拔复核器，复用排班引擎一贯的
// 「约束即插件」组织方式：每条 §8 中列出的不变式对应一个 Check 实现
package validator

import (
	"sort"
	"sync"

	"github.com/paiban/shiftcore/pkg/model"
	"github.com/paiban/shiftcore/pkg/scheduler/solver"
)

// Violation 是一次复核发现的单条不变式违反
type Violation struct {
	Check        string `json:"check"`
	EmployeeName string `json:"employee_name,omitempty"`
	Date         string `json:"date,omitempty"`
	Message      string `json:"message"`
}

// Check 是一条可插拔的复核规则
type Check interface {
	// Name 返回复核规则名称
	Name() string

	// Evaluate 复核整张排班表，返回发现的全部违反
	Evaluate(schedule model.Schedule, in solver.Input) []Violation
}

// Result 是一次复核的汇总结果
type Result struct {
	IsValid    bool        `json:"is_valid"`
	Violations []Violation `json:"violations,omitempty"`
}

// Manager 持有一组复核规则并依次执行
type Manager struct {
	mu     sync.RWMutex
	checks []Check
}

// NewManager 创建包含全部内建复核规则的管理器
func NewManager() *Manager {
	m := &Manager{}
	m.Register(
		AvailabilityCheck{},
		HeadcountCheck{},
		CapabilityCheck{},
		TimeOffCheck{},
		PreAssignmentCheck{},
		DailyCapCheck{},
		FulltimeWeeklyCheck{},
		OrderingCheck{},
	)
	return m
}

// Register 注册一条复核规则，按名称去重（后注册者替换先注册者）
func (m *Manager) Register(checks ...Check) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range checks {
		replaced := false
		for i, existing := range m.checks {
			if existing.Name() == c.Name() {
				m.checks[i] = c
				replaced = true
				break
			}
		}
		if !replaced {
			m.checks = append(m.checks, c)
		}
	}
	sort.Slice(m.checks, func(i, j int) bool { return m.checks[i].Name() < m.checks[j].Name() })
}

// Evaluate 依次执行全部复核规则并汇总结果
func (m *Manager) Evaluate(schedule model.Schedule, in solver.Input) Result {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var all []Violation
	for _, c := range m.checks {
		all = append(all, c.Evaluate(schedule, in)...)
	}
	return Result{IsValid: len(all) == 0, Violations: all}
}
