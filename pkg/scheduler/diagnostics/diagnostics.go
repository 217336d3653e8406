// Package diagnostics 汇总一次求解调用的状态、耗时与覆盖情况
package diagnostics

import (
	"fmt"
	"sort"

	"github.com/paiban/shiftcore/pkg/model"
)

// Status 是求解器返回的状态分类
type Status string

const (
	StatusOptimal    Status = "Optimal"
	StatusFeasible   Status = "Feasible"
	StatusInfeasible Status = "Infeasible"
	StatusUnknown    Status = "Unknown"
)

// Report 是一次求解调用积累的全部诊断信息
type Report struct {
	SolverStatus     Status
	SolveTimeSeconds float64
	NumConflicts     int64
	NumBranches      int64
	WallTimeSeconds  float64

	RelaxRequirements bool
	RelaxShifts       bool
	RelaxDaysOff      bool

	// ValidCount 目前恒为 0 或 1，保留为计数类型以便未来支持多解枚举
	ValidCount int
}

// Succeeded 报告该次求解是否产出了可用的排班表
func (r Report) Succeeded() bool {
	return r.SolverStatus == StatusOptimal || r.SolverStatus == StatusFeasible
}

// Tally 按员工姓名统计其在排班表中出现的班次总数，用于生成可读的人力汇总
func Tally(schedule model.Schedule) map[string]int {
	tally := make(map[string]int)
	for _, shift := range schedule.Shifts {
		for _, name := range shift.AssignedEmployees {
			tally[name]++
		}
	}
	return tally
}

// FormatTally 把 Tally 结果渲染成按姓名排序的可读文本，供日志与 CLI 输出使用
func FormatTally(schedule model.Schedule) string {
	tally := Tally(schedule)
	names := make([]string, 0, len(tally))
	for name := range tally {
		names = append(names, name)
	}
	sort.Strings(names)

	out := ""
	for _, name := range names {
		out += fmt.Sprintf("%s: %d 班\n", name, tally[name])
	}
	return out
}
