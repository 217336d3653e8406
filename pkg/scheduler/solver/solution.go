package solver

import (
	"sort"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/shiftcore/pkg/model"
)

// materialize 把求解响应中 x[e,s] 的取值物化为 Schedule，班次顺序与模板顺序一致，
// 每个班次内的员工按原始输入索引排序
func materialize(idx *index, x decisionVars, response *cpmodel.CpSolverResponse) model.Schedule {
	shifts := make([]model.Shift, len(idx.slots))
	for s, slot := range idx.slots {
		var assigned []int
		for e := range idx.employees {
			if cpmodel.SolutionBooleanValue(response, x[e][s]) {
				assigned = append(assigned, e)
			}
		}
		sort.Ints(assigned)

		names := make([]string, 0, len(assigned))
		for _, e := range assigned {
			names = append(names, idx.employees[e].Name)
		}
		shifts[s] = model.Shift{Date: slot.Date, ShiftTime: slot.ShiftTime, AssignedEmployees: names}
	}
	return model.NewSchedule(shifts)
}
