package solver

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	apperrors "github.com/paiban/shiftcore/pkg/errors"
	"github.com/paiban/shiftcore/pkg/model"
	"github.com/paiban/shiftcore/pkg/scheduler/rules"
)

// modelBuilder 持有一次求解调用的 CP-SAT 模型与索引，随求解结束而丢弃
type modelBuilder struct {
	model *cpmodel.CpModelBuilder
	idx   *index
	in    Input
}

// decisionVars 是 x[e,s] 的矩阵，按 employee 索引 × slot 索引排列
type decisionVars [][]cpmodel.BoolVar

func newModelBuilder(idx *index, in Input) *modelBuilder {
	return &modelBuilder{
		model: cpmodel.NewCpModelBuilder(),
		idx:   idx,
		in:    in,
	}
}

// addDecisionVariables 为每个 (employee, slot) 创建布尔决策变量 x[e,s]
func (b *modelBuilder) addDecisionVariables() decisionVars {
	x := make(decisionVars, len(b.idx.employees))
	for e, emp := range b.idx.employees {
		x[e] = make([]cpmodel.BoolVar, len(b.idx.slots))
		for s := range b.idx.slots {
			name := fmt.Sprintf("x_e%d_s%d", e, s)
			_ = emp
			x[e][s] = b.model.NewBoolVar().WithName(name)
		}
	}
	return x
}

// addAvailabilityConstraints 把 §4.3(1) 的可用性钉定为 x[e,s] = 0
func (b *modelBuilder) addAvailabilityConstraints(x decisionVars) {
	for e, emp := range b.idx.employees {
		for s, slot := range b.idx.slots {
			if !rules.Availability(slot.Date, slot.ShiftTime, emp, b.in.TimeOff) {
				b.model.AddEquality(x[e][s], cpmodel.NewConstant(0))
			}
		}
	}
}

// addPreAssignmentConstraints 把 §4.3(2) 的预排班钉定为 x[e*,s*] = 1
func (b *modelBuilder) addPreAssignmentConstraints(x decisionVars) error {
	for _, pa := range b.in.PreAssigned {
		e, ok := b.idx.nameToEmp[pa.EmployeeName]
		if !ok {
			return apperrors.UnknownEmployeeReference(pa.EmployeeName)
		}
		s, ok := b.findSlot(pa.Date, pa.ShiftTime)
		if !ok {
			continue // 预排班落在模板窗口之外，不产生约束
		}
		b.model.AddEquality(x[e][s], cpmodel.NewConstant(1))
	}
	return nil
}

func (b *modelBuilder) findSlot(date model.Date, st model.ShiftTime) (int, bool) {
	for _, si := range b.idx.slotOfDate[date.String()] {
		if b.idx.slots[si].ShiftTime == st {
			return si, true
		}
	}
	return 0, false
}
