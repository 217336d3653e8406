package validator

import (
	"testing"

	"github.com/paiban/shiftcore/pkg/model"
	"github.com/paiban/shiftcore/pkg/scheduler/solver"
)

func TestHeadcountCheck(t *testing.T) {
	monday := model.NewDate(2025, 1, 6)
	schedule := model.NewSchedule([]model.Shift{
		{Date: monday, ShiftTime: model.Morning, AssignedEmployees: []string{"A"}},
	})
	in := solver.Input{Requirements: []model.ShiftRequirement{
		{Weekday: model.Monday, ShiftTime: model.Morning, NumPeople: 2},
	}}

	violations := (HeadcountCheck{}).Evaluate(schedule, in)
	if len(violations) != 1 {
		t.Fatalf("人数不足应产出 1 条违反, got %d", len(violations))
	}
}

func TestTimeOffCheck(t *testing.T) {
	monday := model.NewDate(2025, 1, 6)
	schedule := model.NewSchedule([]model.Shift{
		{Date: monday, ShiftTime: model.Morning, AssignedEmployees: []string{"A"}},
	})
	in := solver.Input{TimeOff: []model.TimeOffRequest{{EmployeeName: "A", Date: monday, ShiftTime: model.Morning}}}

	violations := (TimeOffCheck{}).Evaluate(schedule, in)
	if len(violations) != 1 {
		t.Fatalf("请假员工仍被排班应产出 1 条违反, got %d", len(violations))
	}
}

func TestPreAssignmentCheck(t *testing.T) {
	monday := model.NewDate(2025, 1, 6)
	schedule := model.NewSchedule([]model.Shift{
		{Date: monday, ShiftTime: model.Morning, AssignedEmployees: []string{"B"}},
	})
	in := solver.Input{PreAssigned: []model.PreAssignedShift{{EmployeeName: "A", Date: monday, ShiftTime: model.Morning}}}

	violations := (PreAssignmentCheck{}).Evaluate(schedule, in)
	if len(violations) != 1 {
		t.Fatalf("预排班未出现应产出 1 条违反, got %d", len(violations))
	}
}

func TestDailyCapCheck(t *testing.T) {
	monday := model.NewDate(2025, 1, 6)
	in := solver.Input{Employees: []model.Employee{{Name: "A"}}}

	threeShifts := model.NewSchedule([]model.Shift{
		{Date: monday, ShiftTime: model.Morning, AssignedEmployees: []string{"A"}},
		{Date: monday, ShiftTime: model.Midday, AssignedEmployees: []string{"A"}},
		{Date: monday, ShiftTime: model.Evening, AssignedEmployees: []string{"A"}},
	})
	if violations := (DailyCapCheck{}).Evaluate(threeShifts, in); len(violations) != 0 {
		t.Fatalf("恰好 3 班不应触发每日上限违反, got %d", len(violations))
	}

	fourShifts := model.NewSchedule(append(append([]model.Shift{}, threeShifts.Shifts...),
		model.Shift{Date: monday, ShiftTime: model.Morning, AssignedEmployees: []string{"A"}}))
	if violations := (DailyCapCheck{}).Evaluate(fourShifts, in); len(violations) == 0 {
		t.Fatalf("4 班应触发每日上限违反")
	}
}

func TestOrderingCheck(t *testing.T) {
	monday := model.NewDate(2025, 1, 6)
	ordered := model.NewSchedule([]model.Shift{
		{Date: monday, ShiftTime: model.Morning},
		{Date: monday, ShiftTime: model.Midday},
		{Date: monday.AddDays(1), ShiftTime: model.Morning},
	})
	if violations := (OrderingCheck{}).Evaluate(ordered, solver.Input{}); len(violations) != 0 {
		t.Fatalf("已排序班表不应产出顺序违反, got %d", len(violations))
	}

	unordered := model.NewSchedule([]model.Shift{
		{Date: monday, ShiftTime: model.Midday},
		{Date: monday, ShiftTime: model.Morning},
	})
	if violations := (OrderingCheck{}).Evaluate(unordered, solver.Input{}); len(violations) == 0 {
		t.Fatalf("同一天内班次顺序错乱应被检出")
	}
}

func TestManager_Evaluate汇总全部规则(t *testing.T) {
	monday := model.NewDate(2025, 1, 6)
	schedule := model.NewSchedule([]model.Shift{
		{Date: monday, ShiftTime: model.Morning, AssignedEmployees: []string{"A"}},
	})
	in := solver.Input{
		Employees:    []model.Employee{{Name: "A", AvailableShifts: map[model.Weekday]map[model.ShiftTime]bool{model.Monday: {model.Morning: true}}}},
		Requirements: []model.ShiftRequirement{{Weekday: model.Monday, ShiftTime: model.Morning, NumPeople: 1}},
	}

	result := NewManager().Evaluate(schedule, in)
	if !result.IsValid {
		t.Fatalf("合法排班应通过全部复核规则, got violations=%+v", result.Violations)
	}
}
