package rules

import (
	"testing"

	"github.com/paiban/shiftcore/pkg/model"
)

func TestAvailability(t *testing.T) {
	emp := model.Employee{
		Name:            "A",
		AvailableShifts: model.ParseAvailability("1:Morning,Midday"),
	}
	monday := model.NewDate(2025, 1, 6)

	if !Availability(monday, model.Morning, emp, nil) {
		t.Fatalf("员工在登记可用的槽位上应通过检查")
	}
	if Availability(monday, model.Evening, emp, nil) {
		t.Fatalf("员工未登记的班次不应通过检查")
	}

	timeOff := []model.TimeOffRequest{{EmployeeName: "A", Date: monday, ShiftTime: model.Morning}}
	if Availability(monday, model.Morning, emp, timeOff) {
		t.Fatalf("请假覆盖的槽位不应通过检查")
	}
}

func TestRequirements(t *testing.T) {
	req := model.ShiftRequirement{NumPeople: 3, NumLeaders: 1, NumInjectors: 1, NumLeaderOrInjector: 2}

	if !Requirements(3, 1, 1, 2, req, false) {
		t.Fatalf("恰好满足需求应通过严格检查")
	}
	if Requirements(2, 1, 1, 2, req, false) {
		t.Fatalf("人数不等于 num_people 应失败")
	}
	if Requirements(3, 0, 0, 0, req, false) {
		t.Fatalf("能力下限不足应在严格模式下失败")
	}
	if !Requirements(3, 0, 0, 1, req, true) {
		t.Fatalf("放宽模式下下限减半 (1//2=0, 1//2=0, 2//2=1) 应通过")
	}
}

func TestFulltimeWeekly(t *testing.T) {
	monday := model.NewDate(2025, 1, 6)
	shifts := make([]model.Shift, 0, 10)
	// 5 天 x 2 班 = 10 班，休 2 天
	for d := 0; d < 5; d++ {
		date := monday.AddDays(d)
		shifts = append(shifts,
			model.Shift{Date: date, ShiftTime: model.Morning, AssignedEmployees: []string{"A"}},
			model.Shift{Date: date, ShiftTime: model.Midday, AssignedEmployees: []string{"A"}},
		)
	}
	schedule := model.NewSchedule(shifts)
	fulltimeEmp := model.Employee{Name: "A", IsFulltime: true}

	if !FulltimeWeekly(schedule, fulltimeEmp, false, false) {
		t.Fatalf("10 班 5 天应满足严格全职周负荷")
	}

	partTimeEmp := model.Employee{Name: "A", IsFulltime: false}
	if !FulltimeWeekly(schedule, partTimeEmp, false, false) {
		t.Fatalf("兼职员工应始终返回 true")
	}
}

func TestFulltimeWeekly_放宽班次数(t *testing.T) {
	monday := model.NewDate(2025, 1, 6)
	var shifts []model.Shift
	for d := 0; d < 4; d++ {
		date := monday.AddDays(d)
		shifts = append(shifts,
			model.Shift{Date: date, ShiftTime: model.Morning, AssignedEmployees: []string{"A"}},
			model.Shift{Date: date, ShiftTime: model.Midday, AssignedEmployees: []string{"A"}},
		)
	}
	schedule := model.NewSchedule(shifts)
	emp := model.Employee{Name: "A", IsFulltime: true}

	if FulltimeWeekly(schedule, emp, false, false) {
		t.Fatalf("8 班不满足严格的恰好 10 班要求")
	}
	if !FulltimeWeekly(schedule, emp, true, false) {
		t.Fatalf("8 班应满足放宽后的 [8,10] 区间")
	}
}

func TestDayLimit(t *testing.T) {
	monday := model.NewDate(2025, 1, 6)
	shifts := []model.Shift{
		{Date: monday, ShiftTime: model.Morning, AssignedEmployees: []string{"A"}},
		{Date: monday, ShiftTime: model.Midday, AssignedEmployees: []string{"A"}},
		{Date: monday, ShiftTime: model.Evening, AssignedEmployees: []string{"A"}},
	}
	schedule := model.NewSchedule(shifts)

	if DayLimit(schedule, "A", monday, DefaultDayLimit) {
		t.Fatalf("已有 3 班时不应小于上限 3")
	}
	if !DayLimit(schedule, "A", monday.AddDays(1), DefaultDayLimit) {
		t.Fatalf("次日没有班次应满足上限检查")
	}
}

func TestPreferenceScore(t *testing.T) {
	monday := model.NewDate(2025, 1, 6)
	shifts := []model.Shift{
		{Date: monday, ShiftTime: model.Morning, AssignedEmployees: []string{"A"}},
		{Date: monday, ShiftTime: model.Midday, AssignedEmployees: []string{"A"}},
		{Date: monday.AddDays(1), ShiftTime: model.Morning, AssignedEmployees: []string{"B"}},
	}
	schedule := model.NewSchedule(shifts)

	got := PreferenceScore(schedule)
	want := 10 + 0
	if got != want {
		t.Fatalf("PreferenceScore() = %d, want %d", got, want)
	}
}
