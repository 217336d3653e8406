package validator

import (
	"fmt"

	"github.com/paiban/shiftcore/pkg/model"
	"github.com/paiban/shiftcore/pkg/scheduler/rules"
	"github.com/paiban/shiftcore/pkg/scheduler/solver"
)

// AvailabilityCheck 对应 §8 不变式 3：员工不得出现在其不可用的班次中
type AvailabilityCheck struct{}

func (AvailabilityCheck) Name() string { return "availability" }

func (AvailabilityCheck) Evaluate(schedule model.Schedule, in solver.Input) []Violation {
	byName := employeesByName(in.Employees)
	var out []Violation
	for _, shift := range schedule.Shifts {
		for _, name := range shift.AssignedEmployees {
			emp, ok := byName[name]
			if !ok {
				continue
			}
			if !rules.Availability(shift.Date, shift.ShiftTime, emp, in.TimeOff) {
				out = append(out, Violation{
					Check: "availability", EmployeeName: name, Date: shift.Date.String(),
					Message: fmt.Sprintf("%s 被分配到其不可用或已请假的 %s %s 班次", name, shift.Date, shift.ShiftTime),
				})
			}
		}
	}
	return out
}

// HeadcountCheck 对应 §8 不变式 1：每个有需求的槽位人数精确匹配 num_people
type HeadcountCheck struct{}

func (HeadcountCheck) Name() string { return "headcount" }

func (HeadcountCheck) Evaluate(schedule model.Schedule, in solver.Input) []Violation {
	reqByKey := make(map[model.RequirementKey]model.ShiftRequirement)
	for _, r := range in.Requirements {
		reqByKey[r.Key()] = r
	}

	var out []Violation
	for _, shift := range schedule.Shifts {
		req, ok := reqByKey[model.RequirementKey{Weekday: shift.Date.Weekday(), ShiftTime: shift.ShiftTime}]
		if !ok {
			continue
		}
		if shift.Count() != req.NumPeople {
			out = append(out, Violation{
				Check: "headcount", Date: shift.Date.String(),
				Message: fmt.Sprintf("%s %s 人数为 %d，需求为 %d", shift.Date, shift.ShiftTime, shift.Count(), req.NumPeople),
			})
		}
	}
	return out
}

// CapabilityCheck 对应 §8 不变式 2：三项能力下限，按放宽开关取对应 floor
type CapabilityCheck struct{}

func (CapabilityCheck) Name() string { return "capability" }

func (CapabilityCheck) Evaluate(schedule model.Schedule, in solver.Input) []Violation {
	byName := employeesByName(in.Employees)
	reqByKey := make(map[model.RequirementKey]model.ShiftRequirement)
	for _, r := range in.Requirements {
		reqByKey[r.Key()] = r
	}

	var out []Violation
	for _, shift := range schedule.Shifts {
		req, ok := reqByKey[model.RequirementKey{Weekday: shift.Date.Weekday(), ShiftTime: shift.ShiftTime}]
		if !ok {
			continue
		}
		leaders, injectors, combined := 0, 0, 0
		for _, name := range shift.AssignedEmployees {
			emp, ok := byName[name]
			if !ok {
				continue
			}
			if emp.IsLeader {
				leaders++
			}
			if emp.CanInject {
				injectors++
			}
			if emp.HasLeaderOrInjector() {
				combined++
			}
		}
		if !rules.Requirements(shift.Count(), leaders, injectors, combined, req, in.Relax.Requirements) {
			out = append(out, Violation{
				Check: "capability", Date: shift.Date.String(),
				Message: fmt.Sprintf("%s %s 能力构成不满足需求 (leaders=%d injectors=%d combined=%d)", shift.Date, shift.ShiftTime, leaders, injectors, combined),
			})
		}
	}
	return out
}

// TimeOffCheck 对应 §8 不变式 4：每条请假记录都必须被遵守
type TimeOffCheck struct{}

func (TimeOffCheck) Name() string { return "time_off" }

func (TimeOffCheck) Evaluate(schedule model.Schedule, in solver.Input) []Violation {
	var out []Violation
	for _, t := range in.TimeOff {
		shift, ok := schedule.GetShift(t.Date, t.ShiftTime)
		if !ok {
			continue
		}
		if shift.HasEmployee(t.EmployeeName) {
			out = append(out, Violation{
				Check: "time_off", EmployeeName: t.EmployeeName, Date: t.Date.String(),
				Message: fmt.Sprintf("%s 在请假的 %s %s 仍被排班", t.EmployeeName, t.Date, t.ShiftTime),
			})
		}
	}
	return out
}

// PreAssignmentCheck 对应 §8 不变式 5：每条预排班都必须出现在结果中
type PreAssignmentCheck struct{}

func (PreAssignmentCheck) Name() string { return "pre_assignment" }

func (PreAssignmentCheck) Evaluate(schedule model.Schedule, in solver.Input) []Violation {
	var out []Violation
	for _, p := range in.PreAssigned {
		shift, ok := schedule.GetShift(p.Date, p.ShiftTime)
		if !ok || !shift.HasEmployee(p.EmployeeName) {
			out = append(out, Violation{
				Check: "pre_assignment", EmployeeName: p.EmployeeName, Date: p.Date.String(),
				Message: fmt.Sprintf("预排班 %s %s %s 未出现在结果中", p.EmployeeName, p.Date, p.ShiftTime),
			})
		}
	}
	return out
}

// DailyCapCheck 对应 §8 不变式 6：每个员工每天的班次数不超过 3
type DailyCapCheck struct{}

func (DailyCapCheck) Name() string { return "daily_cap" }

func (DailyCapCheck) Evaluate(schedule model.Schedule, in solver.Input) []Violation {
	var out []Violation
	for _, emp := range in.Employees {
		counts := make(map[string]int)
		for _, shift := range schedule.GetEmployeeShifts(emp.Name) {
			counts[shift.Date.String()]++
		}
		for date, n := range counts {
			if n > rules.DefaultDayLimit {
				out = append(out, Violation{
					Check: "daily_cap", EmployeeName: emp.Name, Date: date,
					Message: fmt.Sprintf("%s 在 %s 被分配 %d 班，超过上限 %d", emp.Name, date, n, rules.DefaultDayLimit),
				})
			}
		}
	}
	return out
}

// FulltimeWeeklyCheck 对应 §8 不变式 7：全职员工的周班次总数与休息天数
type FulltimeWeeklyCheck struct{}

func (FulltimeWeeklyCheck) Name() string { return "fulltime_weekly" }

func (FulltimeWeeklyCheck) Evaluate(schedule model.Schedule, in solver.Input) []Violation {
	var out []Violation
	for _, emp := range in.Employees {
		if !emp.IsFulltime {
			continue
		}
		if !rules.FulltimeWeekly(schedule, emp, in.Relax.Shifts, in.Relax.DaysOff) {
			out = append(out, Violation{
				Check: "fulltime_weekly", EmployeeName: emp.Name,
				Message: fmt.Sprintf("全职员工 %s 的周班次数或休息天数不满足约束", emp.Name),
			})
		}
	}
	return out
}

// OrderingCheck 对应 §8 不变式 8：输出顺序必须按日期升序、班次固定顺序排列
type OrderingCheck struct{}

func (OrderingCheck) Name() string { return "ordering" }

func (OrderingCheck) Evaluate(schedule model.Schedule, in solver.Input) []Violation {
	var out []Violation
	for i := 1; i < len(schedule.Shifts); i++ {
		prev, cur := schedule.Shifts[i-1], schedule.Shifts[i]
		if cur.Date.Equal(prev.Date) {
			if cur.ShiftTime.Order() <= prev.ShiftTime.Order() {
				out = append(out, Violation{Check: "ordering", Date: cur.Date.String(), Message: "同一天内班次顺序错乱"})
			}
			continue
		}
		if cur.Date.Before(prev.Date) {
			out = append(out, Violation{Check: "ordering", Date: cur.Date.String(), Message: "日期未按升序排列"})
		}
	}
	return out
}

func employeesByName(employees []model.Employee) map[string]model.Employee {
	out := make(map[string]model.Employee, len(employees))
	for _, e := range employees {
		out[e.Name] = e
	}
	return out
}
