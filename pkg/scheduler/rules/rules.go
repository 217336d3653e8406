// Package rules 提供排班求解前后共用的纯约束谓词：求解器用它们裁剪候选变量，
// 求解完成后 pkg/scheduler/validator 用同一批函数复核结果
package rules

import (
	"github.com/paiban/shiftcore/pkg/model"
)

// Availability 检查某员工是否可以出现在给定 (日期, 班次) 的槽位中：
// 员工在该星期该班次登记为可用，且没有请假记录覆盖同一槽位
func Availability(date model.Date, st model.ShiftTime, employee model.Employee, timeOff []model.TimeOffRequest) bool {
	if !employee.IsAvailable(date.Weekday(), st) {
		return false
	}
	for _, req := range timeOff {
		if req.Matches(employee.Name, date, st) {
			return false
		}
	}
	return true
}

// Requirements 检查某班次的已分配人员是否满足需求：人数精确相等，三项能力下限
// 在 relaxed=false 时必须达到，在 relaxed=true 时只需达到 floor(minimum/2)
func Requirements(headcount, leaders, injectors, leaderOrInjector int, req model.ShiftRequirement, relaxed bool) bool {
	if headcount != req.NumPeople {
		return false
	}
	leaderFloor, injectorFloor, combinedFloor := req.NumLeaders, req.NumInjectors, req.NumLeaderOrInjector
	if relaxed {
		leaderFloor /= 2
		injectorFloor /= 2
		combinedFloor /= 2
	}
	if leaders < leaderFloor {
		return false
	}
	if injectors < injectorFloor {
		return false
	}
	if leaderOrInjector < combinedFloor {
		return false
	}
	return true
}

// FulltimeWeekly 检查某全职员工在其出现过的每一周内，班次总数与休息天数是否满足
// 周负荷约束；兼职员工永远返回 true。一周内零班次不参与检查
func FulltimeWeekly(schedule model.Schedule, employee model.Employee, relaxedShifts, relaxedDaysOff bool) bool {
	if !employee.IsFulltime {
		return true
	}

	byWeek := make(map[string][]model.Shift)
	for _, shift := range schedule.GetEmployeeShifts(employee.Name) {
		key := shift.Date.WeekKey().String()
		byWeek[key] = append(byWeek[key], shift)
	}

	for _, shifts := range byWeek {
		count := len(shifts)
		if relaxedShifts {
			if count < 8 || count > 10 {
				return false
			}
		} else if count != 10 {
			return false
		}

		workedDates := make(map[string]bool)
		for _, shift := range shifts {
			workedDates[shift.Date.String()] = true
		}
		daysWorked := len(workedDates)
		if relaxedDaysOff {
			if daysWorked > 6 {
				return false
			}
		} else if daysWorked > 5 {
			return false
		}
	}
	return true
}

// DayLimit 检查某员工在给定日期的班次数是否严格小于 max（默认值 3 由调用方传入）
func DayLimit(schedule model.Schedule, employeeName string, date model.Date, max int) bool {
	count := 0
	for _, shift := range schedule.GetEmployeeShifts(employeeName) {
		if shift.Date.Equal(date) {
			count++
		}
	}
	return count < max
}

// DefaultDayLimit 是 §4.2 day_limit 谓词使用的默认每日上限
const DefaultDayLimit = 3

// PreferenceScore 对每个 (员工, 日期) 组合计分：当天恰好 2 班 +10，1 班 +0，
// 3 班及以上 -5；总分即为该排班表的偏好评分
func PreferenceScore(schedule model.Schedule) int {
	counts := make(map[string]map[string]int)
	names := make(map[string]bool)
	for _, shift := range schedule.Shifts {
		for _, name := range shift.AssignedEmployees {
			names[name] = true
			byDate, ok := counts[name]
			if !ok {
				byDate = make(map[string]int)
				counts[name] = byDate
			}
			byDate[shift.Date.String()]++
		}
	}

	score := 0
	for name := range names {
		for _, n := range counts[name] {
			switch {
			case n == 2:
				score += 10
			case n == 1:
				score += 0
			default:
				score -= 5
			}
		}
	}
	return score
}
