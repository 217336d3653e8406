package store

import (
	"fmt"

	"github.com/paiban/shiftcore/pkg/model"
)

// EmployeeRow 是外部表格中的一行员工记录（§6 Employee row）
type EmployeeRow struct {
	Name         string
	IsLeader     bool
	CanInject    bool
	Availability string
	IsFulltime   bool
}

// Decode 把原始表格行解析为核心使用的 model.Employee
func (r EmployeeRow) Decode() model.Employee {
	return model.Employee{
		Name:            r.Name,
		IsLeader:        r.IsLeader,
		CanInject:       r.CanInject,
		IsFulltime:      r.IsFulltime,
		AvailableShifts: model.ParseAvailability(r.Availability),
	}
}

// RequirementRow 是外部表格中的一行需求记录（§6 Requirement row）
type RequirementRow struct {
	Weekday             int
	ShiftTimeLabel      string
	NumPeople           int
	NumLeaders          int
	NumInjectors        int
	NumLeaderOrInjector int
}

// Decode 把原始表格行解析为 model.ShiftRequirement。未知班次标签返回 ok=false，
// 调用方据此静默丢弃该行，和可用性解析的丢弃策略保持一致
func (r RequirementRow) Decode() (model.ShiftRequirement, bool) {
	if r.Weekday < int(model.Monday) || r.Weekday > int(model.Sunday) {
		return model.ShiftRequirement{}, false
	}
	st, ok := model.ParseShiftTime(r.ShiftTimeLabel)
	if !ok {
		return model.ShiftRequirement{}, false
	}
	return model.ShiftRequirement{
		Weekday:             model.Weekday(r.Weekday),
		ShiftTime:           st,
		NumPeople:           r.NumPeople,
		NumLeaders:          r.NumLeaders,
		NumInjectors:        r.NumInjectors,
		NumLeaderOrInjector: r.NumLeaderOrInjector,
	}, true
}

// TimeOffRow 是外部表格中的一行请假记录（§6 Time-off row）
// 全天请假由调用方在解码前展开为三行，这里只处理单个班次
type TimeOffRow struct {
	EmployeeName   string
	Date           string
	ShiftTimeLabel string
}

// Decode 解析为 model.TimeOffRequest
func (r TimeOffRow) Decode() (model.TimeOffRequest, error) {
	date, err := model.ParseDate(r.Date)
	if err != nil {
		return model.TimeOffRequest{}, fmt.Errorf("time-off row 日期解析失败: %w", err)
	}
	st, ok := model.ParseShiftTime(r.ShiftTimeLabel)
	if !ok {
		return model.TimeOffRequest{}, fmt.Errorf("time-off row 班次标签未知: %q", r.ShiftTimeLabel)
	}
	return model.TimeOffRequest{EmployeeName: r.EmployeeName, Date: date, ShiftTime: st}, nil
}

// PreAssignmentRow 与 TimeOffRow 形状相同（§6: "same shape as time-off"）
type PreAssignmentRow struct {
	EmployeeName   string
	Date           string
	ShiftTimeLabel string
}

// Decode 解析为 model.PreAssignedShift
func (r PreAssignmentRow) Decode() (model.PreAssignedShift, error) {
	date, err := model.ParseDate(r.Date)
	if err != nil {
		return model.PreAssignedShift{}, fmt.Errorf("pre-assignment row 日期解析失败: %w", err)
	}
	st, ok := model.ParseShiftTime(r.ShiftTimeLabel)
	if !ok {
		return model.PreAssignedShift{}, fmt.Errorf("pre-assignment row 班次标签未知: %q", r.ShiftTimeLabel)
	}
	return model.PreAssignedShift{EmployeeName: r.EmployeeName, Date: date, ShiftTime: st}, nil
}

// SavedScheduleRow 是外部表格中的一行已保存排班记录（§6 Saved schedule row）
// 五个员工姓名列按分配顺序排列，空位留空
type SavedScheduleRow struct {
	ScheduleName string
	SavedAt      string
	Date         string
	WeekdayLabel string
	ShiftTime    string
	Employees    [5]string
}

// FromShift 把一个已物化的 model.Shift 铺平为一行已保存排班记录
func FromShift(scheduleName, savedAt string, shift model.Shift) SavedScheduleRow {
	row := SavedScheduleRow{
		ScheduleName: scheduleName,
		SavedAt:      savedAt,
		Date:         shift.Date.String(),
		WeekdayLabel: shift.Date.Weekday().String(),
		ShiftTime:    string(shift.ShiftTime),
	}
	for i := 0; i < len(row.Employees) && i < len(shift.AssignedEmployees); i++ {
		row.Employees[i] = shift.AssignedEmployees[i]
	}
	return row
}

// ToShift 把已保存排班行还原为 model.Shift，五个姓名列中的空位被去除
func (r SavedScheduleRow) ToShift() (model.Shift, error) {
	date, err := model.ParseDate(r.Date)
	if err != nil {
		return model.Shift{}, fmt.Errorf("saved schedule row 日期解析失败: %w", err)
	}
	st, ok := model.ParseShiftTime(r.ShiftTime)
	if !ok {
		return model.Shift{}, fmt.Errorf("saved schedule row 班次标签未知: %q", r.ShiftTime)
	}
	var assigned []string
	for _, name := range r.Employees {
		if name != "" {
			assigned = append(assigned, name)
		}
	}
	return model.Shift{Date: date, ShiftTime: st, AssignedEmployees: assigned}, nil
}
