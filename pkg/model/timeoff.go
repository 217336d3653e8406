package model

// TimeOffRequest 代表某员工在某 (日期, 班次) 上的请假记录
// 全天请假由调用方在解码阶段展开为三条记录，核心只处理单个班次的记录
type TimeOffRequest struct {
	EmployeeName string
	Date         Date
	ShiftTime    ShiftTime
}

// Matches 检查该请假记录是否覆盖指定的员工/日期/班次
func (t TimeOffRequest) Matches(employeeName string, date Date, st ShiftTime) bool {
	return t.EmployeeName == employeeName && t.Date.Equal(date) && t.ShiftTime == st
}

// PreAssignedShift 代表求解前已经确定、必须出现在结果中的指派
type PreAssignedShift struct {
	EmployeeName string
	Date         Date
	ShiftTime    ShiftTime
}
