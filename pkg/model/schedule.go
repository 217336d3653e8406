package model

// Schedule 是一次求解产出的有序班次集合，覆盖模板窗口内的全部槽位
// Schedule 一旦产出即不可变；所有派生查询都不修改底层数据
type Schedule struct {
	BaseModel
	Shifts []Shift
}

// NewSchedule 包装一组已排序的 Shift 为 Schedule
func NewSchedule(shifts []Shift) Schedule {
	return Schedule{BaseModel: NewBaseModel(), Shifts: shifts}
}

// GetShift 按 (date, shift_time) 查找班次；模板窗口内的槽位总是存在
func (s Schedule) GetShift(date Date, st ShiftTime) (Shift, bool) {
	for _, shift := range s.Shifts {
		if shift.Date.Equal(date) && shift.ShiftTime == st {
			return shift, true
		}
	}
	return Shift{}, false
}

// GetEmployeeShifts 返回某员工出现过的全部班次，按 Schedule 中的原始顺序排列
func (s Schedule) GetEmployeeShifts(name string) []Shift {
	var out []Shift
	for _, shift := range s.Shifts {
		if shift.HasEmployee(name) {
			out = append(out, shift)
		}
	}
	return out
}
