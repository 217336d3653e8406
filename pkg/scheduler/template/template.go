// Package template 负责生成排班窗口内的空槽位列表
package template

import (
	"fmt"

	"github.com/paiban/shiftcore/pkg/model"
)

// Slot 是模板窗口内的一个空 (date, shift_time) 槽位
type Slot struct {
	Date      model.Date
	ShiftTime model.ShiftTime
}

// Build 根据起始日期（必须是周一）和周数，生成按 (周, 星期, 班次) 规范顺序排列的槽位表
// 班次固定按 Morning, Midday, Evening 顺序迭代
func Build(startDate model.Date, numWeeks int) ([]Slot, error) {
	if startDate.Weekday() != model.Monday {
		return nil, fmt.Errorf("invalid start: %s is not a Monday", startDate)
	}
	if numWeeks <= 0 {
		return nil, fmt.Errorf("invalid start: num_weeks must be positive, got %d", numWeeks)
	}

	slots := make([]Slot, 0, numWeeks*7*len(model.ShiftTimes))
	for week := 0; week < numWeeks; week++ {
		for day := 0; day < 7; day++ {
			date := startDate.AddDays(week*7 + day)
			for _, st := range model.ShiftTimes {
				slots = append(slots, Slot{Date: date, ShiftTime: st})
			}
		}
	}
	return slots, nil
}
