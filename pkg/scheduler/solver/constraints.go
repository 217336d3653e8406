package solver

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/shiftcore/pkg/model"
	"github.com/paiban/shiftcore/pkg/scheduler/rules"
)

// addHeadcountConstraints 提交 §4.3(3)：每个有需求的槽位人数必须精确等于 num_people
func (b *modelBuilder) addHeadcountConstraints(x decisionVars, reqByKey map[model.RequirementKey]model.ShiftRequirement) {
	for s, slot := range b.idx.slots {
		req, ok := reqByKey[model.RequirementKey{Weekday: slot.Date.Weekday(), ShiftTime: slot.ShiftTime}]
		if !ok {
			continue
		}
		sum := cpmodel.NewLinearExpr()
		for e := range b.idx.employees {
			sum.Add(x[e][s])
		}
		b.model.AddEquality(sum, cpmodel.NewConstant(int64(req.NumPeople)))
	}
}

// addCapabilityConstraints 提交 §4.3(4)：三项能力下限，放宽时各自独立取 floor(min/2)
func (b *modelBuilder) addCapabilityConstraints(x decisionVars, reqByKey map[model.RequirementKey]model.ShiftRequirement) {
	for s, slot := range b.idx.slots {
		req, ok := reqByKey[model.RequirementKey{Weekday: slot.Date.Weekday(), ShiftTime: slot.ShiftTime}]
		if !ok {
			continue
		}
		b.addCapabilityFloor(x, s, req.NumLeaders, func(e model.Employee) bool { return e.IsLeader })
		b.addCapabilityFloor(x, s, req.NumInjectors, func(e model.Employee) bool { return e.CanInject })
		b.addCapabilityFloor(x, s, req.NumLeaderOrInjector, func(e model.Employee) bool { return e.HasLeaderOrInjector() })
	}
}

func (b *modelBuilder) addCapabilityFloor(x decisionVars, s int, minimum int, has func(model.Employee) bool) {
	floor := minimum
	if b.in.Relax.Requirements {
		floor = minimum / 2
	}
	if floor <= 0 {
		return
	}

	sum := cpmodel.NewLinearExpr()
	pool := 0
	for e, emp := range b.idx.employees {
		if has(emp) {
			sum.Add(x[e][s])
			pool++
		}
	}
	if pool == 0 {
		// 空候选池且下限 > 0：模型按构造不可行（§4.3(4)），不额外特判
		zero := cpmodel.NewConstant(0)
		b.model.AddGreaterOrEqual(zero, cpmodel.NewConstant(int64(floor)))
		return
	}
	b.model.AddGreaterOrEqual(sum, cpmodel.NewConstant(int64(floor)))
}

// addDailyCapConstraints 提交 §4.3(5)：每个员工每天的班次数不超过默认上限 3
func (b *modelBuilder) addDailyCapConstraints(x decisionVars) {
	for e := range b.idx.employees {
		for _, slotIdxs := range b.idx.slotOfDate {
			sum := cpmodel.NewLinearExpr()
			for _, s := range slotIdxs {
				sum.Add(x[e][s])
			}
			b.model.AddLessOrEqual(sum, cpmodel.NewConstant(int64(rules.DefaultDayLimit)))
		}
	}
}

// addFulltimeWeeklyConstraints 提交 §4.3(6)(7)：全职员工每周班次总数与休息天数
func (b *modelBuilder) addFulltimeWeeklyConstraints(x decisionVars) {
	slotsByWeekAndDate := b.slotsByWeek()

	for e, emp := range b.idx.employees {
		if !emp.IsFulltime {
			continue
		}
		for _, week := range b.idx.weeks {
			bucket, ok := slotsByWeekAndDate[week.String()]
			if !ok {
				continue
			}

			weekSum := cpmodel.NewLinearExpr()
			var dayIndicators []cpmodel.BoolVar
			for _, date := range bucket.dateOrder {
				slotIdxs := bucket.byDate[date]
				daySum := cpmodel.NewLinearExpr()
				for _, s := range slotIdxs {
					weekSum.Add(x[e][s])
					daySum.Add(x[e][s])
				}
				y := b.model.NewBoolVar().WithName(fmt.Sprintf("y_e%d_w%s_d%s", e, week, date))
				// y = OR(x[e,s] : s on that date), 编码为 y >= x[e,s] 且 y <= sum x[e,s]
				for _, s := range slotIdxs {
					b.model.AddLessOrEqual(x[e][s], y)
				}
				b.model.AddLessOrEqual(y, daySum)
				dayIndicators = append(dayIndicators, y)
			}

			if b.in.Relax.Shifts {
				b.model.AddGreaterOrEqual(weekSum, cpmodel.NewConstant(8))
				b.model.AddLessOrEqual(weekSum, cpmodel.NewConstant(10))
			} else {
				b.model.AddEquality(weekSum, cpmodel.NewConstant(10))
			}

			daysWorked := cpmodel.NewLinearExpr()
			for _, y := range dayIndicators {
				daysWorked.Add(y)
			}
			limit := int64(5)
			if b.in.Relax.DaysOff {
				limit = 6
			}
			b.model.AddLessOrEqual(daysWorked, cpmodel.NewConstant(limit))
		}
	}
}

// weekBucket 按日期分组一周内的槽位索引，dateOrder 保留日期按槽位首次出现的顺序，
// 使辅助变量的创建顺序与输入顺序一一对应，不随 map 遍历顺序变化
type weekBucket struct {
	dateOrder []string
	byDate    map[string][]int
}

// slotsByWeek 把槽位索引按 (周一, 日期) 两级分组，供全职周负荷约束使用
func (b *modelBuilder) slotsByWeek() map[string]*weekBucket {
	out := make(map[string]*weekBucket)
	for s, slot := range b.idx.slots {
		weekKey := slot.Date.WeekKey().String()
		dateKey := slot.Date.String()
		bucket, ok := out[weekKey]
		if !ok {
			bucket = &weekBucket{byDate: make(map[string][]int)}
			out[weekKey] = bucket
		}
		if _, seen := bucket.byDate[dateKey]; !seen {
			bucket.dateOrder = append(bucket.dateOrder, dateKey)
		}
		bucket.byDate[dateKey] = append(bucket.byDate[dateKey], s)
	}
	return out
}
