package solver

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
)

// addObjective 提交 §4.3 目标函数：为每个至少有两个槽位的 (employee, date)
// 组合引入奖励布尔 b[e,d]，并用两条线性约束把它与当天班次数 D 关联：
//
//	D >= 2*b            (除非当天至少两班，否则强制 b = 0)
//	D <= 2 + (n-2)*(1-b)  (当 b = 1 时，D <= 2)
//
// 最大化 10 * sum(b)。这是对「恰好两班」的线性化近似，见设计文档中关于该
// 编码在每日上限 3 的约束下仍然是 tight 的说明
func (b *modelBuilder) addObjective(x decisionVars) []cpmodel.BoolVar {
	var bonuses []cpmodel.BoolVar
	objective := cpmodel.NewLinearExpr()

	for e := range b.idx.employees {
		for _, date := range b.idx.dateOrder {
			slotIdxs := b.idx.slotOfDate[date]
			n := len(slotIdxs)
			if n < 2 {
				continue
			}

			daySum := cpmodel.NewLinearExpr()
			for _, s := range slotIdxs {
				daySum.Add(x[e][s])
			}

			bonus := b.model.NewBoolVar().WithName(fmt.Sprintf("bonus_e%d_%s", e, date))

			// D >= 2*bonus
			twoBonus := cpmodel.NewLinearExpr()
			twoBonus.AddTerm(bonus, 2)
			b.model.AddGreaterOrEqual(daySum, twoBonus)

			// D <= 2 + (n-2)*(1-bonus)  <=>  D + (n-2)*bonus <= n
			lhs := cpmodel.NewLinearExpr()
			for _, s := range slotIdxs {
				lhs.Add(x[e][s])
			}
			lhs.AddTerm(bonus, int64(n-2))
			b.model.AddLessOrEqual(lhs, cpmodel.NewConstant(int64(n)))

			bonuses = append(bonuses, bonus)
			objective.AddTerm(bonus, 10)
		}
	}

	b.model.Maximize(objective)
	return bonuses
}
