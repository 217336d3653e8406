// Package relax 实现求解不可行后的放宽重试协议：调用方在严格求解失败后，
// 选择性地开启三个独立的放宽开关并重新求解一次；控制器本身从不自动升级放宽
package relax

import (
	"context"

	"github.com/paiban/shiftcore/pkg/model"
	"github.com/paiban/shiftcore/pkg/scheduler/diagnostics"
	"github.com/paiban/shiftcore/pkg/scheduler/solver"
)

// Controller 持有一个求解器，负责按用户选择的放宽组合重新发起求解
type Controller struct {
	solver *solver.Solver
}

// New 创建放宽控制器
func New(s *solver.Solver) *Controller {
	return &Controller{solver: s}
}

// Retry 用给定的放宽组合重新求解一次。不会自动尝试其他组合，也不会递归放宽
func (c *Controller) Retry(ctx context.Context, in solver.Input, relax solver.Relaxations) (*model.Schedule, *diagnostics.Report, error) {
	in.Relax = relax
	return c.solver.Solve(ctx, in)
}
