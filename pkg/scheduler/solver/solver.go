// Package solver 使用 CP-SAT 风格的约束求解器构造排班决策变量矩阵、
// 提交全部硬约束与线性化目标函数，并把求解结果物化为 model.Schedule
package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	apperrors "github.com/paiban/shiftcore/pkg/errors"
	"github.com/paiban/shiftcore/pkg/logger"
	"github.com/paiban/shiftcore/pkg/model"
	"github.com/paiban/shiftcore/pkg/scheduler/diagnostics"
	"github.com/paiban/shiftcore/pkg/scheduler/template"
)

// DefaultMaxTimeSeconds 是 §4.3 中求解器的默认最长求解时限
const DefaultMaxTimeSeconds = 300.0

// DefaultSeed 是求解器未指定种子时使用的固定种子，保证相同输入产生相同输出
const DefaultSeed = 42

// Relaxations 是三个相互独立的放宽开关，由调用方在不可行后选择性开启
type Relaxations struct {
	Requirements bool // 放宽人数能力下限
	Shifts       bool // 放宽全职员工周班次数为 [8,10]
	DaysOff      bool // 放宽全职员工每周休息天数下限
}

// Input 是一次求解调用的全部输入
type Input struct {
	Employees      []model.Employee
	Requirements   []model.ShiftRequirement
	TimeOff        []model.TimeOffRequest
	PreAssigned    []model.PreAssignedShift
	StartDate      model.Date
	NumWeeks       int
	MaxTimeSeconds float64
	LogVerbosity   int
	Seed           int64
	Relax          Relaxations
}

// Solver 把输入编译为 CP-SAT 模型并求解
type Solver struct {
	logger *logger.SchedulerLogger
}

// New 创建一个新的求解器
func New() *Solver {
	return &Solver{logger: logger.NewSchedulerLogger()}
}

// Name 返回求解器名称
func (s *Solver) Name() string {
	return "CpSatSolver"
}

// index 是求解过程中使用的内部索引结构，随求解调用的结束而失效
type index struct {
	slots      []template.Slot
	employees  []model.Employee
	nameToEmp  map[string]int
	slotOfDate map[string][]int // date string -> slot indices that day
	dateOrder  []string         // slotOfDate 的键，按槽位首次出现的顺序去重；
	// 建模阶段按此顺序创建辅助变量，使模型 proto 的变量编号与输入顺序一一对应，
	// 不随 map 的随机遍历顺序变化（同输入同 seed 必须产生同一张排班表）
	weeks []model.Date // 每个模板窗口内出现过的周一（去重）
}

// Solve 编译并求解一次排班请求。三类致命输入错误（InvalidStart、
// UnknownEmployeeReference、InconsistentRequirement）通过 error 返回；
// Infeasible 与 Unknown 通过 diagnostics.Report 返回，不视为 Go 错误
func (s *Solver) Solve(ctx context.Context, in Input) (*model.Schedule, *diagnostics.Report, error) {
	if in.MaxTimeSeconds <= 0 {
		in.MaxTimeSeconds = DefaultMaxTimeSeconds
	}
	if in.Seed == 0 {
		in.Seed = DefaultSeed
	}

	slots, err := template.Build(in.StartDate, in.NumWeeks)
	if err != nil {
		return nil, nil, apperrors.InvalidStart(in.StartDate.String())
	}

	idx, err := buildIndex(slots, in.Employees)
	if err != nil {
		return nil, nil, err
	}
	if err := validateReferences(in, idx); err != nil {
		return nil, nil, err
	}
	for _, r := range in.Requirements {
		if err := r.Validate(); err != nil {
			return nil, nil, apperrors.InconsistentRequirement(err.Error())
		}
		if w := r.Warning(); w != "" {
			s.logger.ConstraintViolation("requirement-warning", w)
		}
	}

	s.logger.SolveStart(len(in.Employees), len(slots), in.MaxTimeSeconds)
	startedAt := time.Now()

	builder := newModelBuilder(idx, in)
	x := builder.addDecisionVariables()
	builder.addAvailabilityConstraints(x)
	if err := builder.addPreAssignmentConstraints(x); err != nil {
		return nil, nil, err
	}
	reqByKey := indexRequirements(in.Requirements)
	builder.addHeadcountConstraints(x, reqByKey)
	builder.addCapabilityConstraints(x, reqByKey)
	builder.addDailyCapConstraints(x)
	builder.addFulltimeWeeklyConstraints(x)
	bonus := builder.addObjective(x)
	_ = bonus

	cpModel, err := builder.model.Model()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to instantiate CP model: %w", err)
	}

	params, err := cpmodel.NewSatParameters(fmt.Sprintf(
		"max_time_in_seconds:%f,random_seed:%d,log_search_progress:%t",
		in.MaxTimeSeconds, in.Seed, in.LogVerbosity > 0,
	))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build solver parameters: %w", err)
	}

	response, err := cpmodel.SolveCpModelWithSatParameters(cpModel, params)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to solve CP model: %w", err)
	}

	report := &diagnostics.Report{
		SolverStatus:      statusOf(response),
		SolveTimeSeconds:  time.Since(startedAt).Seconds(),
		NumConflicts:      response.GetNumConflicts(),
		NumBranches:       response.GetNumBranches(),
		WallTimeSeconds:   response.GetWallTime(),
		RelaxRequirements: in.Relax.Requirements,
		RelaxShifts:       in.Relax.Shifts,
		RelaxDaysOff:      in.Relax.DaysOff,
	}

	s.logger.SolveStatus(string(report.SolverStatus), time.Duration(report.WallTimeSeconds*float64(time.Second)), report.NumConflicts, report.NumBranches)

	if !report.Succeeded() {
		if report.SolverStatus == diagnostics.StatusInfeasible {
			s.logger.Infeasible(in.Relax.Requirements, in.Relax.Shifts, in.Relax.DaysOff)
		} else {
			s.logger.Unknown(in.MaxTimeSeconds)
		}
		return nil, report, nil
	}

	report.ValidCount = 1
	schedule := materialize(idx, x, response)
	return &schedule, report, nil
}

func statusOf(response *cpmodel.CpSolverResponse) diagnostics.Status {
	switch response.GetStatus().String() {
	case "OPTIMAL":
		return diagnostics.StatusOptimal
	case "FEASIBLE":
		return diagnostics.StatusFeasible
	case "INFEASIBLE":
		return diagnostics.StatusInfeasible
	default:
		return diagnostics.StatusUnknown
	}
}

func buildIndex(slots []template.Slot, employees []model.Employee) (*index, error) {
	idx := &index{
		slots:      slots,
		employees:  employees,
		nameToEmp:  make(map[string]int, len(employees)),
		slotOfDate: make(map[string][]int),
	}
	for i, e := range employees {
		idx.nameToEmp[e.Name] = i
	}
	seenWeek := make(map[string]bool)
	seenDate := make(map[string]bool)
	for si, slot := range slots {
		dateKey := slot.Date.String()
		if !seenDate[dateKey] {
			seenDate[dateKey] = true
			idx.dateOrder = append(idx.dateOrder, dateKey)
		}
		idx.slotOfDate[dateKey] = append(idx.slotOfDate[dateKey], si)
		wk := slot.Date.WeekKey()
		if !seenWeek[wk.String()] {
			seenWeek[wk.String()] = true
			idx.weeks = append(idx.weeks, wk)
		}
	}
	return idx, nil
}

func validateReferences(in Input, idx *index) error {
	for _, t := range in.TimeOff {
		if _, ok := idx.nameToEmp[t.EmployeeName]; !ok {
			return apperrors.UnknownEmployeeReference(t.EmployeeName)
		}
	}
	for _, p := range in.PreAssigned {
		if _, ok := idx.nameToEmp[p.EmployeeName]; !ok {
			return apperrors.UnknownEmployeeReference(p.EmployeeName)
		}
	}
	return nil
}

func indexRequirements(reqs []model.ShiftRequirement) map[model.RequirementKey]model.ShiftRequirement {
	out := make(map[model.RequirementKey]model.ShiftRequirement, len(reqs))
	for _, r := range reqs {
		out[r.Key()] = r
	}
	return out
}
