// Package handler 提供HTTP请求处理器
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/paiban/shiftcore/internal/config"
	"github.com/paiban/shiftcore/internal/store"
	"github.com/paiban/shiftcore/pkg/errors"
	"github.com/paiban/shiftcore/pkg/logger"
	"github.com/paiban/shiftcore/pkg/model"
	"github.com/paiban/shiftcore/pkg/scheduler/diagnostics"
	"github.com/paiban/shiftcore/pkg/scheduler/relax"
	"github.com/paiban/shiftcore/pkg/scheduler/rules"
	"github.com/paiban/shiftcore/pkg/scheduler/solver"
	"github.com/paiban/shiftcore/pkg/scheduler/validator"
)

// ScheduleHandler 排班处理器，包装求解器、放宽控制器和复核器
type ScheduleHandler struct {
	solver   *solver.Solver
	relax    *relax.Controller
	checker  *validator.Manager
	repo     *store.ScheduleRepository // 为 nil 时不持久化求解结果
	defaults config.SchedulerConfig
}

// NewScheduleHandler 创建排班处理器，repo 非空时每次成功求解都会落库（§6 Saved schedule row）
func NewScheduleHandler(repo *store.ScheduleRepository, defaults config.SchedulerConfig) *ScheduleHandler {
	s := solver.New()
	return &ScheduleHandler{
		solver:   s,
		relax:    relax.New(s),
		checker:  validator.NewManager(),
		repo:     repo,
		defaults: defaults,
	}
}

// NewScheduleHandlerWithoutDB 创建无数据库依赖的排班处理器（用于测试和简单场景）
func NewScheduleHandlerWithoutDB() *ScheduleHandler {
	return NewScheduleHandler(nil, config.SchedulerConfig{})
}

// EmployeeInput 是请求体中的一条员工记录，对应 §6 Employee row
type EmployeeInput struct {
	Name         string `json:"name"`
	IsLeader     bool   `json:"is_leader"`
	CanInject    bool   `json:"can_inject"`
	Availability string `json:"availability"`
	IsFulltime   bool   `json:"is_fulltime"`
}

// RequirementInput 是请求体中的一条需求记录，对应 §6 Requirement row
type RequirementInput struct {
	Weekday             int    `json:"weekday"`
	ShiftTime           string `json:"shift_time"`
	NumPeople           int    `json:"num_people"`
	NumLeaders          int    `json:"num_leaders"`
	NumInjectors        int    `json:"num_injectors"`
	NumLeaderOrInjector int    `json:"num_leader_or_injector"`
}

// TimeOffInput 是请求体中的一条请假记录，对应 §6 Time-off row
type TimeOffInput struct {
	EmployeeName string `json:"employee_name"`
	Date         string `json:"date"`
	ShiftTime    string `json:"shift_time"`
}

// PreAssignmentInput 与 TimeOffInput 形状相同，对应 §6 Pre-assignment row
type PreAssignmentInput struct {
	EmployeeName string `json:"employee_name"`
	Date         string `json:"date"`
	ShiftTime    string `json:"shift_time"`
}

// RelaxationsInput 是求解请求中的放宽开关
type RelaxationsInput struct {
	Requirements bool `json:"requirements"`
	Shifts       bool `json:"shifts"`
	DaysOff      bool `json:"days_off"`
}

// SolveRequest 是 POST /schedule/solve 的请求体
type SolveRequest struct {
	Employees      []EmployeeInput      `json:"employees"`
	Requirements   []RequirementInput   `json:"requirements"`
	TimeOff        []TimeOffInput       `json:"time_off,omitempty"`
	PreAssigned    []PreAssignmentInput `json:"pre_assigned,omitempty"`
	StartDate      string               `json:"start_date"`
	NumWeeks       int                  `json:"num_weeks"`
	MaxTimeSeconds float64              `json:"max_time_seconds,omitempty"`
	Seed           int64                `json:"seed,omitempty"`
	Relax          RelaxationsInput     `json:"relax,omitempty"`
	Retry          bool                 `json:"retry,omitempty"` // 为 true 时走放宽重试而非初次严格求解
	ScheduleName   string               `json:"schedule_name,omitempty"` // 求解成功且配置了仓储时以此名称落库保存；为空时使用 "solve-<时间戳>"
}

// ShiftOutput 是响应体中的一个班次
type ShiftOutput struct {
	Date      string   `json:"date"`
	Weekday   string   `json:"weekday"`
	ShiftTime string   `json:"shift_time"`
	Employees []string `json:"employees"`
}

// DiagnosticsOutput 是响应体中的诊断信息
type DiagnosticsOutput struct {
	Status            string  `json:"status"`
	SolveTimeSeconds  float64 `json:"solve_time_seconds"`
	NumConflicts      int64   `json:"num_conflicts"`
	NumBranches       int64   `json:"num_branches"`
	WallTimeSeconds   float64 `json:"wall_time_seconds"`
	RelaxRequirements bool    `json:"relax_requirements"`
	RelaxShifts       bool    `json:"relax_shifts"`
	RelaxDaysOff      bool    `json:"relax_days_off"`
}

// SolveResponse 是 POST /schedule/solve 的响应体
type SolveResponse struct {
	Success     bool                  `json:"success"`
	Shifts      []ShiftOutput         `json:"shifts,omitempty"`
	Tally       map[string]int        `json:"tally,omitempty"`
	Diagnostics DiagnosticsOutput     `json:"diagnostics"`
	Violations  []validator.Violation `json:"violations,omitempty"`
}

// Solve 处理排班求解请求，支持首次严格求解与放宽重试
func (h *ScheduleHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	in, err := decodeSolveRequest(req)
	if err != nil {
		respondError(w, err)
		return
	}
	h.applyDefaults(&in, req.Retry)

	var schedule *model.Schedule
	var report *diagnostics.Report
	var solveErr error
	if req.Retry {
		schedule, report, solveErr = h.relax.Retry(r.Context(), in, in.Relax)
	} else {
		schedule, report, solveErr = h.solver.Solve(r.Context(), in)
	}
	if solveErr != nil {
		respondError(w, toAppError(solveErr))
		return
	}

	resp := SolveResponse{Diagnostics: diagnosticsToOutput(report)}
	if !report.Succeeded() {
		respondJSON(w, http.StatusOK, resp)
		return
	}

	result := h.checker.Evaluate(*schedule, in)
	resp.Success = true
	resp.Shifts = shiftsToOutput(schedule.Shifts)
	resp.Tally = diagnostics.Tally(*schedule)
	resp.Violations = result.Violations

	if h.repo != nil {
		name := req.ScheduleName
		if name == "" {
			name = "solve-" + schedule.CreatedAt.Format("2006-01-02T15:04:05Z07:00")
		}
		if err := h.repo.Save(r.Context(), name, *schedule); err != nil {
			logger.Error().Err(err).Str("schedule_name", name).Msg("保存排班结果失败，响应仍按求解成功返回")
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

// applyDefaults 用配置中的求解器默认值补全请求里缺失的字段：
// max_time_seconds/seed 为零值时采用配置默认，重试放宽且未显式指定任何放宽开关时采用配置的默认放宽组合
func (h *ScheduleHandler) applyDefaults(in *solver.Input, retry bool) {
	if in.MaxTimeSeconds <= 0 && h.defaults.MaxTimeSeconds > 0 {
		in.MaxTimeSeconds = h.defaults.MaxTimeSeconds
	}
	if in.Seed == 0 && h.defaults.Seed != 0 {
		in.Seed = h.defaults.Seed
	}
	if in.LogVerbosity == 0 && h.defaults.LogVerbosity != 0 {
		in.LogVerbosity = h.defaults.LogVerbosity
	}
	if retry && in.Relax == (solver.Relaxations{}) {
		in.Relax = solver.Relaxations{
			Requirements: h.defaults.DefaultRelaxations.Requirements,
			Shifts:       h.defaults.DefaultRelaxations.Shifts,
			DaysOff:      h.defaults.DefaultRelaxations.DaysOff,
		}
	}
}

// ScoreRequest 是 POST /schedule/score 的请求体：一张已产出的排班表
type ScoreRequest struct {
	Shifts []ShiftOutput `json:"shifts"`
}

// ScoreResponse 是 POST /schedule/score 的响应体
type ScoreResponse struct {
	PreferenceScore int `json:"preference_score"`
}

// Score 计算一张已给定排班表的 preference_score（§4.2 的计分规则：恰好 2 班 +10，1 班 0，3 班及以上 -5）；
// 它与求解器的线性化目标函数不同，后者只奖励恰好 2 班的日子，不扣分
func (h *ScheduleHandler) Score(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	shifts := make([]model.Shift, 0, len(req.Shifts))
	for _, s := range req.Shifts {
		date, err := model.ParseDate(s.Date)
		if err != nil {
			respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "日期解析失败: "+s.Date))
			return
		}
		st, ok := model.ParseShiftTime(s.ShiftTime)
		if !ok {
			respondError(w, errors.New(errors.CodeInvalidInput, "未知班次标签: "+s.ShiftTime))
			return
		}
		shifts = append(shifts, model.Shift{Date: date, ShiftTime: st, AssignedEmployees: s.Employees})
	}

	schedule := model.NewSchedule(shifts)
	respondJSON(w, http.StatusOK, ScoreResponse{PreferenceScore: rules.PreferenceScore(schedule)})
}

func decodeSolveRequest(req SolveRequest) (solver.Input, *errors.AppError) {
	startDate, err := model.ParseDate(req.StartDate)
	if err != nil {
		return solver.Input{}, errors.Wrap(err, errors.CodeInvalidInput, "起始日期解析失败")
	}

	employees := make([]model.Employee, 0, len(req.Employees))
	for _, e := range req.Employees {
		employees = append(employees, model.Employee{
			Name:            e.Name,
			IsLeader:        e.IsLeader,
			CanInject:       e.CanInject,
			IsFulltime:      e.IsFulltime,
			AvailableShifts: model.ParseAvailability(e.Availability),
		})
	}

	requirements := make([]model.ShiftRequirement, 0, len(req.Requirements))
	for _, r := range req.Requirements {
		st, ok := model.ParseShiftTime(r.ShiftTime)
		if !ok {
			continue
		}
		requirements = append(requirements, model.ShiftRequirement{
			Weekday:             model.Weekday(r.Weekday),
			ShiftTime:           st,
			NumPeople:           r.NumPeople,
			NumLeaders:          r.NumLeaders,
			NumInjectors:        r.NumInjectors,
			NumLeaderOrInjector: r.NumLeaderOrInjector,
		})
	}

	timeOff := make([]model.TimeOffRequest, 0, len(req.TimeOff))
	for _, t := range req.TimeOff {
		date, err := model.ParseDate(t.Date)
		if err != nil {
			return solver.Input{}, errors.Wrap(err, errors.CodeInvalidInput, "请假记录日期解析失败: "+t.Date)
		}
		st, ok := model.ParseShiftTime(t.ShiftTime)
		if !ok {
			continue
		}
		timeOff = append(timeOff, model.TimeOffRequest{EmployeeName: t.EmployeeName, Date: date, ShiftTime: st})
	}

	preAssigned := make([]model.PreAssignedShift, 0, len(req.PreAssigned))
	for _, p := range req.PreAssigned {
		date, err := model.ParseDate(p.Date)
		if err != nil {
			return solver.Input{}, errors.Wrap(err, errors.CodeInvalidInput, "预排班记录日期解析失败: "+p.Date)
		}
		st, ok := model.ParseShiftTime(p.ShiftTime)
		if !ok {
			continue
		}
		preAssigned = append(preAssigned, model.PreAssignedShift{EmployeeName: p.EmployeeName, Date: date, ShiftTime: st})
	}

	return solver.Input{
		Employees:      employees,
		Requirements:   requirements,
		TimeOff:        timeOff,
		PreAssigned:    preAssigned,
		StartDate:      startDate,
		NumWeeks:       req.NumWeeks,
		MaxTimeSeconds: req.MaxTimeSeconds,
		Seed:           req.Seed,
		Relax: solver.Relaxations{
			Requirements: req.Relax.Requirements,
			Shifts:       req.Relax.Shifts,
			DaysOff:      req.Relax.DaysOff,
		},
	}, nil
}

func shiftsToOutput(shifts []model.Shift) []ShiftOutput {
	out := make([]ShiftOutput, len(shifts))
	for i, s := range shifts {
		out[i] = ShiftOutput{
			Date:      s.Date.String(),
			Weekday:   s.Date.Weekday().String(),
			ShiftTime: string(s.ShiftTime),
			Employees: s.AssignedEmployees,
		}
	}
	return out
}

func diagnosticsToOutput(report *diagnostics.Report) DiagnosticsOutput {
	return DiagnosticsOutput{
		Status:            string(report.SolverStatus),
		SolveTimeSeconds:  report.SolveTimeSeconds,
		NumConflicts:      report.NumConflicts,
		NumBranches:       report.NumBranches,
		WallTimeSeconds:   report.WallTimeSeconds,
		RelaxRequirements: report.RelaxRequirements,
		RelaxShifts:       report.RelaxShifts,
		RelaxDaysOff:      report.RelaxDaysOff,
	}
}

func toAppError(err error) *errors.AppError {
	if appErr, ok := err.(*errors.AppError); ok {
		return appErr
	}
	return errors.Wrap(err, errors.CodeInternal, "求解失败")
}

// respondJSON 返回JSON响应
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError 返回错误响应
func respondError(w http.ResponseWriter, err *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.HTTPStatus)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"code":    err.Code,
		"message": err.Message,
		"details": err.Details,
	})
}
