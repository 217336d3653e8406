// ShiftCore CLI
// 读取 YAML 夹具文件，直接调用求解器核心，不经过 HTTP 层

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/paiban/shiftcore/internal/config"
	"github.com/paiban/shiftcore/pkg/model"
	"github.com/paiban/shiftcore/pkg/scheduler/diagnostics"
	"github.com/paiban/shiftcore/pkg/scheduler/relax"
	"github.com/paiban/shiftcore/pkg/scheduler/rules"
	"github.com/paiban/shiftcore/pkg/scheduler/solver"
	"github.com/paiban/shiftcore/pkg/scheduler/validator"
)

// Fixture 是 YAML 夹具文件的顶层结构，字段形状对应 §6 描述的外部表格行
type Fixture struct {
	StartDate      string             `yaml:"start_date"`
	NumWeeks       int                `yaml:"num_weeks"`
	MaxTimeSeconds float64            `yaml:"max_time_seconds"`
	Seed           int64              `yaml:"seed"`
	Employees      []EmployeeFixture  `yaml:"employees"`
	Requirements   []RequirementEntry `yaml:"requirements"`
	TimeOff        []TimeOffEntry     `yaml:"time_off"`
	PreAssigned    []TimeOffEntry     `yaml:"pre_assigned"`
	Relax          RelaxFixture       `yaml:"relax"`
}

// EmployeeFixture 对应 §6 Employee row
type EmployeeFixture struct {
	Name         string `yaml:"name"`
	IsLeader     bool   `yaml:"is_leader"`
	CanInject    bool   `yaml:"can_inject"`
	Availability string `yaml:"availability"`
	IsFulltime   bool   `yaml:"is_fulltime"`
}

// RequirementEntry 对应 §6 Requirement row
type RequirementEntry struct {
	Weekday             int    `yaml:"weekday"`
	ShiftTime           string `yaml:"shift_time"`
	NumPeople           int    `yaml:"num_people"`
	NumLeaders          int    `yaml:"num_leaders"`
	NumInjectors        int    `yaml:"num_injectors"`
	NumLeaderOrInjector int    `yaml:"num_leader_or_injector"`
}

// TimeOffEntry 对应 §6 Time-off / Pre-assignment row（两者形状相同）
type TimeOffEntry struct {
	EmployeeName string `yaml:"employee_name"`
	Date         string `yaml:"date"`
	ShiftTime    string `yaml:"shift_time"`
}

// RelaxFixture 对应求解请求中的放宽开关
type RelaxFixture struct {
	Requirements bool `yaml:"requirements"`
	Shifts       bool `yaml:"shifts"`
	DaysOff      bool `yaml:"days_off"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "shiftcore",
		Short: "ShiftCore 排班核心命令行工具",
		Long:  `从 YAML 夹具文件读取排班输入，调用 CP-SAT 求解器核心并打印结果。`,
	}

	rootCmd.AddCommand(solveCmd(cfg.Scheduler))
	rootCmd.AddCommand(scoreCmd(cfg.Scheduler))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func solveCmd(defaults config.SchedulerConfig) *cobra.Command {
	var retry bool
	cmd := &cobra.Command{
		Use:   "solve <fixture.yaml>",
		Short: "求解一次排班请求",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fixture, err := loadFixture(args[0])
			if err != nil {
				return err
			}

			in, err := fixtureToInput(fixture, defaults)
			if err != nil {
				return err
			}

			s := solver.New()

			var schedule *model.Schedule
			var report *diagnostics.Report
			if retry {
				schedule, report, err = relax.New(s).Retry(context.Background(), in, in.Relax)
			} else {
				schedule, report, err = s.Solve(context.Background(), in)
			}
			if err != nil {
				return fmt.Errorf("求解失败: %w", err)
			}

			fmt.Printf("状态: %s (耗时 %.2fs, 冲突 %d, 分支 %d)\n",
				report.SolverStatus, report.SolveTimeSeconds, report.NumConflicts, report.NumBranches)

			if !report.Succeeded() {
				fmt.Println("未产出可行排班，请考虑使用 --retry 并在夹具文件中开启放宽开关。")
				return nil
			}

			result := validator.NewManager().Evaluate(*schedule, in)
			for _, shift := range schedule.Shifts {
				fmt.Printf("%s %-6s %-8s %v\n", shift.Date, shift.Date.Weekday(), shift.ShiftTime, shift.AssignedEmployees)
			}
			fmt.Println()
			fmt.Print(diagnostics.FormatTally(*schedule))
			fmt.Printf("preference_score: %d\n", rules.PreferenceScore(*schedule))
			if !result.IsValid {
				fmt.Printf("\n复核发现 %d 条不变式违反：\n", len(result.Violations))
				for _, v := range result.Violations {
					fmt.Printf("  [%s] %s\n", v.Check, v.Message)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&retry, "retry", false, "使用夹具文件中的放宽开关重新求解一次")
	return cmd
}

func scoreCmd(defaults config.SchedulerConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "score <fixture.yaml>",
		Short: "对夹具文件中已给定的排班表计算 preference_score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fixture, err := loadFixture(args[0])
			if err != nil {
				return err
			}
			in, err := fixtureToInput(fixture, defaults)
			if err != nil {
				return err
			}
			// score 命令把夹具的 pre_assigned 列表当作已给定的排班表来计分，
			// 不经过求解器；这便于离线核对外部系统产出的排班表
			shifts := make([]model.Shift, 0, len(in.PreAssigned))
			byKey := make(map[string][]string)
			order := make([]model.PreAssignedShift, 0)
			for _, p := range in.PreAssigned {
				key := p.Date.String() + "|" + string(p.ShiftTime)
				if _, seen := byKey[key]; !seen {
					order = append(order, p)
				}
				byKey[key] = append(byKey[key], p.EmployeeName)
			}
			for _, p := range order {
				key := p.Date.String() + "|" + string(p.ShiftTime)
				shifts = append(shifts, model.Shift{Date: p.Date, ShiftTime: p.ShiftTime, AssignedEmployees: byKey[key]})
			}
			schedule := model.NewSchedule(shifts)
			fmt.Printf("preference_score: %d\n", rules.PreferenceScore(schedule))
			return nil
		},
	}
}

func loadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("读取夹具文件失败: %w", err)
	}
	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return Fixture{}, fmt.Errorf("解析夹具文件失败: %w", err)
	}
	return fixture, nil
}

// fixtureToInput 把夹具内容转成求解输入；max_time_seconds/seed 在夹具中留空（零值）时
// 采用 defaults（来自 internal/config 的环境变量/CONFIG_FILE 配置）而非求解器内置常量
func fixtureToInput(f Fixture, defaults config.SchedulerConfig) (solver.Input, error) {
	startDate, err := model.ParseDate(f.StartDate)
	if err != nil {
		return solver.Input{}, fmt.Errorf("起始日期解析失败: %w", err)
	}

	maxTimeSeconds := f.MaxTimeSeconds
	if maxTimeSeconds <= 0 {
		maxTimeSeconds = defaults.MaxTimeSeconds
	}
	seed := f.Seed
	if seed == 0 {
		seed = defaults.Seed
	}

	employees := make([]model.Employee, 0, len(f.Employees))
	for _, e := range f.Employees {
		employees = append(employees, model.Employee{
			Name:            e.Name,
			IsLeader:        e.IsLeader,
			CanInject:       e.CanInject,
			IsFulltime:      e.IsFulltime,
			AvailableShifts: model.ParseAvailability(e.Availability),
		})
	}

	requirements := make([]model.ShiftRequirement, 0, len(f.Requirements))
	for _, r := range f.Requirements {
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

	timeOff, err := entriesToTimeOff(f.TimeOff)
	if err != nil {
		return solver.Input{}, err
	}
	preAssigned, err := entriesToPreAssigned(f.PreAssigned)
	if err != nil {
		return solver.Input{}, err
	}

	return solver.Input{
		Employees:      employees,
		Requirements:   requirements,
		TimeOff:        timeOff,
		PreAssigned:    preAssigned,
		StartDate:      startDate,
		NumWeeks:       f.NumWeeks,
		MaxTimeSeconds: maxTimeSeconds,
		Seed:           seed,
		Relax: solver.Relaxations{
			Requirements: f.Relax.Requirements,
			Shifts:       f.Relax.Shifts,
			DaysOff:      f.Relax.DaysOff,
		},
	}, nil
}

func entriesToTimeOff(entries []TimeOffEntry) ([]model.TimeOffRequest, error) {
	out := make([]model.TimeOffRequest, 0, len(entries))
	for _, e := range entries {
		date, err := model.ParseDate(e.Date)
		if err != nil {
			return nil, fmt.Errorf("请假记录日期解析失败: %w", err)
		}
		st, ok := model.ParseShiftTime(e.ShiftTime)
		if !ok {
			continue
		}
		out = append(out, model.TimeOffRequest{EmployeeName: e.EmployeeName, Date: date, ShiftTime: st})
	}
	return out, nil
}

func entriesToPreAssigned(entries []TimeOffEntry) ([]model.PreAssignedShift, error) {
	out := make([]model.PreAssignedShift, 0, len(entries))
	for _, e := range entries {
		date, err := model.ParseDate(e.Date)
		if err != nil {
			return nil, fmt.Errorf("预排班记录日期解析失败: %w", err)
		}
		st, ok := model.ParseShiftTime(e.ShiftTime)
		if !ok {
			continue
		}
		out = append(out, model.PreAssignedShift{EmployeeName: e.EmployeeName, Date: date, ShiftTime: st})
	}
	return out, nil
}
