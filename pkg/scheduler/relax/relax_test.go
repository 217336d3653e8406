package relax

import (
	"context"
	"testing"

	"github.com/paiban/shiftcore/pkg/model"
	"github.com/paiban/shiftcore/pkg/scheduler/diagnostics"
	"github.com/paiban/shiftcore/pkg/scheduler/solver"
)

func allAvailable() map[model.Weekday]map[model.ShiftTime]bool {
	avail := make(map[model.Weekday]map[model.ShiftTime]bool)
	for wd := model.Monday; wd <= model.Sunday; wd++ {
		avail[wd] = map[model.ShiftTime]bool{model.Morning: true, model.Midday: true, model.Evening: true}
	}
	return avail
}

// TestRetry_放宽后可行 复现 §8 S4：严格求解不可行，单次放宽重试后可行
func TestRetry_放宽后可行(t *testing.T) {
	var employees []model.Employee
	for _, name := range []string{"E1", "E2", "E3", "E4"} {
		employees = append(employees, model.Employee{Name: name, AvailableShifts: allAvailable()})
	}
	var requirements []model.ShiftRequirement
	for wd := model.Monday; wd <= model.Sunday; wd++ {
		for _, st := range model.ShiftTimes {
			requirements = append(requirements, model.ShiftRequirement{Weekday: wd, ShiftTime: st, NumPeople: 2, NumLeaders: 1})
		}
	}
	in := solver.Input{
		Employees:    employees,
		Requirements: requirements,
		StartDate:    model.NewDate(2025, 1, 6),
		NumWeeks:     1,
	}

	s := solver.New()
	_, strictReport, err := s.Solve(context.Background(), in)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if strictReport.SolverStatus != diagnostics.StatusInfeasible {
		t.Fatalf("严格求解应当不可行, got status=%s", strictReport.SolverStatus)
	}

	controller := New(s)
	_, retryReport, err := controller.Retry(context.Background(), in, solver.Relaxations{Requirements: true})
	if err != nil {
		t.Fatalf("Retry() error = %v", err)
	}
	if !retryReport.Succeeded() {
		t.Fatalf("放宽需求后重试应当可行, got status=%s", retryReport.SolverStatus)
	}
}

// TestRetry_不会自动升级放宽 验证控制器只按调用方指定的组合重试一次，
// 不带放宽开关的重试应复现与严格求解相同的不可行结果
func TestRetry_不会自动升级放宽(t *testing.T) {
	var employees []model.Employee
	for _, name := range []string{"E1", "E2", "E3", "E4"} {
		employees = append(employees, model.Employee{Name: name, AvailableShifts: allAvailable()})
	}
	var requirements []model.ShiftRequirement
	for wd := model.Monday; wd <= model.Sunday; wd++ {
		for _, st := range model.ShiftTimes {
			requirements = append(requirements, model.ShiftRequirement{Weekday: wd, ShiftTime: st, NumPeople: 2, NumLeaders: 1})
		}
	}
	in := solver.Input{
		Employees:    employees,
		Requirements: requirements,
		StartDate:    model.NewDate(2025, 1, 6),
		NumWeeks:     1,
	}

	s := solver.New()
	controller := New(s)
	_, report, err := controller.Retry(context.Background(), in, solver.Relaxations{})
	if err != nil {
		t.Fatalf("Retry() error = %v", err)
	}
	if report.SolverStatus != diagnostics.StatusInfeasible {
		t.Fatalf("未开启任何放宽开关的重试应仍不可行, got status=%s", report.SolverStatus)
	}
}
