package diagnostics

import (
	"testing"

	"github.com/paiban/shiftcore/pkg/model"
)

func TestReport_Succeeded(t *testing.T) {
	cases := []struct {
		status Status
		want   bool
	}{
		{StatusOptimal, true},
		{StatusFeasible, true},
		{StatusInfeasible, false},
		{StatusUnknown, false},
	}
	for _, c := range cases {
		report := Report{SolverStatus: c.status}
		if got := report.Succeeded(); got != c.want {
			t.Fatalf("Succeeded() for %s = %v, want %v", c.status, got, c.want)
		}
	}
}

func TestTally(t *testing.T) {
	monday := model.NewDate(2025, 1, 6)
	schedule := model.NewSchedule([]model.Shift{
		{Date: monday, ShiftTime: model.Morning, AssignedEmployees: []string{"A", "B"}},
		{Date: monday, ShiftTime: model.Midday, AssignedEmployees: []string{"A"}},
	})

	tally := Tally(schedule)
	if tally["A"] != 2 || tally["B"] != 1 {
		t.Fatalf("Tally() = %+v, want A=2 B=1", tally)
	}
}

func TestFormatTally(t *testing.T) {
	monday := model.NewDate(2025, 1, 6)
	schedule := model.NewSchedule([]model.Shift{
		{Date: monday, ShiftTime: model.Morning, AssignedEmployees: []string{"B", "A"}},
	})

	got := FormatTally(schedule)
	want := "A: 1 班\nB: 1 班\n"
	if got != want {
		t.Fatalf("FormatTally() = %q, want %q（姓名应按字典序排列）", got, want)
	}
}
