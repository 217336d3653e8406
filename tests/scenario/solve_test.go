// Package scenario 把 spec.md §8 的端到端场景 S2、S3 在 HTTP 层重放一遍，
// 与 pkg/scheduler/solver 包内对 S1-S6 的直接调用级测试互补
package scenario

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/paiban/shiftcore/internal/handler"
)

func doSolve(t *testing.T, h *handler.ScheduleHandler, req handler.SolveRequest) handler.SolveResponse {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("序列化请求失败: %v", err)
	}
	rec := httptest.NewRecorder()
	h.Solve(rec, httptest.NewRequest(http.MethodPost, "/api/v1/schedule/solve", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("HTTP 状态码 = %d, body=%s", rec.Code, rec.Body.String())
	}
	var resp handler.SolveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	return resp
}

// TestScenario_S2_预排班钉住 对应 spec.md §8 S2：5 名兼职员工，
// E1 被预排到周一早班，结果中周一早班必须包含 E1
func TestScenario_S2_预排班钉住(t *testing.T) {
	h := handler.NewScheduleHandlerWithoutDB()

	var employees []handler.EmployeeInput
	for _, name := range []string{"E1", "E2", "E3", "E4", "E5"} {
		employees = append(employees, handler.EmployeeInput{Name: name, Availability: "Morning,Midday,Evening"})
	}
	var requirements []handler.RequirementInput
	for wd := 1; wd <= 7; wd++ {
		for _, st := range []string{"Morning", "Midday", "Evening"} {
			requirements = append(requirements, handler.RequirementInput{Weekday: wd, ShiftTime: st, NumPeople: 2})
		}
	}

	resp := doSolve(t, h, handler.SolveRequest{
		Employees:    employees,
		Requirements: requirements,
		PreAssigned:  []handler.PreAssignmentInput{{EmployeeName: "E1", Date: "2025-01-06", ShiftTime: "Morning"}},
		StartDate:    "2025-01-06",
		NumWeeks:     1,
	})
	if !resp.Success {
		t.Fatalf("S2 应当可行, diagnostics=%+v", resp.Diagnostics)
	}

	found := false
	for _, shift := range resp.Shifts {
		if shift.Date == "2025-01-06" && shift.ShiftTime == "Morning" {
			for _, name := range shift.Employees {
				if name == "E1" {
					found = true
				}
			}
		}
	}
	if !found {
		t.Fatalf("S2 周一早班应包含预排班员工 E1, shifts=%+v", resp.Shifts)
	}
}

// TestScenario_S3_请假与预排班冲突应不可行 对应 spec.md §8 S3：
// 同一 (员工, 日期, 班次) 同时出现在预排班与请假中，严格求解必须不可行
func TestScenario_S3_请假与预排班冲突应不可行(t *testing.T) {
	h := handler.NewScheduleHandlerWithoutDB()

	var employees []handler.EmployeeInput
	for _, name := range []string{"E1", "E2", "E3", "E4", "E5"} {
		employees = append(employees, handler.EmployeeInput{Name: name, Availability: "Morning,Midday,Evening"})
	}
	var requirements []handler.RequirementInput
	for wd := 1; wd <= 7; wd++ {
		for _, st := range []string{"Morning", "Midday", "Evening"} {
			requirements = append(requirements, handler.RequirementInput{Weekday: wd, ShiftTime: st, NumPeople: 2})
		}
	}

	resp := doSolve(t, h, handler.SolveRequest{
		Employees:    employees,
		Requirements: requirements,
		PreAssigned:  []handler.PreAssignmentInput{{EmployeeName: "E1", Date: "2025-01-06", ShiftTime: "Morning"}},
		TimeOff:      []handler.TimeOffInput{{EmployeeName: "E1", Date: "2025-01-06", ShiftTime: "Morning"}},
		StartDate:    "2025-01-06",
		NumWeeks:     1,
	})
	if resp.Success {
		t.Fatalf("S3 预排班与请假冲突应当不可行")
	}
	if resp.Diagnostics.Status != "Infeasible" {
		t.Fatalf("S3 诊断状态应为 Infeasible, got %s", resp.Diagnostics.Status)
	}
}
