// Package e2e 验证从求解到评分的完整工作流
package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/paiban/shiftcore/internal/handler"
	"github.com/paiban/shiftcore/pkg/model"
	"github.com/paiban/shiftcore/pkg/scheduler/rules"
)

// TestFullSchedulingWorkflow 求解一次排班，再把产出的排班表送去评分，
// 验证两个端点之间的数据能够往返
func TestFullSchedulingWorkflow(t *testing.T) {
	h := handler.NewScheduleHandlerWithoutDB()

	var requirements []handler.RequirementInput
	for wd := 1; wd <= 7; wd++ {
		for _, st := range []string{"Morning", "Midday", "Evening"} {
			requirements = append(requirements, handler.RequirementInput{Weekday: wd, ShiftTime: st, NumPeople: 2})
		}
	}

	solveReq := handler.SolveRequest{
		Employees: []handler.EmployeeInput{
			{Name: "E1", Availability: "Morning,Midday,Evening"},
			{Name: "E2", Availability: "Morning,Midday,Evening"},
			{Name: "E3", Availability: "Morning,Midday,Evening"},
		},
		Requirements: requirements,
		StartDate:    "2025-01-06",
		NumWeeks:     1,
	}
	body, _ := json.Marshal(solveReq)

	solveHTTPReq := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/solve", bytes.NewReader(body))
	solveRec := httptest.NewRecorder()
	h.Solve(solveRec, solveHTTPReq)

	if solveRec.Code != http.StatusOK {
		t.Fatalf("solve 状态码 = %d, body=%s", solveRec.Code, solveRec.Body.String())
	}
	var solveResp handler.SolveResponse
	if err := json.Unmarshal(solveRec.Body.Bytes(), &solveResp); err != nil {
		t.Fatalf("解析 solve 响应失败: %v", err)
	}
	if !solveResp.Success {
		t.Fatalf("求解应当可行, diagnostics=%+v", solveResp.Diagnostics)
	}
	if len(solveResp.Violations) != 0 {
		t.Fatalf("求解结果不应触发任何复核违反, got %+v", solveResp.Violations)
	}

	scoreReq := handler.ScoreRequest{Shifts: solveResp.Shifts}
	scoreBody, _ := json.Marshal(scoreReq)

	scoreHTTPReq := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/score", bytes.NewReader(scoreBody))
	scoreRec := httptest.NewRecorder()
	h.Score(scoreRec, scoreHTTPReq)

	if scoreRec.Code != http.StatusOK {
		t.Fatalf("score 状态码 = %d, body=%s", scoreRec.Code, scoreRec.Body.String())
	}
	var scoreResp handler.ScoreResponse
	if err := json.Unmarshal(scoreRec.Body.Bytes(), &scoreResp); err != nil {
		t.Fatalf("解析 score 响应失败: %v", err)
	}

	want := expectedScore(solveResp.Shifts)
	if scoreResp.PreferenceScore != want {
		t.Fatalf("score 端点应与求解响应的班表重新计分一致, got %d want %d", scoreResp.PreferenceScore, want)
	}
}

// expectedScore 独立于 HTTP 层，直接用 solve 响应铺平出的班次重算一遍
// preference_score，作为 /score 端点的交叉校验基准
func expectedScore(shifts []handler.ShiftOutput) int {
	out := make([]model.Shift, 0, len(shifts))
	for _, s := range shifts {
		date, _ := model.ParseDate(s.Date)
		st, _ := model.ParseShiftTime(s.ShiftTime)
		out = append(out, model.Shift{Date: date, ShiftTime: st, AssignedEmployees: s.Employees})
	}
	return rules.PreferenceScore(model.NewSchedule(out))
}

// TestFullSchedulingWorkflow_放宽重试 求解一个严格不可行的请求，
// 确认 retry=true 并开启放宽开关后整条链路能产出可行排班
func TestFullSchedulingWorkflow_放宽重试(t *testing.T) {
	h := handler.NewScheduleHandlerWithoutDB()

	requirements := []handler.RequirementInput{
		{Weekday: 1, ShiftTime: "Morning", NumPeople: 2, NumLeaders: 1},
	}
	employees := []handler.EmployeeInput{
		{Name: "E1", Availability: "1:Morning"},
		{Name: "E2", Availability: "1:Morning"},
	}

	strictReq := handler.SolveRequest{Employees: employees, Requirements: requirements, StartDate: "2025-01-06", NumWeeks: 1}
	body, _ := json.Marshal(strictReq)
	rec := httptest.NewRecorder()
	h.Solve(rec, httptest.NewRequest(http.MethodPost, "/api/v1/schedule/solve", bytes.NewReader(body)))

	var strictResp handler.SolveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &strictResp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if strictResp.Success {
		t.Fatalf("无 leader 的严格求解不应可行")
	}

	retryReq := strictReq
	retryReq.Retry = true
	retryReq.Relax = handler.RelaxationsInput{Requirements: true}
	retryBody, _ := json.Marshal(retryReq)
	retryRec := httptest.NewRecorder()
	h.Solve(retryRec, httptest.NewRequest(http.MethodPost, "/api/v1/schedule/solve", bytes.NewReader(retryBody)))

	var retryResp handler.SolveResponse
	if err := json.Unmarshal(retryRec.Body.Bytes(), &retryResp); err != nil {
		t.Fatalf("解析重试响应失败: %v", err)
	}
	if !retryResp.Success {
		t.Fatalf("放宽需求后重试应当可行, diagnostics=%+v", retryResp.Diagnostics)
	}
}
