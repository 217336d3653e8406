package store

import (
	"testing"

	"github.com/paiban/shiftcore/pkg/model"
)

func TestEmployeeRow_Decode(t *testing.T) {
	row := EmployeeRow{Name: "A", IsLeader: true, Availability: "1:Morning,Midday"}
	emp := row.Decode()

	if emp.Name != "A" || !emp.IsLeader {
		t.Fatalf("Decode() = %+v, 姓名与 leader 标志应原样保留", emp)
	}
	if !emp.IsAvailable(model.Monday, model.Morning) || emp.IsAvailable(model.Monday, model.Evening) {
		t.Fatalf("Decode() 应正确解析 availability 字符串")
	}
}

func TestRequirementRow_Decode(t *testing.T) {
	row := RequirementRow{Weekday: 1, ShiftTimeLabel: "Morning", NumPeople: 3, NumLeaders: 1}
	req, ok := row.Decode()
	if !ok {
		t.Fatalf("合法需求行应解析成功")
	}
	if req.Weekday != model.Monday || req.ShiftTime != model.Morning || req.NumPeople != 3 {
		t.Fatalf("Decode() = %+v", req)
	}

	if _, ok := (RequirementRow{Weekday: 1, ShiftTimeLabel: "不存在"}).Decode(); ok {
		t.Fatalf("未知班次标签应返回 ok=false")
	}
	if _, ok := (RequirementRow{Weekday: 8, ShiftTimeLabel: "Morning"}).Decode(); ok {
		t.Fatalf("越界的星期应返回 ok=false")
	}
}

func TestTimeOffRow_Decode(t *testing.T) {
	row := TimeOffRow{EmployeeName: "A", Date: "2025-01-06", ShiftTimeLabel: "Morning"}
	got, err := row.Decode()
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.EmployeeName != "A" || got.ShiftTime != model.Morning {
		t.Fatalf("Decode() = %+v", got)
	}

	if _, err := (TimeOffRow{EmployeeName: "A", Date: "不是日期", ShiftTimeLabel: "Morning"}).Decode(); err == nil {
		t.Fatalf("非法日期应返回 error")
	}
	if _, err := (TimeOffRow{EmployeeName: "A", Date: "2025-01-06", ShiftTimeLabel: "不存在"}).Decode(); err == nil {
		t.Fatalf("未知班次标签应返回 error")
	}
}

func TestPreAssignmentRow_Decode(t *testing.T) {
	row := PreAssignmentRow{EmployeeName: "A", Date: "2025-01-06", ShiftTimeLabel: "Evening"}
	got, err := row.Decode()
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.EmployeeName != "A" || got.ShiftTime != model.Evening {
		t.Fatalf("Decode() = %+v", got)
	}
}

func TestSavedScheduleRow_往返(t *testing.T) {
	monday := model.NewDate(2025, 1, 6)
	shift := model.Shift{Date: monday, ShiftTime: model.Morning, AssignedEmployees: []string{"A", "B"}}

	row := FromShift("本周排班", "2025-01-01T00:00:00Z", shift)
	if row.Employees[0] != "A" || row.Employees[1] != "B" || row.Employees[2] != "" {
		t.Fatalf("FromShift() 应把姓名铺平到前两列，其余列留空, got %+v", row.Employees)
	}

	back, err := row.ToShift()
	if err != nil {
		t.Fatalf("ToShift() error = %v", err)
	}
	if !back.Date.Equal(shift.Date) || back.ShiftTime != shift.ShiftTime || len(back.AssignedEmployees) != 2 {
		t.Fatalf("ToShift() 应还原出等价的 Shift, got %+v", back)
	}
	if !back.HasEmployee("A") || !back.HasEmployee("B") {
		t.Fatalf("ToShift() 应保留全部非空姓名列, got %+v", back.AssignedEmployees)
	}
}
