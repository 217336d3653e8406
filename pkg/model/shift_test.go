package model

import "testing"

func TestShiftRequirement_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     ShiftRequirement
		wantErr bool
	}{
		{
			name: "合法需求",
			req:  ShiftRequirement{Weekday: Monday, ShiftTime: Morning, NumPeople: 3, NumLeaders: 1, NumInjectors: 1, NumLeaderOrInjector: 2},
		},
		{
			name:    "负数人数非法",
			req:     ShiftRequirement{Weekday: Monday, ShiftTime: Morning, NumPeople: -1},
			wantErr: true,
		},
		{
			name:    "leader下限超过总人数非法",
			req:     ShiftRequirement{Weekday: Monday, ShiftTime: Morning, NumPeople: 1, NumLeaders: 2},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestShiftRequirement_Warning(t *testing.T) {
	under := ShiftRequirement{Weekday: Monday, ShiftTime: Morning, NumPeople: 1, NumLeaders: 1, NumLeaderOrInjector: 2}
	if w := under.Warning(); w == "" {
		t.Fatalf("num_people 低于能力下限应返回警告")
	}

	ok := ShiftRequirement{Weekday: Monday, ShiftTime: Morning, NumPeople: 3, NumLeaders: 1, NumLeaderOrInjector: 2}
	if w := ok.Warning(); w != "" {
		t.Fatalf("满足能力下限时不应返回警告, got %q", w)
	}
}

func TestShiftTime_Order(t *testing.T) {
	if !(Morning.Order() < Midday.Order() && Midday.Order() < Evening.Order()) {
		t.Fatalf("班次顺序应为 Morning < Midday < Evening")
	}
}

func TestParseShiftTime(t *testing.T) {
	tests := []struct {
		label string
		want  ShiftTime
		ok    bool
	}{
		{"Morning", Morning, true},
		{"早", Morning, true},
		{"evening", Evening, true},
		{"Night", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseShiftTime(tt.label)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseShiftTime(%q) = (%v, %v), want (%v, %v)", tt.label, got, ok, tt.want, tt.ok)
		}
	}
}

func TestShift_HasEmployeeAndCount(t *testing.T) {
	s := Shift{Date: NewDate(2025, 1, 6), ShiftTime: Morning, AssignedEmployees: []string{"A", "B"}}
	if !s.HasEmployee("A") || s.HasEmployee("C") {
		t.Fatalf("HasEmployee 结果不符合预期")
	}
	if s.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", s.Count())
	}
}
