package template

import (
	"testing"

	"github.com/paiban/shiftcore/pkg/model"
)

func TestBuild_一周生成21个槽位(t *testing.T) {
	slots, err := Build(model.NewDate(2025, 1, 6), 1)
	if err != nil {
		t.Fatalf("Build 不应返回错误: %v", err)
	}
	if len(slots) != 21 {
		t.Fatalf("len(slots) = %d, want 21", len(slots))
	}
	if slots[0].ShiftTime != model.Morning || slots[1].ShiftTime != model.Midday || slots[2].ShiftTime != model.Evening {
		t.Fatalf("班次顺序应为 Morning, Midday, Evening")
	}
	if !slots[0].Date.Equal(model.NewDate(2025, 1, 6)) {
		t.Fatalf("第一个槽位的日期应为起始日期")
	}
	if !slots[20].Date.Equal(model.NewDate(2025, 1, 12)) {
		t.Fatalf("最后一个槽位的日期应为窗口末尾的周日")
	}
}

func TestBuild_非周一起始日期返回错误(t *testing.T) {
	_, err := Build(model.NewDate(2025, 1, 7), 1)
	if err == nil {
		t.Fatalf("非周一的起始日期应返回 InvalidStart 错误")
	}
}

func TestBuild_多周窗口(t *testing.T) {
	slots, err := Build(model.NewDate(2025, 1, 6), 3)
	if err != nil {
		t.Fatalf("Build 不应返回错误: %v", err)
	}
	if len(slots) != 63 {
		t.Fatalf("len(slots) = %d, want 63", len(slots))
	}
}
