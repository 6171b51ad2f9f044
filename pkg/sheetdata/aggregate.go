package sheetdata

import (
	"strings"
	"time"

	"github.com/haierkeys/sheet-memo-dashboard/pkg/util"
)

// Stats 按日期分桶的聚合结果
type Stats struct {
	Total     int `json:"total"`
	Today     int `json:"today"`
	ThisWeek  int `json:"thisWeek"`
	ThisMonth int `json:"thisMonth"`
}

// 日期字段名探测用的固定词表，覆盖常见的日文和英文命名
var dateFieldTokens = []string{
	"日時", "日付", "作成", "登録", "更新", "年月日",
	"date", "time", "created", "updated", "timestamp",
}

// 按优先顺序尝试的日期解析格式
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"2006/1/2",
	"2006年1月2日",
}

// DetectDateField returns the first field whose name looks like a date column
// DetectDateField 返回第一个名称像日期列的字段，找不到返回空字符串
func DetectDateField(records []*Record) string {
	if len(records) == 0 {
		return ""
	}
	for _, field := range records[0].Fields() {
		lower := strings.ToLower(field)
		for _, token := range dateFieldTokens {
			if strings.Contains(lower, token) {
				return field
			}
		}
	}
	return ""
}

// ParseCellDate 解析单元格里的日期值，失败时 ok=false
func ParseCellDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Aggregate counts records into date buckets relative to the current time
// Aggregate 以当前时间为基准统计 total / today / thisWeek / thisMonth
func Aggregate(records []*Record) Stats {
	return AggregateAt(records, time.Now())
}

// AggregateAt 以指定时刻为基准聚合，便于测试
// 找不到日期字段时只有 total 有意义；解析失败的日期值
// 不计入任何分桶，但仍计入 total
// today = 本地 0 时以降；thisWeek = 直近の日曜 0 时以降；
// thisMonth = 当月 1 日 0 时以降
func AggregateAt(records []*Record, now time.Time) Stats {
	stats := Stats{Total: len(records)}

	dateField := DetectDateField(records)
	if dateField == "" {
		return stats
	}

	midnight := util.GetZeroTime(now)
	weekStart := midnight.AddDate(0, 0, -int(now.Weekday()))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	for _, rec := range records {
		t, ok := ParseCellDate(rec.GetOrEmpty(dateField))
		if !ok {
			continue
		}
		if !t.Before(midnight) {
			stats.Today++
		}
		if !t.Before(weekStart) {
			stats.ThisWeek++
		}
		if !t.Before(monthStart) {
			stats.ThisMonth++
		}
	}
	return stats
}
