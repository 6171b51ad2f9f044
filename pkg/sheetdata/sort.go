package sheetdata

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortDirection 排序方向
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sort returns a new sequence sorted by the given field
// Sort 按指定字段返回新的有序序列，不修改输入
// 两个值都能解析为数字时按数值比较，否则按日语区域感知的字符串比较；
// 缺失字段按空字符串参与比较；相等键保持原有相对顺序（稳定排序）
func Sort(records []*Record, field string, direction SortDirection) []*Record {
	out := make([]*Record, len(records))
	copy(out, records)
	if field == "" {
		return out
	}

	// collate.Collator 内部有缓冲区，不能跨 goroutine 共享，每次排序新建
	col := collate.New(language.Japanese)

	sort.SliceStable(out, func(i, j int) bool {
		a := out[i].GetOrEmpty(field)
		b := out[j].GetOrEmpty(field)
		cmp := compareValues(col, a, b)
		if direction == SortDesc {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}

func compareValues(col *collate.Collator, a, b string) int {
	na, aOK := parseNumber(a)
	nb, bOK := parseNumber(b)
	if aOK && bOK {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	return col.CompareString(a, b)
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	// 表格数据里常见的千位分隔符
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
