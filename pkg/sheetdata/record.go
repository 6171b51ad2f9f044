// Package sheetdata 提供表格数据的纯函数处理：
// 行列转换、过滤、搜索、排序、按日期聚合
package sheetdata

import (
	"bytes"
	"strconv"

	"github.com/bytedance/sonic"
)

// Record 一行带表头键的记录
// 保持列顺序的有序映射；表头来自电子表格，是运行期动态的，
// 因此按名称查找并显式返回"缺失"，而不是静态结构体字段
type Record struct {
	fields []string
	values map[string]string
}

// NewRecord 创建空记录
func NewRecord() *Record {
	return &Record{values: make(map[string]string)}
}

// Set 设置字段值
// 已存在的键只覆盖值，列位置保持首次出现的位置
func (r *Record) Set(field, value string) {
	if _, ok := r.values[field]; !ok {
		r.fields = append(r.fields, field)
	}
	r.values[field] = value
}

// Get 按名称取值，字段不存在时 ok=false
func (r *Record) Get(field string) (string, bool) {
	v, ok := r.values[field]
	return v, ok
}

// GetOrEmpty 取值，字段不存在时返回空字符串
func (r *Record) GetOrEmpty(field string) string {
	return r.values[field]
}

// Fields 按列顺序返回字段名
func (r *Record) Fields() []string {
	return r.fields
}

// Len 字段数量
func (r *Record) Len() int {
	return len(r.fields)
}

// MarshalJSON 输出保持列顺序的 JSON 对象
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := sonic.Marshal(f)
		if err != nil {
			return nil, err
		}
		v, err := sonic.Marshal(r.values[f])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// CellString 将单元格值归一化为字符串
// 经 JSON 解码的数值（float64）还原为接近原始的表示
func CellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := sonic.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// ConvertToRecords 将二维数组转换为表头键记录序列
// 第 0 行为表头，之后每行按列位置映射到表头名；
// 行尾缺失的单元格补空字符串；重复表头后写覆盖前写
func ConvertToRecords(rows [][]any) []*Record {
	if len(rows) < 1 {
		return []*Record{}
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = CellString(h)
	}

	records := make([]*Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := NewRecord()
		for i, h := range headers {
			if i < len(row) {
				rec.Set(h, CellString(row[i]))
			} else {
				rec.Set(h, "")
			}
		}
		records = append(records, rec)
	}
	return records
}

// StringRowsToAny [][]string 转 [][]any 的辅助函数
func StringRowsToAny(rows [][]string) [][]any {
	out := make([][]any, len(rows))
	for i, row := range rows {
		r := make([]any, len(row))
		for j, c := range row {
			r[j] = c
		}
		out[i] = r
	}
	return out
}
