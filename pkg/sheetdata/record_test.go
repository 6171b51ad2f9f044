package sheetdata

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
)

func TestConvertToRecords(t *testing.T) {
	rows := [][]any{
		{"name", "date"},
		{"Alice", "2024-01-10"},
		{"Bob", "not-a-date"},
	}

	records := ConvertToRecords(rows)
	assert.Len(t, records, 2)

	v, ok := records[0].Get("name")
	assert.True(t, ok)
	assert.Equal(t, "Alice", v)
	assert.Equal(t, "2024-01-10", records[0].GetOrEmpty("date"))
	assert.Equal(t, "Bob", records[1].GetOrEmpty("name"))
	assert.Equal(t, "not-a-date", records[1].GetOrEmpty("date"))
}

func TestConvertToRecords_MissingTrailingCells(t *testing.T) {
	rows := [][]any{
		{"a", "b", "c"},
		{"1"},
	}

	records := ConvertToRecords(rows)
	assert.Len(t, records, 1)

	// 行末缺失的单元格补空字符串，不是缺失字段
	v, ok := records[0].Get("b")
	assert.True(t, ok)
	assert.Equal(t, "", v)
	assert.Equal(t, []string{"a", "b", "c"}, records[0].Fields())
}

func TestConvertToRecords_DuplicateHeaders(t *testing.T) {
	rows := [][]any{
		{"x", "x"},
		{"first", "second"},
	}

	records := ConvertToRecords(rows)
	assert.Len(t, records, 1)
	// 重复表头后写覆盖前写
	assert.Equal(t, "second", records[0].GetOrEmpty("x"))
	assert.Equal(t, 1, records[0].Len())
}

func TestConvertToRecords_NumericCells(t *testing.T) {
	rows := [][]any{
		{"個数", "単価"},
		{float64(3), float64(1.5)},
	}

	records := ConvertToRecords(rows)
	assert.Equal(t, "3", records[0].GetOrEmpty("個数"))
	assert.Equal(t, "1.5", records[0].GetOrEmpty("単価"))
}

func TestConvertToRecords_Empty(t *testing.T) {
	assert.Empty(t, ConvertToRecords(nil))
	assert.Empty(t, ConvertToRecords([][]any{{"only", "header"}}))
}

func TestRecord_MarshalJSON_PreservesOrder(t *testing.T) {
	rec := NewRecord()
	rec.Set("名前", "太郎")
	rec.Set("日付", "2024-01-10")
	rec.Set("メモ", "")

	data, err := sonic.Marshal(rec)
	assert.NoError(t, err)
	assert.Equal(t, `{"名前":"太郎","日付":"2024-01-10","メモ":""}`, string(data))
}

func TestRecord_GetMissing(t *testing.T) {
	rec := NewRecord()
	rec.Set("a", "1")

	_, ok := rec.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, "", rec.GetOrEmpty("missing"))
}
