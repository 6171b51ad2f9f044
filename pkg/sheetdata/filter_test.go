package sheetdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeRecords(rows ...map[string]string) []*Record {
	fields := []string{"name", "category", "memo"}
	out := make([]*Record, 0, len(rows))
	for _, row := range rows {
		rec := NewRecord()
		for _, f := range fields {
			rec.Set(f, row[f])
		}
		out = append(out, rec)
	}
	return out
}

func TestFilter(t *testing.T) {
	records := makeRecords(
		map[string]string{"name": "Apple", "category": "fruit", "memo": "red"},
		map[string]string{"name": "Banana", "category": "fruit", "memo": "yellow"},
		map[string]string{"name": "Carrot", "category": "vegetable", "memo": "orange"},
	)

	tests := []struct {
		name      string
		criteria  map[string]string
		wantNames []string
	}{
		{
			name:      "single field substring",
			criteria:  map[string]string{"category": "fruit"},
			wantNames: []string{"Apple", "Banana"},
		},
		{
			name:      "case insensitive",
			criteria:  map[string]string{"name": "apple"},
			wantNames: []string{"Apple"},
		},
		{
			name:      "multiple criteria are ANDed",
			criteria:  map[string]string{"category": "fruit", "memo": "yell"},
			wantNames: []string{"Banana"},
		},
		{
			name:      "no match",
			criteria:  map[string]string{"name": "zzz"},
			wantNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, tt.criteria)
			names := make([]string, 0, len(got))
			for _, rec := range got {
				names = append(names, rec.GetOrEmpty("name"))
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestFilter_EmptyCriteriaReturnsInputUnchanged(t *testing.T) {
	records := makeRecords(
		map[string]string{"name": "b"},
		map[string]string{"name": "a"},
	)

	got := Filter(records, nil)
	assert.Equal(t, records, got)

	// 空文字列の条件は無視される
	got = Filter(records, map[string]string{"name": ""})
	assert.Equal(t, records, got)
}

func TestSearch(t *testing.T) {
	records := makeRecords(
		map[string]string{"name": "買い物メモ", "category": "memo", "memo": "牛乳"},
		map[string]string{"name": "会議", "category": "work", "memo": "資料準備"},
	)

	got := Search(records, "牛乳")
	assert.Len(t, got, 1)
	assert.Equal(t, "買い物メモ", got[0].GetOrEmpty("name"))

	got = Search(records, "WORK")
	assert.Len(t, got, 1)
	assert.Equal(t, "会議", got[0].GetOrEmpty("name"))
}

func TestSearch_EmptyQueryReturnsInputUnchanged(t *testing.T) {
	records := makeRecords(
		map[string]string{"name": "b"},
		map[string]string{"name": "a"},
	)

	assert.Equal(t, records, Search(records, ""))
	assert.Equal(t, records, Search(records, "   "))
}
