package sheetdata

import "strings"

// Filter returns records matching every non-empty criterion
// Filter 返回满足所有非空条件的记录子序列
// 条件为 字段名→子串，匹配不区分大小写；空条件返回原序列
func Filter(records []*Record, criteria map[string]string) []*Record {
	active := make(map[string]string)
	for field, want := range criteria {
		if want != "" {
			active[field] = strings.ToLower(want)
		}
	}
	if len(active) == 0 {
		return records
	}

	out := make([]*Record, 0, len(records))
	for _, rec := range records {
		matched := true
		for field, want := range active {
			got := strings.ToLower(rec.GetOrEmpty(field))
			if !strings.Contains(got, want) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, rec)
		}
	}
	return out
}

// Search returns records where any field contains the query
// Search 返回任意字段包含查询子串的记录，不区分大小写
// 空白查询返回原序列
func Search(records []*Record, query string) []*Record {
	query = strings.TrimSpace(query)
	if query == "" {
		return records
	}
	query = strings.ToLower(query)

	out := make([]*Record, 0, len(records))
	for _, rec := range records {
		for _, field := range rec.Fields() {
			if strings.Contains(strings.ToLower(rec.GetOrEmpty(field)), query) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}
