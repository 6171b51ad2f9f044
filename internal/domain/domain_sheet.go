// Package domain 定义领域模型和接口
package domain

import (
	"time"

	"github.com/haierkeys/sheet-memo-dashboard/pkg/sheetdata"
)

// SheetMeta 工作表元数据
type SheetMeta struct {
	SheetID     int64
	Title       string
	Index       int64
	RowCount    int64
	ColumnCount int64
}

// SheetPayload 单个工作表的数据
type SheetPayload struct {
	Title   string
	Records []*sheetdata.Record
}

// Snapshot 全表数据快照
// 远程取得に成功した時点のデータを保持し、失敗時のフォールバックに使う
type Snapshot struct {
	ID int64
	// Metas 取得時点の工作表元数据（グリッドの行数・列数を含む）
	Metas     []*SheetMeta
	Sheets    []*SheetPayload
	FetchedAt time.Time
}

// Sheet 根据标题查找工作表数据
func (s *Snapshot) Sheet(title string) (*SheetPayload, bool) {
	for _, sheet := range s.Sheets {
		if sheet.Title == title {
			return sheet, true
		}
	}
	return nil, false
}

// Meta 根据标题查找工作表元数据
func (s *Snapshot) Meta(title string) (*SheetMeta, bool) {
	for _, meta := range s.Metas {
		if meta.Title == title {
			return meta, true
		}
	}
	return nil, false
}

// Titles 返回快照内所有工作表标题（保持顺序）
func (s *Snapshot) Titles() []string {
	titles := make([]string, 0, len(s.Sheets))
	for _, sheet := range s.Sheets {
		titles = append(titles, sheet.Title)
	}
	return titles
}
