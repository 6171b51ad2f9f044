// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"github.com/haierkeys/sheet-memo-dashboard/pkg/sheetdata"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/timex"
)

// DashboardViewRequest Request parameters for the dashboard view
// ダッシュボード表示パラメータ（検索・絞り込み・並び替え）
type DashboardViewRequest struct {
	Sheet     string            `json:"sheet" form:"sheet"`
	Search    string            `json:"search" form:"search"`
	Filter    map[string]string `json:"filter" form:"-"`
	SortField string            `json:"sortField" form:"sortField"`
	SortOrder string            `json:"sortOrder" form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

// SheetMetaDTO Sheet metadata response struct
// 工作表元数据响应结构体
type SheetMetaDTO struct {
	Title       string `json:"title"`
	Index       int64  `json:"index"`
	RowCount    int64  `json:"rowCount"`
	ColumnCount int64  `json:"columnCount"`
}

// DashboardViewDTO Dashboard view response struct
// ダッシュボード表示レスポンス
type DashboardViewDTO struct {
	Sheet      string              `json:"sheet"`
	Sheets     []*SheetMetaDTO     `json:"sheets"`
	Records    []*sheetdata.Record `json:"records"`
	Stats      sheetdata.Stats     `json:"stats"`
	LastSyncAt timex.Time          `json:"lastSyncAt"`
	// Degraded 最新取得に失敗しキャッシュ表示へフォールバックした場合 true
	Degraded bool `json:"degraded"`
}

// DashboardRefreshDTO Refresh result
// 更新結果レスポンス
type DashboardRefreshDTO struct {
	SheetCount int64      `json:"sheetCount"`
	LastSyncAt timex.Time `json:"lastSyncAt"`
	Degraded   bool       `json:"degraded"`
}
