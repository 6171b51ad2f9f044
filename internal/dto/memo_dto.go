// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import "github.com/haierkeys/sheet-memo-dashboard/pkg/timex"

// MemoCreateRequest Request parameters for creating a memo
// 创建备忘录参数
// 画像は multipart で受け取るため、ここにはテキストのみ
type MemoCreateRequest struct {
	Text string `json:"text" form:"text"`
}

// MemoUpdateRequest Request parameters for updating memo text
// 修改备忘录参数
type MemoUpdateRequest struct {
	Text string `json:"text" form:"text" binding:"required"`
}

// MemoIDRequest Request parameters addressing a single memo
// 单条备忘录寻址参数
type MemoIDRequest struct {
	ID int64 `json:"id" form:"id" binding:"required,min=1"`
}

// MemoListRequest Request parameters for listing memos
// 备忘录列表参数
type MemoListRequest struct {
	// Status pending / exported、空で全件
	Status string `json:"status" form:"status" binding:"omitempty,oneof=pending exported"`
}

// MemoDTO Memo response struct
// 备忘录响应结构体
type MemoDTO struct {
	ID         int64      `json:"id"`
	Text       string     `json:"text"`
	ImageURL   string     `json:"imageUrl"`
	ImageSize  int64      `json:"imageSize"`
	Status     string     `json:"status"`
	ExportedAt timex.Time `json:"exportedAt"`
	CreatedAt  timex.Time `json:"createdAt"`
	UpdatedAt  timex.Time `json:"updatedAt"`
}

// MemoCountDTO Memo count summary
// 备忘录数量统计
type MemoCountDTO struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Exported int64 `json:"exported"`
}

// MemoHistoryDTO Memo history entry
// 备忘录历史响应结构体
type MemoHistoryDTO struct {
	ID        int64      `json:"id"`
	MemoID    int64      `json:"memoId"`
	Version   int64      `json:"version"`
	Summary   string     `json:"summary"`
	CreatedAt timex.Time `json:"createdAt"`
}
