// Package domain 定义领域模型和接口
package domain

import "time"

// MemoStatus 定义备忘录导出状态
type MemoStatus string

const (
	MemoStatusPending  MemoStatus = "pending"
	MemoStatusExported MemoStatus = "exported"
)

// Memo 备忘录领域模型
// 画像は storage に保存し、ここではファイルキーとサイズのみ保持する
type Memo struct {
	ID         int64
	Text       string
	ImageKey   string
	ImageMime  string
	ImageSize  int64
	Status     MemoStatus
	ExportedAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsExported 判断备忘录是否已导出
func (m *Memo) IsExported() bool {
	return m.Status == MemoStatusExported
}

// HasImage 判断备忘录是否携带图片
func (m *Memo) HasImage() bool {
	return m.ImageKey != ""
}

// MemoCountResult 统计结果
type MemoCountResult struct {
	Total    int64
	Pending  int64
	Exported int64
}
