// Package domain 定义领域模型和接口
package domain

import "time"

// MemoHistory 备忘录修改历史领域模型
// テキスト編集の差分を保持し、一定期間後にクリーンアップされる
type MemoHistory struct {
	ID        int64
	MemoID    int64
	Version   int64
	Patch     string
	Summary   string
	CreatedAt time.Time
}
