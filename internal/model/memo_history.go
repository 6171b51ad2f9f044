package model

import "github.com/haierkeys/sheet-memo-dashboard/pkg/timex"

const TableNameMemoHistory = "memo_history"

// MemoHistory mapped from table <memo_history>
type MemoHistory struct {
	ID        int64      `gorm:"column:id;primaryKey" json:"id" form:"id"`
	MemoID    int64      `gorm:"column:memo_id;not null;index:idx_history_memo" json:"memoId" form:"memoId"`
	Version   int64      `gorm:"column:version;not null" json:"version" form:"version"`
	Patch     string     `gorm:"column:patch" json:"patch" form:"patch"`
	Summary   string     `gorm:"column:summary" json:"summary" form:"summary"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName MemoHistory's table name
func (*MemoHistory) TableName() string {
	return TableNameMemoHistory
}
