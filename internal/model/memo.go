package model

import "github.com/haierkeys/sheet-memo-dashboard/pkg/timex"

const TableNameMemo = "memo"

// Memo mapped from table <memo>
type Memo struct {
	ID         int64      `gorm:"column:id;primaryKey" json:"id" form:"id"`
	Text       string     `gorm:"column:text" json:"text" form:"text"`
	ImageKey   string     `gorm:"column:image_key" json:"imageKey" form:"imageKey"`
	ImageMime  string     `gorm:"column:image_mime" json:"imageMime" form:"imageMime"`
	ImageSize  int64      `gorm:"column:image_size;default:0" json:"imageSize" form:"imageSize"`
	Status     string     `gorm:"column:status;not null;index:idx_memo_status;default:pending" json:"status" form:"status"`
	ExportedAt timex.Time `gorm:"column:exported_at;type:datetime;default:NULL" json:"exportedAt" form:"exportedAt"`
	CreatedAt  timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt  timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoCreateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Memo's table name
func (*Memo) TableName() string {
	return TableNameMemo
}
