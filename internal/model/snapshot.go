package model

import "github.com/haierkeys/sheet-memo-dashboard/pkg/timex"

const TableNameSnapshot = "snapshot"

// Snapshot mapped from table <snapshot>
// Payload はシート群を JSON 直列化した BLOB
type Snapshot struct {
	ID        int64      `gorm:"column:id;primaryKey" json:"id" form:"id"`
	Payload   []byte     `gorm:"column:payload;type:blob" json:"payload" form:"payload"`
	FetchedAt timex.Time `gorm:"column:fetched_at;type:datetime;default:NULL" json:"fetchedAt" form:"fetchedAt"`
}

// TableName Snapshot's table name
func (*Snapshot) TableName() string {
	return TableNameSnapshot
}
