package model

import "github.com/haierkeys/sheet-memo-dashboard/pkg/timex"

const TableNameConnectionSetting = "connection_setting"

// ConnectionSetting mapped from table <connection_setting>
type ConnectionSetting struct {
	ID            int64      `gorm:"column:id;primaryKey" json:"id" form:"id"`
	TransportMode string     `gorm:"column:transport_mode;not null;default:direct" json:"transportMode" form:"transportMode"`
	SpreadsheetID string     `gorm:"column:spreadsheet_id" json:"spreadsheetId" form:"spreadsheetId"`
	APIKey        string     `gorm:"column:api_key" json:"apiKey" form:"apiKey"`
	RelayURL      string     `gorm:"column:relay_url" json:"relayUrl" form:"relayUrl"`
	RelayToken    string     `gorm:"column:relay_token" json:"relayToken" form:"relayToken"`
	DefaultSheet  string     `gorm:"column:default_sheet" json:"defaultSheet" form:"defaultSheet"`
	RefreshMs     int64      `gorm:"column:refresh_ms;default:0" json:"refreshMs" form:"refreshMs"`
	CreatedAt     timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt     timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoCreateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName ConnectionSetting's table name
func (*ConnectionSetting) TableName() string {
	return TableNameConnectionSetting
}
