// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import "github.com/haierkeys/sheet-memo-dashboard/pkg/timex"

// SettingSaveRequest Request parameters for saving connection settings
// 保存连接配置参数（全量上書き）
type SettingSaveRequest struct {
	TransportMode     string `json:"transportMode" form:"transportMode" binding:"required,oneof=direct relay"`
	SpreadsheetID     string `json:"spreadsheetId" form:"spreadsheetId"`
	APIKey            string `json:"apiKey" form:"apiKey"`
	RelayURL          string `json:"relayUrl" form:"relayUrl" binding:"omitempty,url"`
	RelayToken        string `json:"relayToken" form:"relayToken"`
	DefaultSheet      string `json:"defaultSheet" form:"defaultSheet"`
	RefreshIntervalMs int64  `json:"refreshIntervalMs" form:"refreshIntervalMs" binding:"omitempty,min=0"`
}

// SettingDTO Connection settings response struct
// 连接配置响应结构体
// API キーとトークンはマスクして返す
type SettingDTO struct {
	TransportMode     string     `json:"transportMode"`
	SpreadsheetID     string     `json:"spreadsheetId"`
	APIKeySet         bool       `json:"apiKeySet"`
	RelayURL          string     `json:"relayUrl"`
	RelayTokenSet     bool       `json:"relayTokenSet"`
	DefaultSheet      string     `json:"defaultSheet"`
	RefreshIntervalMs int64      `json:"refreshIntervalMs"`
	IsConfigured      bool       `json:"isConfigured"`
	UpdatedAt         timex.Time `json:"updatedAt"`
}
