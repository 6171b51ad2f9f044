// Package domain 定义领域模型和接口
package domain

import "time"

// TransportMode 定义远程数据访问方式
type TransportMode string

const (
	// TransportDirect 使用 Google Sheets API + API キー直接访问
	TransportDirect TransportMode = "direct"
	// TransportRelay 经由 Google Apps Script 中继访问
	TransportRelay TransportMode = "relay"
)

// DefaultSheetName 导出先工作表默认名称
const DefaultSheetName = "メモ"

// ConnectionSetting 表计算连接配置领域模型
type ConnectionSetting struct {
	ID            int64
	TransportMode TransportMode
	SpreadsheetID string
	APIKey        string
	RelayURL      string
	RelayToken    string
	// DefaultSheet ダッシュボード初期表示のシート名（空なら DefaultSheetName）
	DefaultSheet string
	// RefreshIntervalMs 自動更新間隔（ミリ秒）、0 で無効
	RefreshIntervalMs int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SheetName 返回导出先工作表名称
func (s *ConnectionSetting) SheetName() string {
	if s.DefaultSheet != "" {
		return s.DefaultSheet
	}
	return DefaultSheetName
}

// IsConfigured 判断当前传输方式所需的配置是否齐全
func (s *ConnectionSetting) IsConfigured() bool {
	switch s.TransportMode {
	case TransportDirect:
		return s.SpreadsheetID != "" && s.APIKey != ""
	case TransportRelay:
		return s.RelayURL != ""
	}
	return false
}
