// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// VersionDTO Server version response struct
// 服务版本响应结构体
type VersionDTO struct {
	Version        string `json:"version"`
	GitTag         string `json:"gitTag"`
	BuildTime      string `json:"buildTime"`
	InstanceID     string `json:"instanceId,omitempty"`
	VersionIsNew   bool   `json:"versionIsNew"`
	VersionNewName string `json:"versionNewName,omitempty"`
	VersionNewLink string `json:"versionNewLink,omitempty"`
}
