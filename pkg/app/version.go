package app

// CheckVersionInfo version check information shared between the check task and API
// CheckVersionInfo 版本检查信息，由检查任务写入、API 读取
type CheckVersionInfo struct {
	VersionIsNew   bool   `json:"versionIsNew"`
	VersionNewName string `json:"versionNewName"`
	VersionNewLink string `json:"versionNewLink"`
}
