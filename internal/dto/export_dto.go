// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// ExportRequest Request parameters for exporting memos
// 备忘录导出参数
type ExportRequest struct {
	// IDs 対象のメモ ID 列、空なら未導出分すべて
	IDs []int64 `json:"ids" form:"ids"`
	// Sheet 出力先シート名、空なら既定シート
	Sheet string `json:"sheet" form:"sheet"`
}

// ExportResultDTO Export result
// 导出结果响应结构体
type ExportResultDTO struct {
	Sheet    string  `json:"sheet"`
	Appended int64   `json:"appended"`
	Marked   int64   `json:"marked"`
	MemoIDs  []int64 `json:"memoIds"`
}
