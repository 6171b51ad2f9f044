package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldMemoID メモ ID 字段
	FieldMemoID = "memoId"

	// FieldSheet シート名字段
	FieldSheet = "sheet"

	// FieldTransport 接続方式字段（direct / relay）
	FieldTransport = "transport"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldError 错误信息字段
	FieldError = "error"

	// FieldSize 文件大小字段
	FieldSize = "size"

	// FieldRows 行数字段
	FieldRows = "rows"

	// FieldToken 刷新序列トークン字段
	FieldToken = "token"

	// FieldFileKey 文件键字段
	FieldFileKey = "fileKey"
)
