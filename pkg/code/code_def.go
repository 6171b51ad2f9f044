package code

// 成功码定义
var (
	Success       = NewSuss(200, lang{en: "Success", ja: "成功しました"})
	SuccessCreate = NewSuss(201, lang{en: "Created successfully", ja: "作成しました"})
	SuccessUpdate = NewSuss(202, lang{en: "Updated successfully", ja: "更新しました"})
	SuccessDelete = NewSuss(203, lang{en: "Deleted successfully", ja: "削除しました"})
	SuccessExport = NewSuss(204, lang{en: "Exported to spreadsheet", ja: "スプレッドシートへエクスポートしました"})
)

// 通用错误码定义
var (
	Failed                = NewError(500, lang{en: "Failed", ja: "失敗しました"})
	ErrorServerInternal   = NewError(10000, lang{en: "Internal server error", ja: "サーバー内部エラー"})
	ErrorInvalidParams    = NewError(10001, lang{en: "Invalid request parameters", ja: "リクエストパラメータが不正です"})
	ErrorNotFoundAPI      = NewError(10002, lang{en: "API not found", ja: "APIが見つかりません"})
	ErrorTooManyRequests  = NewError(10003, lang{en: "Too many requests", ja: "リクエストが多すぎます"})
	ErrorInvalidAuthToken = NewError(10004, lang{en: "Invalid access token", ja: "アクセストークンが不正です"})
	ErrorDBQuery          = NewError(10005, lang{en: "Database query failed", ja: "データベースクエリに失敗しました"})
	ErrorConfigSaveFailed = NewError(10006, lang{en: "Failed to save configuration", ja: "設定の保存に失敗しました"})
)

// メモ（ローカルレコード）関連エラー
var (
	ErrorMemoNotFound      = NewError(20000, lang{en: "Memo not found", ja: "メモが見つかりません"})
	ErrorMemoImageRequired = NewError(20001, lang{en: "Memo image payload is required", ja: "メモ画像が必要です"})
	ErrorMemoSaveFailed    = NewError(20002, lang{en: "Failed to save memo", ja: "メモの保存に失敗しました"})
	ErrorMemoDeleteFailed  = NewError(20003, lang{en: "Failed to delete memo", ja: "メモの削除に失敗しました"})
	ErrorMemoImageLoad     = NewError(20004, lang{en: "Failed to load memo image", ja: "メモ画像の読み込みに失敗しました"})
)

// 接続設定関連エラー
var (
	ErrorSheetsNotConfigured = NewError(30000, lang{en: "Spreadsheet connection is not configured", ja: "スプレッドシート接続が設定されていません"})
	ErrorSettingSaveFailed   = NewError(30001, lang{en: "Failed to save settings", ja: "設定の保存に失敗しました"})
)

// リモートゲートウェイ関連エラー
// 利用者が自分で設定を修正できるように、認証・未検出・接続・リモートを区別する
var (
	ErrorSheetConnection     = NewError(40000, lang{en: "Network unreachable, failed to reach the spreadsheet service", ja: "ネットワークに接続できません"})
	ErrorSheetAuthRejected   = NewError(40001, lang{en: "Credential rejected by the spreadsheet service", ja: "認証情報が拒否されました"})
	ErrorSpreadsheetNotFound = NewError(40002, lang{en: "Spreadsheet not found", ja: "スプレッドシートが見つかりません"})
	ErrorSheetNotFound       = NewError(40003, lang{en: "Sheet not found", ja: "シートが見つかりません"})
	ErrorSheetRemote         = NewError(40004, lang{en: "Spreadsheet service reported an error", ja: "スプレッドシートサービスがエラーを返しました"})
)

// エクスポート関連エラー
var (
	ErrorExportEmptyBatch = NewError(50000, lang{en: "Export called with an empty batch", ja: "エクスポート対象のメモがありません"})
	ErrorExportMarkFailed = NewError(50001, lang{en: "Appended to spreadsheet but failed to mark memo as exported", ja: "エクスポート済みフラグの更新に失敗しました"})
)

// ダッシュボード関連エラー
var (
	ErrorSnapshotNotFound = NewError(60000, lang{en: "No cached snapshot available", ja: "キャッシュされたスナップショットがありません"})
	ErrorRefreshFailed    = NewError(60001, lang{en: "Failed to refresh spreadsheet data", ja: "スプレッドシートデータの更新に失敗しました"})
)
