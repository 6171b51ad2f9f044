// Package gateway 实现表计算远程数据网关
// 同一契約の下に direct（Google Sheets API + API キー）と
// relay（Apps Script 中継）の二つのトランスポートを持つ
package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/haierkeys/sheet-memo-dashboard/internal/domain"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/code"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/sheetdata"

	"go.uber.org/zap"
)

// Gateway 远程数据网关接口
type Gateway interface {
	// ListSheets 获取工作表元数据列表（保持表内顺序）
	ListSheets(ctx context.Context) ([]*domain.SheetMeta, error)

	// FetchSheet 获取单个工作表的记录（行0为表头）
	FetchSheet(ctx context.Context, name string) ([]*sheetdata.Record, error)

	// FetchAllSheets 获取全部工作表的记录
	// 全件成功した場合のみ結果を返す（部分成功なし）
	FetchAllSheets(ctx context.Context) ([]*domain.SheetPayload, error)

	// SheetExists 判断工作表是否存在
	SheetExists(ctx context.Context, name string) (bool, error)

	// AppendRows 追加数据行
	// 対象シートが存在しない場合は header 行を先頭に付けて書き込む
	// 存在チェックは内部で一回だけ行う
	AppendRows(ctx context.Context, name string, header []string, rows [][]string) error
}

// Option 网关选项
type Option func(*options)

type options struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// WithHTTPClient 注入自定义 HTTP 客户端
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithBaseURL 覆盖 direct 传输的 API 基地址
func WithBaseURL(base string) Option {
	return func(o *options) {
		o.baseURL = base
	}
}

// WithLogger 注入日志器
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func buildOptions(opts []Option) *options {
	o := &options{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    directAPIBase,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// New 根据连接配置创建网关实例
// 設定が不完全な場合は ErrorSheetsNotConfigured を返す
func New(setting *domain.ConnectionSetting, opts ...Option) (Gateway, error) {
	if setting == nil || !setting.IsConfigured() {
		return nil, code.ErrorSheetsNotConfigured
	}

	o := buildOptions(opts)

	switch setting.TransportMode {
	case domain.TransportRelay:
		return &RelayGateway{
			relayURL:   setting.RelayURL,
			token:      setting.RelayToken,
			httpClient: o.httpClient,
			logger:     o.logger,
		}, nil
	default:
		return &DirectGateway{
			baseURL:       o.baseURL,
			spreadsheetID: setting.SpreadsheetID,
			apiKey:        setting.APIKey,
			httpClient:    o.httpClient,
			logger:        o.logger,
		}, nil
	}
}

// statusError 将 HTTP 状态码映射为网关错误
// 403 → 認証拒否、404 → スプレッドシート不在、その他 → リモートエラー
func statusError(statusCode int, detail string) error {
	switch statusCode {
	case http.StatusForbidden, http.StatusUnauthorized:
		return code.ErrorSheetAuthRejected.WithDetails(detail)
	case http.StatusNotFound:
		return code.ErrorSpreadsheetNotFound.WithDetails(detail)
	}
	return code.ErrorSheetRemote.WithDetails(detail)
}
