package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/haierkeys/sheet-memo-dashboard/internal/domain"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/code"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/logger"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/sheetdata"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// directAPIBase Google Sheets v4 REST API 基地址
const directAPIBase = "https://sheets.googleapis.com/v4/spreadsheets"

// DirectGateway 使用 API キー直接访问 Google Sheets API
type DirectGateway struct {
	baseURL       string
	spreadsheetID string
	apiKey        string
	httpClient    *http.Client
	logger        *zap.Logger
}

// spreadsheetMeta 表计算元数据响应
type spreadsheetMeta struct {
	Sheets []struct {
		Properties struct {
			SheetID        int64  `json:"sheetId"`
			Title          string `json:"title"`
			Index          int64  `json:"index"`
			GridProperties struct {
				RowCount    int64 `json:"rowCount"`
				ColumnCount int64 `json:"columnCount"`
			} `json:"gridProperties"`
		} `json:"properties"`
	} `json:"sheets"`
}

// valueRange 值域响应
type valueRange struct {
	Values [][]any `json:"values"`
}

func (g *DirectGateway) metaURL() string {
	return fmt.Sprintf("%s/%s?key=%s", g.baseURL, url.PathEscape(g.spreadsheetID), url.QueryEscape(g.apiKey))
}

func (g *DirectGateway) valuesURL(sheetName string) string {
	return fmt.Sprintf("%s/%s/values/%s?key=%s",
		g.baseURL, url.PathEscape(g.spreadsheetID), url.PathEscape(sheetName), url.QueryEscape(g.apiKey))
}

func (g *DirectGateway) appendURL(sheetName string) string {
	return fmt.Sprintf("%s/%s/values/%s:append?valueInputOption=USER_ENTERED&key=%s",
		g.baseURL, url.PathEscape(g.spreadsheetID), url.PathEscape(sheetName), url.QueryEscape(g.apiKey))
}

// doJSON 执行请求并解析 JSON 响应
// ネットワーク障害は接続エラー、非 2xx はステータスに応じたエラーへ写像する
func (g *DirectGateway) doJSON(ctx context.Context, method, reqURL string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return code.ErrorSheetConnection.WithDetails(err.Error())
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return code.ErrorSheetConnection.WithDetails(err.Error())
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return code.ErrorSheetConnection.WithDetails(err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.logger.Warn("sheets api request failed",
			zap.String(logger.FieldTransport, "direct"),
			zap.String(logger.FieldMethod, method),
			zap.Int("statusCode", resp.StatusCode),
		)
		return statusError(resp.StatusCode, string(payload))
	}

	if out != nil {
		if err := sonic.Unmarshal(payload, out); err != nil {
			return code.ErrorSheetRemote.WithDetails(err.Error())
		}
	}
	return nil
}

// ListSheets 获取工作表元数据列表
func (g *DirectGateway) ListSheets(ctx context.Context) ([]*domain.SheetMeta, error) {
	var meta spreadsheetMeta
	if err := g.doJSON(ctx, http.MethodGet, g.metaURL(), nil, &meta); err != nil {
		return nil, err
	}

	out := make([]*domain.SheetMeta, 0, len(meta.Sheets))
	for _, sheet := range meta.Sheets {
		out = append(out, &domain.SheetMeta{
			SheetID:     sheet.Properties.SheetID,
			Title:       sheet.Properties.Title,
			Index:       sheet.Properties.Index,
			RowCount:    sheet.Properties.GridProperties.RowCount,
			ColumnCount: sheet.Properties.GridProperties.ColumnCount,
		})
	}
	return out, nil
}

// FetchSheet 获取单个工作表的记录
func (g *DirectGateway) FetchSheet(ctx context.Context, name string) ([]*sheetdata.Record, error) {
	var vr valueRange
	if err := g.doJSON(ctx, http.MethodGet, g.valuesURL(name), nil, &vr); err != nil {
		return nil, err
	}
	return sheetdata.ConvertToRecords(vr.Values), nil
}

// FetchAllSheets 并发获取全部工作表的记录
// 一件でも失敗したら全体を失敗とする
func (g *DirectGateway) FetchAllSheets(ctx context.Context) ([]*domain.SheetPayload, error) {
	metas, err := g.ListSheets(ctx)
	if err != nil {
		return nil, err
	}

	payloads := make([]*domain.SheetPayload, len(metas))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, meta := range metas {
		eg.Go(func() error {
			records, err := g.FetchSheet(egCtx, meta.Title)
			if err != nil {
				return err
			}
			payloads[i] = &domain.SheetPayload{Title: meta.Title, Records: records}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return payloads, nil
}

// SheetExists 判断工作表是否存在
func (g *DirectGateway) SheetExists(ctx context.Context, name string) (bool, error) {
	metas, err := g.ListSheets(ctx)
	if err != nil {
		return false, err
	}
	for _, meta := range metas {
		if meta.Title == name {
			return true, nil
		}
	}
	return false, nil
}

// AppendRows 追加数据行
func (g *DirectGateway) AppendRows(ctx context.Context, name string, header []string, rows [][]string) error {
	exists, err := g.SheetExists(ctx, name)
	if err != nil {
		return err
	}

	values := make([][]string, 0, len(rows)+1)
	if !exists && len(header) > 0 {
		values = append(values, header)
	}
	values = append(values, rows...)

	body, err := sonic.Marshal(map[string]any{"values": values})
	if err != nil {
		return code.ErrorSheetRemote.WithDetails(err.Error())
	}
	return g.doJSON(ctx, http.MethodPost, g.appendURL(name), body, nil)
}
