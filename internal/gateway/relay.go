package gateway

import (
	"bytes"
	"context"
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

// RelayGateway 经由 Google Apps Script 中继访问表计算
// 読み取りは action クエリ、書き込みは action フィールド付き JSON ボディ
type RelayGateway struct {
	relayURL   string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// relayEnvelope 中继响应公共字段
// error キーが入っていればリモートエラーとして扱う
type relayEnvelope struct {
	Error string `json:"error"`
}

func (g *RelayGateway) actionURL(action string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("action", action)
	if g.token != "" {
		params.Set("token", g.token)
	}
	return g.relayURL + "?" + params.Encode()
}

func (g *RelayGateway) do(ctx context.Context, method, reqURL string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, code.ErrorSheetConnection.WithDetails(err.Error())
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, code.ErrorSheetConnection.WithDetails(err.Error())
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, code.ErrorSheetConnection.WithDetails(err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.logger.Warn("relay request failed",
			zap.String(logger.FieldTransport, "relay"),
			zap.String(logger.FieldMethod, method),
			zap.Int("statusCode", resp.StatusCode),
		)
		return nil, statusError(resp.StatusCode, string(payload))
	}

	var envelope relayEnvelope
	if err := sonic.Unmarshal(payload, &envelope); err == nil && envelope.Error != "" {
		return nil, code.ErrorSheetRemote.WithDetails(envelope.Error)
	}
	return payload, nil
}

// ListSheets 获取工作表元数据列表
func (g *RelayGateway) ListSheets(ctx context.Context) ([]*domain.SheetMeta, error) {
	payload, err := g.do(ctx, http.MethodGet, g.actionURL("getSheets", nil), nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Sheets []struct {
			Title       string `json:"title"`
			Index       int64  `json:"index"`
			RowCount    int64  `json:"rowCount"`
			ColumnCount int64  `json:"columnCount"`
		} `json:"sheets"`
	}
	if err := sonic.Unmarshal(payload, &resp); err != nil {
		return nil, code.ErrorSheetRemote.WithDetails(err.Error())
	}

	out := make([]*domain.SheetMeta, 0, len(resp.Sheets))
	for _, sheet := range resp.Sheets {
		out = append(out, &domain.SheetMeta{
			Title:       sheet.Title,
			Index:       sheet.Index,
			RowCount:    sheet.RowCount,
			ColumnCount: sheet.ColumnCount,
		})
	}
	return out, nil
}

// FetchSheet 获取单个工作表的记录
func (g *RelayGateway) FetchSheet(ctx context.Context, name string) ([]*sheetdata.Record, error) {
	params := url.Values{}
	params.Set("sheetName", name)
	payload, err := g.do(ctx, http.MethodGet, g.actionURL("getData", params), nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data [][]any `json:"data"`
	}
	if err := sonic.Unmarshal(payload, &resp); err != nil {
		return nil, code.ErrorSheetRemote.WithDetails(err.Error())
	}
	return sheetdata.ConvertToRecords(resp.Data), nil
}

// FetchAllSheets 获取全部工作表的记录
// 中継側で全シートを一括取得できるため、メタデータ取得と getAllData を並行実行し
// シート順はメタデータに合わせて組み立てる
func (g *RelayGateway) FetchAllSheets(ctx context.Context) ([]*domain.SheetPayload, error) {
	var metas []*domain.SheetMeta
	var all map[string][][]any

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		metas, err = g.ListSheets(egCtx)
		return err
	})
	eg.Go(func() error {
		payload, err := g.do(egCtx, http.MethodGet, g.actionURL("getAllData", nil), nil)
		if err != nil {
			return err
		}
		var resp struct {
			Data map[string][][]any `json:"data"`
		}
		if err := sonic.Unmarshal(payload, &resp); err != nil {
			return code.ErrorSheetRemote.WithDetails(err.Error())
		}
		all = resp.Data
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	payloads := make([]*domain.SheetPayload, 0, len(metas))
	for _, meta := range metas {
		payloads = append(payloads, &domain.SheetPayload{
			Title:   meta.Title,
			Records: sheetdata.ConvertToRecords(all[meta.Title]),
		})
	}
	return payloads, nil
}

// SheetExists 判断工作表是否存在
func (g *RelayGateway) SheetExists(ctx context.Context, name string) (bool, error) {
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
// 一行のみの場合は appendMemo、複数行は appendMemos を使う
func (g *RelayGateway) AppendRows(ctx context.Context, name string, header []string, rows [][]string) error {
	exists, err := g.SheetExists(ctx, name)
	if err != nil {
		return err
	}

	values := make([][]string, 0, len(rows)+1)
	if !exists && len(header) > 0 {
		values = append(values, header)
	}
	values = append(values, rows...)

	var body []byte
	if len(values) == 1 {
		body, err = sonic.Marshal(map[string]any{
			"action":    "appendMemo",
			"sheetName": name,
			"row":       values[0],
		})
	} else {
		body, err = sonic.Marshal(map[string]any{
			"action":    "appendMemos",
			"sheetName": name,
			"rows":      values,
		})
	}
	if err != nil {
		return code.ErrorSheetRemote.WithDetails(err.Error())
	}

	reqURL := g.relayURL
	if g.token != "" {
		params := url.Values{}
		params.Set("token", g.token)
		reqURL = g.relayURL + "?" + params.Encode()
	}
	_, err = g.do(ctx, http.MethodPost, reqURL, body)
	return err
}
