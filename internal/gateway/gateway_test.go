package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/haierkeys/sheet-memo-dashboard/internal/domain"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func directSetting() *domain.ConnectionSetting {
	return &domain.ConnectionSetting{
		TransportMode: domain.TransportDirect,
		SpreadsheetID: "sheet-id",
		APIKey:        "api-key",
	}
}

func TestNew_NotConfigured(t *testing.T) {
	_, err := New(&domain.ConnectionSetting{TransportMode: domain.TransportDirect})
	assert.ErrorIs(t, err, code.ErrorSheetsNotConfigured)

	_, err = New(nil)
	assert.ErrorIs(t, err, code.ErrorSheetsNotConfigured)
}

func TestNew_SelectsTransport(t *testing.T) {
	g, err := New(directSetting())
	require.NoError(t, err)
	assert.IsType(t, &DirectGateway{}, g)

	g, err = New(&domain.ConnectionSetting{
		TransportMode: domain.TransportRelay,
		RelayURL:      "https://script.google.com/macros/s/xxx/exec",
	})
	require.NoError(t, err)
	assert.IsType(t, &RelayGateway{}, g)
}

// directServer Google Sheets API を模した httptest サーバ
func directServer(t *testing.T, metaCalls *atomic.Int64, appended *[][]string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "api-key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/sheet-id":
			if metaCalls != nil {
				metaCalls.Add(1)
			}
			_, _ = w.Write([]byte(`{"sheets":[
				{"properties":{"sheetId":0,"title":"メモ","index":0,"gridProperties":{"rowCount":10,"columnCount":4}}},
				{"properties":{"sheetId":1,"title":"売上","index":1,"gridProperties":{"rowCount":100,"columnCount":8}}}
			]}`))

		case r.Method == http.MethodGet && r.URL.Path == "/sheet-id/values/メモ":
			_, _ = w.Write([]byte(`{"values":[["名前","作成日時"],["Alice","2024-01-10"],["Bob"]]}`))

		case r.Method == http.MethodGet && r.URL.Path == "/sheet-id/values/売上":
			_, _ = w.Write([]byte(`{"values":[["金額"],["1200"]]}`))

		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":append"):
			body, _ := io.ReadAll(r.Body)
			var req struct {
				Values [][]string `json:"values"`
			}
			require.NoError(t, json.Unmarshal(body, &req))
			if appended != nil {
				*appended = append(*appended, req.Values...)
			}
			_, _ = w.Write([]byte(`{"updates":{"updatedRows":1}}`))

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestDirectGateway_ListSheets(t *testing.T) {
	srv := directServer(t, nil, nil)
	defer srv.Close()

	g, err := New(directSetting(), WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	metas, err := g.ListSheets(context.Background())
	require.NoError(t, err)
	require.Len(t, metas, 2)
	assert.Equal(t, "メモ", metas[0].Title)
	assert.Equal(t, int64(100), metas[1].RowCount)
}

func TestDirectGateway_FetchSheetConversion(t *testing.T) {
	srv := directServer(t, nil, nil)
	defer srv.Close()

	g, err := New(directSetting(), WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	records, err := g.FetchSheet(context.Background(), "メモ")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Alice", records[0].GetOrEmpty("名前"))
	// 欠けた末尾セルは空文字列になる
	assert.Equal(t, "", records[1].GetOrEmpty("作成日時"))
}

func TestDirectGateway_FetchAllSheets(t *testing.T) {
	srv := directServer(t, nil, nil)
	defer srv.Close()

	g, err := New(directSetting(), WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	payloads, err := g.FetchAllSheets(context.Background())
	require.NoError(t, err)
	require.Len(t, payloads, 2)
	assert.Equal(t, "メモ", payloads[0].Title)
	assert.Equal(t, "売上", payloads[1].Title)
	assert.Equal(t, "1200", payloads[1].Records[0].GetOrEmpty("金額"))
}

func TestDirectGateway_FetchAllSheetsFailsWhole(t *testing.T) {
	// 片方のシート取得が失敗したら全体が失敗する
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/sheet-id":
			_, _ = w.Write([]byte(`{"sheets":[
				{"properties":{"title":"ok","index":0}},
				{"properties":{"title":"broken","index":1}}
			]}`))
		case r.URL.Path == "/sheet-id/values/ok":
			_, _ = w.Write([]byte(`{"values":[["a"],["1"]]}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	g, err := New(directSetting(), WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	_, err = g.FetchAllSheets(context.Background())
	assert.ErrorIs(t, err, code.ErrorSheetRemote)
}

func TestDirectGateway_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		want       *code.Code
	}{
		{"forbidden is auth error", http.StatusForbidden, code.ErrorSheetAuthRejected},
		{"unauthorized is auth error", http.StatusUnauthorized, code.ErrorSheetAuthRejected},
		{"not found is spreadsheet missing", http.StatusNotFound, code.ErrorSpreadsheetNotFound},
		{"server error is remote error", http.StatusInternalServerError, code.ErrorSheetRemote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer srv.Close()

			g, err := New(directSetting(), WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
			require.NoError(t, err)

			_, err = g.ListSheets(context.Background())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDirectGateway_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // 即座に閉じて接続失敗させる

	g, err := New(directSetting(), WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = g.ListSheets(context.Background())
	assert.ErrorIs(t, err, code.ErrorSheetConnection)
}

func TestDirectGateway_AppendRowsHeaderGating(t *testing.T) {
	t.Run("existing sheet appends rows only", func(t *testing.T) {
		var metaCalls atomic.Int64
		var appended [][]string
		srv := directServer(t, &metaCalls, &appended)
		defer srv.Close()

		g, err := New(directSetting(), WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
		require.NoError(t, err)

		header := []string{"作成日時", "テキスト内容", "画像サイズ", "エクスポート日時"}
		row := []string{"2024-01-10 09:00:00", "買い物", "2.0 KB", "2024-01-11 08:00:00"}
		require.NoError(t, g.AppendRows(context.Background(), "メモ", header, [][]string{row}))

		require.Len(t, appended, 1)
		assert.Equal(t, row, appended[0])
		// 存在チェックは一回だけ
		assert.Equal(t, int64(1), metaCalls.Load())
	})

	t.Run("missing sheet prepends header row", func(t *testing.T) {
		var metaCalls atomic.Int64
		var appended [][]string
		srv := directServer(t, &metaCalls, &appended)
		defer srv.Close()

		g, err := New(directSetting(), WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
		require.NoError(t, err)

		header := []string{"作成日時", "テキスト内容", "画像サイズ", "エクスポート日時"}
		row := []string{"2024-01-10 09:00:00", "買い物", "-", "2024-01-11 08:00:00"}
		require.NoError(t, g.AppendRows(context.Background(), "新しいシート", header, [][]string{row}))

		require.Len(t, appended, 2)
		assert.Equal(t, header, appended[0])
		assert.Equal(t, row, appended[1])
		assert.Equal(t, int64(1), metaCalls.Load())
	})
}

// relayServer Apps Script 中継を模した httptest サーバ
func relayServer(t *testing.T, posts *[]map[string]any) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			body, _ := io.ReadAll(r.Body)
			var req map[string]any
			require.NoError(t, json.Unmarshal(body, &req))
			if posts != nil {
				*posts = append(*posts, req)
			}
			_, _ = w.Write([]byte(`{"success":true,"sheetName":"メモ","rowAdded":5}`))
			return
		}

		switch r.URL.Query().Get("action") {
		case "getSheets":
			_, _ = w.Write([]byte(`{"sheets":[
				{"title":"メモ","index":0,"rowCount":5,"columnCount":4},
				{"title":"売上","index":1,"rowCount":20,"columnCount":3}
			]}`))
		case "getData":
			if r.URL.Query().Get("sheetName") == "メモ" {
				_, _ = w.Write([]byte(`{"data":[["名前"],["Alice"]]}`))
				return
			}
			_, _ = w.Write([]byte(`{"error":"sheet not found"}`))
		case "getAllData":
			_, _ = w.Write([]byte(`{"data":{"メモ":[["名前"],["Alice"]],"売上":[["金額"],["1200"]]}}`))
		default:
			_, _ = w.Write([]byte(`{"error":"unknown action"}`))
		}
	}))
}

func relaySetting(url string) *domain.ConnectionSetting {
	return &domain.ConnectionSetting{
		TransportMode: domain.TransportRelay,
		RelayURL:      url,
	}
}

func TestRelayGateway_ListSheets(t *testing.T) {
	srv := relayServer(t, nil)
	defer srv.Close()

	g, err := New(relaySetting(srv.URL), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	metas, err := g.ListSheets(context.Background())
	require.NoError(t, err)
	require.Len(t, metas, 2)
	assert.Equal(t, "メモ", metas[0].Title)
	assert.Equal(t, int64(3), metas[1].ColumnCount)
}

func TestRelayGateway_FetchSheet(t *testing.T) {
	srv := relayServer(t, nil)
	defer srv.Close()

	g, err := New(relaySetting(srv.URL), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	records, err := g.FetchSheet(context.Background(), "メモ")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Alice", records[0].GetOrEmpty("名前"))

	// error キー入りのボディはリモートエラー
	_, err = g.FetchSheet(context.Background(), "不在シート")
	assert.ErrorIs(t, err, code.ErrorSheetRemote)
}

func TestRelayGateway_FetchAllSheets(t *testing.T) {
	srv := relayServer(t, nil)
	defer srv.Close()

	g, err := New(relaySetting(srv.URL), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	payloads, err := g.FetchAllSheets(context.Background())
	require.NoError(t, err)
	require.Len(t, payloads, 2)
	// シート順はメタデータに従う
	assert.Equal(t, "メモ", payloads[0].Title)
	assert.Equal(t, "売上", payloads[1].Title)
	assert.Equal(t, "1200", payloads[1].Records[0].GetOrEmpty("金額"))
}

func TestRelayGateway_AppendRows(t *testing.T) {
	t.Run("single row uses appendMemo", func(t *testing.T) {
		var posts []map[string]any
		srv := relayServer(t, &posts)
		defer srv.Close()

		g, err := New(relaySetting(srv.URL), WithHTTPClient(srv.Client()))
		require.NoError(t, err)

		header := []string{"作成日時", "テキスト内容", "画像サイズ", "エクスポート日時"}
		err = g.AppendRows(context.Background(), "メモ", header, [][]string{
			{"2024-01-10 09:00:00", "買い物", "-", "2024-01-11 08:00:00"},
		})
		require.NoError(t, err)

		require.Len(t, posts, 1)
		assert.Equal(t, "appendMemo", posts[0]["action"])
		assert.Equal(t, "メモ", posts[0]["sheetName"])
	})

	t.Run("missing sheet uses appendMemos with header", func(t *testing.T) {
		var posts []map[string]any
		srv := relayServer(t, &posts)
		defer srv.Close()

		g, err := New(relaySetting(srv.URL), WithHTTPClient(srv.Client()))
		require.NoError(t, err)

		header := []string{"作成日時", "テキスト内容", "画像サイズ", "エクスポート日時"}
		err = g.AppendRows(context.Background(), "新しいシート", header, [][]string{
			{"2024-01-10 09:00:00", "買い物", "-", ""},
		})
		require.NoError(t, err)

		require.Len(t, posts, 1)
		assert.Equal(t, "appendMemos", posts[0]["action"])
		rows, ok := posts[0]["rows"].([]any)
		require.True(t, ok)
		assert.Len(t, rows, 2)
	})
}
