package service

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/sheet-memo-dashboard/internal/domain"
	"github.com/haierkeys/sheet-memo-dashboard/internal/dto"
	"github.com/haierkeys/sheet-memo-dashboard/internal/gateway"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func stubFactory(gw gateway.Gateway) GatewayFactory {
	return func(ctx context.Context) (gateway.Gateway, error) {
		return gw, nil
	}
}

func newTestExportService(gw gateway.Gateway) (ExportService, *memoryMemoRepo, *memorySettingRepo) {
	memoRepo := newMemoryMemoRepo()
	settingRepo := newMemorySettingRepo()
	svc := NewExportService(memoRepo, settingRepo, stubFactory(gw), zap.NewNop())
	return svc, memoRepo, settingRepo
}

func TestFormatRow(t *testing.T) {
	created := time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local)
	exported := time.Date(2024, 1, 11, 8, 30, 0, 0, time.Local)

	row := formatRow(&domain.Memo{
		Text:      "買い物リスト",
		ImageSize: 2048,
		CreatedAt: created,
	}, exported)
	assert.Equal(t, []string{"2024-01-10 09:00:00", "買い物リスト", "2.0 KB", "2024-01-11 08:30:00"}, row)

	// 空テキストはプレースホルダ、画像なしはダッシュ
	row = formatRow(&domain.Memo{CreatedAt: created}, exported)
	assert.Equal(t, "（テキストなし）", row[1])
	assert.Equal(t, "-", row[2])
}

func TestExportMany_EmptyBatch(t *testing.T) {
	gw := &stubGateway{sheets: []*domain.SheetMeta{{Title: "メモ"}}}
	svc, _, _ := newTestExportService(gw)

	_, err := svc.ExportMany(context.Background(), &dto.ExportRequest{})
	assert.ErrorIs(t, err, code.ErrorExportEmptyBatch)
}

func TestExportMany_BatchedAppendAndMark(t *testing.T) {
	gw := &stubGateway{sheets: []*domain.SheetMeta{{Title: "メモ"}}}
	svc, memoRepo, _ := newTestExportService(gw)
	ctx := context.Background()

	for _, text := range []string{"one", "two", "three"} {
		_, err := memoRepo.Create(ctx, &domain.Memo{Text: text})
		require.NoError(t, err)
	}

	result, err := svc.ExportMany(ctx, &dto.ExportRequest{})
	require.NoError(t, err)
	assert.Equal(t, "メモ", result.Sheet)
	assert.Equal(t, int64(3), result.Appended)
	assert.Equal(t, int64(3), result.Marked)

	// 存在チェックは一回、ヘッダは付かない（シート既存）
	assert.Equal(t, 1, gw.existsCalls)
	assert.False(t, gw.gotHeader)
	assert.Len(t, gw.appended, 3)

	pending, err := memoRepo.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestExportMany_MissingSheetGetsHeader(t *testing.T) {
	gw := &stubGateway{sheets: []*domain.SheetMeta{{Title: "売上"}}}
	svc, memoRepo, _ := newTestExportService(gw)
	ctx := context.Background()

	_, err := memoRepo.Create(ctx, &domain.Memo{Text: "first"})
	require.NoError(t, err)

	result, err := svc.ExportMany(ctx, &dto.ExportRequest{})
	require.NoError(t, err)
	assert.Equal(t, "メモ", result.Sheet)

	require.Len(t, gw.appended, 2)
	assert.Equal(t, ExportHeader, gw.appended[0])
}

func TestExportMany_PartialMarkFailure(t *testing.T) {
	gw := &stubGateway{sheets: []*domain.SheetMeta{{Title: "メモ"}}}
	svc, memoRepo, _ := newTestExportService(gw)
	ctx := context.Background()

	for _, text := range []string{"one", "two", "three"} {
		_, err := memoRepo.Create(ctx, &domain.Memo{Text: text})
		require.NoError(t, err)
	}
	// 2 回目のマークで失敗させる
	memoRepo.failMarkAfter = 2

	_, err := svc.ExportMany(ctx, &dto.ExportRequest{})
	assert.ErrorIs(t, err, code.ErrorExportMarkFailed)

	// 追記はロールバックされず、1 件だけマーク済みの部分的状態が残る
	assert.Len(t, gw.appended, 3)
	count, countErr := memoRepo.ListCount(ctx, domain.MemoStatusExported)
	require.NoError(t, countErr)
	assert.Equal(t, int64(1), count)
}

func TestExportOne_UsesSettingSheet(t *testing.T) {
	gw := &stubGateway{sheets: []*domain.SheetMeta{{Title: "手書き"}}}
	svc, memoRepo, settingRepo := newTestExportService(gw)
	ctx := context.Background()

	_, err := settingRepo.Save(ctx, &domain.ConnectionSetting{
		TransportMode: domain.TransportDirect,
		SpreadsheetID: "id",
		APIKey:        "key",
		DefaultSheet:  "手書き",
	})
	require.NoError(t, err)

	memo, err := memoRepo.Create(ctx, &domain.Memo{Text: "note"})
	require.NoError(t, err)

	result, err := svc.ExportOne(ctx, memo.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "手書き", result.Sheet)
	assert.Equal(t, int64(1), result.Marked)

	// 既に導出済みのメモの再導出も許される（再スタンプ）
	before, err := memoRepo.GetByID(ctx, memo.ID)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = svc.ExportOne(ctx, memo.ID, "")
	require.NoError(t, err)
	after, err := memoRepo.GetByID(ctx, memo.ID)
	require.NoError(t, err)
	assert.True(t, after.ExportedAt.After(before.ExportedAt))
}

func TestExportOne_NotFound(t *testing.T) {
	gw := &stubGateway{}
	svc, _, _ := newTestExportService(gw)

	_, err := svc.ExportOne(context.Background(), 77, "")
	assert.ErrorIs(t, err, code.ErrorMemoNotFound)
}
