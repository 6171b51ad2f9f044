package dao

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/haierkeys/sheet-memo-dashboard/internal/domain"
	"github.com/haierkeys/sheet-memo-dashboard/internal/model"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/sheetdata"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/timex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testDao(t *testing.T) *Dao {
	t.Helper()

	c := &DatabaseConfig{
		Type:         "sqlite",
		Path:         filepath.Join(t.TempDir(), "db.sqlite3"),
		AutoMigrate:  true,
		MaxIdleConns: 10,
		MaxOpenConns: 100,
	}
	db, err := NewDBEngine(c)
	require.NoError(t, err)

	return New(db, context.Background(), WithConfig(c))
}

func TestMemoRepository_CreateAndGet(t *testing.T) {
	d := testDao(t)
	repo := NewMemoRepository(d)
	ctx := context.Background()

	memo, err := repo.Create(ctx, &domain.Memo{
		Text:      "買い物リスト",
		ImageKey:  "2024/01/abc.png",
		ImageMime: "image/png",
		ImageSize: 2048,
	})
	require.NoError(t, err)
	assert.NotZero(t, memo.ID)
	assert.Equal(t, domain.MemoStatusPending, memo.Status)
	assert.False(t, memo.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, memo.ID)
	require.NoError(t, err)
	assert.Equal(t, "買い物リスト", got.Text)
	assert.Equal(t, int64(2048), got.ImageSize)
	assert.False(t, got.IsExported())
}

func TestMemoRepository_MarkExported(t *testing.T) {
	d := testDao(t)
	repo := NewMemoRepository(d)
	ctx := context.Background()

	first, err := repo.Create(ctx, &domain.Memo{Text: "one"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, &domain.Memo{Text: "two"})
	require.NoError(t, err)

	require.NoError(t, repo.MarkExported(ctx, []int64{first.ID, second.ID}))

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, got.IsExported())
	assert.False(t, got.ExportedAt.IsZero())

	pending, err := repo.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	sum, err := repo.CountSum(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sum.Total)
	assert.Equal(t, int64(0), sum.Pending)
	assert.Equal(t, int64(2), sum.Exported)
}

func TestMemoRepository_MarkExportedRestamps(t *testing.T) {
	d := testDao(t)
	repo := NewMemoRepository(d)
	ctx := context.Background()

	memo, err := repo.Create(ctx, &domain.Memo{Text: "again"})
	require.NoError(t, err)
	require.NoError(t, repo.MarkExported(ctx, []int64{memo.ID}))

	// 書き出し時刻を過去に戻してから再実行する
	backdated := time.Now().Add(-time.Hour)
	require.NoError(t, d.db.Model(&model.Memo{}).
		Where("id = ?", memo.ID).
		Update("exported_at", timex.Time(backdated)).Error)

	require.NoError(t, repo.MarkExported(ctx, []int64{memo.ID}))

	got, err := repo.GetByID(ctx, memo.ID)
	require.NoError(t, err)
	assert.True(t, got.IsExported())
	assert.True(t, got.ExportedAt.After(backdated))
}

func TestMemoRepository_ListFilterByStatus(t *testing.T) {
	d := testDao(t)
	repo := NewMemoRepository(d)
	ctx := context.Background()

	exported, err := repo.Create(ctx, &domain.Memo{Text: "done"})
	require.NoError(t, err)
	require.NoError(t, repo.MarkExported(ctx, []int64{exported.ID}))
	_, err = repo.Create(ctx, &domain.Memo{Text: "open"})
	require.NoError(t, err)

	list, err := repo.List(ctx, domain.MemoStatusPending, 1, 20)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "open", list[0].Text)

	count, err := repo.ListCount(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestMemoHistoryRepository_Versions(t *testing.T) {
	d := testDao(t)
	repo := NewMemoHistoryRepository(d)
	ctx := context.Background()

	v, err := repo.LatestVersion(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	_, err = repo.Create(ctx, &domain.MemoHistory{MemoID: 1, Version: 1, Summary: "+3 -0"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.MemoHistory{MemoID: 1, Version: 2, Summary: "+1 -2"})
	require.NoError(t, err)

	v, err = repo.LatestVersion(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)

	list, err := repo.ListByMemoID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].Version)

	require.NoError(t, repo.DeleteByMemoID(ctx, 1))
	list, err = repo.ListByMemoID(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSettingRepository_SaveOverwrites(t *testing.T) {
	d := testDao(t)
	repo := NewSettingRepository(d)
	ctx := context.Background()

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	saved, err := repo.Save(ctx, &domain.ConnectionSetting{
		TransportMode: domain.TransportDirect,
		SpreadsheetID: "sheet-id-1",
		APIKey:        "key-1",
	})
	require.NoError(t, err)
	assert.True(t, saved.IsConfigured())

	// 二回目の保存は同じ行を上書きする
	_, err = repo.Save(ctx, &domain.ConnectionSetting{
		TransportMode: domain.TransportRelay,
		RelayURL:      "https://script.google.com/macros/s/xxx/exec",
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, domain.TransportRelay, got.TransportMode)
	assert.Empty(t, got.SpreadsheetID)
	assert.Equal(t, "メモ", got.SheetName())

	require.NoError(t, repo.Clear(ctx))
	_, err = repo.Get(ctx)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSnapshotRepository_RoundTrip(t *testing.T) {
	d := testDao(t)
	repo := NewSnapshotRepository(d)
	ctx := context.Background()

	records := sheetdata.ConvertToRecords([][]any{
		{"名前", "作成日時"},
		{"Alice", "2024-01-10"},
		{"Bob", "2024-01-11"},
	})

	_, err := repo.Save(ctx, &domain.Snapshot{
		Sheets: []*domain.SheetPayload{
			{Title: "メモ", Records: records},
			{Title: "売上", Records: nil},
		},
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"メモ", "売上"}, got.Titles())
	assert.False(t, got.FetchedAt.IsZero())

	sheet, ok := got.Sheet("メモ")
	require.True(t, ok)
	require.Len(t, sheet.Records, 2)
	assert.Equal(t, "Alice", sheet.Records[0].GetOrEmpty("名前"))
	assert.Equal(t, []string{"名前", "作成日時"}, sheet.Records[0].Fields())

	// 元数据なしで保存した快照は行列から行数・列数を補う
	meta, ok := got.Meta("メモ")
	require.True(t, ok)
	assert.Equal(t, int64(3), meta.RowCount)
	assert.Equal(t, int64(2), meta.ColumnCount)

	// 再保存で旧快照は置き換えられる
	_, err = repo.Save(ctx, &domain.Snapshot{
		Sheets: []*domain.SheetPayload{{Title: "メモ"}},
	})
	require.NoError(t, err)

	got, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"メモ"}, got.Titles())
}

func TestSnapshotRepository_MetaRoundTrip(t *testing.T) {
	d := testDao(t)
	repo := NewSnapshotRepository(d)
	ctx := context.Background()

	records := sheetdata.ConvertToRecords([][]any{
		{"名前"},
		{"Alice"},
	})

	_, err := repo.Save(ctx, &domain.Snapshot{
		Metas: []*domain.SheetMeta{
			{SheetID: 7, Title: "メモ", Index: 2, RowCount: 120, ColumnCount: 5},
		},
		Sheets: []*domain.SheetPayload{{Title: "メモ", Records: records}},
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx)
	require.NoError(t, err)

	meta, ok := got.Meta("メモ")
	require.True(t, ok)
	assert.Equal(t, int64(7), meta.SheetID)
	assert.Equal(t, int64(2), meta.Index)
	assert.Equal(t, int64(120), meta.RowCount)
	assert.Equal(t, int64(5), meta.ColumnCount)
}
