package service

import (
	"context"
	"strings"
	"testing"

	"github.com/haierkeys/sheet-memo-dashboard/internal/dto"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMemoService(store *memoryStorage) (MemoService, *memoryMemoRepo, *memoryHistoryRepo) {
	memoRepo := newMemoryMemoRepo()
	historyRepo := newMemoryHistoryRepo()
	svc := NewMemoService(memoRepo, historyRepo, store, zap.NewNop(), &ServiceConfig{})
	return svc, memoRepo, historyRepo
}

func pngUpload(content string) *ImageUpload {
	return &ImageUpload{
		Reader: strings.NewReader(content),
		Size:   int64(len(content)),
		Mime:   "image/png",
		Name:   "memo.png",
	}
}

func TestMemoService_CreateRequiresImage(t *testing.T) {
	svc, _, _ := newTestMemoService(newMemoryStorage())

	_, err := svc.Create(context.Background(), &dto.MemoCreateRequest{Text: "text only"}, nil)
	assert.ErrorIs(t, err, code.ErrorMemoImageRequired)
}

func TestMemoService_CreateAndGet(t *testing.T) {
	store := newMemoryStorage()
	svc, _, _ := newTestMemoService(store)

	created, err := svc.Create(context.Background(), &dto.MemoCreateRequest{Text: "買い物"}, pngUpload("fake-png-bytes"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "pending", created.Status)
	assert.NotEmpty(t, created.ImageURL)
	assert.Len(t, store.files, 1)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "買い物", got.Text)

	reader, mime, err := svc.GetImage(context.Background(), created.ID)
	require.NoError(t, err)
	defer reader.Close()
	assert.Equal(t, "image/png", mime)
}

func TestMemoService_GetNotFound(t *testing.T) {
	svc, _, _ := newTestMemoService(newMemoryStorage())

	_, err := svc.Get(context.Background(), 999)
	assert.ErrorIs(t, err, code.ErrorMemoNotFound)
}

func TestMemoService_UpdateRecordsHistory(t *testing.T) {
	svc, _, historyRepo := newTestMemoService(newMemoryStorage())
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.MemoCreateRequest{Text: "下書き"}, pngUpload("img"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, &dto.MemoUpdateRequest{Text: "清書"})
	require.NoError(t, err)
	assert.Equal(t, "清書", updated.Text)

	histories, err := svc.History(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, histories, 1)
	assert.Equal(t, int64(1), histories[0].Version)
	assert.NotEmpty(t, histories[0].Summary)

	// 同じテキストでの更新は履歴を増やさない
	_, err = svc.Update(ctx, created.ID, &dto.MemoUpdateRequest{Text: "清書"})
	require.NoError(t, err)
	latest, err := historyRepo.LatestVersion(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), latest)
}

func TestMemoService_UpdateNotFound(t *testing.T) {
	svc, _, _ := newTestMemoService(newMemoryStorage())

	_, err := svc.Update(context.Background(), 42, &dto.MemoUpdateRequest{Text: "x"})
	assert.ErrorIs(t, err, code.ErrorMemoNotFound)
}

func TestMemoService_DeleteRemovesImageAndHistory(t *testing.T) {
	store := newMemoryStorage()
	svc, _, historyRepo := newTestMemoService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.MemoCreateRequest{Text: "a"}, pngUpload("img"))
	require.NoError(t, err)
	_, err = svc.Update(ctx, created.ID, &dto.MemoUpdateRequest{Text: "b"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Empty(t, store.files)
	assert.Empty(t, historyRepo.histories)

	// 二回目の削除は NotFound
	err = svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, code.ErrorMemoNotFound)
}

func TestMemoService_ListAndCount(t *testing.T) {
	svc, memoRepo, _ := newTestMemoService(newMemoryStorage())
	ctx := context.Background()

	first, err := svc.Create(ctx, &dto.MemoCreateRequest{Text: "one"}, pngUpload("1"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, &dto.MemoCreateRequest{Text: "two"}, pngUpload("2"))
	require.NoError(t, err)
	require.NoError(t, memoRepo.MarkExported(ctx, []int64{first.ID}))

	list, total, err := svc.List(ctx, &dto.MemoListRequest{}, 1, 20)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, int64(2), total)
	// 新しい順
	assert.Equal(t, "two", list[0].Text)

	pending, total, err := svc.List(ctx, &dto.MemoListRequest{Status: "pending"}, 1, 20)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
	assert.Equal(t, int64(1), total)

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, &dto.MemoCountDTO{Total: 2, Pending: 1, Exported: 1}, count)
}
