package service

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/haierkeys/sheet-memo-dashboard/internal/domain"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/sheetdata"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// memoryMemoRepo 内存备忘录仓储，测试用
type memoryMemoRepo struct {
	mu     sync.Mutex
	nextID int64
	memos  map[int64]*domain.Memo

	// failMarkAfter n 回目以降の MarkExported を失敗させる（0 で無効）
	failMarkAfter int
	markCalls     int
}

func newMemoryMemoRepo() *memoryMemoRepo {
	return &memoryMemoRepo{memos: map[int64]*domain.Memo{}}
}

func (r *memoryMemoRepo) GetByID(ctx context.Context, id int64) (*domain.Memo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	memo, ok := r.memos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *memo
	return &clone, nil
}

func (r *memoryMemoRepo) Create(ctx context.Context, memo *domain.Memo) (*domain.Memo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	memo.ID = r.nextID
	now := time.Now()
	memo.CreatedAt = now
	memo.UpdatedAt = now
	if memo.Status == "" {
		memo.Status = domain.MemoStatusPending
	}
	clone := *memo
	r.memos[memo.ID] = &clone
	return memo, nil
}

func (r *memoryMemoRepo) Update(ctx context.Context, memo *domain.Memo) (*domain.Memo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.memos[memo.ID]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	memo.UpdatedAt = time.Now()
	clone := *memo
	r.memos[memo.ID] = &clone
	return memo, nil
}

func (r *memoryMemoRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.memos[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.memos, id)
	return nil
}

func (r *memoryMemoRepo) MarkExported(ctx context.Context, ids []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markCalls++
	if r.failMarkAfter > 0 && r.markCalls >= r.failMarkAfter {
		return errors.New("simulated mark failure")
	}
	now := time.Now()
	for _, id := range ids {
		if memo, ok := r.memos[id]; ok {
			memo.Status = domain.MemoStatusExported
			memo.ExportedAt = now
		}
	}
	return nil
}

func (r *memoryMemoRepo) sorted(desc bool) []*domain.Memo {
	out := make([]*domain.Memo, 0, len(r.memos))
	for _, memo := range r.memos {
		clone := *memo
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if desc {
			return out[i].ID > out[j].ID
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *memoryMemoRepo) List(ctx context.Context, status domain.MemoStatus, page, pageSize int) ([]*domain.Memo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Memo
	for _, memo := range r.sorted(true) {
		if status == "" || memo.Status == status {
			out = append(out, memo)
		}
	}
	return out, nil
}

func (r *memoryMemoRepo) ListPending(ctx context.Context) ([]*domain.Memo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Memo
	for _, memo := range r.sorted(false) {
		if memo.Status == domain.MemoStatusPending {
			out = append(out, memo)
		}
	}
	return out, nil
}

func (r *memoryMemoRepo) ListCount(ctx context.Context, status domain.MemoStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, memo := range r.memos {
		if status == "" || memo.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *memoryMemoRepo) CountSum(ctx context.Context) (*domain.MemoCountResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := &domain.MemoCountResult{}
	for _, memo := range r.memos {
		result.Total++
		if memo.Status == domain.MemoStatusExported {
			result.Exported++
		} else {
			result.Pending++
		}
	}
	return result, nil
}

// memoryHistoryRepo 内存历史仓储，测试用
type memoryHistoryRepo struct {
	mu        sync.Mutex
	nextID    int64
	histories []*domain.MemoHistory
}

func newMemoryHistoryRepo() *memoryHistoryRepo {
	return &memoryHistoryRepo{}
}

func (r *memoryHistoryRepo) Create(ctx context.Context, history *domain.MemoHistory) (*domain.MemoHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	history.ID = r.nextID
	history.CreatedAt = time.Now()
	clone := *history
	r.histories = append(r.histories, &clone)
	return history, nil
}

func (r *memoryHistoryRepo) ListByMemoID(ctx context.Context, memoID int64) ([]*domain.MemoHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.MemoHistory
	for _, h := range r.histories {
		if h.MemoID == memoID {
			clone := *h
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version > out[j].Version })
	return out, nil
}

func (r *memoryHistoryRepo) LatestVersion(ctx context.Context, memoID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest int64
	for _, h := range r.histories {
		if h.MemoID == memoID && h.Version > latest {
			latest = h.Version
		}
	}
	return latest, nil
}

func (r *memoryHistoryRepo) DeleteByMemoID(ctx context.Context, memoID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.histories[:0]
	for _, h := range r.histories {
		if h.MemoID != memoID {
			kept = append(kept, h)
		}
	}
	r.histories = kept
	return nil
}

func (r *memoryHistoryRepo) DeleteBefore(ctx context.Context, timestamp int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Unix(timestamp, 0)
	var deleted int64
	kept := r.histories[:0]
	for _, h := range r.histories {
		if h.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, h)
	}
	r.histories = kept
	return deleted, nil
}

// memorySettingRepo 内存配置仓储，测试用
type memorySettingRepo struct {
	mu      sync.Mutex
	setting *domain.ConnectionSetting
}

func newMemorySettingRepo() *memorySettingRepo {
	return &memorySettingRepo{}
}

func (r *memorySettingRepo) Get(ctx context.Context) (*domain.ConnectionSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.setting == nil {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *r.setting
	return &clone, nil
}

func (r *memorySettingRepo) Save(ctx context.Context, setting *domain.ConnectionSetting) (*domain.ConnectionSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	setting.UpdatedAt = time.Now()
	clone := *setting
	r.setting = &clone
	return setting, nil
}

func (r *memorySettingRepo) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setting = nil
	return nil
}

// memorySnapshotRepo 内存快照仓储，测试用
type memorySnapshotRepo struct {
	mu       sync.Mutex
	snapshot *domain.Snapshot
	saves    int
}

func newMemorySnapshotRepo() *memorySnapshotRepo {
	return &memorySnapshotRepo{}
}

func (r *memorySnapshotRepo) Get(ctx context.Context) (*domain.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.snapshot == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.snapshot, nil
}

func (r *memorySnapshotRepo) Save(ctx context.Context, snapshot *domain.Snapshot) (*domain.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	snapshot.ID = int64(r.saves)
	r.snapshot = snapshot
	return snapshot, nil
}

// stubGateway 固定応答のモック網关
type stubGateway struct {
	mu        sync.Mutex
	sheets    []*domain.SheetMeta
	payloads  []*domain.SheetPayload
	fetchErr  error
	appendErr error

	existsCalls int
	appended    [][]string
	appendSheet string
	gotHeader   bool
}

func (g *stubGateway) ListSheets(ctx context.Context) ([]*domain.SheetMeta, error) {
	return g.sheets, nil
}

func (g *stubGateway) FetchSheet(ctx context.Context, name string) ([]*sheetdata.Record, error) {
	for _, p := range g.payloads {
		if p.Title == name {
			return p.Records, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (g *stubGateway) FetchAllSheets(ctx context.Context) ([]*domain.SheetPayload, error) {
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	return g.payloads, nil
}

func (g *stubGateway) SheetExists(ctx context.Context, name string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.existsCalls++
	for _, meta := range g.sheets {
		if meta.Title == name {
			return true, nil
		}
	}
	return false, nil
}

func (g *stubGateway) AppendRows(ctx context.Context, name string, header []string, rows [][]string) error {
	exists, err := g.SheetExists(ctx, name)
	if err != nil {
		return err
	}
	if g.appendErr != nil {
		return g.appendErr
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.appendSheet = name
	if !exists && len(header) > 0 {
		g.gotHeader = true
		g.appended = append(g.appended, header)
	}
	g.appended = append(g.appended, rows...)
	return nil
}

// memoryStorage 内存文件存储，测试用
type memoryStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{files: map[string][]byte{}}
}

func (s *memoryStorage) PutFile(fileKey string, file io.Reader, cType string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[fileKey] = data
	return fileKey, nil
}

func (s *memoryStorage) GetFile(fileKey string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[fileKey]
	if !ok {
		return nil, errors.New("file not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memoryStorage) Delete(fileKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, fileKey)
	return nil
}
