// Package dao 实现数据访问层
package dao

import (
	"context"
	"time"

	"github.com/haierkeys/sheet-memo-dashboard/internal/domain"
	"github.com/haierkeys/sheet-memo-dashboard/internal/model"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/timex"
)

// memoHistoryRepository 实现 domain.MemoHistoryRepository 接口
type memoHistoryRepository struct {
	dao *Dao
}

// NewMemoHistoryRepository 创建 MemoHistoryRepository 实例
func NewMemoHistoryRepository(dao *Dao) domain.MemoHistoryRepository {
	return &memoHistoryRepository{dao: dao}
}

func (r *memoHistoryRepository) toDomain(m *model.MemoHistory) *domain.MemoHistory {
	if m == nil {
		return nil
	}
	return &domain.MemoHistory{
		ID:        m.ID,
		MemoID:    m.MemoID,
		Version:   m.Version,
		Patch:     m.Patch,
		Summary:   m.Summary,
		CreatedAt: time.Time(m.CreatedAt),
	}
}

// Create 追加一条历史记录
func (r *memoHistoryRepository) Create(ctx context.Context, history *domain.MemoHistory) (*domain.MemoHistory, error) {
	history.CreatedAt = time.Now()

	m := &model.MemoHistory{
		MemoID:    history.MemoID,
		Version:   history.Version,
		Patch:     history.Patch,
		Summary:   history.Summary,
		CreatedAt: timex.Time(history.CreatedAt),
	}
	if err := r.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// ListByMemoID 获取指定备忘录的历史（按版本倒序）
func (r *memoHistoryRepository) ListByMemoID(ctx context.Context, memoID int64) ([]*domain.MemoHistory, error) {
	var ms []*model.MemoHistory
	err := r.dao.db.WithContext(ctx).
		Where("memo_id = ?", memoID).
		Order("version DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	out := make([]*domain.MemoHistory, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

// LatestVersion 获取指定备忘录的最新版本号，无历史时返回 0
func (r *memoHistoryRepository) LatestVersion(ctx context.Context, memoID int64) (int64, error) {
	var version *int64
	err := r.dao.db.WithContext(ctx).Model(&model.MemoHistory{}).
		Where("memo_id = ?", memoID).
		Select("MAX(version)").
		Scan(&version).Error
	if err != nil {
		return 0, err
	}
	if version == nil {
		return 0, nil
	}
	return *version, nil
}

// DeleteByMemoID 删除指定备忘录的全部历史
func (r *memoHistoryRepository) DeleteByMemoID(ctx context.Context, memoID int64) error {
	return r.dao.db.WithContext(ctx).Where("memo_id = ?", memoID).Delete(&model.MemoHistory{}).Error
}

// DeleteBefore 删除指定时间之前的历史记录，返回删除条数
func (r *memoHistoryRepository) DeleteBefore(ctx context.Context, timestamp int64) (int64, error) {
	cutoff := timex.Time(time.Unix(timestamp, 0))
	result := r.dao.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.MemoHistory{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
