// Package dao 实现数据访问层
package dao

import (
	"context"
	"time"

	"github.com/haierkeys/sheet-memo-dashboard/internal/domain"
	"github.com/haierkeys/sheet-memo-dashboard/internal/model"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/app"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/timex"
)

// memoRepository 实现 domain.MemoRepository 接口
type memoRepository struct {
	dao *Dao
}

// NewMemoRepository 创建 MemoRepository 实例
func NewMemoRepository(dao *Dao) domain.MemoRepository {
	return &memoRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *memoRepository) toDomain(m *model.Memo) *domain.Memo {
	if m == nil {
		return nil
	}
	return &domain.Memo{
		ID:         m.ID,
		Text:       m.Text,
		ImageKey:   m.ImageKey,
		ImageMime:  m.ImageMime,
		ImageSize:  m.ImageSize,
		Status:     domain.MemoStatus(m.Status),
		ExportedAt: time.Time(m.ExportedAt),
		CreatedAt:  time.Time(m.CreatedAt),
		UpdatedAt:  time.Time(m.UpdatedAt),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *memoRepository) toModel(memo *domain.Memo) *model.Memo {
	if memo == nil {
		return nil
	}
	return &model.Memo{
		ID:         memo.ID,
		Text:       memo.Text,
		ImageKey:   memo.ImageKey,
		ImageMime:  memo.ImageMime,
		ImageSize:  memo.ImageSize,
		Status:     string(memo.Status),
		ExportedAt: timex.Time(memo.ExportedAt),
		CreatedAt:  timex.Time(memo.CreatedAt),
		UpdatedAt:  timex.Time(memo.UpdatedAt),
	}
}

// GetByID 根据ID获取备忘录
func (r *memoRepository) GetByID(ctx context.Context, id int64) (*domain.Memo, error) {
	var m model.Memo
	if err := r.dao.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建备忘录
func (r *memoRepository) Create(ctx context.Context, memo *domain.Memo) (*domain.Memo, error) {
	now := time.Now()
	memo.CreatedAt = now
	memo.UpdatedAt = now
	if memo.Status == "" {
		memo.Status = domain.MemoStatusPending
	}

	m := r.toModel(memo)
	if err := r.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 更新备忘录
func (r *memoRepository) Update(ctx context.Context, memo *domain.Memo) (*domain.Memo, error) {
	memo.UpdatedAt = time.Now()

	m := r.toModel(memo)
	if err := r.dao.db.WithContext(ctx).Where("id = ?", m.ID).Save(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Delete 删除备忘录
func (r *memoRepository) Delete(ctx context.Context, id int64) error {
	return r.dao.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Memo{}).Error
}

// MarkExported 标记备忘录为已导出
func (r *memoRepository) MarkExported(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	now := timex.Now()
	return r.dao.db.WithContext(ctx).Model(&model.Memo{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"status":      string(domain.MemoStatusExported),
			"exported_at": now,
			"updated_at":  now,
		}).Error
}

// List 分页获取备忘录列表（按创建时间倒序）
func (r *memoRepository) List(ctx context.Context, status domain.MemoStatus, page, pageSize int) ([]*domain.Memo, error) {
	var ms []*model.Memo
	q := r.dao.db.WithContext(ctx).Model(&model.Memo{})
	if status != "" {
		q = q.Where("status = ?", string(status))
	}
	err := q.Order("created_at DESC, id DESC").
		Offset(app.GetPageOffset(page, pageSize)).
		Limit(pageSize).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Memo, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

// ListPending 获取所有未导出的备忘录（按创建时间正序）
func (r *memoRepository) ListPending(ctx context.Context) ([]*domain.Memo, error) {
	var ms []*model.Memo
	err := r.dao.db.WithContext(ctx).
		Where("status = ?", string(domain.MemoStatusPending)).
		Order("created_at ASC, id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Memo, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

// ListCount 获取备忘录数量
func (r *memoRepository) ListCount(ctx context.Context, status domain.MemoStatus) (int64, error) {
	var count int64
	q := r.dao.db.WithContext(ctx).Model(&model.Memo{})
	if status != "" {
		q = q.Where("status = ?", string(status))
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountSum 获取各状态的备忘录数量
func (r *memoRepository) CountSum(ctx context.Context) (*domain.MemoCountResult, error) {
	result := &domain.MemoCountResult{}

	var err error
	if result.Total, err = r.ListCount(ctx, ""); err != nil {
		return nil, err
	}
	if result.Pending, err = r.ListCount(ctx, domain.MemoStatusPending); err != nil {
		return nil, err
	}
	if result.Exported, err = r.ListCount(ctx, domain.MemoStatusExported); err != nil {
		return nil, err
	}
	return result, nil
}
