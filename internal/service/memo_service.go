// Package service 实现业务逻辑层
package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/haierkeys/sheet-memo-dashboard/internal/domain"
	"github.com/haierkeys/sheet-memo-dashboard/internal/dto"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/code"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/diff"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/fileurl"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/logger"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/storage"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/timex"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ImageUpload 备忘录图片上传载体
type ImageUpload struct {
	Reader io.Reader
	Size   int64
	Mime   string
	// Name 元のファイル名（拡張子の決定に使う）
	Name string
}

// MemoService 定义备忘录业务服务接口
type MemoService interface {
	// Create 创建备忘录，图片必须（手書きメモの取り込みが前提）
	Create(ctx context.Context, params *dto.MemoCreateRequest, image *ImageUpload) (*dto.MemoDTO, error)

	// Get 获取单条备忘录
	Get(ctx context.Context, id int64) (*dto.MemoDTO, error)

	// GetImage 读取备忘录图片
	GetImage(ctx context.Context, id int64) (io.ReadCloser, string, error)

	// List 分页获取备忘录列表（创建时间倒序）
	List(ctx context.Context, params *dto.MemoListRequest, page, pageSize int) ([]*dto.MemoDTO, int64, error)

	// Update 更新备忘录文本，记录修改历史
	Update(ctx context.Context, id int64, params *dto.MemoUpdateRequest) (*dto.MemoDTO, error)

	// Delete 删除备忘录及其图片和历史
	Delete(ctx context.Context, id int64) error

	// History 获取备忘录修改历史
	History(ctx context.Context, id int64) ([]*dto.MemoHistoryDTO, error)

	// Count 获取备忘录数量统计
	Count(ctx context.Context) (*dto.MemoCountDTO, error)

	// CleanupHistory 清理指定时间之前的修改历史，返回删除条数
	CleanupHistory(ctx context.Context, cutoffTime int64) (int64, error)
}

// memoService 实现 MemoService 接口
type memoService struct {
	memoRepo    domain.MemoRepository
	historyRepo domain.MemoHistoryRepository
	storage     storage.Storager
	logger      *zap.Logger
	config      *ServiceConfig
}

// NewMemoService 创建 MemoService 实例
func NewMemoService(memoRepo domain.MemoRepository, historyRepo domain.MemoHistoryRepository, store storage.Storager, l *zap.Logger, config *ServiceConfig) MemoService {
	return &memoService{
		memoRepo:    memoRepo,
		historyRepo: historyRepo,
		storage:     store,
		logger:      l,
		config:      config,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *memoService) domainToDTO(memo *domain.Memo) *dto.MemoDTO {
	if memo == nil {
		return nil
	}
	d := &dto.MemoDTO{
		ID:         memo.ID,
		Text:       memo.Text,
		ImageSize:  memo.ImageSize,
		Status:     string(memo.Status),
		ExportedAt: timex.Time(memo.ExportedAt),
		CreatedAt:  timex.Time(memo.CreatedAt),
		UpdatedAt:  timex.Time(memo.UpdatedAt),
	}
	if memo.HasImage() {
		d.ImageURL = fmt.Sprintf("/api/memos/%d/image", memo.ID)
	}
	return d
}

// Create 创建备忘录
func (s *memoService) Create(ctx context.Context, params *dto.MemoCreateRequest, image *ImageUpload) (*dto.MemoDTO, error) {
	if image == nil || image.Reader == nil {
		return nil, code.ErrorMemoImageRequired
	}

	fileKey := fileurl.GetDatePath("") + fileurl.GetRandomImageName(image.Name)
	if _, err := s.storage.PutFile(fileKey, image.Reader, image.Mime); err != nil {
		return nil, code.ErrorMemoSaveFailed.WithDetails(err.Error())
	}

	memo, err := s.memoRepo.Create(ctx, &domain.Memo{
		Text:      params.Text,
		ImageKey:  fileKey,
		ImageMime: image.Mime,
		ImageSize: image.Size,
		Status:    domain.MemoStatusPending,
	})
	if err != nil {
		// DB 書き込みに失敗したら保存済みの画像は掃除する
		if delErr := s.storage.Delete(fileKey); delErr != nil {
			s.logger.Warn("orphan image cleanup failed",
				zap.String(logger.FieldFileKey, fileKey),
				zap.Error(delErr),
			)
		}
		return nil, code.ErrorMemoSaveFailed.WithDetails(err.Error())
	}

	s.logger.Info("memo created",
		zap.Int64(logger.FieldMemoID, memo.ID),
		zap.Int64(logger.FieldSize, memo.ImageSize),
	)
	return s.domainToDTO(memo), nil
}

// Get 获取单条备忘录
func (s *memoService) Get(ctx context.Context, id int64) (*dto.MemoDTO, error) {
	memo, err := s.memoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorMemoNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTO(memo), nil
}

// GetImage 读取备忘录图片
func (s *memoService) GetImage(ctx context.Context, id int64) (io.ReadCloser, string, error) {
	memo, err := s.memoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", code.ErrorMemoNotFound
		}
		return nil, "", code.ErrorDBQuery.WithDetails(err.Error())
	}
	if !memo.HasImage() {
		return nil, "", code.ErrorMemoImageLoad.WithDetails("memo has no image")
	}

	file, err := s.storage.GetFile(memo.ImageKey)
	if err != nil {
		return nil, "", code.ErrorMemoImageLoad.WithDetails(err.Error())
	}
	return file, memo.ImageMime, nil
}

// List 分页获取备忘录列表
func (s *memoService) List(ctx context.Context, params *dto.MemoListRequest, page, pageSize int) ([]*dto.MemoDTO, int64, error) {
	status := domain.MemoStatus(params.Status)

	memos, err := s.memoRepo.List(ctx, status, page, pageSize)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}
	count, err := s.memoRepo.ListCount(ctx, status)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}

	out := make([]*dto.MemoDTO, 0, len(memos))
	for _, memo := range memos {
		out = append(out, s.domainToDTO(memo))
	}
	return out, count, nil
}

// Update 更新备忘录文本，文本变更时记录差分历史
func (s *memoService) Update(ctx context.Context, id int64, params *dto.MemoUpdateRequest) (*dto.MemoDTO, error) {
	memo, err := s.memoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorMemoNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	before := memo.Text
	memo.Text = params.Text

	updated, err := s.memoRepo.Update(ctx, memo)
	if err != nil {
		return nil, code.ErrorMemoSaveFailed.WithDetails(err.Error())
	}

	if before != params.Text {
		s.recordHistory(ctx, id, before, params.Text)
	}
	return s.domainToDTO(updated), nil
}

// recordHistory 记录文本修改历史
// 履歴の失敗は更新本体を妨げない
func (s *memoService) recordHistory(ctx context.Context, memoID int64, before, after string) {
	version, err := s.historyRepo.LatestVersion(ctx, memoID)
	if err != nil {
		s.logger.Warn("history version lookup failed",
			zap.Int64(logger.FieldMemoID, memoID),
			zap.Error(err),
		)
		return
	}

	_, err = s.historyRepo.Create(ctx, &domain.MemoHistory{
		MemoID:  memoID,
		Version: version + 1,
		Patch:   diff.Patch(before, after),
		Summary: diff.Summary(before, after),
	})
	if err != nil {
		s.logger.Warn("history create failed",
			zap.Int64(logger.FieldMemoID, memoID),
			zap.Error(err),
		)
	}
}

// Delete 删除备忘录及其图片和历史
func (s *memoService) Delete(ctx context.Context, id int64) error {
	memo, err := s.memoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorMemoNotFound
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	if err := s.memoRepo.Delete(ctx, id); err != nil {
		return code.ErrorMemoDeleteFailed.WithDetails(err.Error())
	}
	if err := s.historyRepo.DeleteByMemoID(ctx, id); err != nil {
		s.logger.Warn("history delete failed",
			zap.Int64(logger.FieldMemoID, id),
			zap.Error(err),
		)
	}
	if memo.HasImage() {
		if err := s.storage.Delete(memo.ImageKey); err != nil {
			s.logger.Warn("image delete failed",
				zap.Int64(logger.FieldMemoID, id),
				zap.String(logger.FieldFileKey, memo.ImageKey),
				zap.Error(err),
			)
		}
	}
	return nil
}

// History 获取备忘录修改历史
func (s *memoService) History(ctx context.Context, id int64) ([]*dto.MemoHistoryDTO, error) {
	if _, err := s.memoRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorMemoNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	histories, err := s.historyRepo.ListByMemoID(ctx, id)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	out := make([]*dto.MemoHistoryDTO, 0, len(histories))
	for _, h := range histories {
		out = append(out, &dto.MemoHistoryDTO{
			ID:        h.ID,
			MemoID:    h.MemoID,
			Version:   h.Version,
			Summary:   h.Summary,
			CreatedAt: timex.Time(h.CreatedAt),
		})
	}
	return out, nil
}

// Count 获取备忘录数量统计
func (s *memoService) Count(ctx context.Context) (*dto.MemoCountDTO, error) {
	result, err := s.memoRepo.CountSum(ctx)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return &dto.MemoCountDTO{
		Total:    result.Total,
		Pending:  result.Pending,
		Exported: result.Exported,
	}, nil
}

// CleanupHistory 清理指定时间之前的修改历史
func (s *memoService) CleanupHistory(ctx context.Context, cutoffTime int64) (int64, error) {
	deleted, err := s.historyRepo.DeleteBefore(ctx, cutoffTime)
	if err != nil {
		return 0, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if deleted > 0 {
		s.logger.Info("memo history cleanup",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", time.Unix(cutoffTime, 0)),
		)
	}
	return deleted, nil
}
