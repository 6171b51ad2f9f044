// Package service 实现业务逻辑层
package service

import (
	"context"
	"time"

	"github.com/haierkeys/sheet-memo-dashboard/internal/domain"
	"github.com/haierkeys/sheet-memo-dashboard/internal/dto"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/code"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/convert"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/logger"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/timex"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExportHeader 导出先シートの固定ヘッダ行
var ExportHeader = []string{"作成日時", "テキスト内容", "画像サイズ", "エクスポート日時"}

// exportTextPlaceholder テキストが空のメモの出力値
const exportTextPlaceholder = "（テキストなし）"

// ExportService 定义备忘录导出业务服务接口
type ExportService interface {
	// ExportOne 导出单条备忘录
	ExportOne(ctx context.Context, id int64, sheet string) (*dto.ExportResultDTO, error)

	// ExportMany 批量导出备忘录
	// params.IDs 空时导出全部未导出分
	ExportMany(ctx context.Context, params *dto.ExportRequest) (*dto.ExportResultDTO, error)
}

// exportService 实现 ExportService 接口
type exportService struct {
	memoRepo       domain.MemoRepository
	settingRepo    domain.SettingRepository
	gatewayFactory GatewayFactory
	logger         *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(memoRepo domain.MemoRepository, settingRepo domain.SettingRepository, factory GatewayFactory, l *zap.Logger) ExportService {
	return &exportService{
		memoRepo:       memoRepo,
		settingRepo:    settingRepo,
		gatewayFactory: factory,
		logger:         l,
	}
}

// formatRow 将备忘录格式化为导出行
// [作成日時, テキスト or プレースホルダ, 人間可読サイズ or "-", エクスポート時刻]
func formatRow(memo *domain.Memo, exportedAt time.Time) []string {
	text := memo.Text
	if text == "" {
		text = exportTextPlaceholder
	}
	size := "-"
	if memo.ImageSize > 0 {
		size = convert.FormatSize(memo.ImageSize)
	}
	return []string{
		timex.Time(memo.CreatedAt).String(),
		text,
		size,
		timex.Time(exportedAt).String(),
	}
}

// resolveSheet 确定导出先工作表名称
func (s *exportService) resolveSheet(ctx context.Context, requested string) string {
	if requested != "" {
		return requested
	}
	setting, err := s.settingRepo.Get(ctx)
	if err != nil {
		return domain.DefaultSheetName
	}
	return setting.SheetName()
}

// ExportOne 导出单条备忘录
func (s *exportService) ExportOne(ctx context.Context, id int64, sheet string) (*dto.ExportResultDTO, error) {
	memo, err := s.memoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorMemoNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.export(ctx, []*domain.Memo{memo}, sheet)
}

// ExportMany 批量导出备忘录
func (s *exportService) ExportMany(ctx context.Context, params *dto.ExportRequest) (*dto.ExportResultDTO, error) {
	var memos []*domain.Memo

	if len(params.IDs) == 0 {
		pending, err := s.memoRepo.ListPending(ctx)
		if err != nil {
			return nil, code.ErrorDBQuery.WithDetails(err.Error())
		}
		memos = pending
	} else {
		for _, id := range params.IDs {
			memo, err := s.memoRepo.GetByID(ctx, id)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, code.ErrorMemoNotFound.WithData(id)
				}
				return nil, code.ErrorDBQuery.WithDetails(err.Error())
			}
			memos = append(memos, memo)
		}
	}

	if len(memos) == 0 {
		return nil, code.ErrorExportEmptyBatch
	}
	return s.export(ctx, memos, params.Sheet)
}

// export 执行导出：一回の存在チェック付き一括追加 → 逐次マーク
// 追加成功後のマーク失敗はロールバックしない（at-least-once）
func (s *exportService) export(ctx context.Context, memos []*domain.Memo, sheet string) (*dto.ExportResultDTO, error) {
	gw, err := s.gatewayFactory(ctx)
	if err != nil {
		return nil, err
	}

	sheetName := s.resolveSheet(ctx, sheet)
	exportedAt := time.Now()

	rows := make([][]string, 0, len(memos))
	ids := make([]int64, 0, len(memos))
	for _, memo := range memos {
		rows = append(rows, formatRow(memo, exportedAt))
		ids = append(ids, memo.ID)
	}

	if err := gw.AppendRows(ctx, sheetName, ExportHeader, rows); err != nil {
		return nil, err
	}

	result := &dto.ExportResultDTO{
		Sheet:    sheetName,
		Appended: int64(len(rows)),
		MemoIDs:  ids,
	}

	// 逐次マーク。途中失敗しても既に追記した行はそのまま残る
	for _, id := range ids {
		if err := s.memoRepo.MarkExported(ctx, []int64{id}); err != nil {
			s.logger.Error("markExported failed after append",
				zap.Int64(logger.FieldMemoID, id),
				zap.String(logger.FieldSheet, sheetName),
				zap.Error(err),
			)
			return result, code.ErrorExportMarkFailed.WithData(result)
		}
		result.Marked++
	}

	s.logger.Info("memo export finished",
		zap.String(logger.FieldSheet, sheetName),
		zap.Int64(logger.FieldRows, result.Appended),
	)
	return result, nil
}
