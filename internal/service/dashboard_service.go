// Package service 实现业务逻辑层
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/haierkeys/sheet-memo-dashboard/internal/domain"
	"github.com/haierkeys/sheet-memo-dashboard/internal/dto"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/code"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/logger"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/sheetdata"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/timex"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// DashboardService 定义仪表盘业务服务接口
type DashboardService interface {
	// Refresh 从远程拉取全部工作表并原子更新快照缓存
	// 取得失敗時は既存キャッシュへフォールバックする（劣化モード）
	Refresh(ctx context.Context) (*dto.DashboardRefreshDTO, error)

	// View 基于快照缓存组装仪表盘视图（検索・絞り込み・並び替え・集計）
	View(ctx context.Context, params *dto.DashboardViewRequest) (*dto.DashboardViewDTO, error)
}

// dashboardService 实现 DashboardService 接口
type dashboardService struct {
	snapshotRepo   domain.SnapshotRepository
	settingRepo    domain.SettingRepository
	gatewayFactory GatewayFactory
	logger         *zap.Logger

	// sf 并发的な更新要求を一回の取得に束ねる
	sf singleflight.Group

	// seq 更新サイクルごとの単調トークン
	// writeMu + publishedToken で書き戻し時に新旧比較し、古い完了が勝つ競合を防ぐ
	seq            atomic.Int64
	writeMu        sync.Mutex
	publishedToken int64

	// degraded 直近の更新がフォールバックで終わったかどうか
	degraded atomic.Bool
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(snapshotRepo domain.SnapshotRepository, settingRepo domain.SettingRepository, factory GatewayFactory, l *zap.Logger) DashboardService {
	return &dashboardService{
		snapshotRepo:   snapshotRepo,
		settingRepo:    settingRepo,
		gatewayFactory: factory,
		logger:         l,
	}
}

// Refresh 执行一次刷新
func (s *dashboardService) Refresh(ctx context.Context) (*dto.DashboardRefreshDTO, error) {
	token := s.seq.Add(1)

	v, err, _ := s.sf.Do("dashboard-refresh", func() (any, error) {
		return s.refresh(ctx, token)
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.DashboardRefreshDTO), nil
}

func (s *dashboardService) refresh(ctx context.Context, token int64) (*dto.DashboardRefreshDTO, error) {
	started := time.Now()

	gw, err := s.gatewayFactory(ctx)
	if err != nil {
		return s.fallback(ctx, err)
	}

	metas, err := gw.ListSheets(ctx)
	if err != nil {
		return s.fallback(ctx, err)
	}

	payloads, err := gw.FetchAllSheets(ctx)
	if err != nil {
		return s.fallback(ctx, err)
	}

	// 書き戻しはトークン比較で直列化する
	// 自分より新しいサイクルが既に公開済みなら、この結果は破棄する
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if token < s.publishedToken {
		s.logger.Warn("stale refresh result discarded",
			zap.Int64(logger.FieldToken, token),
			zap.Int64("publishedToken", s.publishedToken),
		)
		snapshot, err := s.snapshotRepo.Get(ctx)
		if err != nil {
			return nil, code.ErrorRefreshFailed.WithDetails(err.Error())
		}
		return &dto.DashboardRefreshDTO{
			SheetCount: int64(len(snapshot.Sheets)),
			LastSyncAt: timex.Time(snapshot.FetchedAt),
		}, nil
	}

	snapshot, err := s.snapshotRepo.Save(ctx, &domain.Snapshot{
		Metas:     metas,
		Sheets:    payloads,
		FetchedAt: time.Now(),
	})
	if err != nil {
		return nil, code.ErrorRefreshFailed.WithDetails(err.Error())
	}
	s.publishedToken = token
	s.degraded.Store(false)

	s.logger.Info("dashboard refreshed",
		zap.Int("sheetCount", len(payloads)),
		zap.Int64(logger.FieldToken, token),
		zap.Duration(logger.FieldDuration, time.Since(started)),
	)
	return &dto.DashboardRefreshDTO{
		SheetCount: int64(len(snapshot.Sheets)),
		LastSyncAt: timex.Time(snapshot.FetchedAt),
	}, nil
}

// fallback 取得失敗時、最後の正常快照があればそれを返す
// 無ければ元のエラーをそのまま伝播する
func (s *dashboardService) fallback(ctx context.Context, cause error) (*dto.DashboardRefreshDTO, error) {
	snapshot, err := s.snapshotRepo.Get(ctx)
	if err != nil {
		return nil, cause
	}

	s.degraded.Store(true)
	s.logger.Warn("refresh failed, serving cached snapshot",
		zap.Time("fetchedAt", snapshot.FetchedAt),
		zap.Error(cause),
	)
	return &dto.DashboardRefreshDTO{
		SheetCount: int64(len(snapshot.Sheets)),
		LastSyncAt: timex.Time(snapshot.FetchedAt),
		Degraded:   true,
	}, nil
}

// View 组装仪表盘视图
// 快照が無ければ一度だけ更新を試み、それでも無ければ空表示を返す
func (s *dashboardService) View(ctx context.Context, params *dto.DashboardViewRequest) (*dto.DashboardViewDTO, error) {
	snapshot, err := s.snapshotRepo.Get(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if _, refreshErr := s.Refresh(ctx); refreshErr != nil {
			// 空表示（設定前の初期状態）
			return &dto.DashboardViewDTO{
				Sheets:  []*dto.SheetMetaDTO{},
				Records: []*sheetdata.Record{},
			}, nil
		}
		snapshot, err = s.snapshotRepo.Get(ctx)
	}
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	sheetName := params.Sheet
	if sheetName == "" {
		sheetName = s.defaultSheet(ctx, snapshot)
	}

	payload, ok := snapshot.Sheet(sheetName)
	if !ok {
		return nil, code.ErrorSheetNotFound.WithData(sheetName)
	}

	records := payload.Records
	if params.Search != "" {
		records = sheetdata.Search(records, params.Search)
	}
	if len(params.Filter) > 0 {
		records = sheetdata.Filter(records, params.Filter)
	}
	if params.SortField != "" {
		direction := sheetdata.SortAsc
		if params.SortOrder == "desc" {
			direction = sheetdata.SortDesc
		}
		records = sheetdata.Sort(records, params.SortField, direction)
	}

	metas := make([]*dto.SheetMetaDTO, 0, len(snapshot.Sheets))
	for i, sheet := range snapshot.Sheets {
		dtoMeta := &dto.SheetMetaDTO{Title: sheet.Title, Index: int64(i)}
		if meta, ok := snapshot.Meta(sheet.Title); ok {
			dtoMeta.Index = meta.Index
			dtoMeta.RowCount = meta.RowCount
			dtoMeta.ColumnCount = meta.ColumnCount
		} else if rowCount := int64(len(sheet.Records)); rowCount > 0 {
			dtoMeta.RowCount = rowCount + 1 // ヘッダ行
		}
		metas = append(metas, dtoMeta)
	}

	return &dto.DashboardViewDTO{
		Sheet:      sheetName,
		Sheets:     metas,
		Records:    records,
		Stats:      sheetdata.Aggregate(payload.Records),
		LastSyncAt: timex.Time(snapshot.FetchedAt),
		Degraded:   s.degraded.Load(),
	}, nil
}

// defaultSheet 视图默认工作表：設定の既定シートが快照にあればそれ、無ければ先頭
func (s *dashboardService) defaultSheet(ctx context.Context, snapshot *domain.Snapshot) string {
	if setting, err := s.settingRepo.Get(ctx); err == nil {
		if _, ok := snapshot.Sheet(setting.SheetName()); ok {
			return setting.SheetName()
		}
	}
	if len(snapshot.Sheets) > 0 {
		return snapshot.Sheets[0].Title
	}
	return domain.DefaultSheetName
}
