package task

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/haierkeys/sheet-memo-dashboard/internal/app"
	"github.com/haierkeys/sheet-memo-dashboard/internal/domain"
	"github.com/haierkeys/sheet-memo-dashboard/internal/service"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SnapshotRefreshTask 周期刷新仪表盘快照缓存
// 実際の更新間隔は保存済み設定の refreshIntervalMs を優先し、0 なら自動更新しない
type SnapshotRefreshTask struct {
	settingRepo domain.SettingRepository
	dashboard   service.DashboardService
	logger      *zap.Logger
	loop        time.Duration

	mu      sync.Mutex
	lastRun time.Time
}

func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		return &SnapshotRefreshTask{
			settingRepo: appContainer.SettingRepo,
			dashboard:   appContainer.DashboardService,
			logger:      appContainer.Logger(),
			loop:        appContainer.Config().GetSnapshotRefreshInterval(),
		}, nil
	})
}

func (t *SnapshotRefreshTask) Name() string {
	return "snapshot_refresh"
}

func (t *SnapshotRefreshTask) Run(ctx context.Context) error {
	setting, err := t.settingRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 未配置连接，跳过本轮刷新
			return nil
		}
		return err
	}
	if !setting.IsConfigured() {
		return nil
	}

	// refreshIntervalMs 0 は自動更新オフ
	if setting.RefreshIntervalMs == 0 {
		return nil
	}

	// 设置中的刷新间隔大于调度间隔时，按设置节流
	interval := t.loop
	if ri := time.Duration(setting.RefreshIntervalMs) * time.Millisecond; ri > interval {
		interval = ri
	}

	t.mu.Lock()
	if !t.lastRun.IsZero() && time.Since(t.lastRun) < interval {
		t.mu.Unlock()
		return nil
	}
	t.lastRun = time.Now()
	t.mu.Unlock()

	result, err := t.dashboard.Refresh(ctx)
	if err != nil {
		return err
	}

	if result.Degraded {
		t.logger.Warn("snapshot refresh degraded, serving cached data",
			zap.Int64("sheetCount", result.SheetCount))
		return nil
	}

	t.logger.Info("snapshot refreshed",
		zap.Int64("sheetCount", result.SheetCount))

	return nil
}

func (t *SnapshotRefreshTask) LoopInterval() time.Duration {
	return t.loop
}

func (t *SnapshotRefreshTask) IsStartupRun() bool {
	return true
}
