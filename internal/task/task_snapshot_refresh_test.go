package task

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/sheet-memo-dashboard/internal/domain"
	"github.com/haierkeys/sheet-memo-dashboard/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// stubSettingRepo 固定応答の設定仓储
type stubSettingRepo struct {
	setting *domain.ConnectionSetting
}

func (r *stubSettingRepo) Get(ctx context.Context) (*domain.ConnectionSetting, error) {
	if r.setting == nil {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *r.setting
	return &clone, nil
}

func (r *stubSettingRepo) Save(ctx context.Context, setting *domain.ConnectionSetting) (*domain.ConnectionSetting, error) {
	r.setting = setting
	return setting, nil
}

func (r *stubSettingRepo) Clear(ctx context.Context) error {
	r.setting = nil
	return nil
}

// countingDashboard 记录 Refresh 调用次数
type countingDashboard struct {
	refreshes int
	degraded  bool
}

func (d *countingDashboard) Refresh(ctx context.Context) (*dto.DashboardRefreshDTO, error) {
	d.refreshes++
	return &dto.DashboardRefreshDTO{SheetCount: 1, Degraded: d.degraded}, nil
}

func (d *countingDashboard) View(ctx context.Context, params *dto.DashboardViewRequest) (*dto.DashboardViewDTO, error) {
	return &dto.DashboardViewDTO{}, nil
}

func newRefreshTask(setting *domain.ConnectionSetting) (*SnapshotRefreshTask, *countingDashboard) {
	dashboard := &countingDashboard{}
	return &SnapshotRefreshTask{
		settingRepo: &stubSettingRepo{setting: setting},
		dashboard:   dashboard,
		logger:      zap.NewNop(),
		loop:        time.Minute,
	}, dashboard
}

func TestSnapshotRefreshTask_ZeroIntervalDisablesRefresh(t *testing.T) {
	task, dashboard := newRefreshTask(&domain.ConnectionSetting{
		TransportMode:     domain.TransportDirect,
		SpreadsheetID:     "sheet-id",
		APIKey:            "key",
		RefreshIntervalMs: 0,
	})

	require.NoError(t, task.Run(context.Background()))
	assert.Equal(t, 0, dashboard.refreshes)
}

func TestSnapshotRefreshTask_RunsWhenIntervalConfigured(t *testing.T) {
	task, dashboard := newRefreshTask(&domain.ConnectionSetting{
		TransportMode:     domain.TransportDirect,
		SpreadsheetID:     "sheet-id",
		APIKey:            "key",
		RefreshIntervalMs: 60_000,
	})
	ctx := context.Background()

	require.NoError(t, task.Run(ctx))
	assert.Equal(t, 1, dashboard.refreshes)

	// 間隔が経過するまで連続実行はスキップされる
	require.NoError(t, task.Run(ctx))
	assert.Equal(t, 1, dashboard.refreshes)
}

func TestSnapshotRefreshTask_SkipsWhenNotConfigured(t *testing.T) {
	missing, dashboard := newRefreshTask(nil)
	require.NoError(t, missing.Run(context.Background()))
	assert.Equal(t, 0, dashboard.refreshes)

	incomplete, dashboard2 := newRefreshTask(&domain.ConnectionSetting{
		TransportMode:     domain.TransportDirect,
		SpreadsheetID:     "sheet-id",
		RefreshIntervalMs: 60_000,
	})
	require.NoError(t, incomplete.Run(context.Background()))
	assert.Equal(t, 0, dashboard2.refreshes)
}
