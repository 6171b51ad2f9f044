package task

import (
	"context"
	"time"

	"github.com/haierkeys/sheet-memo-dashboard/internal/app"

	"go.uber.org/zap"
)

// HistoryCleanupTask 按保留期清理备忘录修改历史
// 毎晩の定刻実行なので cron 式で調度する
type HistoryCleanupTask struct {
	app      *app.App
	cronSpec string
}

func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		return &HistoryCleanupTask{
			app:      appContainer,
			cronSpec: appContainer.Config().App.HistoryCleanupCron,
		}, nil
	})
}

func (t *HistoryCleanupTask) Name() string {
	return "memo_history_cleanup"
}

func (t *HistoryCleanupTask) CronSpec() string {
	return t.cronSpec
}

func (t *HistoryCleanupTask) Run(ctx context.Context) error {
	retention := t.app.Config().GetHistoryRetention()
	cutoffTime := time.Now().Add(-retention).Unix()

	deleted, err := t.app.MemoService.CleanupHistory(ctx, cutoffTime)
	if err != nil {
		return err
	}

	if deleted > 0 {
		t.app.Logger().Info("memo history cleanup completed",
			zap.Int64("deleted", deleted),
			zap.Duration("retention", retention))
	}

	return nil
}

func (t *HistoryCleanupTask) LoopInterval() time.Duration {
	return 0
}

func (t *HistoryCleanupTask) IsStartupRun() bool {
	return false
}
