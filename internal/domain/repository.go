// Package domain 定义领域模型和接口
package domain

import "context"

// MemoRepository 备忘录仓储接口
type MemoRepository interface {
	// GetByID 根据ID获取备忘录
	GetByID(ctx context.Context, id int64) (*Memo, error)

	// Create 创建备忘录
	Create(ctx context.Context, memo *Memo) (*Memo, error)

	// Update 更新备忘录
	Update(ctx context.Context, memo *Memo) (*Memo, error)

	// Delete 删除备忘录
	Delete(ctx context.Context, id int64) error

	// MarkExported 标记备忘录为已导出
	MarkExported(ctx context.Context, ids []int64) error

	// List 分页获取备忘录列表（按创建时间倒序）
	// status: 空字符串表示不过滤
	List(ctx context.Context, status MemoStatus, page, pageSize int) ([]*Memo, error)

	// ListPending 获取所有未导出的备忘录（按创建时间正序）
	ListPending(ctx context.Context) ([]*Memo, error)

	// ListCount 获取备忘录数量
	ListCount(ctx context.Context, status MemoStatus) (int64, error)

	// CountSum 获取各状态的备忘录数量
	CountSum(ctx context.Context) (*MemoCountResult, error)
}

// MemoHistoryRepository 备忘录历史仓储接口
type MemoHistoryRepository interface {
	// Create 追加一条历史记录
	Create(ctx context.Context, history *MemoHistory) (*MemoHistory, error)

	// ListByMemoID 获取指定备忘录的历史（按版本倒序）
	ListByMemoID(ctx context.Context, memoID int64) ([]*MemoHistory, error)

	// LatestVersion 获取指定备忘录的最新版本号，无历史时返回 0
	LatestVersion(ctx context.Context, memoID int64) (int64, error)

	// DeleteByMemoID 删除指定备忘录的全部历史
	DeleteByMemoID(ctx context.Context, memoID int64) error

	// DeleteBefore 删除指定时间之前的历史记录，返回删除条数
	DeleteBefore(ctx context.Context, timestamp int64) (int64, error)
}

// SettingRepository 连接配置仓储接口
// 配置は単一行で管理する
type SettingRepository interface {
	// Get 获取当前配置，不存在时返回 gorm.ErrRecordNotFound
	Get(ctx context.Context) (*ConnectionSetting, error)

	// Save 保存配置（不存在则创建，存在则覆盖）
	Save(ctx context.Context, setting *ConnectionSetting) (*ConnectionSetting, error)

	// Clear 删除配置
	Clear(ctx context.Context) error
}

// SnapshotRepository 数据快照仓储接口
// 最新の一件のみ保持する
type SnapshotRepository interface {
	// Get 获取最新快照，不存在时返回 gorm.ErrRecordNotFound
	Get(ctx context.Context) (*Snapshot, error)

	// Save 保存快照并替换旧快照
	Save(ctx context.Context, snapshot *Snapshot) (*Snapshot, error)
}
