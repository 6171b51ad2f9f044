// Package dao 实现数据访问层
package dao

import (
	"context"
	"time"

	"github.com/haierkeys/sheet-memo-dashboard/internal/domain"
	"github.com/haierkeys/sheet-memo-dashboard/internal/model"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/timex"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// settingRepository 实现 domain.SettingRepository 接口
// 接続設定は 1 行のみ保持する
type settingRepository struct {
	dao *Dao
}

// NewSettingRepository 创建 SettingRepository 实例
func NewSettingRepository(dao *Dao) domain.SettingRepository {
	return &settingRepository{dao: dao}
}

func (r *settingRepository) toDomain(m *model.ConnectionSetting) *domain.ConnectionSetting {
	if m == nil {
		return nil
	}
	return &domain.ConnectionSetting{
		ID:                m.ID,
		TransportMode:     domain.TransportMode(m.TransportMode),
		SpreadsheetID:     m.SpreadsheetID,
		APIKey:            m.APIKey,
		RelayURL:          m.RelayURL,
		RelayToken:        m.RelayToken,
		DefaultSheet:      m.DefaultSheet,
		RefreshIntervalMs: m.RefreshMs,
		CreatedAt:         time.Time(m.CreatedAt),
		UpdatedAt:         time.Time(m.UpdatedAt),
	}
}

func (r *settingRepository) toModel(setting *domain.ConnectionSetting) *model.ConnectionSetting {
	return &model.ConnectionSetting{
		ID:            setting.ID,
		TransportMode: string(setting.TransportMode),
		SpreadsheetID: setting.SpreadsheetID,
		APIKey:        setting.APIKey,
		RelayURL:      setting.RelayURL,
		RelayToken:    setting.RelayToken,
		DefaultSheet:  setting.DefaultSheet,
		RefreshMs:     setting.RefreshIntervalMs,
		CreatedAt:     timex.Time(setting.CreatedAt),
		UpdatedAt:     timex.Time(setting.UpdatedAt),
	}
}

// Get 获取当前配置
func (r *settingRepository) Get(ctx context.Context) (*domain.ConnectionSetting, error) {
	var m model.ConnectionSetting
	if err := r.dao.db.WithContext(ctx).Order("id ASC").First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Save 保存配置（不存在则创建，存在则覆盖）
func (r *settingRepository) Save(ctx context.Context, setting *domain.ConnectionSetting) (*domain.ConnectionSetting, error) {
	now := time.Now()
	setting.UpdatedAt = now

	var current model.ConnectionSetting
	err := r.dao.db.WithContext(ctx).Order("id ASC").First(&current).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting.ID = 0
		setting.CreatedAt = now
		m := r.toModel(setting)
		if err := r.dao.db.WithContext(ctx).Create(m).Error; err != nil {
			return nil, err
		}
		return r.toDomain(m), nil
	case err != nil:
		return nil, err
	}

	setting.ID = current.ID
	setting.CreatedAt = time.Time(current.CreatedAt)
	m := r.toModel(setting)
	if err := r.dao.db.WithContext(ctx).Save(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Clear 删除配置
func (r *settingRepository) Clear(ctx context.Context) error {
	return r.dao.db.WithContext(ctx).Where("1 = 1").Delete(&model.ConnectionSetting{}).Error
}
