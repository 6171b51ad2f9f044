// Package service 实现业务逻辑层
package service

import (
	"context"

	"github.com/haierkeys/sheet-memo-dashboard/internal/domain"
	"github.com/haierkeys/sheet-memo-dashboard/internal/dto"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/code"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/timex"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SettingService 定义连接配置业务服务接口
type SettingService interface {
	// Save 保存连接配置（全量上書き）
	Save(ctx context.Context, params *dto.SettingSaveRequest) (*dto.SettingDTO, error)

	// Load 获取当前配置，未保存時はデフォルト値を返す
	Load(ctx context.Context) (*dto.SettingDTO, error)

	// Clear 删除配置
	Clear(ctx context.Context) error
}

// settingService 实现 SettingService 接口
type settingService struct {
	settingRepo domain.SettingRepository
	logger      *zap.Logger
}

// NewSettingService 创建 SettingService 实例
func NewSettingService(settingRepo domain.SettingRepository, l *zap.Logger) SettingService {
	return &settingService{
		settingRepo: settingRepo,
		logger:      l,
	}
}

// domainToDTO 将领域模型转换为 DTO
// 秘匿値は有無のみ返す
func (s *settingService) domainToDTO(setting *domain.ConnectionSetting) *dto.SettingDTO {
	return &dto.SettingDTO{
		TransportMode:     string(setting.TransportMode),
		SpreadsheetID:     setting.SpreadsheetID,
		APIKeySet:         setting.APIKey != "",
		RelayURL:          setting.RelayURL,
		RelayTokenSet:     setting.RelayToken != "",
		DefaultSheet:      setting.SheetName(),
		RefreshIntervalMs: setting.RefreshIntervalMs,
		IsConfigured:      setting.IsConfigured(),
		UpdatedAt:         timex.Time(setting.UpdatedAt),
	}
}

// Save 保存连接配置
func (s *settingService) Save(ctx context.Context, params *dto.SettingSaveRequest) (*dto.SettingDTO, error) {
	saved, err := s.settingRepo.Save(ctx, &domain.ConnectionSetting{
		TransportMode:     domain.TransportMode(params.TransportMode),
		SpreadsheetID:     params.SpreadsheetID,
		APIKey:            params.APIKey,
		RelayURL:          params.RelayURL,
		RelayToken:        params.RelayToken,
		DefaultSheet:      params.DefaultSheet,
		RefreshIntervalMs: params.RefreshIntervalMs,
	})
	if err != nil {
		return nil, code.ErrorSettingSaveFailed.WithDetails(err.Error())
	}

	s.logger.Info("connection setting saved",
		zap.String("transportMode", string(saved.TransportMode)),
		zap.Bool("isConfigured", saved.IsConfigured()),
	)
	return s.domainToDTO(saved), nil
}

// Load 获取当前配置
func (s *settingService) Load(ctx context.Context) (*dto.SettingDTO, error) {
	setting, err := s.settingRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 未設定時のデフォルト
			return s.domainToDTO(&domain.ConnectionSetting{
				TransportMode: domain.TransportDirect,
			}), nil
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTO(setting), nil
}

// Clear 删除配置
func (s *settingService) Clear(ctx context.Context) error {
	if err := s.settingRepo.Clear(ctx); err != nil {
		return code.ErrorSettingSaveFailed.WithDetails(err.Error())
	}
	return nil
}
