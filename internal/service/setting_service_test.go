package service

import (
	"context"
	"testing"

	"github.com/haierkeys/sheet-memo-dashboard/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSettingService_SaveAndLoad(t *testing.T) {
	repo := newMemorySettingRepo()
	svc := NewSettingService(repo, zap.NewNop())
	ctx := context.Background()

	saved, err := svc.Save(ctx, &dto.SettingSaveRequest{
		TransportMode: "direct",
		SpreadsheetID: "sheet-id",
		APIKey:        "secret-key",
	})
	require.NoError(t, err)
	assert.True(t, saved.IsConfigured)
	// 秘匿値は有無のみ返す
	assert.True(t, saved.APIKeySet)
	assert.Equal(t, "メモ", saved.DefaultSheet)

	loaded, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sheet-id", loaded.SpreadsheetID)
}

func TestSettingService_LoadDefaultsWhenUnset(t *testing.T) {
	svc := NewSettingService(newMemorySettingRepo(), zap.NewNop())

	loaded, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "direct", loaded.TransportMode)
	assert.False(t, loaded.IsConfigured)
	assert.Equal(t, "メモ", loaded.DefaultSheet)
}

func TestSettingService_SaveOverwritesWholesale(t *testing.T) {
	repo := newMemorySettingRepo()
	svc := NewSettingService(repo, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Save(ctx, &dto.SettingSaveRequest{
		TransportMode: "direct",
		SpreadsheetID: "sheet-id",
		APIKey:        "secret-key",
	})
	require.NoError(t, err)

	// relay へ切り替えると direct の値は残らない
	saved, err := svc.Save(ctx, &dto.SettingSaveRequest{
		TransportMode: "relay",
		RelayURL:      "https://script.google.com/macros/s/xxx/exec",
	})
	require.NoError(t, err)
	assert.True(t, saved.IsConfigured)
	assert.False(t, saved.APIKeySet)
	assert.Empty(t, saved.SpreadsheetID)
}

func TestSettingService_Clear(t *testing.T) {
	repo := newMemorySettingRepo()
	svc := NewSettingService(repo, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Save(ctx, &dto.SettingSaveRequest{TransportMode: "direct"})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx))

	loaded, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.False(t, loaded.IsConfigured)
}
