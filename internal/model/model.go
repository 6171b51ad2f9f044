// Package model 定义数据模型
package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 迁移指定模型的表结构
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "Memo":
		return db.AutoMigrate(Memo{})

	case "MemoHistory":
		return db.AutoMigrate(MemoHistory{})

	case "ConnectionSetting":
		return db.AutoMigrate(ConnectionSetting{})

	case "Snapshot":
		return db.AutoMigrate(Snapshot{})
	}
	return nil
}

// AutoMigrateAll 迁移全部表结构
func AutoMigrateAll(db *gorm.DB) error {
	for _, key := range []string{"Memo", "MemoHistory", "ConnectionSetting", "Snapshot"} {
		if err := AutoMigrate(db, key); err != nil {
			return err
		}
	}
	return nil
}
