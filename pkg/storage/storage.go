// Package storage 提供可插拔的二进制文件存储
// メモ画像はここに保存し、数据库只保存文件键和大小
package storage

import (
	"io"

	"github.com/haierkeys/sheet-memo-dashboard/pkg/storage/aws_s3"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/storage/local_fs"

	"github.com/pkg/errors"
)

type Type = string

const LOCAL Type = "localfs"
const S3 Type = "s3"

var StorageTypeMap = map[Type]bool{
	LOCAL: true,
	S3:    true,
}

// Config Unified storage configuration
// Config 统一存储配置
type Config struct {
	Type Type `yaml:"type" default:"localfs"`

	// Local FS
	SavePath string `yaml:"save-path" default:"storage/uploads"`

	// Cloud Storage (S3)
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
}

// Storager 存储接口
type Storager interface {
	// PutFile 保存文件，返回保存后的文件键
	PutFile(fileKey string, file io.Reader, cType string) (string, error)
	// GetFile 读取文件
	GetFile(fileKey string) (io.ReadCloser, error)
	// Delete 删除文件
	Delete(fileKey string) error
}

// NewClient creates a storage client for the configured type
// NewClient 根据配置类型创建存储客户端
func NewClient(c *Config) (Storager, error) {
	switch c.Type {
	case LOCAL:
		return local_fs.NewClient(&local_fs.Config{
			SavePath: c.SavePath,
		})
	case S3:
		return aws_s3.NewClient(&aws_s3.Config{
			Region:          c.Region,
			BucketName:      c.BucketName,
			AccessKeyID:     c.AccessKeyID,
			AccessKeySecret: c.AccessKeySecret,
			CustomPath:      c.CustomPath,
		})
	}
	return nil, errors.Errorf("storage: unsupported type %q", c.Type)
}
