// Package local_fs 本地文件系统存储
package local_fs

import (
	"io"
	"os"
	"path/filepath"

	"github.com/haierkeys/sheet-memo-dashboard/pkg/fileurl"

	"github.com/pkg/errors"
)

type Config struct {
	SavePath string `yaml:"save-path" default:"storage/uploads"`
}

type LocalFS struct {
	Config *Config
}

func NewClient(c *Config) (*LocalFS, error) {
	if c.SavePath == "" {
		return nil, errors.New("local_fs: save path is empty")
	}
	return &LocalFS{Config: c}, nil
}

func (p *LocalFS) getSavePath() string {
	return fileurl.PathSuffixCheckAdd(p.Config.SavePath, "/")
}

// PutFile 保存文件到本地目录，必要时创建父目录
func (p *LocalFS) PutFile(fileKey string, file io.Reader, cType string) (string, error) {
	dstFileKey := p.getSavePath() + fileKey

	if err := fileurl.CreatePath(dstFileKey, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	dst, err := os.Create(dstFileKey)
	if err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	return fileKey, nil
}

// GetFile 读取文件
func (p *LocalFS) GetFile(fileKey string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(p.Config.SavePath, fileKey))
	if err != nil {
		return nil, errors.Wrap(err, "local_fs")
	}
	return f, nil
}

// Delete 删除文件，不存在时视为成功
func (p *LocalFS) Delete(fileKey string) error {
	dstFileKey := p.getSavePath() + fileKey
	if fileurl.IsExist(dstFileKey) {
		return os.Remove(dstFileKey)
	}
	return nil
}
