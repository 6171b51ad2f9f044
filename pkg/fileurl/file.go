// Package fileurl 提供文件路径相关的工具函数
package fileurl

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IsDir determines if the given path is a directory
// IsDir 判断所给路径是否为文件夹
func IsDir(p string) bool {
	s, err := os.Stat(p)
	if err != nil {
		return false
	}
	return s.IsDir()
}

// IsExist determines if the given path exists
// IsExist 判断所给路径是否存在
func IsExist(p string) bool {
	_, err := os.Stat(p)
	return err == nil || os.IsExist(err)
}

// GetFileExt gets file extension
// GetFileExt 获取文件后缀
func GetFileExt(name string) string {
	return path.Ext(name)
}

// GetRandomImageName returns a collision free file name for an uploaded image
// GetRandomImageName 为上传图片生成不冲突的文件名，保留原始扩展名
func GetRandomImageName(fileName string) string {
	ext := GetFileExt(fileName)
	if ext == "" {
		ext = ".png"
	}
	return uuid.New().String() + ext
}

// GetDatePath gets date save path
// GetDatePath 获取日期保存路径
func GetDatePath(timeFormat string) string {
	now := time.Now()
	if timeFormat == "" {
		timeFormat = "200601/02"
	}
	return PathSuffixCheckAdd(now.Format(timeFormat), "/")
}

// PathSuffixCheckAdd 确保路径以给定后缀结尾
func PathSuffixCheckAdd(p string, suffix string) string {
	if p == "" {
		return p
	}
	if !strings.HasSuffix(p, suffix) {
		p = p + suffix
	}
	return p
}

// CreatePath 创建文件所在的目录
func CreatePath(file string, perm os.FileMode) error {
	dir := filepath.Dir(file)
	if IsExist(dir) {
		return nil
	}
	return os.MkdirAll(dir, perm)
}

// GetExePath 获取可执行文件所在目录
func GetExePath() string {
	exe, err := os.Executable()
	if err != nil {
		dir, _ := os.Getwd()
		return dir
	}
	return filepath.Dir(exe)
}
