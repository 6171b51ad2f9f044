// Package diff 基于 diff-match-patch 计算文本变更
package diff

import (
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ChangeStat 一次文本变更的统计
type ChangeStat struct {
	Inserted int // 插入文字数
	Deleted  int // 削除文字数
}

// Stat 计算 before → after 的插入/删除文字数
func Stat(before, after string) ChangeStat {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)

	var stat ChangeStat
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			stat.Inserted += len([]rune(d.Text))
		case diffmatchpatch.DiffDelete:
			stat.Deleted += len([]rune(d.Text))
		}
	}
	return stat
}

// Summary 返回人可读的变更摘要，无变更时返回空字符串
func Summary(before, after string) string {
	stat := Stat(before, after)
	if stat.Inserted == 0 && stat.Deleted == 0 {
		return ""
	}
	return fmt.Sprintf("+%d -%d", stat.Inserted, stat.Deleted)
}

// Patch 返回 before → after 的补丁文本，用于历史记录展示
func Patch(before, after string) string {
	dmp := diffmatchpatch.New()
	patches := dmp.PatchMake(before, after)
	return dmp.PatchToText(patches)
}
