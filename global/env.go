package global

import (
	"github.com/haierkeys/sheet-memo-dashboard/pkg/fileurl"
)

var (
	// 程序执行目录
	ROOT string
	Name string = "Sheet Memo Dashboard"
)

func init() {

	filename := fileurl.GetExePath()
	ROOT = filename + "/"

}
