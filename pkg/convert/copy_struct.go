package convert

import (
	"github.com/bytedance/sonic"
	"github.com/jinzhu/copier"
)

// StructAssign copies same-named fields from src to dst
// StructAssign 将 src 的同名字段复制到 dst，优先使用 copier，
// 失败时退回 JSON 序列化方式
func StructAssign(dst interface{}, src interface{}) error {
	if err := copier.Copy(dst, src); err == nil {
		return nil
	}

	str, err := sonic.Marshal(src)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(str, dst)
}
