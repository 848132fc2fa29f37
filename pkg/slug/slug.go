// Package slug 生成 URL 友好的标识
package slug

import (
	"strings"

	"github.com/google/uuid"
	gosimple "github.com/gosimple/slug"
)

// Make 将任意文本转换为小写、以 "-" 连接的 ASCII slug
// 非拉丁字符会被音译，下划线视为分隔符
func Make(seed string) string {
	return gosimple.Make(strings.ReplaceAll(seed, "_", " "))
}

// Unique 在 Make 的结果后追加 8 位随机后缀，用于需要全局唯一的 slug
// 空输入使用 fallback 作为前缀
func Unique(seed, fallback string) string {
	base := Make(seed)
	if base == "" {
		base = fallback
	}
	return base + "-" + uuid.NewString()[:8]
}
