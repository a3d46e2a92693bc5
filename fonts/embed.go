// Package fonts 提供内置字体。预览可选的字体族在本地没有字体文件时统一回退到 Go 字体。
package fonts

import (
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
)

// Load 返回最接近 weight 的内置字体字节数据。
// 300/400 使用常规体，500 使用中等粗细，600 及以上使用粗体。
func Load(weight int) []byte {
	switch {
	case weight >= 600:
		return gobold.TTF
	case weight >= 500:
		return gomedium.TTF
	default:
		return goregular.TTF
	}
}

// Name 返回 Load(weight) 对应的字体名，用于缓存键与调试输出。
func Name(weight int) string {
	switch {
	case weight >= 600:
		return "Go-Bold"
	case weight >= 500:
		return "Go-Medium"
	default:
		return "Go-Regular"
	}
}
