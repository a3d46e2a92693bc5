// Package binding 处理文件名模板中的 ${path} 占位符。
package binding

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ByLCY/stylepress/style"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// 若 data 为空或路径不存在，则保留原占位符。
func Interpolate(text string, data map[string]any) string {
	if data == nil {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		if val, ok := resolvePath(data, pathOf(match)); ok {
			return fmt.Sprint(val)
		}
		return match
	})
}

// Unresolved 列出 text 中无法在 data 里解析的占位符路径，按出现顺序。
func Unresolved(text string, data map[string]any) []string {
	var out []string
	for _, match := range exprPattern.FindAllString(text, -1) {
		path := pathOf(match)
		if _, ok := resolvePath(data, path); !ok {
			out = append(out, path)
		}
	}
	return out
}

// Vars 以配置字段（section.key）和 extra 中的顶层变量构造模板数据。
// extra 与配置分组同名时 extra 优先。
func Vars(cfg style.Config, extra map[string]any) map[string]any {
	data := map[string]any{"layoutType": string(cfg.LayoutType)}
	for _, f := range style.Fields() {
		section, ok := data[string(f.Section)].(map[string]any)
		if !ok {
			section = map[string]any{}
			data[string(f.Section)] = section
		}
		section[f.Key] = f.Get(cfg)
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

func pathOf(match string) string {
	groups := exprPattern.FindStringSubmatch(match)
	if len(groups) < 2 {
		return ""
	}
	return strings.TrimSpace(groups[1])
}

func resolvePath(data map[string]any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	var current any = data
	for _, segment := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
