package style

import "fmt"

// Update 返回一个新配置：除 section.key 被替换为 value 外，其余与 c 完全相同。
// c 本身不会被修改。取值范围不做校验，越界值会原样进入预览。
// 未知的 section/key 或取值类型不匹配属于编程错误，直接 panic。
func (c Config) Update(section Section, key string, value any) Config {
	f, ok := Lookup(section, key)
	if !ok {
		panic(fmt.Sprintf("style: 未知字段 %s.%s", section, key))
	}
	next := c
	f.set(&next, value)
	return next
}

// SetLayoutType 返回替换了顶层 layoutType 的新配置。
func (c Config) SetLayoutType(t LayoutType) Config {
	next := c
	next.LayoutType = t
	return next
}

// Violation 描述一个超出控件范围的取值。
type Violation struct {
	Path  string
	Value any
}

func (v Violation) String() string {
	return fmt.Sprintf("%s=%v 超出允许范围", v.Path, v.Value)
}

// Validate 列出所有越界字段，但不拒绝配置：导入的越界值依旧按原样投影。
func Validate(c Config) []Violation {
	var out []Violation
	for _, f := range fields {
		v := f.get(c)
		if !f.InRange(v) {
			out = append(out, Violation{Path: f.Path(), Value: v})
		}
	}
	if c.LayoutType != LayoutGrid && c.LayoutType != LayoutList {
		out = append(out, Violation{Path: "layoutType", Value: c.LayoutType})
	}
	return out
}
