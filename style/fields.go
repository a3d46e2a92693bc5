package style

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind 描述字段对应的控件类型。
type Kind int

const (
	KindInt    Kind = iota // 滑块：整数 + 范围 + 步长
	KindChoice             // 下拉：有限的整数选项（字重）
	KindEnum               // 下拉：有限的字符串选项
	KindFont               // 字体族，可输入任意名称
	KindColor              // 颜色字符串，不做校验
)

// Field 描述配置中的一个可编辑字段。
type Field struct {
	Section Section
	Key     string // JSON 字段名
	Label   string
	Kind    Kind
	Min     int
	Max     int
	Step    int
	Options []string // KindChoice/KindEnum/KindFont 的候选值

	get func(Config) any
	set func(*Config, any)
}

// Path 返回 section.key 形式的字段路径。
func (f Field) Path() string { return string(f.Section) + "." + f.Key }

// Get 读取 cfg 中该字段的当前值。
func (f Field) Get(cfg Config) any { return f.get(cfg) }

// ParseValue 将文本输入转换为 Update 接受的类型化取值。
// 只检查能否表示为该类型，不检查范围。
func (f Field) ParseValue(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch f.Kind {
	case KindInt, KindChoice:
		n, err := strconv.Atoi(strings.TrimSuffix(raw, "px"))
		if err != nil {
			return nil, fmt.Errorf("字段 %s 需要整数，得到 %q", f.Path(), raw)
		}
		return n, nil
	default:
		if raw == "" {
			return nil, fmt.Errorf("字段 %s 的值不能为空", f.Path())
		}
		return raw, nil
	}
}

// Accepts 判断 v 的类型能否写入该字段，即 Update 不会因类型而 panic。
func (f Field) Accepts(v any) bool {
	switch f.Kind {
	case KindInt, KindChoice:
		switch v.(type) {
		case int, int64, float64:
			return true
		}
		return false
	default:
		switch v.(type) {
		case string, Shadow, Alignment, LayoutType:
			return true
		}
		return false
	}
}

// InRange 判断取值是否落在控件允许的范围内。
func (f Field) InRange(v any) bool {
	switch f.Kind {
	case KindInt:
		n, ok := v.(int)
		return ok && n >= f.Min && n <= f.Max
	case KindChoice, KindEnum:
		s := fmt.Sprint(v)
		for _, opt := range f.Options {
			if opt == s {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// Nudge 按方向 dir（+1/-1）将当前取值移动一格，结果保持在控件范围内。
// 颜色字段没有步进概念，原样返回。
func (f Field) Nudge(current any, dir int) any {
	switch f.Kind {
	case KindInt:
		n, _ := current.(int)
		step := f.Step
		if step <= 0 {
			step = 1
		}
		n += dir * step
		if n < f.Min {
			n = f.Min
		}
		if n > f.Max {
			n = f.Max
		}
		return n
	case KindChoice:
		n, _ := current.(int)
		idx := cycle(indexOf(f.Options, strconv.Itoa(n)), dir, len(f.Options))
		v, _ := strconv.Atoi(f.Options[idx])
		return v
	case KindEnum, KindFont:
		idx := cycle(indexOf(f.Options, fmt.Sprint(current)), dir, len(f.Options))
		return f.Options[idx]
	default:
		return current
	}
}

func indexOf(options []string, v string) int {
	for i, opt := range options {
		if opt == v {
			return i
		}
	}
	return -1
}

func cycle(idx, dir, n int) int {
	if idx < 0 {
		return 0
	}
	return ((idx+dir)%n + n) % n
}

var fields = []Field{
	{
		Section: SectionTypography, Key: "fontFamily", Label: "Font Family", Kind: KindFont, Options: FontFamilies,
		get: func(c Config) any { return c.Typography.FontFamily },
		set: func(c *Config, v any) { c.Typography.FontFamily = asString(v) },
	},
	{
		Section: SectionTypography, Key: "fontWeight", Label: "Font Weight", Kind: KindChoice,
		Options: []string{"300", "400", "500", "600", "700"},
		get:     func(c Config) any { return c.Typography.FontWeight },
		set:     func(c *Config, v any) { c.Typography.FontWeight = asInt(v) },
	},
	{
		Section: SectionTypography, Key: "fontSize", Label: "Font Size", Kind: KindInt, Min: 10, Max: 60, Step: 1,
		get: func(c Config) any { return c.Typography.FontSize },
		set: func(c *Config, v any) { c.Typography.FontSize = asInt(v) },
	},
	{
		Section: SectionButton, Key: "borderRadius", Label: "Button Radius", Kind: KindInt, Min: 0, Max: 50, Step: 1,
		get: func(c Config) any { return c.Button.BorderRadius },
		set: func(c *Config, v any) { c.Button.BorderRadius = asInt(v) },
	},
	{
		Section: SectionButton, Key: "shadow", Label: "Button Shadow", Kind: KindEnum,
		Options: []string{string(ShadowNone), string(ShadowSmall), string(ShadowMedium), string(ShadowLarge)},
		get:     func(c Config) any { return string(c.Button.Shadow) },
		set:     func(c *Config, v any) { c.Button.Shadow = Shadow(asString(v)) },
	},
	{
		Section: SectionButton, Key: "alignment", Label: "Button Alignment", Kind: KindEnum, Options: alignments,
		get: func(c Config) any { return string(c.Button.Alignment) },
		set: func(c *Config, v any) { c.Button.Alignment = Alignment(asString(v)) },
	},
	{
		Section: SectionButton, Key: "backgroundColor", Label: "Button Background", Kind: KindColor,
		get: func(c Config) any { return c.Button.BackgroundColor },
		set: func(c *Config, v any) { c.Button.BackgroundColor = asString(v) },
	},
	{
		Section: SectionButton, Key: "textColor", Label: "Button Text", Kind: KindColor,
		get: func(c Config) any { return c.Button.TextColor },
		set: func(c *Config, v any) { c.Button.TextColor = asString(v) },
	},
	{
		Section: SectionGallery, Key: "alignment", Label: "Gallery Alignment", Kind: KindEnum, Options: alignments,
		get: func(c Config) any { return string(c.Gallery.Alignment) },
		set: func(c *Config, v any) { c.Gallery.Alignment = Alignment(asString(v)) },
	},
	{
		Section: SectionGallery, Key: "spacing", Label: "Gallery Spacing", Kind: KindInt, Min: 0, Max: 48, Step: 4,
		get: func(c Config) any { return c.Gallery.Spacing },
		set: func(c *Config, v any) { c.Gallery.Spacing = asInt(v) },
	},
	{
		Section: SectionGallery, Key: "borderRadius", Label: "Gallery Radius", Kind: KindInt, Min: 0, Max: 32, Step: 1,
		get: func(c Config) any { return c.Gallery.BorderRadius },
		set: func(c *Config, v any) { c.Gallery.BorderRadius = asInt(v) },
	},
	{
		Section: SectionLayout, Key: "cardBorderRadius", Label: "Card Radius", Kind: KindInt, Min: 0, Max: 32, Step: 1,
		get: func(c Config) any { return c.Layout.CardBorderRadius },
		set: func(c *Config, v any) { c.Layout.CardBorderRadius = asInt(v) },
	},
	{
		Section: SectionLayout, Key: "containerPadding", Label: "Container Padding", Kind: KindInt, Min: 0, Max: 64, Step: 4,
		get: func(c Config) any { return c.Layout.ContainerPadding },
		set: func(c *Config, v any) { c.Layout.ContainerPadding = asInt(v) },
	},
	{
		Section: SectionLayout, Key: "sectionBackgroundColor", Label: "Section Background", Kind: KindColor,
		get: func(c Config) any { return c.Layout.SectionBackgroundColor },
		set: func(c *Config, v any) { c.Layout.SectionBackgroundColor = asString(v) },
	},
	{
		Section: SectionStroke, Key: "color", Label: "Stroke Color", Kind: KindColor,
		get: func(c Config) any { return c.Stroke.Color },
		set: func(c *Config, v any) { c.Stroke.Color = asString(v) },
	},
	{
		Section: SectionStroke, Key: "weight", Label: "Stroke Weight", Kind: KindInt, Min: 0, Max: 8, Step: 1,
		get: func(c Config) any { return c.Stroke.Weight },
		set: func(c *Config, v any) { c.Stroke.Weight = asInt(v) },
	},
}

var alignments = []string{string(AlignLeft), string(AlignCenter), string(AlignRight)}

// Fields 返回全部可编辑字段（按面板顺序）。返回的切片是副本。
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// SectionFields 返回某个分组下的字段。
func SectionFields(section Section) []Field {
	var out []Field
	for _, f := range fields {
		if f.Section == section {
			out = append(out, f)
		}
	}
	return out
}

// Lookup 按分组与键查找字段。
func Lookup(section Section, key string) (Field, bool) {
	for _, f := range fields {
		if f.Section == section && f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// LookupPath 按 "section.key" 路径查找字段。
func LookupPath(path string) (Field, bool) {
	section, key, ok := strings.Cut(path, ".")
	if !ok {
		return Field{}, false
	}
	return Lookup(Section(section), key)
}

// asInt/asString 在类型不符时 panic：字段与取值类型不匹配属于编程错误。
func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		panic(fmt.Sprintf("style: 期望整数取值，得到 %T", v))
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case Shadow:
		return string(s)
	case Alignment:
		return string(s)
	case LayoutType:
		return string(s)
	default:
		panic(fmt.Sprintf("style: 期望字符串取值，得到 %T", v))
	}
}
