package style

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// TestUpdateDoesNotMutate 验证 Update 只改动目标字段，且原配置保持不变。
func TestUpdateDoesNotMutate(t *testing.T) {
	base := Default()
	snapshot := base

	next := base.Update(SectionButton, "borderRadius", 20)

	if !reflect.DeepEqual(base, snapshot) {
		t.Fatalf("原配置被修改: %+v", base)
	}
	if next.Button.BorderRadius != 20 {
		t.Fatalf("borderRadius 未更新: got=%d", next.Button.BorderRadius)
	}
	want := snapshot
	want.Button.BorderRadius = 20
	if !reflect.DeepEqual(next, want) {
		t.Fatalf("除目标字段外出现其他差异:\n got=%+v\nwant=%+v", next, want)
	}
}

func TestUpdateEveryField(t *testing.T) {
	base := Default()
	for _, f := range Fields() {
		var value any
		switch f.Kind {
		case KindInt, KindChoice:
			value = 7
		default:
			value = "#123456"
		}
		next := base.Update(f.Section, f.Key, value)
		if got := f.Get(next); got != value {
			t.Fatalf("%s: got=%v want=%v", f.Path(), got, value)
		}
		for _, other := range Fields() {
			if other.Path() == f.Path() {
				continue
			}
			if other.Get(next) != other.Get(base) {
				t.Fatalf("更新 %s 时 %s 被改动", f.Path(), other.Path())
			}
		}
	}
}

func TestUpdateIdempotent(t *testing.T) {
	base := Default()
	once := base.Update(SectionTypography, "fontSize", 42)
	twice := once.Update(SectionTypography, "fontSize", 42)
	if once != twice {
		t.Fatalf("重复 Update 结果不一致: %+v vs %+v", once, twice)
	}
}

func TestUpdateAcceptsOutOfRange(t *testing.T) {
	next := Default().Update(SectionLayout, "containerPadding", -8)
	if next.Layout.ContainerPadding != -8 {
		t.Fatalf("越界值应原样保存，got=%d", next.Layout.ContainerPadding)
	}
	violations := Validate(next)
	if len(violations) != 1 || violations[0].Path != "layout.containerPadding" {
		t.Fatalf("Validate 结果不符合预期: %+v", violations)
	}
}

func TestUpdateUnknownFieldPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("未知字段应当 panic")
		}
	}()
	Default().Update(SectionStroke, "dash", 1)
}

func TestSetLayoutType(t *testing.T) {
	base := Default()
	next := base.SetLayoutType(LayoutList)
	if base.LayoutType != LayoutGrid || next.LayoutType != LayoutList {
		t.Fatalf("layoutType 切换错误: base=%s next=%s", base.LayoutType, next.LayoutType)
	}
}

func TestRoundTripBoundaries(t *testing.T) {
	cases := []struct {
		path  string
		value int
	}{
		{"typography.fontSize", 10},
		{"typography.fontSize", 60},
		{"gallery.spacing", 0},
		{"gallery.spacing", 48},
		{"stroke.weight", 0},
		{"stroke.weight", 8},
		{"button.borderRadius", 50},
		{"layout.containerPadding", 64},
	}
	for _, tc := range cases {
		f, ok := LookupPath(tc.path)
		if !ok {
			t.Fatalf("字段 %s 不存在", tc.path)
		}
		cfg := Default().Update(f.Section, f.Key, tc.value).SetLayoutType(LayoutList)
		data, err := Marshal(cfg)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		got, err := Parse(data)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if got != cfg {
			t.Fatalf("%s=%d 往返不一致:\n got=%+v\nwant=%+v", tc.path, tc.value, got, cfg)
		}
	}
}

func TestMarshalShape(t *testing.T) {
	data, err := Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	text := string(data)
	for _, want := range []string{`"typography": {`, `"fontFamily": "Inter"`, `"sectionBackgroundColor": "#ffffff"`, `"layoutType": "grid"`} {
		if !strings.Contains(text, want) {
			t.Fatalf("导出 JSON 缺少 %s:\n%s", want, text)
		}
	}
}

func TestParseRejectsPartial(t *testing.T) {
	_, err := Parse([]byte(`{"typography":{"fontFamily":"Inter","fontWeight":400,"fontSize":16},"layoutType":"grid"}`))
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("缺少分组应返回 ErrIncomplete, got %v", err)
	}
	_, err = Parse([]byte(`{not json`))
	if err == nil || errors.Is(err, ErrIncomplete) {
		t.Fatalf("非法 JSON 应返回解析错误, got %v", err)
	}
}

func TestFieldNudge(t *testing.T) {
	spacing, _ := Lookup(SectionGallery, "spacing")
	if got := spacing.Nudge(44, 1); got != 48 {
		t.Fatalf("spacing 步进错误: %v", got)
	}
	if got := spacing.Nudge(48, 1); got != 48 {
		t.Fatalf("spacing 应被夹在上限: %v", got)
	}
	weight, _ := Lookup(SectionTypography, "fontWeight")
	if got := weight.Nudge(700, 1); got != 300 {
		t.Fatalf("fontWeight 应循环到 300: %v", got)
	}
	shadow, _ := Lookup(SectionButton, "shadow")
	if got := shadow.Nudge("none", -1); got != "large" {
		t.Fatalf("shadow 反向循环错误: %v", got)
	}
}

func TestFieldParseValue(t *testing.T) {
	f, _ := LookupPath("layout.containerPadding")
	v, err := f.ParseValue("32px")
	if err != nil || v != 32 {
		t.Fatalf("ParseValue(32px) = %v, %v", v, err)
	}
	if _, err := f.ParseValue("wide"); err == nil {
		t.Fatalf("非数字应返回错误")
	}
	c, _ := LookupPath("stroke.color")
	if v, err := c.ParseValue(" rgb(1,2,3) "); err != nil || v != "rgb(1,2,3)" {
		t.Fatalf("颜色应原样保留: %v, %v", v, err)
	}
}

func TestStoreNotifiesInOrder(t *testing.T) {
	s := NewStore(Default())
	var seen []int
	cancel := s.Subscribe(func(c Config) { seen = append(seen, c.Typography.FontSize) })

	before := s.Current()
	s.Update(SectionTypography, "fontSize", 20)
	s.Update(SectionTypography, "fontSize", 24)
	s.SetLayoutType(LayoutList)
	cancel()
	s.Update(SectionTypography, "fontSize", 30)

	if before.Typography.FontSize != 16 {
		t.Fatalf("之前取到的配置被修改: %+v", before)
	}
	if !reflect.DeepEqual(seen, []int{20, 24, 24}) {
		t.Fatalf("通知顺序错误: %v", seen)
	}
	if s.Revision() != 4 {
		t.Fatalf("revision 应为 4, got %d", s.Revision())
	}
	if s.Current().Typography.FontSize != 30 || s.Current().LayoutType != LayoutList {
		t.Fatalf("当前配置错误: %+v", s.Current())
	}
}
