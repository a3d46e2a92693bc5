package preview

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/ByLCY/stylepress/style"
)

func TestSectionAttributes(t *testing.T) {
	cfg := style.Default().
		Update(style.SectionLayout, "cardBorderRadius", 20).
		Update(style.SectionLayout, "containerPadding", 40).
		Update(style.SectionLayout, "sectionBackgroundColor", "#fafafa").
		Update(style.SectionStroke, "weight", 3).
		Update(style.SectionStroke, "color", "#000")
	tree := Project(cfg, SampleContent())

	sections := tree.Find(RoleSection)
	if len(sections) != 3 {
		t.Fatalf("期望 3 个区块（header/gallery/features），got %d", len(sections))
	}
	for _, s := range append(sections, tree.Find(RoleCard)...) {
		if s.Style.Radius != 20 || s.Style.Padding != 40 || s.Style.Background != "#fafafa" {
			t.Fatalf("区块外观未按配置投影: %+v", s.Style)
		}
		if got := s.Style.Border.String(); got != "3px solid #000" {
			t.Fatalf("描边错误: %q", got)
		}
	}
}

func TestHeadingScales(t *testing.T) {
	cfg := style.Default().Update(style.SectionTypography, "fontSize", 20)
	tree := Project(cfg, SampleContent())
	if tree.Root.Style.FontSize != 20 || tree.Root.Style.FontFamily != "Inter" || tree.Root.Style.FontWeight != 400 {
		t.Fatalf("根节点字体错误: %+v", tree.Root.Style)
	}
	if got := tree.Find(RoleTitle)[0].Style.FontSize; got != 40 {
		t.Fatalf("标题应为 2 倍: %g", got)
	}
	for _, h := range tree.Find(RoleHeading) {
		if h.Style.FontSize != 30 {
			t.Fatalf("区块标题应为 1.5 倍: %g", h.Style.FontSize)
		}
	}
	cardTitles := 0
	for _, h := range tree.Find(RoleCardTitle) {
		if strings.HasPrefix(h.Text, "Card Title") {
			cardTitles++
			if h.Style.FontSize != 25 {
				t.Fatalf("卡片标题应为 1.25 倍: %g", h.Style.FontSize)
			}
		}
	}
	if cardTitles != 3 {
		t.Fatalf("期望 3 个卡片标题, got %d", cardTitles)
	}
}

func TestButtonProjection(t *testing.T) {
	cfg := style.Default().
		Update(style.SectionButton, "shadow", "large").
		Update(style.SectionButton, "alignment", "right").
		Update(style.SectionButton, "borderRadius", 50)
	tree := Project(cfg, SampleContent())

	actions := tree.Find(RoleActions)[0]
	if actions.Style.Justify != JustifyEnd {
		t.Fatalf("按钮对齐错误: %s", actions.Style.Justify)
	}
	buttons := tree.Find(RoleButton)
	if len(buttons) != 2 {
		t.Fatalf("期望两个按钮, got %d", len(buttons))
	}
	primary, secondary := buttons[0], buttons[1]
	if primary.Style.Shadow != ElevationLarge || primary.Style.Radius != 50 {
		t.Fatalf("主按钮外观错误: %+v", primary.Style)
	}
	if primary.Style.Background != "#8b5cf6" || primary.Style.Color != "#ffffff" {
		t.Fatalf("主按钮颜色错误: %+v", primary.Style)
	}
	if secondary.Style.Background != "transparent" || secondary.Style.Color != "#8b5cf6" || secondary.Style.Border.Color != "#8b5cf6" {
		t.Fatalf("次按钮应为描边样式: %+v", secondary.Style)
	}
	for _, badge := range tree.Find(RoleBadge) {
		if badge.Style.Background != "#8b5cf6" {
			t.Fatalf("特性序号应使用按钮背景色: %s", badge.Style.Background)
		}
	}
}

func TestGridLayout(t *testing.T) {
	cfg := style.Default().Update(style.SectionGallery, "spacing", 24).Update(style.SectionGallery, "alignment", "left")
	tree := Project(cfg, SampleContent())
	gallery := tree.Find(RoleGallery)[0]
	if gallery.Style.Display != DisplayGrid || gallery.Style.MinColumn != 200 {
		t.Fatalf("grid 模式应输出自动填充多列网格: %+v", gallery.Style)
	}
	if gallery.Style.Gap != 24 || gallery.Style.Justify != JustifyStart {
		t.Fatalf("间距或对齐错误: %+v", gallery.Style)
	}
	if len(gallery.Children) != 6 || len(tree.Find(RoleTile)) != 6 {
		t.Fatalf("期望 6 个图块, got %d", len(gallery.Children))
	}
}

func TestListLayout(t *testing.T) {
	cfg := style.Default().SetLayoutType(style.LayoutList)
	tree := Project(cfg, SampleContent())
	gallery := tree.Find(RoleGallery)[0]
	if gallery.Style.Display != DisplayList {
		t.Fatalf("list 模式应为单列: %+v", gallery.Style)
	}
	if len(gallery.Children) != 6 {
		t.Fatalf("期望 6 行, got %d", len(gallery.Children))
	}
	for i, row := range gallery.Children {
		if row.Role != RoleRow {
			t.Fatalf("第 %d 项不是行: %s", i, row.Role)
		}
		title := row.Children[1].Children[0].Text
		if want := "Gallery Item " + string(rune('1'+i)); title != want {
			t.Fatalf("行顺序错误: got=%q want=%q", title, want)
		}
	}
	if len(tree.Find(RoleTile)) != 0 {
		t.Fatalf("list 模式不应输出图块")
	}
}

func TestSpacingAppliesToGridOnly(t *testing.T) {
	wide := style.Default().Update(style.SectionGallery, "spacing", 48)

	grid := Project(wide, SampleContent()).Find(RoleGallery)[0]
	if grid.Style.Gap != 48 {
		t.Fatalf("网格间距应跟随 gallery.spacing, got %v", grid.Style.Gap)
	}
	list := Project(wide.SetLayoutType(style.LayoutList), SampleContent()).Find(RoleGallery)[0]
	if list.Style.Gap != listGap {
		t.Fatalf("列表行距应固定为 %d, got %v", listGap, list.Style.Gap)
	}
}

func TestImportedDesignReplacesSample(t *testing.T) {
	markup := `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`
	src := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(markup))
	tree := Project(style.Default(), SampleContent().WithDesign(Design{Source: src, MIMEType: "image/svg+xml"}))

	if len(tree.Root.Children) != 1 {
		t.Fatalf("导入设计稿后应只有一个区块, got %d", len(tree.Root.Children))
	}
	for _, role := range []Role{RoleTitle, RoleGallery, RoleCardGrid, RoleCard, RoleFeatureGrid, RoleButton} {
		if n := len(tree.Find(role)); n != 0 {
			t.Fatalf("示例内容 %s 应被完全隐藏, got %d", role, n)
		}
	}
	sections := tree.Find(RoleSection)
	if len(sections) != 1 || sections[0].Children[0].Text != "Your Design" {
		t.Fatalf("期望恰好一个导入设计稿区块: %+v", sections)
	}
	nodes := tree.Find(RoleMarkup)
	if len(nodes) != 1 || nodes[0].Markup != markup || nodes[0].Fault != nil {
		t.Fatalf("矢量稿应解码后拼入: %+v", nodes)
	}
	if nodes[0].Style.Border.String() != "1px solid #e5e7eb" || nodes[0].Style.Radius != 8 {
		t.Fatalf("设计稿框外观错误: %+v", nodes[0].Style)
	}
}

func TestImportedRasterIsReferenced(t *testing.T) {
	src := "data:image/png;base64,iVBORw0KGgo="
	tree := Project(style.Default(), SampleContent().WithDesign(Design{Source: src, MIMEType: "image/png"}))
	images := tree.Find(RoleImage)
	if len(images) != 1 || images[0].Src != src {
		t.Fatalf("位图应按原样引用: %+v", images)
	}
	if len(tree.Find(RoleMarkup)) != 0 {
		t.Fatalf("位图不应被当作矢量稿")
	}
}

func TestVectorSniffedFromPrefix(t *testing.T) {
	d := Design{Source: "data:image/svg+xml,%3Csvg%3E%3C%2Fsvg%3E"}
	if !d.IsVector() {
		t.Fatalf("应通过前缀识别矢量稿")
	}
	markup, err := d.Markup()
	if err != nil || markup != "<svg></svg>" {
		t.Fatalf("百分号编码载荷解码错误: %q, %v", markup, err)
	}
}

func TestMalformedVectorRecordsFault(t *testing.T) {
	tree := Project(style.Default(), SampleContent().WithDesign(Design{Source: "data:image/svg+xml;base64,@@@", MIMEType: "image/svg+xml"}))
	if tree.Fault() == nil {
		t.Fatalf("非法 base64 应记录为渲染故障")
	}
}

func TestOutOfRangeProjectedVerbatim(t *testing.T) {
	cfg := style.Default().Update(style.SectionLayout, "containerPadding", -12).Update(style.SectionButton, "shadow", "huge")
	tree := Project(cfg, SampleContent())
	if tree.Find(RoleSection)[0].Style.Padding != -12 {
		t.Fatalf("负内边距应原样投影")
	}
	if tree.Find(RoleButton)[0].Style.Shadow != ElevationNone {
		t.Fatalf("未知阴影档位应视为无阴影")
	}
}
