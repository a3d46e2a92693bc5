// Package htmlrenderer 将预览树输出为独立的 HTML 文档（内联 CSS）。
package htmlrenderer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	mhtml "github.com/tdewolff/minify/v2/html"

	"github.com/ByLCY/stylepress/preview"
)

// Options 控制 HTML 输出。
type Options struct {
	Title  string // 文档标题，默认 "Preview"
	Minify bool
}

const document = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
* { box-sizing: border-box; }
body { margin: 0; background: #f9fafb; }
h1, h2, h3, p { margin: 0; }
button { border: none; cursor: pointer; font: inherit; }
.design-frame svg, .design-frame img { display: block; max-width: 100%; height: auto; }
</style>
</head>
<body>
{{template "node" .Root}}
</body>
</html>
{{define "node"}}<{{tag .}} class="{{.Role}}"{{with css .}} style="{{.}}"{{end}}{{if eq (tag .) "img"}} src="{{src .}}" alt="Imported design">{{else}}>{{if .Markup}}{{markup .}}{{else}}{{.Text}}{{end}}{{range .Children}}
{{template "node" .}}{{end}}</{{tag .}}>{{end}}{{end}}`

var tmpl = template.Must(template.New("document").Funcs(template.FuncMap{
	"tag":    tagFor,
	"css":    styleAttr,
	"src":    func(n *preview.Node) template.URL { return template.URL(n.Src) },
	"markup": func(n *preview.Node) template.HTML { return template.HTML(n.Markup) },
}).Parse(document))

// Render 将预览树序列化为 HTML。导入的矢量稿解码失败时返回错误。
func Render(tree *preview.Tree, opts Options) ([]byte, error) {
	if tree == nil || tree.Root == nil {
		return nil, fmt.Errorf("预览树为空")
	}
	if err := tree.Fault(); err != nil {
		return nil, fmt.Errorf("导入稿无法渲染: %w", err)
	}
	if opts.Title == "" {
		opts.Title = "Preview"
	}
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, struct {
		Title string
		Root  *preview.Node
	}{opts.Title, tree.Root})
	if err != nil {
		return nil, fmt.Errorf("生成 HTML 失败: %w", err)
	}
	if !opts.Minify {
		return buf.Bytes(), nil
	}
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", mhtml.Minify)
	out, err := m.Bytes("text/html", buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("压缩 HTML 失败: %w", err)
	}
	return out, nil
}

func tagFor(n *preview.Node) string {
	switch n.Role {
	case preview.RoleTitle:
		return "h1"
	case preview.RoleHeading:
		return "h2"
	case preview.RoleCardTitle:
		return "h3"
	case preview.RoleParagraph:
		return "p"
	case preview.RoleButton:
		return "button"
	case preview.RoleImage:
		return "img"
	case preview.RoleCounter:
		return "span"
	default:
		return "div"
	}
}

// boxShadows 对应 none/small/medium/large 四档。
var boxShadows = []string{
	"none",
	"0 1px 2px 0 rgba(0, 0, 0, 0.05)",
	"0 4px 6px -1px rgba(0, 0, 0, 0.1), 0 2px 4px -2px rgba(0, 0, 0, 0.1)",
	"0 10px 15px -3px rgba(0, 0, 0, 0.1), 0 4px 6px -4px rgba(0, 0, 0, 0.1)",
}

func justifyValue(j preview.Justify) string {
	switch j {
	case preview.JustifyStart:
		return "flex-start"
	case preview.JustifyEnd:
		return "flex-end"
	default:
		return "center"
	}
}

// styleAttr 将节点样式转换为内联 CSS；数值原样输出，不做范围修正。
func styleAttr(n *preview.Node) template.CSS {
	s := n.Style
	var decls []string
	add := func(format string, args ...any) { decls = append(decls, fmt.Sprintf(format, args...)) }

	if s.FontFamily != "" {
		add("font-family: '%s', sans-serif", s.FontFamily)
	}
	if s.FontWeight > 0 {
		add("font-weight: %d", s.FontWeight)
	}
	if s.FontSize > 0 {
		add("font-size: %gpx", s.FontSize)
	}
	if s.Color != "" {
		add("color: %s", s.Color)
	}
	if s.Background != "" {
		add("background-color: %s", s.Background)
	}
	if s.Circle {
		add("border-radius: 50%%")
	} else if s.Radius != 0 {
		add("border-radius: %gpx", s.Radius)
	}
	if s.Padding != 0 {
		if n.Role == preview.RoleButton {
			add("padding: %gpx %gpx", s.Padding, s.Padding*2)
		} else {
			add("padding: %gpx", s.Padding)
		}
	}
	if s.Border != nil {
		add("border: %s", s.Border.String())
	}
	if s.Shadow > 0 && int(s.Shadow) < len(boxShadows) {
		add("box-shadow: %s", boxShadows[s.Shadow])
	}
	if s.Width > 0 {
		add("width: %gpx", s.Width)
		add("flex-shrink: 0")
	}
	if s.Height > 0 {
		add("height: %gpx", s.Height)
	}
	if s.Square {
		add("aspect-ratio: 1 / 1")
	}

	switch s.Display {
	case preview.DisplayRow:
		add("display: flex")
		add("align-items: center")
		add("justify-content: %s", justifyValue(s.Justify))
	case preview.DisplayGrid:
		add("display: grid")
		if s.Columns > 0 {
			add("grid-template-columns: repeat(%d, minmax(0, 1fr))", s.Columns)
		} else {
			add("grid-template-columns: repeat(auto-fill, minmax(%gpx, 1fr))", s.MinColumn)
		}
		if s.Justify != "" {
			add("justify-items: %s", s.Justify)
		}
	case preview.DisplayList:
		add("display: flex")
		add("flex-direction: column")
	default:
		if len(n.Children) > 0 {
			add("display: flex")
			add("flex-direction: column")
		}
	}
	if n.Role == preview.RoleBadge {
		add("display: flex")
		add("align-items: center")
		add("justify-content: center")
	}
	if s.Gap != 0 {
		add("gap: %gpx", s.Gap)
	}
	if n.Role == preview.RoleStack {
		add("flex: 1")
	}
	if n.Role == preview.RoleFrame {
		add("overflow: hidden")
	}
	return template.CSS(strings.Join(decls, "; "))
}
