package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var namedColors = map[string]Color{
	"black": {0, 0, 0, 1},
	"white": {255, 255, 255, 1},
	"red":   {255, 0, 0, 1},
	"green": {0, 128, 0, 1},
	"blue":  {0, 0, 255, 1},
	"gray":  {128, 128, 128, 1},
	"grey":  {128, 128, 128, 1},
}

// ParseColor 解析 CSS 颜色：#rgb/#rgba/#rrggbb/#rrggbbaa、rgb()/rgba()、hsl()/hsla()、transparent 及少量颜色名。
func ParseColor(value string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch {
	case v == "transparent":
		return Color{}, nil
	case strings.HasPrefix(v, "#"):
		return parseHex(v[1:])
	case strings.HasPrefix(v, "rgb"):
		args, err := funcArgs(v, "rgb")
		if err != nil {
			return Color{}, err
		}
		c := Color{A: 1}
		c.R = clampByte(channel(args[0]))
		c.G = clampByte(channel(args[1]))
		c.B = clampByte(channel(args[2]))
		if len(args) == 4 {
			c.A = alpha(args[3])
		}
		return c, nil
	case strings.HasPrefix(v, "hsl"):
		args, err := funcArgs(v, "hsl")
		if err != nil {
			return Color{}, err
		}
		h, _ := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
		h = math.Mod(math.Mod(h, 360)+360, 360)
		c := fromColorful(colorful.Hsl(h, unit(percent(args[1])), unit(percent(args[2]))))
		if len(args) == 4 {
			c.A = alpha(args[3])
		}
		return c, nil
	}
	if c, ok := namedColors[v]; ok {
		return c, nil
	}
	return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
}

// Transparent 判断颜色是否完全透明（或为空）。
func Transparent(value string) bool {
	if strings.TrimSpace(value) == "" {
		return true
	}
	c, err := ParseColor(value)
	return err == nil && c.A == 0
}

// parseHex 解析 3/4/6/8 位十六进制颜色，末尾的 alpha 分量单独处理。
func parseHex(value string) (Color, error) {
	a := 1.0
	switch len(value) {
	case 4:
		n, err := strconv.ParseUint(value[3:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("颜色值 #%s 无法解析", value)
		}
		a, value = float64(n*17)/255, value[:3]
	case 8:
		n, err := strconv.ParseUint(value[6:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("颜色值 #%s 无法解析", value)
		}
		a, value = float64(n)/255, value[:6]
	}
	if len(value) != 3 && len(value) != 6 {
		return Color{}, fmt.Errorf("颜色值 #%s 无法解析", value)
	}
	if _, err := strconv.ParseUint(value, 16, 32); err != nil {
		return Color{}, fmt.Errorf("颜色值 #%s 无法解析", value)
	}
	cf, err := colorful.Hex("#" + value)
	if err != nil {
		return Color{}, fmt.Errorf("颜色值 #%s 无法解析: %w", value, err)
	}
	c := fromColorful(cf)
	c.A = a
	return c, nil
}

func fromColorful(cf colorful.Color) Color {
	r, g, b := cf.Clamped().RGB255()
	return Color{R: int(r), G: int(g), B: int(b), A: 1}
}

// funcArgs 拆分 rgb(...)/hsla(...) 的参数，兼容逗号与空格/斜杠两种写法。
func funcArgs(v, name string) ([]string, error) {
	open := strings.IndexByte(v, '(')
	if open < 0 || !strings.HasSuffix(v, ")") || !strings.HasPrefix(v, name) {
		return nil, fmt.Errorf("颜色值 %s 无法解析", v)
	}
	body := v[open+1 : len(v)-1]
	body = strings.NewReplacer(",", " ", "/", " ").Replace(body)
	args := strings.Fields(body)
	if len(args) != 3 && len(args) != 4 {
		return nil, fmt.Errorf("颜色值 %s 参数个数错误", v)
	}
	return args, nil
}

func channel(s string) float64 {
	if strings.HasSuffix(s, "%") {
		return percent(s) * 255
	}
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func percent(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	return f / 100
}

func alpha(s string) float64 {
	var a float64
	if strings.HasSuffix(s, "%") {
		a = percent(s)
	} else {
		a, _ = strconv.ParseFloat(s, 64)
	}
	return math.Max(0, math.Min(1, a))
}

func clampByte(f float64) int {
	return int(math.Round(math.Max(0, math.Min(255, f))))
}

func unit(f float64) float64 { return math.Max(0, math.Min(1, f)) }
