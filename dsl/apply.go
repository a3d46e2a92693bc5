package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ByLCY/stylepress/region"
	"github.com/ByLCY/stylepress/style"
)

// Result 汇总一次脚本执行的结果。
type Result struct {
	Applied int         // 执行的顶层语句数
	Regions []uuid.UUID // 按声明顺序新增的选区
}

type assignment struct {
	field style.Field
	value any
}

// op 是校验后的单条语句，执行阶段不再失败。
type op struct {
	set     *assignment
	layout  style.LayoutType
	region  *region.Region
	patches []assignment
	reset   bool
}

// Apply 先整体校验脚本，再按顺序执行每条语句；任一语句无效时不做任何修改。
// overrides 为空时脚本中不能出现 region 语句。
func Apply(script *Script, store *style.Store, overrides *region.Overrides) (Result, error) {
	if script == nil {
		return Result{}, nil
	}
	ops := make([]op, 0, len(script.Statements))
	for _, stmt := range script.Statements {
		o, err := compile(stmt, overrides != nil)
		if err != nil {
			return Result{}, fmt.Errorf("第 %d 行: %w", stmt.Pos.Line, err)
		}
		ops = append(ops, o)
	}

	var res Result
	for _, o := range ops {
		switch {
		case o.set != nil:
			store.Update(o.set.field.Section, o.set.field.Key, o.set.value)
		case o.layout != "":
			store.SetLayoutType(o.layout)
		case o.reset:
			store.Replace(style.Default())
		case o.region != nil:
			id := overrides.Add(*o.region)
			for _, p := range o.patches {
				if err := overrides.Set(id, p.field.Section, p.field.Key, p.value); err != nil {
					return res, err
				}
			}
			res.Regions = append(res.Regions, id)
		}
		res.Applied++
	}
	return res, nil
}

// ApplyString 解析并执行脚本文本。
func ApplyString(input string, store *style.Store, overrides *region.Overrides) (Result, error) {
	script, err := ParseString(input)
	if err != nil {
		return Result{}, fmt.Errorf("解析编辑脚本失败: %w", err)
	}
	return Apply(script, store, overrides)
}

func compile(stmt *Statement, allowRegions bool) (op, error) {
	switch {
	case stmt.Set != nil:
		a, err := compileSet(stmt.Set)
		if err != nil {
			return op{}, err
		}
		return op{set: &a}, nil
	case stmt.Layout != nil:
		t := style.LayoutType(stmt.Layout.Type)
		if t != style.LayoutGrid && t != style.LayoutList {
			return op{}, fmt.Errorf("未知布局类型 %q（可选 grid/list）", stmt.Layout.Type)
		}
		return op{layout: t}, nil
	case stmt.Reset:
		return op{reset: true}, nil
	case stmt.Region != nil:
		if !allowRegions {
			return op{}, fmt.Errorf("当前环境不支持 region 语句")
		}
		r, err := compileRegion(stmt.Region)
		if err != nil {
			return op{}, err
		}
		o := op{region: &r}
		for _, s := range stmt.Region.Body {
			a, err := compileSet(s)
			if err != nil {
				return op{}, err
			}
			o.patches = append(o.patches, a)
		}
		return o, nil
	default:
		return op{}, fmt.Errorf("空语句")
	}
}

func compileSet(s *Set) (assignment, error) {
	f, ok := style.Lookup(style.Section(s.Section), s.Key)
	if !ok {
		return assignment{}, fmt.Errorf("未知字段 %s.%s", s.Section, s.Key)
	}
	v, err := f.ParseValue(s.Value.Raw())
	if err != nil {
		return assignment{}, err
	}
	return assignment{field: f, value: v}, nil
}

func compileRegion(b *RegionBlock) (region.Region, error) {
	var vals [4]float64
	for i, raw := range []string{b.X, b.Y, b.Width, b.Height} {
		v, err := strconv.ParseFloat(strings.TrimSuffix(raw, "px"), 64)
		if err != nil {
			return region.Region{}, fmt.Errorf("选区坐标 %q 无效", raw)
		}
		vals[i] = v
	}
	if vals[0] < 0 || vals[1] < 0 || vals[2] < 0 || vals[3] < 0 {
		return region.Region{}, fmt.Errorf("选区坐标与尺寸不能为负")
	}
	return region.Region{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}
