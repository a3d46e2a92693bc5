package region

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ByLCY/stylepress/style"
)

// patch 记录某个选区上对单个字段的覆盖。
type patch struct {
	section style.Section
	key     string
	value   any
}

type layer struct {
	region  Region
	patches []patch
}

// Overrides 是叠加在基础配置之上的稀疏覆盖表，以选区 ID 为键。
// 控制面板在选中选区时按 Resolve 的结果投影预览。
type Overrides struct {
	mu     sync.RWMutex
	layers map[uuid.UUID]*layer
	order  []uuid.UUID // 按添加顺序，越靠后越在上层
}

// NewOverrides 创建空的覆盖表。
func NewOverrides() *Overrides {
	return &Overrides{layers: map[uuid.UUID]*layer{}}
}

// Add 登记一个选区并返回其 ID。
func (o *Overrides) Add(r Region) uuid.UUID {
	o.mu.Lock()
	defer o.mu.Unlock()
	id := uuid.New()
	o.layers[id] = &layer{region: r}
	o.order = append(o.order, id)
	return id
}

// Set 为选区 id 记录 section.key 的覆盖值，同一字段重复设置时后者生效。
func (o *Overrides) Set(id uuid.UUID, section style.Section, key string, value any) error {
	f, ok := style.Lookup(section, key)
	if !ok {
		return fmt.Errorf("未知字段 %s.%s", section, key)
	}
	if !f.Accepts(value) {
		return fmt.Errorf("字段 %s 不接受 %T 类型的取值", f.Path(), value)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	l, ok := o.layers[id]
	if !ok {
		return fmt.Errorf("选区 %s 不存在", id)
	}
	for i := range l.patches {
		if l.patches[i].section == section && l.patches[i].key == key {
			l.patches[i].value = value
			return nil
		}
	}
	l.patches = append(l.patches, patch{section: section, key: key, value: value})
	return nil
}

// Remove 删除选区及其覆盖。
func (o *Overrides) Remove(id uuid.UUID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.layers, id)
	for i, v := range o.order {
		if v == id {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
}

// Region 返回选区 id 的矩形。
func (o *Overrides) Region(id uuid.UUID) (Region, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	l, ok := o.layers[id]
	if !ok {
		return Region{}, false
	}
	return l.region, true
}

// Len 返回选区数量。
func (o *Overrides) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.order)
}

// Resolve 返回在 base 上叠加选区 id 全部覆盖后的配置；未知 id 直接返回 base。
func (o *Overrides) Resolve(base style.Config, id uuid.UUID) style.Config {
	o.mu.RLock()
	defer o.mu.RUnlock()
	l, ok := o.layers[id]
	if !ok {
		return base
	}
	out := base
	for _, p := range l.patches {
		out = out.Update(p.section, p.key, p.value)
	}
	return out
}

// At 返回包含点 p 的最上层选区。
func (o *Overrides) At(p Point) (uuid.UUID, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	for i := len(o.order) - 1; i >= 0; i-- {
		id := o.order[i]
		if o.layers[id].region.Contains(p) {
			return id, true
		}
	}
	return uuid.Nil, false
}
