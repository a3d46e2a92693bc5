// Package handoff 实现导入页与编辑页之间的一次性交接槽：写入一次，读取一次，读取即删除。
package handoff

import (
	"context"
	"sync"
)

// 交接槽的键名。
const (
	KeyImportedImage     = "importedImage"
	KeyImportedImageType = "importedImageType"
	KeyImportedConfig    = "importedConfig"
)

// Slots 是一组一次性槽。Take 必须原子地读取并删除，同一次写入最多被读到一次。
type Slots interface {
	Put(ctx context.Context, key, value string) error
	Take(ctx context.Context, key string) (value string, ok bool, err error)
}

// Memory 是进程内的槽实现。
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

var _ Slots = (*Memory)(nil)

// NewMemory 创建空的内存槽。
func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

// Put 写入 key，覆盖尚未被读取的旧值。
func (m *Memory) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Take 读取并删除 key。
func (m *Memory) Take(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if ok {
		delete(m.values, key)
	}
	return v, ok, nil
}
