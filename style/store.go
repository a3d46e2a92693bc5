package style

import "sync"

// Store 持有当前配置，是所有渲染面读取配置的唯一来源。
// 每次修改都生成新值并替换，旧值永远不会被原地修改。
// 订阅者在修改完成后按顺序收到通知；订阅者不能在回调中同步修改 Store。
type Store struct {
	mu  sync.RWMutex
	cur Config
	rev uint64

	notifyMu sync.Mutex
	subs     map[int]func(Config)
	nextSub  int
}

// NewStore 以 initial 作为初始配置创建 Store。
func NewStore(initial Config) *Store {
	return &Store{cur: initial, subs: map[int]func(Config){}}
}

// Current 返回当前配置。
func (s *Store) Current() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Revision 返回配置版本号，每次修改加一，可作为派生缓存的失效依据。
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rev
}

// Update 替换 section.key 并返回新配置。
func (s *Store) Update(section Section, key string, value any) Config {
	return s.apply(func(c Config) Config { return c.Update(section, key, value) })
}

// SetLayoutType 替换顶层 layoutType 并返回新配置。
func (s *Store) SetLayoutType(t LayoutType) Config {
	return s.apply(func(c Config) Config { return c.SetLayoutType(t) })
}

// Replace 整体替换配置，用于导入。
func (s *Store) Replace(c Config) Config {
	return s.apply(func(Config) Config { return c })
}

// Subscribe 注册配置变更回调，返回取消函数。
func (s *Store) Subscribe(fn func(Config)) (cancel func()) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.notifyMu.Lock()
		defer s.notifyMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) apply(fn func(Config) Config) Config {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	// notifyMu 已串行化所有写入者，这里读到的就是最新值。
	next := fn(s.Current())

	s.mu.Lock()
	s.cur = next
	s.rev++
	s.mu.Unlock()

	for id := 0; id < s.nextSub; id++ {
		if sub, ok := s.subs[id]; ok {
			sub(next)
		}
	}
	return next
}
