// Package region 跟踪预览容器上的矩形框选交互。
package region

import "math"

// Point 是一个坐标点。
type Point struct {
	X float64
	Y float64
}

// Region 是容器局部坐标系中的轴对齐矩形。
type Region struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains 判断点 p 是否落在矩形内（含边界）。
func (r Region) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// State 是框选状态机的状态。
type State int

const (
	Idle State = iota
	Drawing
)

func (s State) String() string {
	if s == Drawing {
		return "drawing"
	}
	return "idle"
}

// Selector 实现 Idle -> Drawing -> Idle 的框选状态机。
// 指针坐标以客户端坐标传入，减去容器原点后得到局部坐标。
type Selector struct {
	origin Point
	state  State
	anchor Point
	region Region
	has    bool
}

// NewSelector 创建一个容器原点位于 origin 的选择器。
func NewSelector(origin Point) *Selector {
	return &Selector{origin: origin}
}

// SetOrigin 在容器移动后更新原点，已冻结的选区不受影响。
func (s *Selector) SetOrigin(origin Point) { s.origin = origin }

// State 返回当前状态。
func (s *Selector) State() State { return s.state }

// Region 返回当前（或已冻结的）选区。
func (s *Selector) Region() (Region, bool) { return s.region, s.has }

// PointerDown 开始一次新的框选，记录锚点并丢弃之前的选区。
func (s *Selector) PointerDown(client Point) {
	s.anchor = s.local(client)
	s.state = Drawing
	s.region = Region{}
	s.has = false
}

// PointerMove 在框选过程中按锚点与当前位置重新计算选区；空闲时忽略。
func (s *Selector) PointerMove(client Point) {
	if s.state != Drawing {
		return
	}
	cur := s.local(client)
	s.region = Region{
		X:      math.Min(s.anchor.X, cur.X),
		Y:      math.Min(s.anchor.Y, cur.Y),
		Width:  math.Abs(cur.X - s.anchor.X),
		Height: math.Abs(cur.Y - s.anchor.Y),
	}
	s.has = true
}

// PointerUp 结束框选，保留最后一次计算的选区。
func (s *Selector) PointerUp() { s.state = Idle }

// PointerLeave 指针离开容器，与 PointerUp 效果相同。
func (s *Selector) PointerLeave() { s.state = Idle }

func (s *Selector) local(client Point) Point {
	return Point{X: client.X - s.origin.X, Y: client.Y - s.origin.Y}
}
