package layout

// CSS 像素与物理单位的换算（96 dpi）。
const (
	PxToMm = 25.4 / 96
	PxToPt = 72.0 / 96
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// LineHeightFactor 是正文行高相对字号的倍数。
const LineHeightFactor = 1.5

// GridColumns 计算自动填充网格的列数：在 available 宽度内尽量多放 minColumn 宽的列，至少一列。
func GridColumns(available, minColumn, gap float64) int {
	if minColumn <= 0 {
		return 1
	}
	n := int((available + gap) / (minColumn + gap))
	if n < 1 {
		return 1
	}
	return n
}
