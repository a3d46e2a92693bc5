package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// WriteDebugJSON 将布局结果（px 坐标的盒子列表）输出为 JSON，便于核对排版。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return errors.New("layout: 布局结果为空")
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("layout: 序列化布局失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("layout: 创建目录失败: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
