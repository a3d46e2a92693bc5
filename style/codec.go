package style

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrIncomplete 表示 JSON 缺少某个分组或字段；部分配置不是合法状态。
var ErrIncomplete = errors.New("配置不完整")

// Marshal 将配置序列化为两空格缩进的 JSON，导出文件与此格式一致。
func Marshal(c Config) ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// Parse 解析 JSON 配置。所有分组及其字段都必须出现，未知字段被忽略。
func Parse(data []byte) (Config, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("解析配置 JSON 失败: %w", err)
	}
	for _, section := range Sections() {
		body, ok := raw[string(section)]
		if !ok {
			return Config{}, fmt.Errorf("%w: 缺少分组 %s", ErrIncomplete, section)
		}
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(body, &keys); err != nil {
			return Config{}, fmt.Errorf("解析分组 %s 失败: %w", section, err)
		}
		for _, f := range SectionFields(section) {
			if _, ok := keys[f.Key]; !ok {
				return Config{}, fmt.Errorf("%w: 缺少字段 %s", ErrIncomplete, f.Path())
			}
		}
	}
	if _, ok := raw["layoutType"]; !ok {
		return Config{}, fmt.Errorf("%w: 缺少字段 layoutType", ErrIncomplete)
	}

	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("解析配置 JSON 失败: %w", err)
	}
	return c, nil
}
