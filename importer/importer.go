// Package importer 负责识别并读取用户导入的配置文件或设计稿。
package importer

import (
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/wailsapp/mimetype"

	"github.com/ByLCY/stylepress/preview"
	"github.com/ByLCY/stylepress/style"
)

var (
	// ErrUnsupported 表示文件类型既不是 JSON 配置也不是图片，读取前即被拒绝。
	ErrUnsupported = errors.New("不支持的文件类型，请上传 JSON、PNG、SVG 或 JPG 文件")
	// ErrInvalidConfig 表示 JSON 配置无法解析；调用方应保留原有配置。
	ErrInvalidConfig = errors.New("无效的 JSON 配置文件")
)

// Kind 是导入文件的类别。
type Kind int

const (
	Unsupported Kind = iota
	Config
	Design
)

func (k Kind) String() string {
	switch k {
	case Config:
		return "config"
	case Design:
		return "design"
	default:
		return "unsupported"
	}
}

// File 是一个待导入的文件。MIMEType 是声明的类型，可以为空。
type File struct {
	Name     string
	MIMEType string
	Read     func() ([]byte, error)
}

// Result 是导入结果，Config 与 Design 只有一个非空。
type Result struct {
	Kind   Kind
	Config *style.Config
	Design *preview.Design
}

// Classify 根据声明的 MIME 与文件名判断类别。
func Classify(name, mime string) Kind {
	lower := strings.ToLower(name)
	switch {
	case mime == "application/json" || strings.HasSuffix(lower, ".json"):
		return Config
	case strings.HasPrefix(mime, "image/") || strings.HasSuffix(lower, ".svg"):
		return Design
	default:
		return Unsupported
	}
}

// Import 识别并读取文件。不支持的类型不会调用 Read。
func Import(f File) (Result, error) {
	kind := Classify(f.Name, f.MIMEType)
	if kind == Unsupported {
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupported, f.Name)
	}
	data, err := f.Read()
	if err != nil {
		return Result{}, fmt.Errorf("读取文件 %s 失败: %w", f.Name, err)
	}

	if kind == Config {
		cfg, err := style.Parse(data)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		return Result{Kind: Config, Config: &cfg}, nil
	}

	mime := f.MIMEType
	if mime == "" {
		mime = "image/svg+xml"
	}
	design := preview.Design{
		Source:   DataURI(mime, data),
		MIMEType: mime,
	}
	return Result{Kind: Design, Design: &design}, nil
}

// DataURI 将内容编码为 base64 data URI。
func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DetectMIME 为磁盘上的文件推断声明类型：先按内容嗅探，再按扩展名兜底。
// JSON 与 SVG 的文本内容嗅探结果过于宽泛，扩展名优先。
func DetectMIME(name string, data []byte) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return "application/json"
	case ".svg":
		return "image/svg+xml"
	}
	detected := mimetype.Detect(data)
	if detected == nil {
		return ""
	}
	mime, _, _ := strings.Cut(detected.String(), ";")
	if mime == "application/octet-stream" || mime == "text/plain" {
		return ""
	}
	return mime
}
