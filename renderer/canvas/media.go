package canvasrenderer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// MeasureImage 实现 layout.MediaMeasurer，返回位图的像素尺寸。
func (r *Renderer) MeasureImage(src string) (float64, float64, error) {
	data, err := readSource(src)
	if err != nil {
		return 0, 0, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("读取图片尺寸失败: %w", err)
	}
	return float64(cfg.Width), float64(cfg.Height), nil
}

// MeasureMarkup 实现 layout.MediaMeasurer，返回矢量稿 viewBox 的尺寸。
func (r *Renderer) MeasureMarkup(markup string) (float64, float64, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(markup), oksvg.IgnoreErrorMode)
	if err != nil {
		return 0, 0, fmt.Errorf("解析矢量稿失败: %w", err)
	}
	return icon.ViewBox.W, icon.ViewBox.H, nil
}

// decodeImage 解码 data URI 或本地路径指向的位图。
func decodeImage(src string) (image.Image, error) {
	data, err := readSource(src)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("解码图片失败: %w", err)
	}
	return img, nil
}

// rasterizeMarkup 将矢量稿按目标像素尺寸光栅化。
func rasterizeMarkup(markup string, w, h int) (image.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("矢量稿目标尺寸无效: %dx%d", w, h)
	}
	icon, err := oksvg.ReadIconStream(strings.NewReader(markup), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("解析矢量稿失败: %w", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return img, nil
}

// readSource 读取 data URI 载荷（base64 或百分号编码）或本地文件；不支持远程地址。
func readSource(src string) ([]byte, error) {
	switch {
	case strings.HasPrefix(src, "data:"):
		meta, payload, ok := strings.Cut(src, ",")
		if !ok {
			return nil, fmt.Errorf("data URI 缺少载荷")
		}
		if strings.HasSuffix(meta, ";base64") {
			data, err := base64.StdEncoding.DecodeString(payload)
			if err != nil {
				return nil, fmt.Errorf("解码 data URI 失败: %w", err)
			}
			return data, nil
		}
		text, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("解码 data URI 失败: %w", err)
		}
		return []byte(text), nil
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return nil, fmt.Errorf("不支持导出远程图片 %s", src)
	case src == "":
		return nil, fmt.Errorf("图片地址为空")
	default:
		data, err := os.ReadFile(strings.TrimPrefix(src, "file://"))
		if err != nil {
			return nil, fmt.Errorf("读取图片 %s 失败: %w", src, err)
		}
		return data, nil
	}
}
