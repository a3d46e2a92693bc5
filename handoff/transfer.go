package handoff

import (
	"context"
	"fmt"

	"github.com/ByLCY/stylepress/preview"
	"github.com/ByLCY/stylepress/style"
)

// Payload 是随"页面跳转"传递的内存载荷，优先级高于槽。
type Payload struct {
	Image     string
	ImageType string
}

// Handoff 是编辑页入口读取到的交接内容。
type Handoff struct {
	Design *preview.Design
	Config *style.Config
	// ConfigErr 记录配置槽解析失败；该槽已被删除，调用方应保留默认配置并提示用户。
	ConfigErr error
}

// StageConfig 在跳转到编辑页之前写入配置槽。
func StageConfig(ctx context.Context, slots Slots, cfg style.Config) error {
	data, err := style.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}
	return slots.Put(ctx, KeyImportedConfig, string(data))
}

// StageDesign 写入设计稿槽。新流程通过 Payload 传递设计稿，此路径保留给旧的交接方式。
func StageDesign(ctx context.Context, slots Slots, d preview.Design) error {
	if err := slots.Put(ctx, KeyImportedImage, d.Source); err != nil {
		return err
	}
	return slots.Put(ctx, KeyImportedImageType, d.MIMEType)
}

// Consume 在编辑页入口读取交接内容：设计稿优先取 nav，缺省时回退到槽；随后读取配置槽。
// 每个槽至多读取一次，读取即删除。
func Consume(ctx context.Context, nav *Payload, slots Slots) (Handoff, error) {
	var out Handoff
	if nav != nil && nav.Image != "" {
		out.Design = &preview.Design{Source: nav.Image, MIMEType: nav.ImageType}
	} else {
		image, ok, err := slots.Take(ctx, KeyImportedImage)
		if err != nil {
			return Handoff{}, err
		}
		if ok {
			mime, _, err := slots.Take(ctx, KeyImportedImageType)
			if err != nil {
				return Handoff{}, err
			}
			out.Design = &preview.Design{Source: image, MIMEType: mime}
		}
	}

	raw, ok, err := slots.Take(ctx, KeyImportedConfig)
	if err != nil {
		return Handoff{}, err
	}
	if ok {
		cfg, err := style.Parse([]byte(raw))
		if err != nil {
			out.ConfigErr = err
		} else {
			out.Config = &cfg
		}
	}
	return out, nil
}
