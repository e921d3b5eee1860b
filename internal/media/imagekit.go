package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Uploader 媒体托管抽象：上传字节得到存储路径，再从路径派生展示 URL
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename, folder string) (filePath string, err error)
	DeriveURL(filePath string, tr Transform) string
}

// Transform 展示 URL 的派生策略（纯函数输入，不回写资源）
type Transform struct {
	Quality string // "auto"
	Format  string // "webp"
	Width   int
}

// 固定的派生策略常量
var (
	LogoTransform    = Transform{Quality: "auto", Format: "webp", Width: 512}
	ProductTransform = Transform{Quality: "auto", Format: "webp", Width: 1024}
)

// 逻辑命名空间（CDN 目录）
const (
	FolderLogos    = "logos"
	FolderProducts = "products"
)

type Config struct {
	UploadURL   string
	URLEndpoint string
	PrivateKey  string
	Timeout     time.Duration
}

// ImageKit ImageKit 上传接口客户端
type ImageKit struct {
	client      *resty.Client
	uploadURL   string
	urlEndpoint string
}

func NewImageKit(cfg Config) *ImageKit {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetBasicAuth(cfg.PrivateKey, "")
	return &ImageKit{
		client:      client,
		uploadURL:   cfg.UploadURL,
		urlEndpoint: strings.TrimRight(cfg.URLEndpoint, "/"),
	}
}

type uploadResp struct {
	FileID   string `json:"fileId"`
	Name     string `json:"name"`
	FilePath string `json:"filePath"`
	URL      string `json:"url"`
}

type uploadErr struct {
	Message string `json:"message"`
}

func (ik *ImageKit) Upload(ctx context.Context, data []byte, filename, folder string) (string, error) {
	var out uploadResp
	var apiErr uploadErr
	resp, err := ik.client.R().
		SetContext(ctx).
		SetFileReader("file", filename, bytes.NewReader(data)).
		SetFormData(map[string]string{
			"fileName":          filename,
			"folder":            folder,
			"useUniqueFileName": "true",
		}).
		SetResult(&out).
		SetError(&apiErr).
		Post(ik.uploadURL)
	if err != nil {
		return "", fmt.Errorf("media upload: %w", err)
	}
	if resp.IsError() {
		if apiErr.Message != "" {
			return "", fmt.Errorf("media upload: %s", apiErr.Message)
		}
		return "", fmt.Errorf("media upload: http %d", resp.StatusCode())
	}
	if out.FilePath == "" {
		return "", fmt.Errorf("media upload: empty filePath in response")
	}
	return out.FilePath, nil
}

// DeriveURL 按 ImageKit 路径变换语法拼出优化 URL，对同一输入恒定
func (ik *ImageKit) DeriveURL(filePath string, tr Transform) string {
	parts := make([]string, 0, 3)
	if tr.Quality != "" {
		parts = append(parts, "q-"+tr.Quality)
	}
	if tr.Format != "" {
		parts = append(parts, "f-"+tr.Format)
	}
	if tr.Width > 0 {
		parts = append(parts, fmt.Sprintf("w-%d", tr.Width))
	}
	if !strings.HasPrefix(filePath, "/") {
		filePath = "/" + filePath
	}
	if len(parts) == 0 {
		return ik.urlEndpoint + filePath
	}
	return ik.urlEndpoint + "/tr:" + strings.Join(parts, ",") + filePath
}
