package service

import "context"

// TextureServiceInterface defines the contract for the texture proxy
type TextureServiceInterface interface {
	ProxyURL(src string, size string) string
	GetTexture(ctx context.Context, src string, size string) (data []byte, contentType string, err error)
	Warm(ctx context.Context, srcs []string, limit int) (int, error)
}
