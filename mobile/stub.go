//go:build !mobile

// Package mobile 为 ebitenmobile bind 提供入口，仅在 -tags mobile 时包含实现
// 普通构建下本包为空，保证 go build ./... 可以通过
package mobile
