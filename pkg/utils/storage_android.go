//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 确保 Android 存储目录存在并可写
// gdata 在 Android 上使用 /data/data/{package}/ 保存祝福和设置，
// 但不会预先创建子目录，需要在 gdata.Open 之前调用。
func EnsureStorageDir() error {
	pkg, err := androidPackage()
	if err != nil {
		return fmt.Errorf("failed to detect Android package: %w", err)
	}

	dir := filepath.Join("/data/data", pkg, "saves")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return fmt.Errorf("%s is not writable: %w", dir, err)
	}
	return os.Remove(probe)
}

// androidPackage 从 /proc/self/cmdline 读取应用包名（第一个参数）
func androidPackage() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}
	name, _, _ := bytes.Cut(data, []byte{0})
	name = bytes.TrimSpace(name)
	if len(name) == 0 {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}
	return string(name), nil
}
