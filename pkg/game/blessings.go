package game

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/decker502/rising/pkg/embedded"
)

// BlessingsPath 随机祝福语文件（嵌入资源）
const BlessingsPath = "data/blessings.yaml"

type blessingsFile struct {
	Blessings []string `yaml:"blessings"`
}

// ParseBlessings 解析祝福语 YAML，空字符串被忽略
func ParseBlessings(data []byte) ([]string, error) {
	var f blessingsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse blessings: %w", err)
	}

	out := f.Blessings[:0]
	for _, b := range f.Blessings {
		if b != "" {
			out = append(out, b)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("blessings list is empty")
	}
	return out, nil
}

// LoadBlessings 从嵌入资源加载祝福语
func LoadBlessings() ([]string, error) {
	data, err := embedded.ReadFile(BlessingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", BlessingsPath, err)
	}
	return ParseBlessings(data)
}
