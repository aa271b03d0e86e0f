package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EngineConfig 动画引擎配置
//
// 包含帧调度、花瓣（环境粒子）、彩纸（爆发粒子）、聚光灯揭示动画和自动轮播的全部可调参数。
// 时长字段在 YAML 中使用字符串格式（如 "900ms"、"9s"）。
//
// 配置文件位置: data/config.yaml
type EngineConfig struct {
	Frame     FrameConfig     `yaml:"frame"`
	Ambient   AmbientConfig   `yaml:"ambient"`
	Burst     BurstConfig     `yaml:"burst"`
	Spotlight SpotlightConfig `yaml:"spotlight"`
	Rotation  RotationConfig  `yaml:"rotation"`

	Celebration CelebrationConfig `yaml:"celebration"`
}

// FrameConfig 帧调度配置
type FrameConfig struct {
	// TargetPeriod 归一化 dt 使用的目标帧周期（dt = 实际间隔 / TargetPeriod）
	TargetPeriod time.Duration `yaml:"targetPeriod"`

	// MaxElapsed 单帧允许的最大实际间隔，防止后台恢复时粒子瞬移
	MaxElapsed time.Duration `yaml:"maxElapsed"`
}

// AmbientConfig 花瓣粒子配置
type AmbientConfig struct {
	InitialCount  int           `yaml:"initialCount"`  // 启动时铺满屏幕的花瓣数
	SoftTarget    int           `yaml:"softTarget"`    // 软目标数量（低于该值才补充）
	SpawnChance   float64       `yaml:"spawnChance"`   // 每帧补充一个花瓣的概率
	SpawnBatch    int           `yaml:"spawnBatch"`    // 定时补充的批量
	SpawnInterval time.Duration `yaml:"spawnInterval"` // 定时补充的间隔
	RemovalMargin float64       `yaml:"removalMargin"` // 超出底部多少后移除
}

// BurstConfig 彩纸粒子配置
type BurstConfig struct {
	Gravity       float64 `yaml:"gravity"`       // 每步叠加的竖直速度（不乘 dt）
	Damping       float64 `yaml:"damping"`       // 位移阻尼系数
	RemovalMargin float64 `yaml:"removalMargin"` // 超出底部多少后移除
	LifeMin       float64 `yaml:"lifeMin"`       // 最短寿命（帧）
	LifeJitter    float64 `yaml:"lifeJitter"`    // 寿命随机增量（帧）
}

// SpotlightConfig 聚光灯动画配置
type SpotlightConfig struct {
	NameInterval   time.Duration `yaml:"nameInterval"`   // 名字逐字间隔
	TextInterval   time.Duration `yaml:"textInterval"`   // 祝福文本逐字间隔
	CaretPause     time.Duration `yaml:"caretPause"`     // 揭示完成后光标停留时长
	Decoration     time.Duration `yaml:"decoration"`     // 入场特效保留时长
	CelebrateCount int           `yaml:"celebrateCount"` // 揭示完成时的彩纸数量
	BlessingBurst  int           `yaml:"blessingBurst"`  // 随机祝福时的彩纸数量
	Effects        []string      `yaml:"effects"`        // 入场特效列表
	FallbackName   string        `yaml:"fallbackName"`   // 列表为空时的名字
	FallbackText   string        `yaml:"fallbackText"`   // 列表为空时的文本
}

// RotationConfig 自动轮播配置
type RotationConfig struct {
	AutoInterval time.Duration `yaml:"autoInterval"` // 自动切换周期
	AutoStart    bool          `yaml:"autoStart"`    // 启动时是否开启自动轮播
}

// CelebrationConfig 由用户操作触发的彩纸效果
type CelebrationConfig struct {
	TinyGroups  int `yaml:"tinyGroups"`  // 点击卡片/新增祝福时的小型庆祝组数（每组 6 片）
	SilentBurst int `yaml:"silentBurst"` // 静默新增祝福时的彩纸数量
	ManualBurst int `yaml:"manualBurst"` // Ctrl+C 手动触发的彩纸数量
}

// DefaultEngineConfig 返回默认引擎配置
// 与 data/config.yaml 保持一致
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		Frame: FrameConfig{
			TargetPeriod: 16666 * time.Microsecond,
			MaxElapsed:   60 * time.Millisecond,
		},
		Ambient: AmbientConfig{
			InitialCount:  40,
			SoftTarget:    45,
			SpawnChance:   0.08,
			SpawnBatch:    3,
			SpawnInterval: 900 * time.Millisecond,
			RemovalMargin: 30,
		},
		Burst: BurstConfig{
			Gravity:       0.24,
			Damping:       0.6,
			RemovalMargin: 60,
			LifeMin:       100,
			LifeJitter:    80,
		},
		Spotlight: SpotlightConfig{
			NameInterval:   24 * time.Millisecond,
			TextInterval:   20 * time.Millisecond,
			CaretPause:     140 * time.Millisecond,
			Decoration:     900 * time.Millisecond,
			CelebrateCount: 28,
			BlessingBurst:  26,
			Effects:        []string{"slide", "zoom", "rotate", "bounce"},
			FallbackName:   "ACI Family",
			FallbackText:   "Wishes you a joyous Janmashtami!",
		},
		Rotation: RotationConfig{
			AutoInterval: 9 * time.Second,
			AutoStart:    true,
		},
		Celebration: CelebrationConfig{
			TinyGroups:  18,
			SilentBurst: 18,
			ManualBurst: 60,
		},
	}
}

// LoadEngineConfig 从文件加载引擎配置
//
// 参数:
//   - path: 配置文件路径（如 "data/config.yaml"）
//
// 返回:
//   - *EngineConfig: 加载成功后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadEngineConfig(path string) (*EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read engine config: %w", err)
	}
	return ParseEngineConfig(data)
}

// ParseEngineConfig 解析 YAML 格式的引擎配置
//
// 未出现在 YAML 中的字段保留默认值，因此配置文件只需覆盖需要调整的参数。
func ParseEngineConfig(data []byte) (*EngineConfig, error) {
	config := DefaultEngineConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse engine config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	return config, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 帧周期和各类间隔必须为正
//   - 概率在 [0, 1] 之间
//   - 数量类参数不能为负
//   - 至少有一个入场特效
func (c *EngineConfig) Validate() error {
	if c.Frame.TargetPeriod <= 0 {
		return fmt.Errorf("frame.targetPeriod must be > 0, got %v", c.Frame.TargetPeriod)
	}
	if c.Frame.MaxElapsed < c.Frame.TargetPeriod {
		return fmt.Errorf("frame.maxElapsed(%v) must be >= targetPeriod(%v)",
			c.Frame.MaxElapsed, c.Frame.TargetPeriod)
	}

	if c.Ambient.SpawnChance < 0 || c.Ambient.SpawnChance > 1 {
		return fmt.Errorf("ambient.spawnChance must be in [0, 1], got %.2f", c.Ambient.SpawnChance)
	}
	if c.Ambient.InitialCount < 0 || c.Ambient.SoftTarget < 0 || c.Ambient.SpawnBatch < 0 {
		return fmt.Errorf("ambient counts must be >= 0")
	}
	if c.Ambient.SpawnInterval <= 0 {
		return fmt.Errorf("ambient.spawnInterval must be > 0, got %v", c.Ambient.SpawnInterval)
	}

	if c.Burst.Damping <= 0 {
		return fmt.Errorf("burst.damping must be > 0, got %.2f", c.Burst.Damping)
	}
	if c.Burst.LifeMin <= 0 || c.Burst.LifeJitter < 0 {
		return fmt.Errorf("burst life range invalid: min=%.1f jitter=%.1f", c.Burst.LifeMin, c.Burst.LifeJitter)
	}

	if c.Spotlight.NameInterval <= 0 || c.Spotlight.TextInterval <= 0 {
		return fmt.Errorf("spotlight reveal intervals must be > 0")
	}
	if c.Spotlight.CaretPause < 0 || c.Spotlight.Decoration < 0 {
		return fmt.Errorf("spotlight pauses must be >= 0")
	}
	if len(c.Spotlight.Effects) == 0 {
		return fmt.Errorf("spotlight.effects must not be empty")
	}

	if c.Rotation.AutoInterval <= 0 {
		return fmt.Errorf("rotation.autoInterval must be > 0, got %v", c.Rotation.AutoInterval)
	}

	if c.Spotlight.CelebrateCount < 0 || c.Spotlight.BlessingBurst < 0 ||
		c.Celebration.TinyGroups < 0 || c.Celebration.SilentBurst < 0 || c.Celebration.ManualBurst < 0 {
		return fmt.Errorf("burst counts must be >= 0")
	}

	return nil
}
