package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/rising/pkg/spotlight"
)

// 祝福输入限制
const (
	MaxNameLength = 40  // 名字最大字符数（超出截断）
	MaxTextLength = 200 // 祝福文本最大字符数（超出截断）

	DefaultWishName   = "Anonymous"
	DefaultImportName = "Imported"

	// developerTag 名字中包含该字符串的祝福在列表中高亮
	developerTag = "prince"

	idLength = 7

	// ExportFileName 默认导出文件名
	ExportFileName = "rising-wishes.json"
)

var (
	// ErrEmptyText 祝福文本为空
	ErrEmptyText = errors.New("wish text is empty")

	// ErrInvalidImport 导入数据不是祝福数组
	ErrInvalidImport = errors.New("invalid wish import: expected a JSON array")
)

// Wish 一条祝福
// When 为 Unix 毫秒时间戳，与导出的 JSON 格式一致
type Wish struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	Text string `yaml:"text" json:"text"`
	When int64  `yaml:"when" json:"when"`
}

// Time 返回祝福的创建时间
func (w Wish) Time() time.Time {
	return time.UnixMilli(w.When)
}

// IsDeveloper 判断是否为开发者祝福（列表中高亮显示）
func (w Wish) IsDeveloper() bool {
	return strings.Contains(strings.ToLower(w.Name), developerTag)
}

// WishStore 祝福列表
//
// 负责祝福的增删、导入导出和 gdata 持久化，同时作为聚光灯的只读数据源
// （实现 spotlight.Source）。
type WishStore struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	rng          *rand.Rand
	now          func() time.Time

	wishes []Wish
}

const (
	wishesObject   = "wishes"
	wishesProperty = "list"
)

// NewWishStore 创建祝福列表并加载已保存的数据
// 没有任何已保存的祝福时写入两条初始祝福
func NewWishStore(gdataManager *gdata.Manager, rng *rand.Rand) *WishStore {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	ws := &WishStore{
		gdataManager: gdataManager,
		rng:          rng,
		now:          time.Now,
	}

	if err := ws.Load(); err != nil {
		log.Printf("[WishStore] Warning: Failed to load wishes: %v (starting empty)", err)
	}
	if len(ws.wishes) == 0 {
		ws.seed()
	}

	return ws
}

func (ws *WishStore) seed() {
	now := ws.now()
	ws.wishes = []Wish{
		{
			ID:   ws.newID(),
			Name: "ACI Team",
			Text: "Warm Janmashtami wishes to everyone — celebrate with love!",
			When: now.Add(-24 * time.Hour).UnixMilli(),
		},
		{
			ID:   ws.newID(),
			Name: "Prince Singh",
			Text: "Happy Krishna Janmashtami! May love & laughter fill your home.",
			When: now.Add(-30 * time.Minute).UnixMilli(),
		},
	}
	ws.persist()
	log.Printf("[WishStore] Seeded %d wishes", len(ws.wishes))
}

// Load 从 gdata 重新加载祝福列表
// 降级模式下保留内存中的列表
func (ws *WishStore) Load() error {
	if ws.gdataManager == nil {
		return nil
	}
	if !ws.gdataManager.ObjectPropExists(wishesObject, wishesProperty) {
		ws.wishes = nil
		return nil
	}

	data, err := ws.gdataManager.LoadObjectProp(wishesObject, wishesProperty)
	if err != nil {
		return fmt.Errorf("failed to load wishes: %w", err)
	}

	var loaded []Wish
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal wishes: %w", err)
	}

	ws.wishes = loaded
	log.Printf("[WishStore] Loaded %d wishes", len(loaded))
	return nil
}

// Save 保存祝福列表到 gdata，降级模式下直接返回 nil
func (ws *WishStore) Save() error {
	if ws.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(ws.wishes)
	if err != nil {
		return fmt.Errorf("failed to marshal wishes: %w", err)
	}
	if err := ws.gdataManager.SaveObjectProp(wishesObject, wishesProperty, data); err != nil {
		return fmt.Errorf("failed to save wishes: %w", err)
	}
	return nil
}

// persist 保存并只记录失败，列表修改本身不回滚
func (ws *WishStore) persist() {
	if err := ws.Save(); err != nil {
		log.Printf("[WishStore] Warning: %v", err)
	}
}

// Add 追加一条祝福
//
// 名字去除首尾空白，为空时使用 "Anonymous"；名字和文本超长时截断。
// 文本为空时返回 ErrEmptyText，列表不变。
func (ws *WishStore) Add(name, text string) (Wish, error) {
	text = truncate(strings.TrimSpace(text), MaxTextLength)
	if text == "" {
		return Wish{}, ErrEmptyText
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultWishName
	}

	w := Wish{
		ID:   ws.newID(),
		Name: truncate(name, MaxNameLength),
		Text: text,
		When: ws.now().UnixMilli(),
	}
	ws.wishes = append(ws.wishes, w)
	ws.persist()
	return w, nil
}

// Clear 删除全部祝福
func (ws *WishStore) Clear() {
	ws.wishes = nil
	ws.persist()
	log.Printf("[WishStore] Cleared all wishes")
}

// Export 导出为缩进 JSON 数组
func (ws *WishStore) Export() ([]byte, error) {
	list := ws.wishes
	if list == nil {
		list = []Wish{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to export wishes: %w", err)
	}
	return data, nil
}

// ExportFile 导出到文件，返回导出数量
func (ws *WishStore) ExportFile(path string) (int, error) {
	data, err := ws.Export()
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Printf("[WishStore] Exported %d wishes to %s", len(ws.wishes), path)
	return len(ws.wishes), nil
}

// ImportFile 从文件导入，返回导入数量
func (ws *WishStore) ImportFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ws.Import(data)
}

// importedWish 导入时接受的字段，其余字段忽略
type importedWish struct {
	Name string `json:"name"`
	Text string `json:"text"`
	When int64  `json:"when"`
}

// Import 追加 JSON 数组中的祝福并返回导入数量
//
// 数据不是 JSON 数组时返回 ErrInvalidImport。没有文本的元素被跳过；
// 缺少名字时使用 "Imported"，缺少时间时使用当前时间；ID 总是重新生成。
func (ws *WishStore) Import(data []byte) (int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	added := 0
	for _, msg := range raw {
		var it importedWish
		if err := json.Unmarshal(msg, &it); err != nil || it.Text == "" {
			continue
		}
		name := it.Name
		if name == "" {
			name = DefaultImportName
		}
		when := it.When
		if when == 0 {
			when = ws.now().UnixMilli()
		}
		ws.wishes = append(ws.wishes, Wish{
			ID:   ws.newID(),
			Name: truncate(name, MaxNameLength),
			Text: truncate(it.Text, MaxTextLength),
			When: when,
		})
		added++
	}

	ws.persist()
	log.Printf("[WishStore] Imported %d of %d entries", added, len(raw))
	return added, nil
}

// Wishes 返回祝福列表的副本
func (ws *WishStore) Wishes() []Wish {
	out := make([]Wish, len(ws.wishes))
	copy(out, ws.wishes)
	return out
}

// Get 返回第 i 条祝福
func (ws *WishStore) Get(i int) Wish {
	return ws.wishes[i]
}

// Len 实现 spotlight.Source
func (ws *WishStore) Len() int {
	return len(ws.wishes)
}

// At 实现 spotlight.Source
func (ws *WishStore) At(i int) spotlight.Item {
	w := ws.wishes[i]
	return spotlight.Item{Name: w.Name, Text: w.Text}
}

// newID 生成 7 位 base-36 随机 ID
func (ws *WishStore) newID() string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, idLength)
	for i := range b {
		b[i] = alphabet[ws.rng.Intn(len(alphabet))]
	}
	return string(b)
}

// truncate 按字符（rune）截断
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
