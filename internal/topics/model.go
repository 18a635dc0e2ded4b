package topics

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/alrahmads/SocialSight-Analytics/internal/models"
)

// topKeywordCount 是每個主題的代表詞數量
const topKeywordCount = 10

// modelBundle 對應序列化的主題模型包：
// 詞頻加權向量化器（詞彙表與 IDF 權重）、固定主題數的非負矩陣分解成分。
type modelBundle struct {
	NTopics      int         `json:"n_topics"`
	FeatureNames []string    `json:"feature_names"`
	IDF          []float64   `json:"idf"`
	Components   [][]float64 `json:"components"`
}

// Model 包裝預訓練的主題模型。載入失敗時 Available 回報 false，
// 呼叫端應跳過主題相關的檢視而不是讓整個儀表板失敗。
type Model struct {
	available  bool
	nTopics    int
	features   []string
	vocab      map[string]int
	idf        []float64
	components [][]float64
}

var urlPattern = regexp.MustCompile(`(?:https?://|http\S+|www\S+)\S*`)
var nonAlphaPattern = regexp.MustCompile(`[^a-zA-Z\s]`)

// Load 從序列化包載入主題模型。失敗時回傳不可用的模型而非錯誤。
func Load(path string) *Model {
	m := &Model{}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("警告：[Topics] 無法讀取主題模型包 '%s'，主題檢視將被跳過: %v\n", path, err)
		return m
	}
	var bundle modelBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		log.Printf("警告：[Topics] 主題模型包 '%s' 格式錯誤，主題檢視將被跳過: %v\n", path, err)
		return m
	}
	if err := m.initFrom(&bundle); err != nil {
		log.Printf("警告：[Topics] 主題模型包 '%s' 內容不一致，主題檢視將被跳過: %v\n", path, err)
		return m
	}
	m.available = true
	log.Printf("資訊：[Topics] 主題模型載入成功（%d 個主題、詞彙 %d）。\n", m.nTopics, len(m.features))
	return m
}

func (m *Model) initFrom(bundle *modelBundle) error {
	if bundle.NTopics <= 0 || len(bundle.Components) != bundle.NTopics {
		return fmt.Errorf("成分列數 %d 與主題數 %d 不符", len(bundle.Components), bundle.NTopics)
	}
	if len(bundle.IDF) != len(bundle.FeatureNames) {
		return fmt.Errorf("IDF 長度 %d 與詞彙表大小 %d 不符", len(bundle.IDF), len(bundle.FeatureNames))
	}
	for i, comp := range bundle.Components {
		if len(comp) != len(bundle.FeatureNames) {
			return fmt.Errorf("主題 %d 成分長度 %d 與詞彙表大小 %d 不符", i, len(comp), len(bundle.FeatureNames))
		}
	}
	vocab := make(map[string]int, len(bundle.FeatureNames))
	for i, name := range bundle.FeatureNames {
		vocab[name] = i
	}
	// 成分列做 l2 正規化：文件向量也是 l2 正規化的，啟動值（內積）
	// 因此落在 [0,1]，信心值才符合範圍。列內排序不受縮放影響。
	components := make([][]float64, len(bundle.Components))
	for i, comp := range bundle.Components {
		row := make([]float64, len(comp))
		copy(row, comp)
		var norm float64
		for _, w := range row {
			norm += w * w
		}
		if norm = math.Sqrt(norm); norm > 0 {
			for j := range row {
				row[j] /= norm
			}
		}
		components[i] = row
	}
	m.nTopics = bundle.NTopics
	m.features = bundle.FeatureNames
	m.vocab = vocab
	m.idf = bundle.IDF
	m.components = components
	return nil
}

// Available 回報模型是否成功載入
func (m *Model) Available() bool {
	return m != nil && m.available
}

// NTopics 回傳固定主題數
func (m *Model) NTopics() int {
	if m == nil {
		return 0
	}
	return m.nTopics
}

// Preprocess 是向量化前的文字前處理：小寫化、移除 URL、
// 把所有非字母字元換成空格、壓縮連續空白。
func Preprocess(text string) string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = nonAlphaPattern.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(text), " ")
}

// Assign 把一份文件（前處理後）投影到主題空間並取主導主題。
// 啟動向量長度為 n_topics；topic_index 取最大啟動值的索引
// （相同最大值時最小索引勝出），topic_confidence 為該最大值。
// 文字為空或模型不可用時回傳 false。
func (m *Model) Assign(text string) (models.TopicAssignment, bool) {
	if !m.Available() {
		return models.TopicAssignment{}, false
	}
	processed := Preprocess(text)
	if processed == "" {
		return models.TopicAssignment{}, false
	}

	vec := m.vectorize(processed)
	if vec == nil {
		return models.TopicAssignment{}, false
	}

	best, bestVal := 0, math.Inf(-1)
	for i, comp := range m.components {
		var activation float64
		for idx, w := range vec {
			activation += comp[idx] * w
		}
		if activation > bestVal {
			best, bestVal = i, activation
		}
	}
	return models.TopicAssignment{Index: best, Confidence: bestVal}, true
}

// vectorize 計算稀疏的 tf-idf 向量（l2 正規化），沒有任何已知詞時回傳 nil
func (m *Model) vectorize(processed string) map[int]float64 {
	tf := make(map[int]float64)
	for _, token := range strings.Fields(processed) {
		if idx, ok := m.vocab[token]; ok {
			tf[idx]++
		}
	}
	if len(tf) == 0 {
		return nil
	}
	var norm float64
	for idx := range tf {
		tf[idx] *= m.idf[idx]
		norm += tf[idx] * tf[idx]
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return nil
	}
	for idx := range tf {
		tf[idx] /= norm
	}
	return tf
}

// Summaries 回傳每個主題的代表詞：成分權重最高的前 10 個詞彙，
// 權重相同時依詞彙表順序排列。
func (m *Model) Summaries() []models.TopicSummary {
	if !m.Available() {
		return nil
	}
	summaries := make([]models.TopicSummary, 0, m.nTopics)
	for i, comp := range m.components {
		idxs := make([]int, len(comp))
		for j := range idxs {
			idxs[j] = j
		}
		sort.SliceStable(idxs, func(a, b int) bool {
			return comp[idxs[a]] > comp[idxs[b]]
		})
		limit := topKeywordCount
		if limit > len(idxs) {
			limit = len(idxs)
		}
		keywords := make([]string, 0, limit)
		for _, j := range idxs[:limit] {
			keywords = append(keywords, m.features[j])
		}
		summaries = append(summaries, models.TopicSummary{Index: i, Keywords: keywords})
	}
	return summaries
}

// DocumentText 組合一列的標題與標籤欄位作為主題模型的文件文字
func DocumentText(row *models.VideoRecord) string {
	text := row.Judul
	if row.Tags.Valid {
		text += " " + row.Tags.String
	}
	return text
}
