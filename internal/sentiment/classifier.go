package sentiment

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/alrahmads/SocialSight-Analytics/internal/models"
)

// maxInputChars 是分類器單次輸入的長度上限（與底層模型的輸入限制一致）
const maxInputChars = 512

// modelFileName 是工件目錄中序列化模型的檔名
const modelFileName = "model.json"

// classifierArtifact 對應序列化的線性文本分類器：
// 詞彙表、每個類別一列係數、截距，以及類別編號到標籤的對照。
type classifierArtifact struct {
	ID2Label     map[string]string `json:"id2label"`
	Vocab        map[string]int    `json:"vocab"`
	Coefficients [][]float64       `json:"coefficients"`
	Intercepts   []float64         `json:"intercepts"`
}

// Classifier 包裝預訓練的文本情緒分類器。
// 模型工件載入失敗時進入退化模式：所有呼叫回傳 Neutral，
// 呼叫端可透過 Available 得知並向使用者回報警告。
type Classifier struct {
	available bool
	vocab     map[string]int
	coef      [][]float64
	intercept []float64
	labels    []models.SentimentLabel
}

// LoadClassifier 從工件目錄載入分類器。載入失敗不是錯誤：
// 回傳的分類器處於退化模式，分類呼叫一律回傳 Neutral。
func LoadClassifier(dir string) *Classifier {
	c := &Classifier{}
	path := filepath.Join(dir, modelFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("警告：[Sentiment] 無法讀取模型工件 '%s'，分類器進入退化模式: %v\n", path, err)
		return c
	}
	var artifact classifierArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		log.Printf("警告：[Sentiment] 模型工件 '%s' 格式錯誤，分類器進入退化模式: %v\n", path, err)
		return c
	}
	if err := c.initFrom(&artifact); err != nil {
		log.Printf("警告：[Sentiment] 模型工件 '%s' 內容不一致，分類器進入退化模式: %v\n", path, err)
		return c
	}
	c.available = true
	log.Printf("資訊：[Sentiment] 分類器載入成功（詞彙 %d、類別 %d）。\n", len(c.vocab), len(c.labels))
	return c
}

func (c *Classifier) initFrom(artifact *classifierArtifact) error {
	n := len(artifact.Coefficients)
	if n == 0 || len(artifact.Vocab) == 0 {
		return fmt.Errorf("係數或詞彙表為空")
	}
	if len(artifact.Intercepts) != n {
		return fmt.Errorf("截距數量 %d 與類別數量 %d 不符", len(artifact.Intercepts), n)
	}
	labels := make([]models.SentimentLabel, n)
	for i := 0; i < n; i++ {
		raw, ok := artifact.ID2Label[fmt.Sprintf("%d", i)]
		if !ok {
			return fmt.Errorf("id2label 缺少類別 %d", i)
		}
		label, ok := canonicalLabel(raw)
		if !ok {
			return fmt.Errorf("未知的情緒標籤 '%s'", raw)
		}
		labels[i] = label
		if len(artifact.Coefficients[i]) != len(artifact.Vocab) {
			return fmt.Errorf("類別 %d 係數長度 %d 與詞彙表大小 %d 不符", i, len(artifact.Coefficients[i]), len(artifact.Vocab))
		}
	}
	c.vocab = artifact.Vocab
	c.coef = artifact.Coefficients
	c.intercept = artifact.Intercepts
	c.labels = labels
	return nil
}

// canonicalLabel 把工件中的標籤字串對應到封閉的標籤集合
func canonicalLabel(raw string) (models.SentimentLabel, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "positive", "positif":
		return models.SentimentPositive, true
	case "negative", "negatif":
		return models.SentimentNegative, true
	case "neutral", "netral":
		return models.SentimentNeutral, true
	}
	return "", false
}

// Available 回報模型是否成功載入；false 表示所有分類都退化為 Neutral
func (c *Classifier) Available() bool {
	return c != nil && c.available
}

// Classify 對正規化後的文字回傳一個情緒標籤。
// 輸入超過 512 字元會被截斷。這個方法永遠不會把錯誤往外傳：
// 任何內部失敗都對應到 Neutral。
func (c *Classifier) Classify(text string) (label models.SentimentLabel) {
	label = models.SentimentNeutral
	if !c.Available() {
		return label
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("警告：[Sentiment] 分類時發生內部錯誤，回傳 Neutral: %v\n", r)
			label = models.SentimentNeutral
		}
	}()

	runes := []rune(text)
	if len(runes) > maxInputChars {
		text = string(runes[:maxInputChars])
	}

	scores := make([]float64, len(c.labels))
	copy(scores, c.intercept)
	for _, token := range tokenize(text) {
		idx, ok := c.vocab[token]
		if !ok {
			continue
		}
		for class := range scores {
			scores[class] += c.coef[class][idx]
		}
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return c.labels[best]
}

// tokenize 把文字拆成小寫單詞（字母/數字序列）
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
