package sentiment

import (
	"fmt"
	"log"
	"sync"

	"github.com/alrahmads/SocialSight-Analytics/internal/lexicon"
	"github.com/alrahmads/SocialSight-Analytics/internal/models"
	"github.com/alrahmads/SocialSight-Analytics/internal/textproc"
)

// Pipeline 對整份資料集執行 拆分 → 正規化 → 分類 的情緒流程。
// 同一個資料集世代的完整執行最多發生一次：再次呼叫直接回傳快取結果，
// 不會重新正規化或重新分類；載入新資料集（世代改變）會使快取失效。
type Pipeline struct {
	lex        *lexicon.Loader
	classifier *Classifier

	normOnce   sync.Once
	normalizer *textproc.Normalizer

	mu     sync.Mutex
	cached *models.SentimentResultSet
}

// NewPipeline 建立 Pipeline 實例
func NewPipeline(lex *lexicon.Loader, classifier *Classifier) (*Pipeline, error) {
	if lex == nil {
		return nil, fmt.Errorf("Pipeline：Lexicon Loader 不得為空")
	}
	if classifier == nil {
		return nil, fmt.Errorf("Pipeline：Classifier 不得為空")
	}
	return &Pipeline{lex: lex, classifier: classifier}, nil
}

// getNormalizer 以載入的詞典編譯正規化器，整個行程只做一次
func (p *Pipeline) getNormalizer() *textproc.Normalizer {
	p.normOnce.Do(func() {
		p.normalizer = textproc.NewNormalizer(p.lex.Mappings())
	})
	return p.normalizer
}

// Run 對資料集執行情緒流程並回傳結果集。
// 每列的留言欄位被拆成個別留言，逐則正規化後分類，
// 每則留言產生一筆 CommentRecord，帶著來源列的識別碼與時間戳。
func (p *Pipeline) Run(ds *models.Dataset) *models.SentimentResultSet {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != nil && ds != nil && p.cached.Generation == ds.Generation {
		log.Printf("資訊：[SentimentPipeline] 世代 %d 的結果已在快取中（%d 則留言），直接回傳。\n", ds.Generation, len(p.cached.Comments))
		return p.cached
	}

	result := &models.SentimentResultSet{Degraded: !p.classifier.Available()}
	if ds != nil {
		result.Generation = ds.Generation
	}
	if ds == nil || !ds.HasColumn(models.ColKomentar) {
		log.Println("警告：[SentimentPipeline] 資料集缺少留言欄位，回傳空結果集。")
		p.cached = result
		return result
	}
	if result.Degraded {
		log.Println("警告：[SentimentPipeline] 情緒模型不可用，所有留言將標記為 Neutral。")
	}

	normalizer := p.getNormalizer()
	for idx, row := range ds.Rows {
		if !row.KomentarLengkap.Valid {
			continue
		}
		comments := textproc.SplitComments(row.KomentarLengkap.String)
		if len(comments) == 0 {
			continue
		}
		sourceID := row.VideoID
		if sourceID == "" {
			sourceID = fmt.Sprintf("%d", idx)
		}
		for _, comment := range comments {
			normalized := normalizer.Normalize(comment)
			result.Comments = append(result.Comments, models.CommentRecord{
				SourceRowID:     sourceID,
				SourceTimestamp: row.TanggalUpload,
				RawText:         comment,
				NormalizedText:  normalized,
				Sentiment:       p.classifier.Classify(normalized),
			})
		}
	}

	log.Printf("資訊：[SentimentPipeline] 世代 %d 分析完成，共 %d 則留言。\n", result.Generation, len(result.Comments))
	p.cached = result
	return result
}

// Invalidate 清空快取（載入新資料集時由服務層呼叫）
func (p *Pipeline) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cached = nil
}
