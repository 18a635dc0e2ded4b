package sentiment

import (
	"sort"

	"github.com/alrahmads/SocialSight-Analytics/internal/models"
	"github.com/alrahmads/SocialSight-Analytics/internal/textproc"
)

// topWordLimit 是詞頻排行的預設長度
const topWordLimit = 15

// minWordLength 是進入詞頻統計的最短詞長（超過兩個字元才算）
const minWordLength = 2

// LabelCounts 統計結果集中各情緒標籤的留言數
func LabelCounts(rs *models.SentimentResultSet) map[models.SentimentLabel]int {
	counts := make(map[models.SentimentLabel]int, len(models.SentimentLabels))
	for _, label := range models.SentimentLabels {
		counts[label] = 0
	}
	if rs == nil {
		return counts
	}
	for _, c := range rs.Comments {
		counts[c.Sentiment]++
	}
	return counts
}

// TopWords 對正規化後的留言做詞頻排行：小寫單詞、長度需大於兩個字元、
// 排除停用詞，依出現次數遞減排序，次數相同者依首次出現順序排列，取前 15 名。
func TopWords(rs *models.SentimentResultSet, stopwords map[string]struct{}) []models.WordCount {
	if rs == nil {
		return nil
	}
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0
	for _, c := range rs.Comments {
		for _, word := range textproc.Tokenize(c.NormalizedText) {
			if len([]rune(word)) <= minWordLength {
				continue
			}
			if _, stop := stopwords[word]; stop {
				continue
			}
			if _, seen := firstSeen[word]; !seen {
				firstSeen[word] = order
				order++
			}
			counts[word]++
		}
	}

	ranked := make([]models.WordCount, 0, len(counts))
	for word, count := range counts {
		ranked = append(ranked, models.WordCount{Word: word, Count: count})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return firstSeen[ranked[i].Word] < firstSeen[ranked[j].Word]
	})
	if len(ranked) > topWordLimit {
		ranked = ranked[:topWordLimit]
	}
	return ranked
}

// DailyCounts 統計每個日曆日、每個標籤的留言數（趨勢圖用），
// 依日期遞增排序、同日依標籤固定順序。沒有時間戳的留言不列入。
func DailyCounts(rs *models.SentimentResultSet) []models.DailySentimentCount {
	if rs == nil {
		return nil
	}
	type key struct {
		date  string
		label models.SentimentLabel
	}
	counts := make(map[key]int)
	for _, c := range rs.Comments {
		if !c.SourceTimestamp.Valid {
			continue
		}
		counts[key{c.SourceTimestamp.Time.Format("2006-01-02"), c.Sentiment}]++
	}

	out := make([]models.DailySentimentCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, models.DailySentimentCount{Date: k.date, Sentiment: k.label, Count: n})
	}
	labelOrder := make(map[models.SentimentLabel]int, len(models.SentimentLabels))
	for i, label := range models.SentimentLabels {
		labelOrder[label] = i
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return labelOrder[out[i].Sentiment] < labelOrder[out[j].Sentiment]
	})
	return out
}
