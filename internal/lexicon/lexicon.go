package lexicon

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/alrahmads/SocialSight-Analytics/internal/config"
)

// customMap 是手工整理的覆寫表，永遠最後套用，優先權高於所有檔案來源。
var customMap = map[string]string{
	"apkh":   "apakah",
	"gak":    "tidak",
	"ga":     "tidak",
	"gk":     "tidak",
	"nggk":   "tidak",
	"agar":   "supaya",
	"o on":   "bodoh",
	"blo on": "bodoh",
	"lekas":  "segera",
	"sbr":    "sabar",
	"nggan":  "tidak mau",
}

// Loader 負責載入俚語對照表與停用詞集合。
// 兩者都在第一次使用時載入一次，之後整個行程生命週期內重複使用。
type Loader struct {
	cfg config.LexiconConfig

	mappingsOnce sync.Once
	mappings     map[string]string

	stopwordsOnce sync.Once
	stopwords     map[string]struct{}
}

// NewLoader 建立 Loader；不做任何 I/O，資源延遲到第一次取用才載入
func NewLoader(cfg config.LexiconConfig) *Loader {
	return &Loader{cfg: cfg}
}

// Mappings 回傳 informal→formal 對照表（鍵值皆小寫）。
// 來源依優先權由低到高為：CSV 對照檔、兩個 JSON 對照檔、內建覆寫表；
// 相同的鍵由後載入者勝出。任何單一來源缺漏或格式錯誤都只會被略過，
// 最壞情況回傳只含覆寫表的對照表，載入本身永遠不會失敗。
func (l *Loader) Mappings() map[string]string {
	l.mappingsOnce.Do(func() {
		m := make(map[string]string)

		if n := mergeCSVMapping(m, l.cfg.InformalFormalCSV); n > 0 {
			log.Printf("資訊：[Lexicon] 已載入 CSV 對照檔 '%s'（%d 筆）\n", l.cfg.InformalFormalCSV, n)
		}
		if n := mergeJSONMapping(m, l.cfg.InformalFormal2); n > 0 {
			log.Printf("資訊：[Lexicon] 已載入 JSON 對照檔 '%s'（%d 筆）\n", l.cfg.InformalFormal2, n)
		}
		if n := mergeJSONMapping(m, l.cfg.SlangWords); n > 0 {
			log.Printf("資訊：[Lexicon] 已載入俚語對照檔 '%s'（%d 筆）\n", l.cfg.SlangWords, n)
		}
		for k, v := range customMap {
			m[strings.ToLower(k)] = strings.ToLower(v)
		}
		log.Printf("資訊：[Lexicon] 對照表載入完成，共 %d 筆。\n", len(m))
		l.mappings = m
	})
	return l.mappings
}

// Stopwords 回傳停用詞集合（小寫）。檔案缺漏或格式錯誤時回傳空集合。
func (l *Loader) Stopwords() map[string]struct{} {
	l.stopwordsOnce.Do(func() {
		l.stopwords = loadStopwords(l.cfg.Stopwords)
		log.Printf("資訊：[Lexicon] 停用詞載入完成，共 %d 個。\n", len(l.stopwords))
	})
	return l.stopwords
}

// mergeCSVMapping 讀取含 transformed / original-for 兩欄的 CSV 並併入 dst，
// 回傳併入的筆數。讀不到或欄位不對就放棄這個來源。
func mergeCSVMapping(dst map[string]string, path string) int {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("警告：[Lexicon] 無法開啟 CSV 對照檔 '%s'，略過此來源: %v\n", path, err)
		return 0
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		log.Printf("警告：[Lexicon] 讀取 CSV 對照檔 '%s' 標題列失敗，略過此來源: %v\n", path, err)
		return 0
	}
	informalIdx, formalIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "transformed":
			informalIdx = i
		case "original-for":
			formalIdx = i
		}
	}
	if informalIdx < 0 || formalIdx < 0 {
		log.Printf("警告：[Lexicon] CSV 對照檔 '%s' 缺少 transformed/original-for 欄位，略過此來源。\n", path)
		return 0
	}

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // 壞列逐筆略過
		}
		if informalIdx >= len(record) || formalIdx >= len(record) {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(record[informalIdx]))
		val := strings.ToLower(strings.TrimSpace(record[formalIdx]))
		if key == "" || val == "" {
			continue
		}
		dst[key] = val
		count++
	}
	return count
}

// mergeJSONMapping 讀取 JSON 物件（informal→formal）並併入 dst
func mergeJSONMapping(dst map[string]string, path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("警告：[Lexicon] 無法讀取 JSON 對照檔 '%s'，略過此來源: %v\n", path, err)
		return 0
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		log.Printf("警告：[Lexicon] JSON 對照檔 '%s' 格式錯誤，略過此來源: %v\n", path, err)
		return 0
	}
	for k, v := range m {
		dst[strings.ToLower(k)] = strings.ToLower(v)
	}
	return len(m)
}

// loadStopwords 讀取 JSON 編碼的停用詞資源。
// 接受 JSON 陣列或物件（取其鍵）兩種形狀。
func loadStopwords(path string) map[string]struct{} {
	set := make(map[string]struct{})
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("警告：[Lexicon] 無法讀取停用詞檔 '%s'，使用空集合: %v\n", path, err)
		return set
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		for _, w := range list {
			set[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
		}
		return set
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err == nil {
		for w := range obj {
			set[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
		}
		return set
	}
	log.Printf("警告：[Lexicon] 停用詞檔 '%s' 既不是 JSON 陣列也不是物件，使用空集合。\n", path)
	return set
}
