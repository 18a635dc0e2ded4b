package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ServerConfig HTTP 伺服器設定
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// DatabaseConfig 資料庫連線設定
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbName"`
}

// IngestConfig 資料匯入設定：DropPath 是排程器掃描新資料檔的目錄
type IngestConfig struct {
	DropPath string `mapstructure:"dropPath"`
}

// LexiconConfig 詞典資源檔路徑。任何單一來源缺漏都只會被略過，不會導致失敗。
type LexiconConfig struct {
	InformalFormalCSV string `mapstructure:"informalFormalCSV"`
	InformalFormal2   string `mapstructure:"informalFormal2"`
	SlangWords        string `mapstructure:"slangWords"`
	Stopwords         string `mapstructure:"stopwords"`
}

// ModelsConfig 預訓練模型工件路徑
type ModelsConfig struct {
	SentimentPath  string `mapstructure:"sentimentPath"`
	TopicModelPath string `mapstructure:"topicModelPath"`
}

// GeminiClientConfig Gemini 客戶端設定；APIKey 為空時洞察敘事退化為規則式
type GeminiClientConfig struct {
	APIKey    string `mapstructure:"apiKey"`
	TextModel string `mapstructure:"textModel"`
}

// SchedulerConfig 排程器設定
type SchedulerConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	ScanCronSpec string `mapstructure:"scanCronSpec"`
}

// Config 結構
type Config struct {
	AppName      string             `mapstructure:"appName"`
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Ingest       IngestConfig       `mapstructure:"ingest"`
	Lexicon      LexiconConfig      `mapstructure:"lexicon"`
	Models       ModelsConfig       `mapstructure:"models"`
	GeminiClient GeminiClientConfig `mapstructure:"geminiClient"`
	Scheduler    SchedulerConfig    `mapstructure:"scheduler"`
}

// Load 從指定路徑載入 YAML 設定，環境變數可覆寫（以 _ 取代 .）
func Load(configPath string, configName string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(configPath)
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 設定預設值
	v.SetDefault("appName", "SocialSight-Analytics")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 3306)
	v.SetDefault("ingest.dropPath", "./uploads")
	v.SetDefault("lexicon.informalFormalCSV", "data/informal_formal_1.csv")
	v.SetDefault("lexicon.informalFormal2", "data/informal_formal_2.txt")
	v.SetDefault("lexicon.slangWords", "data/update_combined_slang_words.txt")
	v.SetDefault("lexicon.stopwords", "data/combined_stop_words.txt")
	v.SetDefault("models.sentimentPath", "models/sentiment_analysis")
	v.SetDefault("models.topicModelPath", "models/topic_modeling/nmf_model.json")
	v.SetDefault("geminiClient.textModel", "gemini-1.5-flash-latest")
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.scanCronSpec", "0 */5 * * * *")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Println("警告：找不到設定檔，將使用預設值和環境變數。")
		} else {
			return nil, fmt.Errorf("讀取設定檔時發生錯誤: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("無法解析設定檔到結構: %w", err)
	}

	if cfg.GeminiClient.APIKey == "" {
		fmt.Println("警告：Gemini API Key 未設定，洞察敘事將使用規則式文字。")
	}

	fmt.Println("資訊：設定載入成功。")
	return &cfg, nil
}
