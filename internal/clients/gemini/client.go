package gemini

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client 結構用於與 Gemini API 互動
type Client struct {
	textModel *genai.GenerativeModel
	sdkClient *genai.Client
}

// NewClient 建立一個 Gemini 客戶端實例
func NewClient(ctx context.Context, apiKey string, textModelName string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API Key 不得為空")
	}
	if textModelName == "" {
		textModelName = "gemini-1.5-flash-latest"
		log.Printf("警告：[Gemini Client] 未提供文本模型名稱，使用預設值: %s\n", textModelName)
	}

	genaiSDKClient, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("無法建立 Gemini GenAI SDK 客戶端: %w", err)
	}

	txtModel := genaiSDKClient.GenerativeModel(textModelName)
	log.Printf("資訊：[Gemini Client] 文本模型 '%s' 初始化成功。\n", textModelName)

	return &Client{textModel: txtModel, sdkClient: genaiSDKClient}, nil
}

// Close 釋放底層 SDK 連線
func (c *Client) Close() error {
	if c.sdkClient != nil {
		return c.sdkClient.Close()
	}
	return nil
}

// NarrateInsights 把規則式洞察句子交給模型改寫成一段連貫的敘事。
// 任何失敗都回傳錯誤，由呼叫端決定是否退回原始洞察。
func (c *Client) NarrateInsights(ctx context.Context, insights []string) (string, error) {
	if len(insights) == 0 {
		return "", fmt.Errorf("沒有可敘事的洞察")
	}
	prompt := "Berikut adalah poin-poin analitik dari sebuah dataset video media sosial. " +
		"Tulis ulang menjadi satu paragraf ringkasan eksekutif dalam Bahasa Indonesia, tanpa menambah angka baru:\n- " +
		strings.Join(insights, "\n- ")

	resp, err := c.textModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API 呼叫失敗: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("Gemini 回應中沒有任何候選內容")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	narrative := strings.TrimSpace(sb.String())
	if narrative == "" {
		return "", fmt.Errorf("Gemini 回應不含文字內容")
	}
	return narrative, nil
}
