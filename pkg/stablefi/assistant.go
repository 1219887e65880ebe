package stablefi

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	assistantProviderCanned = "canned"
	assistantProviderGemini = "gemini"
	assistantProviderOpenAI = "openai"

	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	assistantRequestTimeout  = 60 * time.Second
	maxAssistantResponseSize = 1 << 20
)

const assistantSystemPrompt = `你是 StableFi 智能助手，服务机构稳定币投资平台的客户。
用用户的语言回答关于稳定币收益产品、开户流程、费用结构的常见问题。
回答保持简洁，禁止承诺收益，必须提示投资风险。`

// assistantGreeting opens every conversation.
var assistantGreeting = BilingualText{
	Zh: "您好！我是 StableFi 智能助手，很高兴为您服务。您可以问我关于稳定币投资产品、开户流程、费用结构等任何问题。",
	En: "Hello! I am the StableFi assistant. Ask me anything about stablecoin investment products, account opening, or fee structures.",
}

// assistantFallback answers anything outside the canned table.
var assistantFallback = BilingualText{
	Zh: "感谢您的提问！我会尽力为您解答。如果您有关于具体产品的问题，可以直接在产品详情页查看，或联系我们的专属顾问获取更详细的信息。",
	En: "Thanks for your question! For product-specific details, check the product detail page or contact your dedicated advisor.",
}

// cannedReply pairs a quick-reply prompt with its fixed answer.
type cannedReply struct {
	Question BilingualText
	Answer   BilingualText
}

var cannedReplies = []cannedReply{
	{
		Question: BilingualText{Zh: "什么是稳定币收益产品？", En: "What is a stablecoin yield product?"},
		Answer: BilingualText{
			Zh: "稳定币收益产品是一种将稳定币存入特定协议或平台，获取固定或浮动收益的投资方式。这些产品通常通过借贷、质押或其他 DeFi 策略来产生收益，风险相对较低，适合希望获得稳定回报的机构投资者。",
			En: "A stablecoin yield product deposits stablecoins into a protocol or platform to earn fixed or floating returns, typically generated through lending, staking, or other DeFi strategies. Risk is comparatively low, suiting institutions seeking steady returns.",
		},
	},
	{
		Question: BilingualText{Zh: "如何选择合适的产品？", En: "How do I choose the right product?"},
		Answer: BilingualText{
			Zh: "选择稳定币产品时，建议考虑以下因素：\n\n1. **年化收益率** - 对比不同产品的收益\n2. **费用结构** - 包括管理费、申购和赎回费\n3. **流动性** - 资金进出的便利程度\n4. **安全性** - 平台背景和审计情况\n5. **合规要求** - 是否满足您机构的合规需求",
			En: "When choosing a stablecoin product, weigh:\n\n1. **APY** - compare returns across products\n2. **Fees** - management, subscription and redemption fees\n3. **Liquidity** - how easily funds move in and out\n4. **Security** - platform track record and audits\n5. **Compliance** - whether it meets your institution's requirements",
		},
	},
	{
		Question: BilingualText{Zh: "开户需要哪些资料？", En: "What documents does account opening require?"},
		Answer: BilingualText{
			Zh: "机构开户通常需要以下资料：\n\n• 公司注册证明\n• 股东/董事身份证明\n• 公司章程\n• 银行开户证明\n• 合格投资者声明\n• 授权代表委托书\n\n具体要求可能因产品而异，建议在开户助手中查看详细清单。",
			En: "Institutional onboarding usually requires:\n\n• Certificate of incorporation\n• Shareholder/director ID\n• Articles of association\n• Bank account proof\n• Qualified investor declaration\n• Authorized representative mandate\n\nRequirements vary by product; see the account assistant for the full checklist.",
		},
	},
	{
		Question: BilingualText{Zh: "年化收益是如何计算的？", En: "How is the APY calculated?"},
		Answer: BilingualText{
			Zh: "年化收益率（APY）是将当前收益率按照复利计算推算到一年的预期收益。计算公式为：\n\nAPY = (1 + 日收益率)^365 - 1\n\n需要注意的是，显示的年化收益通常是基于近期数据计算的，实际收益可能会随市场条件变化。",
			En: "APY projects the current rate to a compounded annual return:\n\nAPY = (1 + daily rate)^365 - 1\n\nDisplayed APY is based on recent data; realized returns change with market conditions.",
		},
	},
}

// AssistantGreeting returns the opening assistant message for a language.
func AssistantGreeting(lang string) string {
	return assistantGreeting.pick(lang)
}

// QuickReplies returns the suggested prompts for a language.
func QuickReplies(lang string) []string {
	prompts := make([]string, 0, len(cannedReplies))
	for _, r := range cannedReplies {
		prompts = append(prompts, r.Question.pick(lang))
	}
	return prompts
}

// Reply answers one user message. With the default canned provider the
// reply comes from the fixed table; a configured live provider is tried
// first and the canned table is the fallback. A fixed artificial delay
// stands in for typing latency.
func (c *Core) Reply(ctx context.Context, message, lang string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", NewError(ErrCodeInvalidInput, "message is required")
	}

	if c.replyDelay > 0 {
		select {
		case <-time.After(c.replyDelay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	settings, apiKey, err := c.assistantSettings()
	if err != nil {
		return "", err
	}
	if settings.Provider != assistantProviderCanned && apiKey != "" {
		reply, liveErr := requestLiveReply(ctx, settings, apiKey, message)
		if liveErr == nil {
			return reply, nil
		}
		c.logger.Warn("live assistant reply failed; falling back to canned table", "provider", settings.Provider, "err", liveErr)
	}

	return cannedReplyFor(message, lang), nil
}

func cannedReplyFor(message, lang string) string {
	for _, r := range cannedReplies {
		if message == r.Question.Zh || strings.EqualFold(message, r.Question.En) {
			return r.Answer.pick(lang)
		}
	}
	return assistantFallback.pick(lang)
}

func (b BilingualText) pick(lang string) string {
	if lang == "en" {
		return b.En
	}
	return b.Zh
}

// GetAssistantSettings returns the persisted settings, API key excluded.
func (c *Core) GetAssistantSettings() (AssistantSettings, error) {
	settings, _, err := c.assistantSettings()
	return settings, err
}

// SetAssistantSettings persists the assistant provider configuration. An
// empty apiKey keeps the previously stored key.
func (c *Core) SetAssistantSettings(settings AssistantSettings, apiKey string) error {
	settings.Provider = strings.ToLower(strings.TrimSpace(settings.Provider))
	switch settings.Provider {
	case assistantProviderCanned, assistantProviderGemini, assistantProviderOpenAI:
	default:
		return NewError(ErrCodeInvalidInput, "invalid assistant provider: "+settings.Provider)
	}
	settings.BaseURL = strings.TrimRight(strings.TrimSpace(settings.BaseURL), "/")
	settings.Model = strings.TrimSpace(settings.Model)

	_, err := c.db.Exec(`
		INSERT INTO assistant_settings (id, provider, base_url, model, api_key)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			provider = excluded.provider,
			base_url = excluded.base_url,
			model = excluded.model,
			api_key = CASE WHEN excluded.api_key = '' THEN assistant_settings.api_key ELSE excluded.api_key END
	`, settings.Provider, settings.BaseURL, settings.Model, apiKey)
	if err != nil {
		return WrapError(ErrCodeDatabase, "save assistant settings", err)
	}
	return nil
}

func (c *Core) assistantSettings() (AssistantSettings, string, error) {
	settings := AssistantSettings{Provider: assistantProviderCanned}
	var apiKey string
	err := c.db.QueryRow("SELECT provider, base_url, model, api_key FROM assistant_settings WHERE id = 1").
		Scan(&settings.Provider, &settings.BaseURL, &settings.Model, &apiKey)
	if errors.Is(err, sql.ErrNoRows) {
		return settings, "", nil
	}
	if err != nil {
		return AssistantSettings{}, "", WrapError(ErrCodeDatabase, "load assistant settings", err)
	}
	return settings, apiKey, nil
}

func requestLiveReply(ctx context.Context, settings AssistantSettings, apiKey, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, assistantRequestTimeout)
	defer cancel()

	switch settings.Provider {
	case assistantProviderGemini:
		return requestGeminiReply(ctx, settings, apiKey, message)
	case assistantProviderOpenAI:
		return requestChatCompletionsReply(ctx, settings, apiKey, message)
	}
	return "", fmt.Errorf("unsupported provider: %s", settings.Provider)
}

func requestGeminiReply(ctx context.Context, settings AssistantSettings, apiKey, message string) (string, error) {
	baseURL := settings.BaseURL
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return "", fmt.Errorf("create gemini client failed: %w", err)
	}

	response, err := client.Models.GenerateContent(ctx, settings.Model, genai.Text(message), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: assistantSystemPrompt}},
		},
		Temperature: genai.Ptr(float32(0.2)),
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate content failed: %w", err)
	}
	content := strings.TrimSpace(response.Text())
	if content == "" {
		return "", fmt.Errorf("assistant response content is empty")
	}
	return content, nil
}

func requestChatCompletionsReply(ctx context.Context, settings AssistantSettings, apiKey, message string) (string, error) {
	baseURL := settings.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	payload := map[string]any{
		"model": settings.Model,
		"messages": []map[string]string{
			{"role": "system", "content": assistantSystemPrompt},
			{"role": "user", "content": message},
		},
		"temperature": 0.2,
		"stream":      false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal assistant request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build assistant request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("assistant request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxAssistantResponseSize))
	if err != nil {
		return "", fmt.Errorf("read assistant response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assistant request returned status %d", resp.StatusCode)
	}

	var decoded struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", fmt.Errorf("decode assistant response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("assistant response has no choices")
	}
	content := strings.TrimSpace(decoded.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("assistant response content is empty")
	}
	return content, nil
}
