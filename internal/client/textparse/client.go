// Package textparse извлекает черновик встречи из свободного текста
// с помощью LLM с OpenAI-совместимым API.
package textparse

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Freeeeeet/meeting_bot/internal/model"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	DefaultModel   = "gpt-4o-mini"
	requestTimeout = 20 * time.Second
)

var fencedJSON = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")

const systemPrompt = `Ты извлекаешь данные о встрече из текста пользователя.
Верни строго JSON без пояснений со всеми ключами, даже если значение null:
title, meet_start_at, meet_end_at, description, date, weekday, is_today, is_tomorrow, is_after_tomorrow.

Время в формате "HH:MM". Дата "YYYY-MM-DD", только если указана явно, иначе null.
Если назван только день недели, weekday содержит его коротко: "пн", "вт", "ср", "чт", "пт", "сб", "вс".
"сегодня" -> is_today = true, "завтра" -> is_tomorrow = true, "послезавтра" -> is_after_tomorrow = true.

Пример: "поставь встречу на 7 вечера в понедельник"
{"title": "Встреча", "meet_start_at": "19:00", "meet_end_at": null, "description": "Встреча в понедельник в 19:00",
 "date": null, "weekday": "пн", "is_today": null, "is_tomorrow": null, "is_after_tomorrow": null}`

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Client разбирает текст через chat completions
type Client struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		logger: logger,
	}
}

// ParseFreeText возвращает лучшую догадку о встрече; любое поле может быть пустым
func (c *Client) ParseFreeText(ctx context.Context, message string) (*model.ParsedSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from model")
	}

	parsed, err := decodeSlot(resp.Choices[0].Message.Content)
	if err != nil {
		c.logger.Warn("Failed to decode model response",
			zap.String("content", resp.Choices[0].Message.Content),
			zap.Error(err),
		)
		return nil, err
	}

	c.logger.Debug("Text parsed",
		zap.Duration("latency", time.Since(start)),
		zap.Int("tokens", resp.Usage.TotalTokens),
	)

	return parsed, nil
}

func decodeSlot(content string) (*model.ParsedSlot, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		if m := fencedJSON.FindStringSubmatch(content); len(m) > 1 {
			content = m[1]
		}
	}

	var slot model.ParsedSlot
	if err := json.Unmarshal([]byte(content), &slot); err != nil {
		return nil, fmt.Errorf("decode slot json: %w", err)
	}
	return &slot, nil
}
