package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/url"
	"time"

	"SpiderSQLAgent/app/restclient"
)

const completionsEndpoint = "/v1/chat/completions"

var _ Interface = &LLMClient{}

// LLMClient talks to an OpenAI-compatible chat-completions service. When an
// API version is configured the Azure deployment path and api-key header are
// used instead of the bearer token.
type LLMClient struct {
	restClient  restclient.Interface
	endpoint    string
	deployment  string
	temperature float64
	topP        float64
	maxTokens   int
}

type ClientConfig struct {
	BaseURL     string
	APIKey      string
	APIVersion  string
	Deployment  string
	Temperature float64
	TopP        float64
	MaxTokens   int
}

func NewLLMClient(cfg ClientConfig) *LLMClient {
	headers := map[string]string{"Authorization": "Bearer " + cfg.APIKey}
	endpoint := completionsEndpoint
	if cfg.APIVersion != "" {
		headers = map[string]string{"api-key": cfg.APIKey}
		endpoint = fmt.Sprintf("/openai/deployments/%s/chat/completions?api-version=%s",
			url.PathEscape(cfg.Deployment), url.QueryEscape(cfg.APIVersion))
	}
	return &LLMClient{
		restClient:  restclient.NewRestClient(cfg.BaseURL, headers),
		endpoint:    endpoint,
		deployment:  cfg.Deployment,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
		maxTokens:   cfg.MaxTokens,
	}
}

func (mc *LLMClient) Completion(ctx context.Context, messages []Message) (string, error) {
	payload := requestPayload{
		Model:       mc.deployment,
		Messages:    messages,
		Temperature: mc.temperature,
		MaxTokens:   mc.maxTokens,
		TopP:        mc.topP,
	}

	response, err := mc.sendRequestAndParse(ctx, payload, 3)
	if err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", errors.New("empty LLM response")
	}
	return response.Choices[0].Message.Content, nil
}

func (mc *LLMClient) sendRequestAndParse(ctx context.Context, payload requestPayload, maxRetries int) (*ResponseLLM, error) {
	var err error
	var response []byte
	var status int
	var generatedResponse ResponseLLM

	for i := 0; i < maxRetries; i++ {
		select {
		case <-ctx.Done():
			log.Println("🚨 Request canceled before execution")
			return nil, ctx.Err()
		default:
			if err != nil {
				time.Sleep(time.Duration(math.Pow(2, float64(i))) * 100 * time.Millisecond)
			}
			response, status, err = mc.restClient.Post(ctx, mc.endpoint, payload, nil)
			if err != nil {
				log.Printf("⚠️ Attempt %d failed: HTTP %d | Response: %s | Error: %v", i, status, string(response), err)
				continue
			}
			if status < 200 || status >= 300 {
				err = fmt.Errorf("unexpected status %d: %s", status, string(response))
				log.Printf("⚠️ Attempt %d failed: %v", i, err)
				continue
			}

			if err = json.Unmarshal(response, &generatedResponse); err != nil {
				log.Printf("⚠️ Error parsing response: %v", err)
				continue
			}

			return &generatedResponse, nil
		}
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", maxRetries, err)
}
