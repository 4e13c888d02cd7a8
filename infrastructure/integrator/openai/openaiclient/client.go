package openaiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vfg2006/adsflow-api/internal/config"
)

type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

type Tool struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

type ToolFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters"`
}

type ToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type chatRequest struct {
	Model      string    `json:"model"`
	Messages   []Message `json:"messages"`
	Tools      []Tool    `json:"tools,omitempty"`
	ToolChoice any       `json:"tool_choice,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

type Client interface {
	Chat(messages []Message) (string, error)
	ChatWithTools(messages []Message, tools []Tool) (Message, error)
}

type OpenAIClient struct {
	Cfg  *config.Config
	HTTP *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &OpenAIClient{
		Cfg: cfg,
	}
}

func (c *OpenAIClient) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func (c *OpenAIClient) Chat(messages []Message) (string, error) {
	msg, err := c.ChatWithTools(messages, nil)
	if err != nil {
		return "", err
	}
	return msg.Content, nil
}

func (c *OpenAIClient) ChatWithTools(messages []Message, tools []Tool) (Message, error) {
	payload := chatRequest{Model: c.Cfg.OpenAI.Model, Messages: messages, Tools: tools}
	if len(tools) > 0 {
		payload.ToolChoice = "auto"
	}

	buf, _ := json.Marshal(payload)

	url := fmt.Sprintf("%s/chat/completions", c.Cfg.OpenAI.BaseURL)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return Message{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Cfg.OpenAI.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return Message{}, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Message{}, fmt.Errorf("openai request failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return Message{}, fmt.Errorf("openai invalid json: %w", err)
	}
	if len(out.Choices) == 0 {
		return Message{}, errors.New("openai: empty choices")
	}

	return out.Choices[0].Message, nil
}
