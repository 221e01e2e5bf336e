package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"feedbackdigest/internal/domain"
)

const (
	defaultBaseURL   = "https://api.anthropic.com"
	defaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTokens = 2000
	apiVersion       = "2023-06-01"
)

// Client calls the Messages API.
type Client struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
	HTTP      *http.Client
}

// NewClient returns a client with defaults for everything but the key.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:    apiKey,
		Model:     defaultModel,
		BaseURL:   defaultBaseURL,
		MaxTokens: defaultMaxTokens,
		HTTP:      http.DefaultClient,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Summarize sends the records to the model and returns its prose.
func (c *Client) Summarize(ctx context.Context, records []domain.FeedbackRecord) (string, error) {
	feedback, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", err
	}

	body := new(bytes.Buffer)
	if err := json.NewEncoder(body).Encode(messagesRequest{
		Model:     c.Model,
		MaxTokens: c.MaxTokens,
		Messages:  []chatMessage{{Role: "user", Content: prompt(len(records), feedback)}},
	}); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/messages", body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("messages response: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		if out.Error != nil {
			return "", fmt.Errorf("messages api %s: %s", resp.Status, out.Error.Message)
		}
		return "", fmt.Errorf("messages api: %s", resp.Status)
	}
	if len(out.Content) == 0 {
		return "", fmt.Errorf("messages api: empty response")
	}
	return out.Content[0].Text, nil
}

func prompt(count int, feedback []byte) string {
	return fmt.Sprintf(`Analyze these %d feedback submissions for the On-Chain Disc Golf app (a disc golf scorecard with Bitcoin/Lightning payments).

Provide a concise digest with:

1. **Summary** - Overall sentiment and key themes (2-3 sentences)

2. **Bug Reports** - List bugs with severity (Critical/High/Medium/Low)

3. **Feature Requests** - List requests with effort estimate

4. **General Feedback** - Notable comments, UX issues

5. **Action Items** - Top 3 things to address

Be concise. Focus on actionable insights.

Feedback:
`+"```json\n%s\n```", count, feedback)
}

// Compile-time assertion that Client implements domain.Summarizer.
var _ domain.Summarizer = (*Client)(nil)
