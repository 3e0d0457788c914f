package lead

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	notionAPIBase = "https://api.notion.com/v1"
	notionVersion = "2022-06-28"
)

// NotionClient writes lead pages into a Notion database over the pages API.
type NotionClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	databaseID string
}

func NewNotionClient(apiKey, databaseID string) *NotionClient {
	return &NotionClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    notionAPIBase,
		apiKey:     apiKey,
		databaseID: databaseID,
	}
}

func (c *NotionClient) Configured() bool {
	return c.apiKey != "" && c.databaseID != ""
}

type notionText struct {
	Text struct {
		Content string `json:"content"`
	} `json:"text"`
}

func richText(content string) map[string]any {
	t := notionText{}
	t.Text.Content = content
	return map[string]any{"rich_text": []notionText{t}}
}

func titleText(content string) map[string]any {
	t := notionText{}
	t.Text.Content = content
	return map[string]any{"title": []notionText{t}}
}

type notionError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreatePage posts one page with the given properties and returns the page
// ID. Error codes are translated into operator-meaningful messages; callers
// show the client a generic failure.
func (c *NotionClient) CreatePage(ctx context.Context, properties map[string]any) (string, error) {
	payload := map[string]any{
		"parent":     map[string]string{"database_id": c.databaseID},
		"properties": properties,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode page payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pages", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", notionVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("notion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var page struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
			return "", fmt.Errorf("failed to decode notion response: %w", err)
		}
		return page.ID, nil
	}

	var nerr notionError
	_ = json.NewDecoder(resp.Body).Decode(&nerr)
	return "", fmt.Errorf("notion: %s", describeNotionError(resp.StatusCode, nerr))
}

func describeNotionError(status int, nerr notionError) string {
	switch nerr.Code {
	case "validation_error":
		return "database validation error, check property names match"
	case "unauthorized":
		return "API key invalid or integration not connected to database"
	case "object_not_found":
		return "database not found, check database ID"
	}
	if nerr.Message != "" {
		return fmt.Sprintf("status %d: %s", status, nerr.Message)
	}
	return fmt.Sprintf("status %d", status)
}
