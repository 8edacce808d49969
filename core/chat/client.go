package chat

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"MoodFM/logger"
	"MoodFM/model"

	"github.com/go-resty/resty/v2"
)

// Client talks to the chat platform Web API with the bot's bearer token.
type Client struct {
	http    *resty.Client
	baseURL string
}

// NewClient constructs a chat client.
func NewClient(baseURL, botToken string) *Client {
	httpClient := resty.New().
		SetTimeout(10 * time.Second).
		SetAuthToken(botToken)
	return &Client{
		http:    httpClient,
		baseURL: baseURL,
	}
}

// RecentMessages fetches up to limit most recent messages of a channel,
// newest first.
func (c *Client) RecentMessages(ctx context.Context, channelID string, limit int) ([]model.ChatMessage, error) {
	var result model.ChatHistoryResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"channel": channelID,
			"limit":   strconv.Itoa(limit),
		}).
		SetResult(&result).
		Get(c.baseURL + "/conversations.history")
	if err != nil {
		return nil, fmt.Errorf("chat: history request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK || !result.OK {
		return nil, fmt.Errorf("chat: history rejected: status %d, error %q", resp.StatusCode(), result.Error)
	}
	return result.Messages, nil
}

// OpenDM opens (or reuses) a direct channel with a user and returns its id.
func (c *Client) OpenDM(ctx context.Context, userID string) (string, error) {
	var result model.ChatOpenResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{"users": userID}).
		SetResult(&result).
		Post(c.baseURL + "/conversations.open")
	if err != nil {
		return "", fmt.Errorf("chat: open DM failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK || !result.OK || result.Channel.ID == "" {
		return "", fmt.Errorf("chat: open DM rejected: status %d, error %q", resp.StatusCode(), result.Error)
	}
	return result.Channel.ID, nil
}

// PostMessage posts a structured message to a channel.
func (c *Client) PostMessage(ctx context.Context, channelID, text string, blocks []model.Block) error {
	body := map[string]interface{}{
		"channel": channelID,
		"text":    text,
	}
	if len(blocks) > 0 {
		body["blocks"] = blocks
	}

	var result model.ChatPostResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&result).
		Post(c.baseURL + "/chat.postMessage")
	if err != nil {
		return fmt.Errorf("chat: post message failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK || !result.OK {
		return fmt.Errorf("chat: post message rejected: status %d, error %q", resp.StatusCode(), result.Error)
	}

	logger.Debug("[Chat] message posted",
		logger.String("channel", channelID),
		logger.Int("blocks", len(blocks)))
	return nil
}
