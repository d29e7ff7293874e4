// Package slack posts plan digests to an incoming webhook.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"nutriplan/session"
)

type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	webhookURL string
	httpClient doer
}

func NewClient(webhookURL string, httpClient doer) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: httpClient,
	}
}

type text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type block struct {
	Type   string `json:"type"`
	Text   *text  `json:"text,omitempty"`
	Fields []text `json:"fields,omitempty"`
}

type payload struct {
	Channel string  `json:"channel"`
	Text    string  `json:"text"`
	Blocks  []block `json:"blocks,omitempty"`
}

// PostMessage sends plain text.
func (c *Client) PostMessage(ctx context.Context, channel string, message string) error {
	return c.post(ctx, payload{Channel: channel, Text: message})
}

// PostDigest sends a session digest with the plain text as notification
// fallback and a mrkdwn layout for clients that render blocks.
func (c *Client) PostDigest(ctx context.Context, channel string, d session.Digest) error {
	return c.post(ctx, payload{
		Channel: channel,
		Text:    d.Text(),
		Blocks:  digestBlocks(d),
	})
}

var statusEmoji = map[string]string{
	session.StatusOK:      ":white_check_mark:",
	session.StatusWarning: ":warning:",
	session.StatusError:   ":x:",
}

func digestBlocks(d session.Digest) []block {
	header := fmt.Sprintf("%s *Meal plan* `%s` is *%s*", statusEmoji[d.Status], d.SessionID, d.Status)
	blocks := []block{{Type: "section", Text: &text{Type: "mrkdwn", Text: header}}}

	if d.Message != "" {
		blocks = append(blocks, block{Type: "section", Text: &text{Type: "mrkdwn", Text: "> " + d.Message}})
	}
	if d.Status == session.StatusError {
		return blocks
	}

	prep := "none"
	if d.PrepTasks > 0 {
		prep = fmt.Sprintf("%d (%s)", d.PrepTasks, strings.Join(d.PrepDays, ", "))
	}
	blocks = append(blocks, block{
		Type: "section",
		Fields: []text{
			{Type: "mrkdwn", Text: fmt.Sprintf("*Weekly calories*\n%.0f", d.Weekly.Calories)},
			{Type: "mrkdwn", Text: fmt.Sprintf("*Daily average*\n%.0f kcal, %.0fg protein", d.DailyAverage.Calories, d.DailyAverage.Protein)},
			{Type: "mrkdwn", Text: fmt.Sprintf("*Grocery items*\n%d", d.GroceryItems)},
			{Type: "mrkdwn", Text: "*Prep tasks*\n" + prep},
		},
	})
	return blocks
}

func (c *Client) post(ctx context.Context, p payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to post message: %s", resp.Status)
	}

	return nil
}
