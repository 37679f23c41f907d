// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package deliver posts the digest to a chat webhook as a Feishu
// interactive card, or prints it in a dry run. Delivery failures are fatal
// to the run: there is no retry.
package deliver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrDelivery marks a webhook rejection or an unreachable webhook.
var ErrDelivery = errors.New("delivery error")

const cardTitle = "arXiv digest (latest batch)"

// card is the Feishu interactive-card payload carried in the webhook POST.
type card struct {
	MsgType string      `json:"msg_type"`
	Card    cardContent `json:"card"`
}

type cardContent struct {
	Config   cardConfig    `json:"config"`
	Header   cardHeader    `json:"header"`
	Elements []cardElement `json:"elements"`
}

type cardConfig struct {
	WideScreenMode bool `json:"wide_screen_mode"`
}

type cardHeader struct {
	Title    cardText `json:"title"`
	Template string   `json:"template"`
}

type cardText struct {
	Tag     string `json:"tag"`
	Content string `json:"content"`
}

type cardElement struct {
	Tag  string   `json:"tag"`
	Text cardText `json:"text"`
}

// webhookResponse is the code/msg envelope Feishu webhooks answer with.
type webhookResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// BuildCard wraps the digest message in the interactive-card payload.
func BuildCard(message string) any {
	return card{
		MsgType: "interactive",
		Card: cardContent{
			Config: cardConfig{WideScreenMode: true},
			Header: cardHeader{
				Title:    cardText{Tag: "plain_text", Content: cardTitle},
				Template: "blue",
			},
			Elements: []cardElement{
				{Tag: "div", Text: cardText{Tag: "lark_md", Content: message}},
			},
		},
	}
}

// Print writes the digest to w without any network call.
func Print(w io.Writer, message string) {
	fmt.Fprintln(w, message)
}

// Send POSTs the card payload to webhookURL. A transport error, a
// non-success status, or a non-zero code in the response envelope all wrap
// ErrDelivery with the response detail.
func Send(ctx context.Context, client *http.Client, webhookURL, message string) error {
	payload, err := json.Marshal(BuildCard(message))
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: webhook returned HTTP %d: %s", ErrDelivery, resp.StatusCode, bytes.TrimSpace(body))
	}

	// Feishu answers HTTP 200 even for rejected payloads; the envelope
	// carries the real verdict. Non-JSON bodies from other webhook
	// implementations are accepted on HTTP success.
	var envelope webhookResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Code != 0 {
		return fmt.Errorf("%w: webhook rejected message: code=%d msg=%s", ErrDelivery, envelope.Code, envelope.Msg)
	}
	return nil
}
