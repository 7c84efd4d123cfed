// Package chatbot sends the rendered alert to the chat channel (spec §4.G
// item 4, §6).
package chatbot

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/pumpwatch/monitor/internal/render"
)

// Sender posts MarkdownV2 messages to a Telegram-bot-shaped sendMessage
// endpoint. Token and chat ID are environment-configured (spec §9: "treat
// as environment-configured"), never compiled in.
type Sender struct {
	http   *resty.Client
	chatID string
}

// New builds a Sender for the bot identified by token, posting to chatID.
func New(token, chatID string) *Sender {
	base := fmt.Sprintf("https://api.telegram.org/bot%s", token)
	return &Sender{http: resty.New().SetBaseURL(base), chatID: chatID}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// errorResult mirrors the bot API's failure shape (spec §6).
type errorResult struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// SendAlert renders d and sends it, chunking if the rendered message
// exceeds the channel's length limit (spec §4.G item 4).
func (s *Sender) SendAlert(ctx context.Context, d render.TokenDetails) error {
	msg := render.Message(d)
	for _, chunk := range render.Chunk(msg) {
		if err := s.send(ctx, chunk); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sender) send(ctx context.Context, text string) error {
	var errResp errorResult
	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(sendMessageRequest{ChatID: s.chatID, Text: text, ParseMode: "MarkdownV2"}).
		SetError(&errResp).
		Post("/sendMessage")
	if err != nil {
		return fmt.Errorf("send chat message: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("chat sender error %d: %s", errResp.ErrorCode, errResp.Description)
	}
	return nil
}
