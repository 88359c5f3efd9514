package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Cowboybot7/Google-Drive-CB/pkg/logger"
)

// Gateway wraps the Telegram bot client for update polling, attachment
// retrieval and replies.
type Gateway struct {
	bot        *tgbotapi.BotAPI
	httpClient *http.Client
}

func NewGateway(token string) (*Gateway, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram client: %w", err)
	}
	return &Gateway{bot: bot, httpClient: http.DefaultClient}, nil
}

func (g *Gateway) Username() string {
	return g.bot.Self.UserName
}

// Updates starts long polling and returns the update stream. The stream closes
// after Stop.
func (g *Gateway) Updates() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	return g.bot.GetUpdatesChan(u)
}

func (g *Gateway) Stop() {
	g.bot.StopReceivingUpdates()
}

// FetchToTemp downloads the referenced file verbatim into a uniquely named
// temp file and returns its path. The caller owns the file on success; on
// failure nothing is left behind.
func (g *Gateway) FetchToTemp(ctx context.Context, fileID, suffix string) (string, error) {
	file, err := g.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return "", fmt.Errorf("failed to resolve file %s: %w", fileID, err)
	}

	tmp, err := os.CreateTemp("", "relay-*"+suffix)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if err := g.download(ctx, file.Link(g.bot.Token), tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	logger.Debug("Downloaded file %s to %s", fileID, tmp.Name())
	return tmp.Name(), nil
}

func (g *Gateway) download(ctx context.Context, url string, dst io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("file download returned status %d", resp.StatusCode)
	}

	if _, err := io.Copy(dst, resp.Body); err != nil {
		return fmt.Errorf("failed to write file content: %w", err)
	}
	return nil
}

// newReply builds an outbound reply with no parse mode: filenames and Drive
// object IDs routinely contain characters like "_" that Telegram's Markdown
// parser rejects, which would swallow the reply entirely.
func newReply(chatID int64, replyTo int, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyTo
	return msg
}

// Reply sends one plain text reply to the originating message.
func (g *Gateway) Reply(chatID int64, replyTo int, text string) error {
	if _, err := g.bot.Send(newReply(chatID, replyTo, text)); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}
