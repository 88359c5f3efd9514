package bot

import (
	"fmt"

	"github.com/Cowboybot7/Google-Drive-CB/pkg/logger"
)

const (
	startText       = "📤 Send me any file to upload it to Google Drive!"
	unsupportedText = "❌ Unsupported file type!"
	successTemplate = "✅ Successfully uploaded to Google Drive!\n\n📄 Filename: `%s`\n🔗 Download link: %s"
	failureTemplate = "❌ Upload failed: %v"
)

// ReplySender sends a finished reply through the chat gateway.
type ReplySender interface {
	Reply(chatID int64, replyTo int, text string) error
}

// Responder formats and sends every outbound message. Everything goes out as
// plain text: filenames and object IDs carry characters that break Telegram's
// Markdown entity parsing, and a rejected message means no reply at all.
type Responder struct {
	sender ReplySender
}

func NewResponder(sender ReplySender) *Responder {
	return &Responder{sender: sender}
}

func (r *Responder) Start(chatID int64, messageID int) {
	r.For(chatID, messageID).send(startText)
}

func (r *Responder) Unsupported(chatID int64, messageID int) {
	r.For(chatID, messageID).send(unsupportedText)
}

// For binds the responder to the message being answered.
func (r *Responder) For(chatID int64, messageID int) *Reply {
	return &Reply{sender: r.sender, chatID: chatID, messageID: messageID}
}

// Reply is the outcome sink for a single inbound message.
type Reply struct {
	sender    ReplySender
	chatID    int64
	messageID int
}

// Success reports the resolved filename and public URL.
func (r *Reply) Success(filename, url string) {
	r.send(fmt.Sprintf(successTemplate, filename, url))
}

// Failure reports the stringified stage error.
func (r *Reply) Failure(err error) {
	r.send(fmt.Sprintf(failureTemplate, err))
}

func (r *Reply) send(text string) {
	if err := r.sender.Reply(r.chatID, r.messageID, text); err != nil {
		logger.Error("Failed to send reply to chat %d: %v", r.chatID, err)
	}
}
