package bot

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Cowboybot7/Google-Drive-CB/internal/domain/entity"
	"github.com/Cowboybot7/Google-Drive-CB/internal/usecase"
)

// Dispatcher routes inbound updates: the start command gets the usage prompt,
// messages carrying a supported attachment enter the relay pipeline, anything
// else gets the unsupported reply.
type Dispatcher struct {
	relay     *usecase.RelayUseCase
	responder *Responder
}

func NewDispatcher(relay *usecase.RelayUseCase, responder *Responder) *Dispatcher {
	return &Dispatcher{
		relay:     relay,
		responder: responder,
	}
}

// Run consumes the update stream until it closes, handling each update on its
// own goroutine so one pipeline's network calls never block another's. It
// returns only after every in-flight pipeline has finished: once started, a
// relay runs to completion even during shutdown.
func (d *Dispatcher) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	var wg sync.WaitGroup
	for update := range updates {
		update := update
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.HandleUpdate(ctx, update)
		}()
	}
	wg.Wait()
}

func (d *Dispatcher) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	if msg.IsCommand() {
		if msg.Command() == "start" {
			d.responder.Start(msg.Chat.ID, msg.MessageID)
		}
		return
	}

	att, ok := attachmentFrom(msg)
	if !ok {
		d.responder.Unsupported(msg.Chat.ID, msg.MessageID)
		return
	}

	d.relay.Relay(ctx, att, d.responder.For(msg.Chat.ID, msg.MessageID))
}

// attachmentFrom maps a message onto the closed set of relayable kinds. Photos
// arrive as a list of renditions; the largest one is relayed.
func attachmentFrom(msg *tgbotapi.Message) (entity.Attachment, bool) {
	switch {
	case msg.Document != nil:
		return entity.Attachment{
			Kind:     entity.KindDocument,
			FileID:   msg.Document.FileID,
			FileName: msg.Document.FileName,
			FileSize: int64(msg.Document.FileSize),
		}, true
	case len(msg.Photo) > 0:
		photo := msg.Photo[len(msg.Photo)-1]
		return entity.Attachment{
			Kind:     entity.KindPhoto,
			FileID:   photo.FileID,
			FileSize: int64(photo.FileSize),
		}, true
	case msg.Video != nil:
		return entity.Attachment{
			Kind:     entity.KindVideo,
			FileID:   msg.Video.FileID,
			FileName: msg.Video.FileName,
			FileSize: int64(msg.Video.FileSize),
		}, true
	case msg.Audio != nil:
		return entity.Attachment{
			Kind:     entity.KindAudio,
			FileID:   msg.Audio.FileID,
			FileName: msg.Audio.FileName,
			FileSize: int64(msg.Audio.FileSize),
		}, true
	}
	return entity.Attachment{}, false
}
