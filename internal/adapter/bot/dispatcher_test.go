package bot

import (
	"context"
	"os"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cowboybot7/Google-Drive-CB/internal/domain/entity"
	"github.com/Cowboybot7/Google-Drive-CB/internal/usecase"
)

type stubGateway struct {
	t     *testing.T
	calls int
}

func (s *stubGateway) FetchToTemp(ctx context.Context, fileID, suffix string) (string, error) {
	s.calls++
	tmp, err := os.CreateTemp(s.t.TempDir(), "fetched-*"+suffix)
	require.NoError(s.t, err)
	require.NoError(s.t, tmp.Close())
	return tmp.Name(), nil
}

type stubUploader struct {
	obj   *entity.UploadedObject
	calls int
}

func (s *stubUploader) UploadFile(ctx context.Context, path, name string) (*entity.UploadedObject, error) {
	s.calls++
	return s.obj, nil
}

func newTestDispatcher(t *testing.T, uploader *stubUploader) (*Dispatcher, *fakeSender, *stubGateway) {
	sender := &fakeSender{}
	gateway := &stubGateway{t: t}
	relay := usecase.NewRelayUseCase(gateway, uploader, 0)
	return NewDispatcher(relay, NewResponder(sender)), sender, gateway
}

func message(text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		MessageID: 11,
		Chat:      &tgbotapi.Chat{ID: 42},
		Text:      text,
	}
}

func TestHandleUpdateStartCommand(t *testing.T) {
	d, sender, _ := newTestDispatcher(t, &stubUploader{})

	msg := message("/start")
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}}
	d.HandleUpdate(context.Background(), tgbotapi.Update{Message: msg})

	require.Len(t, sender.sent, 1)
	assert.Equal(t, startText, sender.sent[0].text)
}

func TestHandleUpdateUnknownCommandIgnored(t *testing.T) {
	d, sender, _ := newTestDispatcher(t, &stubUploader{})

	msg := message("/help")
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 5}}
	d.HandleUpdate(context.Background(), tgbotapi.Update{Message: msg})

	assert.Empty(t, sender.sent)
}

func TestHandleUpdateTextOnlyIsUnsupported(t *testing.T) {
	uploader := &stubUploader{}
	d, sender, gateway := newTestDispatcher(t, uploader)

	d.HandleUpdate(context.Background(), tgbotapi.Update{Message: message("hello")})

	require.Len(t, sender.sent, 1)
	assert.Equal(t, unsupportedText, sender.sent[0].text)
	assert.Zero(t, gateway.calls, "no download for unsupported messages")
	assert.Zero(t, uploader.calls, "no storage calls for unsupported messages")
}

func TestHandleUpdateDocumentRelayed(t *testing.T) {
	uploader := &stubUploader{obj: &entity.UploadedObject{ID: "abc123", URL: "https://drive.google.com/file/d/abc123/view"}}
	d, sender, _ := newTestDispatcher(t, uploader)

	msg := message("")
	msg.Document = &tgbotapi.Document{FileID: "doc-1", FileName: "report.pdf"}
	d.HandleUpdate(context.Background(), tgbotapi.Update{Message: msg})

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].text, "report.pdf")
	assert.Contains(t, sender.sent[0].text, "https://drive.google.com/file/d/abc123/view")
	assert.Equal(t, 1, uploader.calls)
}

type blockingUploader struct {
	release chan struct{}
	obj     *entity.UploadedObject
}

func (b *blockingUploader) UploadFile(ctx context.Context, path, name string) (*entity.UploadedObject, error) {
	<-b.release
	return b.obj, nil
}

func TestRunWaitsForInFlightRelays(t *testing.T) {
	uploader := &blockingUploader{
		release: make(chan struct{}),
		obj:     &entity.UploadedObject{ID: "abc123", URL: "https://drive.google.com/file/d/abc123/view"},
	}
	sender := &fakeSender{}
	gateway := &stubGateway{t: t}
	relay := usecase.NewRelayUseCase(gateway, uploader, 0)
	d := NewDispatcher(relay, NewResponder(sender))

	msg := message("")
	msg.Document = &tgbotapi.Document{FileID: "doc-1", FileName: "report.pdf"}
	updates := make(chan tgbotapi.Update, 1)
	updates <- tgbotapi.Update{Message: msg}
	close(updates)

	done := make(chan struct{})
	go func() {
		d.Run(context.Background(), updates)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Run returned while a relay was still in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(uploader.release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after the relay finished")
	}

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].text, "report.pdf")
}

func TestHandleUpdateNilMessageIgnored(t *testing.T) {
	d, sender, _ := newTestDispatcher(t, &stubUploader{})

	d.HandleUpdate(context.Background(), tgbotapi.Update{})

	assert.Empty(t, sender.sent)
}

func TestAttachmentFromPicksLargestPhoto(t *testing.T) {
	msg := message("")
	msg.Photo = []tgbotapi.PhotoSize{
		{FileID: "small", FileSize: 100},
		{FileID: "large", FileSize: 9000},
	}

	att, ok := attachmentFrom(msg)
	require.True(t, ok)
	assert.Equal(t, entity.KindPhoto, att.Kind)
	assert.Equal(t, "large", att.FileID)
	assert.Empty(t, att.FileName)
}

func TestAttachmentFromEachKind(t *testing.T) {
	doc := message("")
	doc.Document = &tgbotapi.Document{FileID: "d", FileName: "a.txt"}
	att, ok := attachmentFrom(doc)
	require.True(t, ok)
	assert.Equal(t, entity.KindDocument, att.Kind)

	vid := message("")
	vid.Video = &tgbotapi.Video{FileID: "v", FileName: "clip.mp4"}
	att, ok = attachmentFrom(vid)
	require.True(t, ok)
	assert.Equal(t, entity.KindVideo, att.Kind)

	aud := message("")
	aud.Audio = &tgbotapi.Audio{FileID: "a", FileName: "song.mp3"}
	att, ok = attachmentFrom(aud)
	require.True(t, ok)
	assert.Equal(t, entity.KindAudio, att.Kind)

	_, ok = attachmentFrom(message("plain text"))
	assert.False(t, ok)
}
