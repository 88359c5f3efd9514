package usecase

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/Cowboybot7/Google-Drive-CB/internal/domain/entity"
	"github.com/Cowboybot7/Google-Drive-CB/internal/domain/service"
	"github.com/Cowboybot7/Google-Drive-CB/pkg/errors"
	"github.com/Cowboybot7/Google-Drive-CB/pkg/logger"
)

type RelayUseCase struct {
	gateway  FileGateway
	uploader service.FileUploadService
	maxBytes int64
}

func NewRelayUseCase(gateway FileGateway, uploader service.FileUploadService, maxBytes int64) *RelayUseCase {
	return &RelayUseCase{
		gateway:  gateway,
		uploader: uploader,
		maxBytes: maxBytes,
	}
}

// Relay runs the full pipeline for one attachment: materialize to a temp file,
// upload, reply with the outcome, then remove the temp file. The temp file is
// removed exactly once, after the reply, regardless of outcome.
func (uc *RelayUseCase) Relay(ctx context.Context, att entity.Attachment, reply ReplySink) {
	relayID := uuid.New().String()

	name, err := att.ResolveFilename()
	if err != nil {
		logger.Warn("relay %s: %v", relayID, err)
		reply.Failure(errors.BadAttachment(err.Error(), err))
		return
	}

	if uc.maxBytes > 0 && att.FileSize > uc.maxBytes {
		logger.Warn("relay %s: %s is %d bytes, over the %d byte limit", relayID, name, att.FileSize, uc.maxBytes)
		reply.Failure(errors.BadAttachment(fmt.Sprintf("file is too large to relay (%d bytes)", att.FileSize), nil))
		return
	}

	path, err := uc.gateway.FetchToTemp(ctx, att.FileID, entity.TempSuffix(name))
	if err != nil {
		logger.Error("relay %s: download failed: %v", relayID, err)
		reply.Failure(err)
		return
	}
	logger.Info("relay %s: downloaded %s to %s", relayID, name, path)

	obj, err := uc.uploader.UploadFile(ctx, path, name)
	if err != nil {
		logger.Error("relay %s: upload failed: %v", relayID, err)
		reply.Failure(err)
	} else {
		logger.Info("relay %s: uploaded %s as %s", relayID, name, obj.ID)
		reply.Success(name, obj.URL)
	}

	if err := os.Remove(path); err != nil {
		logger.Warn("relay %s: failed to remove temp file %s: %v", relayID, path, err)
	}
}
