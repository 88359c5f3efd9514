package service

import (
	"context"

	"github.com/Cowboybot7/Google-Drive-CB/internal/domain/entity"
)

type FileUploadService interface {
	UploadFile(ctx context.Context, path, name string) (*entity.UploadedObject, error)
}
