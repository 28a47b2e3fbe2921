package minio

import (
	"bytes"
	"context"
	"fmt"

	"github.com/DRSN-tech/go-storefront/internal/cfg"
	"github.com/DRSN-tech/go-storefront/internal/usecase"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// PhotoRepo хранит фото подтверждений доставки в MinIO.
type PhotoRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewPhotoRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *PhotoRepo {
	return &PhotoRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Upload загружает фото и возвращает ключ объекта.
func (p *PhotoRepo) Upload(ctx context.Context, photo *usecase.ProofPhoto) (string, error) {
	ext, err := extensionFromMIME(photo.MimeType)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	objectKey := fmt.Sprintf("proof/%s.%s", photo.SubmissionID, ext)
	reader := bytes.NewReader(photo.Data)

	info, err := p.mc.PutObject(ctx, p.cfg.BucketName, objectKey, reader, int64(len(photo.Data)), minio.PutObjectOptions{
		ContentType: photo.MimeType,
	})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}

// Delete удаляет объект по ключу.
func (p *PhotoRepo) Delete(ctx context.Context, key string) error {
	if err := p.mc.RemoveObject(ctx, p.cfg.BucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// extensionFromMIME возвращает расширение файла по MIME-типу фото.
// Поддерживаются jpeg, jpg, png, webp.
func extensionFromMIME(mime string) (string, error) {
	switch mime {
	case "image/jpeg", "image/jpg":
		return "jpg", nil
	case "image/png":
		return "png", nil
	case "image/webp":
		return "webp", nil
	default:
		return "", e.Wrap(mime, e.ErrUnsupportedMediaType)
	}
}
