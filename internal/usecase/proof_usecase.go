package usecase

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
	"github.com/google/uuid"
)

// ProofUseCase — поток подтверждения доставки: съёмка фото, локальная
// валидация и асинхронная отправка во внешний приёмник.
type ProofUseCase struct {
	camera CameraInfra
	photos PhotoRepository
	sink   SubmissionSink
	logger logger.Logger
}

func NewProofUC(camera CameraInfra, photos PhotoRepository, sink SubmissionSink, logger logger.Logger) *ProofUseCase {
	return &ProofUseCase{
		camera: camera,
		photos: photos,
		sink:   sink,
		logger: logger,
	}
}

// Capture запускает камеру и возвращает URI снятого кадра.
// Отказ в разрешении блокирует только это действие: ошибка
// возвращается вызывающему, остальной поток не затрагивается.
func (p *ProofUseCase) Capture(ctx context.Context) (string, error) {
	const op = "ProofUseCase.Capture"

	uri, err := p.camera.LaunchCamera(ctx)
	if err != nil {
		return "", e.Wrap(op, err)
	}

	return uri, nil
}

// Submit валидирует заявку, загружает фото в объектное хранилище и
// ставит подтверждение в очередь отправки. Возврат означает «принято»,
// сама публикация асинхронна.
func (p *ProofUseCase) Submit(ctx context.Context, req *SubmitProofReq) (*SubmitProofRes, error) {
	const op = "ProofUseCase.Submit"

	condition, err := validateProof(req)
	if err != nil {
		return nil, err
	}

	data, err := readPhoto(req.ImageURI)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	submissionID := uuid.NewString()
	mimeType := http.DetectContentType(data[:min(len(data), 512)])

	objectKey, err := p.photos.Upload(ctx, NewProofPhoto(data, mimeType, submissionID))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	proof := domain.NewProofOfDelivery(submissionID, req.ImageURI, req.Rating, condition, req.Feedback)
	proof.ObjectKey = objectKey

	if err := p.sink.Enqueue(proof); err != nil {
		// Фото без заявки в очереди — сирота, убираем его сразу.
		if delErr := p.photos.Delete(ctx, objectKey); delErr != nil {
			p.logger.Warnf("%s: orphaned photo cleanup failed: %v", op, delErr)
		}
		return nil, e.Wrap(op, err)
	}

	p.logger.Infof("proof of delivery %s accepted (rating=%d, condition=%s)", submissionID, proof.Rating, proof.Condition)

	return NewSubmitProofRes(submissionID, proof.SubmittedAt), nil
}

// validateProof проверяет заявку по правилам экрана: фото обязательно,
// оценка 1..5, состояние из известного списка. Пустое состояние
// трактуется как New — значение пикера по умолчанию.
func validateProof(req *SubmitProofReq) (domain.Condition, error) {
	if strings.TrimSpace(req.ImageURI) == "" {
		return "", e.ErrPhotoRequired
	}
	if req.Rating < 1 || req.Rating > 5 {
		return "", e.ErrRatingRequired
	}

	condition := domain.Condition(req.Condition)
	if condition == "" {
		condition = domain.ConditionNew
	}
	if !condition.Valid() {
		return "", e.Wrap(req.Condition, e.ErrUnknownCondition)
	}

	return condition, nil
}

// readPhoto читает байты кадра по URI, выданному мостом камеры.
func readPhoto(uri string) ([]byte, error) {
	path := strings.TrimPrefix(uri, "file://")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, e.Wrap(path, err)
	}
	if len(data) == 0 {
		return nil, e.Wrap(path, e.ErrPhotoRequired)
	}

	return data, nil
}
