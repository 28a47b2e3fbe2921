package usecase

import (
	"context"

	"github.com/DRSN-tech/go-storefront/internal/domain"
)

// CameraInfra — внешняя возможность устройства: съёмка фото.
// Возвращает URI снятого кадра.
type CameraInfra interface {
	LaunchCamera(ctx context.Context) (string, error)
}

// SubmissionSink принимает подтверждения доставки для асинхронной
// отправки. Enqueue не блокируется на сетевых вызовах.
type SubmissionSink interface {
	Enqueue(proof *domain.ProofOfDelivery) error
}

// MessageProducer публикует подтверждение доставки во внешнюю шину.
type MessageProducer interface {
	WriteProof(ctx context.Context, proof *domain.ProofOfDelivery) error
}
