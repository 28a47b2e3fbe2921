package kafka

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/internal/usecase"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/DRSN-tech/go-storefront/pkg/jitter"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
)

// SubmitWorker — асинхронный приёмник подтверждений доставки.
// Enqueue кладёт заявку в ограниченную очередь и возвращается сразу;
// фоновый цикл публикует её в шину с повторами. Временные сбои
// отступают с джиттером, постоянные — логируются и отбрасываются.
type SubmitWorker struct {
	queue      chan *domain.ProofOfDelivery
	producer   usecase.MessageProducer
	logger     logger.Logger
	maxRetries int
	stop       chan struct{}
	wg         sync.WaitGroup
	once       sync.Once
}

func NewSubmitWorker(producer usecase.MessageProducer, logger logger.Logger, queueSize, maxRetries int) *SubmitWorker {
	return &SubmitWorker{
		queue:      make(chan *domain.ProofOfDelivery, queueSize),
		producer:   producer,
		logger:     logger,
		maxRetries: maxRetries,
		stop:       make(chan struct{}),
	}
}

// Enqueue ставит подтверждение в очередь отправки.
// После остановки воркера заявки не принимаются.
func (w *SubmitWorker) Enqueue(proof *domain.ProofOfDelivery) error {
	select {
	case <-w.stop:
		return e.ErrSubmissionRejected
	default:
	}

	select {
	case w.queue <- proof:
		return nil
	case <-w.stop:
		return e.ErrSubmissionRejected
	}
}

func (w *SubmitWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()
}

// Stop прекращает приём, допубликовывает уже принятые заявки
// и дожидается завершения цикла.
func (w *SubmitWorker) Stop() {
	w.once.Do(func() {
		close(w.stop)
	})
	w.wg.Wait()
}

func (w *SubmitWorker) run(ctx context.Context) {
	for {
		select {
		case proof := <-w.queue:
			w.publish(ctx, proof)
		case <-ctx.Done():
			w.logger.Infof("submit worker stopped by context cancellation")
			return
		case <-w.stop:
			w.drain(ctx)
			return
		}
	}
}

// drain публикует остаток очереди при остановке.
func (w *SubmitWorker) drain(ctx context.Context) {
	for {
		select {
		case proof := <-w.queue:
			w.publish(ctx, proof)
		default:
			w.logger.Infof("submit worker drained")
			return
		}
	}
}

// publish пишет заявку в шину с повторами и экспоненциальной
// задержкой. Исчерпание попыток и постоянные ошибки роняют заявку,
// не воркер.
func (w *SubmitWorker) publish(ctx context.Context, proof *domain.ProofOfDelivery) {
	const (
		baseBackoff = time.Second
		maxBackoff  = 30 * time.Second
	)

	for attempt := 0; attempt < w.maxRetries; attempt++ {
		err := w.producer.WriteProof(ctx, proof)
		if err == nil {
			w.logger.Debugf("proof %s published", proof.SubmissionID)
			return
		}

		if !isRetryableError(err) || attempt == w.maxRetries-1 {
			w.logger.Warnf("proof %s dropped after %d attempt(s): %v", proof.SubmissionID, attempt+1, err)
			return
		}

		sleepTime := jitter.ExponentialBackoff(baseBackoff, maxBackoff, attempt, jitter.DefaultJitter)
		w.logger.Warnf("proof %s publish failed, retrying in %v: %v", proof.SubmissionID, sleepTime, err)

		select {
		case <-time.After(sleepTime):
		case <-ctx.Done():
			return
		}
	}
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	retryablePhrases := []string{
		"connection refused",
		"i/o timeout",
		"network is unreachable",
		"broker not available",
		"connection reset",
		"broken pipe",
		"no such host",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}
	return false
}
