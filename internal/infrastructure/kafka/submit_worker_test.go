package kafka_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/internal/infrastructure/kafka"
	"github.com/DRSN-tech/go-storefront/pkg/e"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

type fakeProducer struct {
	mu      sync.Mutex
	errs    []error // ошибки первых вызовов, далее успех
	written []*domain.ProofOfDelivery
}

func (f *fakeProducer) WriteProof(ctx context.Context, proof *domain.ProofOfDelivery) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return err
	}
	f.written = append(f.written, proof)
	return nil
}

func (f *fakeProducer) writtenCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.written)
}

func sampleProof(id string) *domain.ProofOfDelivery {
	return domain.NewProofOfDelivery(id, "file:///tmp/shot.jpg", 5, domain.ConditionGood, "ok")
}

func TestSubmitWorker_PublishesEnqueuedProofs(t *testing.T) {
	producer := &fakeProducer{}
	worker := kafka.NewSubmitWorker(producer, nopLogger{}, 8, 3)
	worker.Start(context.Background())

	if err := worker.Enqueue(sampleProof("a")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := worker.Enqueue(sampleProof("b")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	worker.Stop()

	if got := producer.writtenCount(); got != 2 {
		t.Fatalf("expected 2 published proofs, got %d", got)
	}
}

func TestSubmitWorker_RetriesTransientFailure(t *testing.T) {
	producer := &fakeProducer{errs: []error{errors.New("dial tcp: connection refused")}}
	worker := kafka.NewSubmitWorker(producer, nopLogger{}, 8, 3)
	worker.Start(context.Background())

	if err := worker.Enqueue(sampleProof("a")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deadline := time.After(10 * time.Second)
	for producer.writtenCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("proof was not published after transient failure")
		case <-time.After(50 * time.Millisecond):
		}
	}

	worker.Stop()
}

func TestSubmitWorker_DropsOnPermanentFailure(t *testing.T) {
	producer := &fakeProducer{errs: []error{errors.New("message too large")}}
	worker := kafka.NewSubmitWorker(producer, nopLogger{}, 8, 3)
	worker.Start(context.Background())

	if err := worker.Enqueue(sampleProof("a")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	worker.Stop()

	if got := producer.writtenCount(); got != 0 {
		t.Fatalf("permanent failure must drop the proof, got %d published", got)
	}
}

func TestSubmitWorker_RejectsAfterStop(t *testing.T) {
	worker := kafka.NewSubmitWorker(&fakeProducer{}, nopLogger{}, 8, 3)
	worker.Start(context.Background())
	worker.Stop()

	if err := worker.Enqueue(sampleProof("late")); !errors.Is(err, e.ErrSubmissionRejected) {
		t.Fatalf("expected ErrSubmissionRejected after stop, got %v", err)
	}
}

func TestSubmitWorker_DrainsQueueOnStop(t *testing.T) {
	producer := &fakeProducer{}
	worker := kafka.NewSubmitWorker(producer, nopLogger{}, 8, 3)

	// заявки приняты до запуска цикла: Stop обязан их допубликовать
	for _, id := range []string{"a", "b", "c"} {
		if err := worker.Enqueue(sampleProof(id)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	worker.Start(context.Background())
	worker.Stop()

	if got := producer.writtenCount(); got != 3 {
		t.Fatalf("stop must drain the queue, got %d published", got)
	}
}
