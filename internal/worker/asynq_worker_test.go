package worker

import (
	"context"
	"testing"

	"github.com/e11even-central/api/internal/config"
	"github.com/e11even-central/api/internal/queue"

	"github.com/hibiken/asynq"
)

func TestRegisterNilSafe(t *testing.T) {
	var consumer *Consumer
	consumer.Register(asynq.NewServeMux())

	NewConsumer(nil).Register(nil)
}

func TestHandleSessionTimeoutExpireBadPayload(t *testing.T) {
	consumer := &Consumer{}
	task := asynq.NewTask(queue.TaskSessionTimeoutExpire, []byte("not-json"))

	if err := consumer.handleSessionTimeoutExpire(context.Background(), task); err == nil {
		t.Fatal("expected unmarshal error for malformed payload")
	}
}

func TestHandleSessionTimeoutExpireZeroID(t *testing.T) {
	consumer := &Consumer{}
	task := asynq.NewTask(queue.TaskSessionTimeoutExpire, []byte(`{"session_id":0}`))

	if err := consumer.handleSessionTimeoutExpire(context.Background(), task); err != nil {
		t.Fatalf("expected zero session id to be skipped, got %v", err)
	}
}

func TestHandleTipReceiptEmailBadPayload(t *testing.T) {
	consumer := &Consumer{}
	task := asynq.NewTask(queue.TaskTipReceiptEmail, []byte("{"))

	if err := consumer.handleTipReceiptEmail(context.Background(), task); err == nil {
		t.Fatal("expected unmarshal error for malformed payload")
	}
}

func TestHandleTipReceiptEmailZeroID(t *testing.T) {
	consumer := &Consumer{}
	task := asynq.NewTask(queue.TaskTipReceiptEmail, []byte(`{"tip_id":0}`))

	if err := consumer.handleTipReceiptEmail(context.Background(), task); err != nil {
		t.Fatalf("expected zero tip id to be skipped, got %v", err)
	}
}

func TestServiceName(t *testing.T) {
	var nilService *Service
	if got := nilService.Name(); got != "worker" {
		t.Fatalf("expected fallback name worker, got %q", got)
	}
	if got := (&Service{name: "worker"}).Name(); got != "worker" {
		t.Fatalf("unexpected name %q", got)
	}
}

func TestNewServiceQueueDisabled(t *testing.T) {
	if _, err := NewService(&config.QueueConfig{Enabled: false}, &Consumer{}); err == nil {
		t.Fatal("expected error when queue disabled")
	}
	if _, err := NewService(nil, &Consumer{}); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestNewServiceNilConsumer(t *testing.T) {
	if _, err := NewService(&config.QueueConfig{Enabled: true}, nil); err == nil {
		t.Fatal("expected error for nil consumer")
	}
}
