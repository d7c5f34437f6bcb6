// Package feedback validates contact form submissions and hands them to the
// store.
//
// A valid submission is always acknowledged to the visitor, even when the
// store write fails. The write outcome is logged and counted instead, see
// Service.Stats.
package feedback

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
	"village-profile/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const AcknowledgeMessage = "Thank you for your message! We'll get back to you soon."

type Inserter interface {
	InsertFeedback(ctx context.Context, fb *models.Feedback) error
}

// Receipt is returned for every valid submission.
type Receipt struct {
	ID           string `json:"id"`
	Acknowledged bool   `json:"acknowledged"`
	Message      string `json:"message"`
	// Persisted is the real store outcome. It is not shown to visitors.
	Persisted bool `json:"-"`
}

type Stats struct {
	Submitted int64 `json:"submitted"`
	Persisted int64 `json:"persisted"`
	Failed    int64 `json:"failed"`
	Rejected  int64 `json:"rejected"`
}

type Service struct {
	store   Inserter
	logger  *zap.Logger
	timeout time.Duration
	now     func() time.Time

	submitted atomic.Int64
	persisted atomic.Int64
	failed    atomic.Int64
	rejected  atomic.Int64
}

func NewService(store Inserter, logger *zap.Logger, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Service{
		store:   store,
		logger:  logger,
		timeout: timeout,
		now:     time.Now,
	}
}

// Submit validates f and, when valid, inserts it into the feedback
// collection. Invalid input returns a *ValidationError and never reaches
// the store. Valid input always yields an acknowledged receipt.
func (s *Service) Submit(ctx context.Context, f Form) (Receipt, error) {
	if err := Validate(f); err != nil {
		s.rejected.Add(1)
		return Receipt{}, err
	}

	f = f.normalized()
	fb := &models.Feedback{
		ID:        uuid.NewString(),
		Name:      f.Name,
		Email:     f.Email,
		Message:   f.Message,
		CreatedAt: s.now().UTC(),
	}

	s.submitted.Add(1)
	err := s.insert(ctx, fb)
	if err != nil {
		s.failed.Add(1)
		s.logger.Warn("Feedback not persisted, acknowledging anyway",
			zap.String("id", fb.ID),
			zap.Error(err))
	} else {
		s.persisted.Add(1)
		s.logger.Info("Feedback stored", zap.String("id", fb.ID))
	}

	return Receipt{
		ID:           fb.ID,
		Acknowledged: true,
		Message:      AcknowledgeMessage,
		Persisted:    err == nil,
	}, nil
}

func (s *Service) insert(ctx context.Context, fb *models.Feedback) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("feedback store panicked: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.store.InsertFeedback(ctx, fb)
}

func (s *Service) Stats() Stats {
	return Stats{
		Submitted: s.submitted.Load(),
		Persisted: s.persisted.Load(),
		Failed:    s.failed.Load(),
		Rejected:  s.rejected.Load(),
	}
}
