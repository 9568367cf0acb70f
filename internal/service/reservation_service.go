// Package service holds the reservation lifecycle: creating reservations,
// moving them between statuses and answering the customer validity check.
// It keeps no reservation state of its own; every call goes through the
// store.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/print-shop-booking/internal/model"
	"github.com/iliyamo/print-shop-booking/internal/queue"
	"github.com/iliyamo/print-shop-booking/internal/repository"
	"github.com/iliyamo/print-shop-booking/internal/utils"
)

var (
	// ErrInvalidStatus is returned for a status outside Pending, Approved,
	// Done and Cancelled.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidTransition is returned in strict mode when the current
	// status does not allow the requested move.
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// ReservationStore is the persistence the lifecycle needs. It is satisfied
// by *repository.ReservationRepo.
type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) (string, error)
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	ListAll(ctx context.Context) ([]model.Reservation, error)
	ListByStatus(ctx context.Context, status model.Status) ([]model.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status model.Status) error
	Delete(ctx context.Context, id string) error
}

// EventPublisher delivers lifecycle events to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.ReservationEvent) error
}

// Validity is the answer to a customer's reservation lookup. Reservation is
// nil when the id does not exist.
type Validity struct {
	Valid       bool
	Status      model.Status
	Reservation *model.Reservation
}

// ReservationService mediates creation and status changes of reservations.
type ReservationService struct {
	store     ReservationStore
	publisher EventPublisher
	log       *zap.Logger
	strict    bool
	newID     func() (string, error)
	now       func() time.Time
}

// Option configures a ReservationService.
type Option func(*ReservationService)

// WithStrictTransitions makes Transition check model.CanTransition against
// the stored status before writing.
func WithStrictTransitions(on bool) Option {
	return func(s *ReservationService) { s.strict = on }
}

// WithPublisher sets where lifecycle events go. Nil disables events.
func WithPublisher(p EventPublisher) Option {
	return func(s *ReservationService) { s.publisher = p }
}

// WithIDGenerator overrides the generator used when a submission has no id.
func WithIDGenerator(fn func() (string, error)) Option {
	return func(s *ReservationService) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithClock overrides the time source used for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *ReservationService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewReservationService wires a service over store. A nil logger is
// replaced with a no-op logger.
func NewReservationService(store ReservationStore, log *zap.Logger, opts ...Option) *ReservationService {
	if store == nil {
		panic("nil store passed to NewReservationService")
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &ReservationService{
		store: store,
		log:   log,
		newID: utils.NewReservationID,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitReservation stores a new reservation as submitted. Fields are not
// validated and the status is left unset. A caller supplied id is used as
// is; an empty id gets a generated 13 digit one.
func (s *ReservationService) SubmitReservation(ctx context.Context, res model.Reservation) (string, error) {
	if res.ID == "" {
		id, err := s.newID()
		if err != nil {
			return "", fmt.Errorf("generate reservation id: %w", err)
		}
		res.ID = id
	}
	res.Status = ""
	id, err := s.store.Create(ctx, &res)
	if err != nil {
		return "", err
	}
	s.publish(ctx, queue.EventCreated, id, "")
	return id, nil
}

// Get returns one reservation or repository.ErrReservationNotFound.
func (s *ReservationService) Get(ctx context.Context, id string) (*model.Reservation, error) {
	return s.store.GetByID(ctx, id)
}

// ListAll returns every reservation.
func (s *ReservationService) ListAll(ctx context.Context) ([]model.Reservation, error) {
	return s.store.ListAll(ctx)
}

// ListByStatus returns reservations currently in status.
func (s *ReservationService) ListByStatus(ctx context.Context, status model.Status) ([]model.Reservation, error) {
	if _, err := model.ParseStatus(string(status)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}
	return s.store.ListByStatus(ctx, status)
}

// ListApproved returns reservations whose status is Approved.
func (s *ReservationService) ListApproved(ctx context.Context) ([]model.Reservation, error) {
	return s.store.ListByStatus(ctx, model.StatusApproved)
}

// Approve sets the status to Approved.
func (s *ReservationService) Approve(ctx context.Context, id string) error {
	return s.Transition(ctx, id, model.StatusApproved)
}

// MarkDone sets the status to Done.
func (s *ReservationService) MarkDone(ctx context.Context, id string) error {
	return s.Transition(ctx, id, model.StatusDone)
}

// Cancel sets the status to Cancelled.
func (s *ReservationService) Cancel(ctx context.Context, id string) error {
	return s.Transition(ctx, id, model.StatusCancelled)
}

// Transition writes target as the reservation's status. By default any
// status may follow any other, including the terminal ones. In strict mode
// the stored status is read first and the move checked against
// model.CanTransition; the read and the write are separate statements, so a
// concurrent writer can still slip in between.
func (s *ReservationService) Transition(ctx context.Context, id string, target model.Status) error {
	if _, err := model.ParseStatus(string(target)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}
	if s.strict {
		cur, err := s.store.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !model.CanTransition(cur.EffectiveStatus(), target) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, cur.EffectiveStatus(), target)
		}
	}
	if err := s.store.UpdateStatus(ctx, id, target); err != nil {
		return err
	}
	s.publish(ctx, queue.EventStatusChanged, id, target)
	return nil
}

// Delete removes a reservation permanently.
func (s *ReservationService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, queue.EventDeleted, id, "")
	return nil
}

// CheckValidity answers the customer lookup. A reservation is valid when it
// exists and is Pending or Approved. A missing id is reported as invalid,
// not as an error.
func (s *ReservationService) CheckValidity(ctx context.Context, id string) (Validity, error) {
	res, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return Validity{}, nil
		}
		return Validity{}, err
	}
	st := res.EffectiveStatus()
	return Validity{Valid: st.IsLive(), Status: st, Reservation: res}, nil
}

func (s *ReservationService) publish(ctx context.Context, typ, id string, status model.Status) {
	if s.publisher == nil {
		return
	}
	ev := queue.ReservationEvent{
		EventID:       uuid.NewString(),
		Type:          typ,
		ReservationID: id,
		Status:        string(status),
		OccurredAt:    s.now().Format(time.RFC3339),
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.log.Warn("publish reservation event failed",
			zap.String("type", typ), zap.String("reservation_id", id), zap.Error(err))
	}
}
