package payments

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tunespace/tunespace-api/internal/features/auth"
	"github.com/tunespace/tunespace-api/internal/features/notifications"
	"github.com/tunespace/tunespace-api/internal/pkg/logger"
	"github.com/tunespace/tunespace-api/internal/pkg/mailer"
	"github.com/tunespace/tunespace-api/internal/pkg/paymongo"
	"github.com/tunespace/tunespace-api/pkg/errors"
)

// defaultFeePercent is the platform's cut of each payment.
const defaultFeePercent = 20

type Service struct {
	repo     Repository
	users    auth.Repository
	gateway  *paymongo.Client
	notifier *notifications.Service
	mail     mailer.Sender

	mu         sync.RWMutex
	feePercent int
}

func NewService(repo Repository, users auth.Repository, gateway *paymongo.Client, notifier *notifications.Service, mail mailer.Sender) *Service {
	return &Service{
		repo:       repo,
		users:      users,
		gateway:    gateway,
		notifier:   notifier,
		mail:       mail,
		feePercent: defaultFeePercent,
	}
}

// FeePercent returns the current platform fee percentage.
func (s *Service) FeePercent() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.feePercent
}

// SetFeePercent updates the platform fee applied to new payments.
func (s *Service) SetFeePercent(percent int) error {
	if percent < 0 || percent > 50 {
		return errors.NewValidation("fee percent must be between 0 and 50")
	}
	s.mu.Lock()
	s.feePercent = percent
	s.mu.Unlock()
	return nil
}

// Create books a payment to a creator: a checkout link is created at the
// gateway and stored with the platform fee snapshot taken at creation time.
func (s *Service) Create(ctx context.Context, userID uint, req *CreatePaymentRequest) (*Payment, error) {
	creator, err := s.users.GetByID(ctx, req.CreatorID)
	if err != nil {
		return nil, errors.NewValidation("creator not found")
	}
	if creator.ID == userID {
		return nil, errors.NewValidation("cannot pay yourself")
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Booking with %s", creator.FullName())
	}

	link, err := s.gateway.CreateLink(ctx, req.AmountCents, description)
	if err != nil {
		return nil, fmt.Errorf("create checkout link: %w", err)
	}

	payment := &Payment{
		UserID:        userID,
		CreatorID:     req.CreatorID,
		AmountCents:   req.AmountCents,
		AdminFeeCents: req.AmountCents * s.FeePercent() / 100,
		Reference:     link.ReferenceNumber,
		CheckoutURL:   link.CheckoutURL,
		Description:   description,
		Status:        StatusPending,
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, payment.ID)
}

// CheckStatus polls the gateway for the payment's link and settles it when
// the link reports paid. Safe to call repeatedly; settling is idempotent.
func (s *Service) CheckStatus(ctx context.Context, reference string) (*Payment, error) {
	payment, err := s.repo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if payment.Status != StatusPending {
		return payment, nil
	}

	link, err := s.gateway.GetLinkByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("query checkout link %s: %w", reference, err)
	}
	if link == nil || link.Status != "paid" {
		return payment, nil
	}

	if err := s.settle(ctx, payment); err != nil {
		return nil, err
	}
	return s.repo.GetByReference(ctx, reference)
}

func (s *Service) settle(ctx context.Context, payment *Payment) error {
	now := time.Now()
	if err := s.repo.MarkPaid(ctx, payment.ID, now); err != nil {
		return err
	}

	amount := fmt.Sprintf("$%.2f", float64(payment.AmountCents)/100)
	if err := s.notifier.Notify(ctx, payment.CreatorID, notifications.TypePayment,
		"Payment received", fmt.Sprintf("You received a payment of %s.", amount), false); err != nil {
		logger.Error("notify creator %d of payment: %v", payment.CreatorID, err)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		payer, err := s.users.GetByID(ctx, payment.UserID)
		if err != nil {
			logger.Error("load payer %d for receipt: %v", payment.UserID, err)
			return
		}
		if err := s.mail.SendPaymentReceipt(ctx, payer.Email, payment.Reference, payment.AmountCents); err != nil {
			logger.Error("email receipt for %s: %v", payment.Reference, err)
		}
	}()

	return nil
}

// PollPending walks pending payments and settles any the gateway reports as
// paid. Called by the hourly job.
func (s *Service) PollPending(ctx context.Context, batchSize int) (int, error) {
	pending, err := s.repo.ListPending(ctx, batchSize)
	if err != nil {
		return 0, err
	}

	settled := 0
	for i := range pending {
		link, err := s.gateway.GetLinkByReference(ctx, pending[i].Reference)
		if err != nil {
			logger.Warn("poll link %s: %v", pending[i].Reference, err)
			continue
		}
		if link == nil || link.Status != "paid" {
			continue
		}
		if err := s.settle(ctx, &pending[i]); err != nil {
			logger.Error("settle payment %d: %v", pending[i].ID, err)
			continue
		}
		settled++
	}
	return settled, nil
}

// CleanupUnpaid deletes pending payments older than maxAge. Called by the
// daily job; abandoned checkout links have no value after a day.
func (s *Service) CleanupUnpaid(ctx context.Context, maxAge time.Duration) (int64, error) {
	return s.repo.DeleteUnpaidBefore(ctx, time.Now().Add(-maxAge))
}

func (s *Service) ListMine(ctx context.Context, userID uint, page, limit int) ([]Payment, int64, error) {
	return s.repo.ListByUser(ctx, userID, limit, (page-1)*limit)
}

func (s *Service) Get(ctx context.Context, userID, paymentID uint, isAdmin bool) (*Payment, error) {
	payment, err := s.repo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && payment.UserID != userID && payment.CreatorID != userID {
		return nil, errors.ErrForbidden
	}
	return payment, nil
}

func (s *Service) ListAll(ctx context.Context, page, limit int) ([]Payment, int64, error) {
	return s.repo.ListAll(ctx, limit, (page-1)*limit)
}

func (s *Service) UnclaimedFees(ctx context.Context) (int64, error) {
	return s.repo.UnclaimedFees(ctx)
}

func (s *Service) ClaimFees(ctx context.Context) (int64, error) {
	return s.repo.ClaimFees(ctx)
}
