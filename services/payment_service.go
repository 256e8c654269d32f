package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anjiri1684/alx_travel/apperrors"
	"github.com/anjiri1684/alx_travel/models"
	"github.com/anjiri1684/alx_travel/notifications"
	"github.com/anjiri1684/alx_travel/payments"
	"github.com/anjiri1684/alx_travel/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Gateway is the payment provider seen by the payment workflow.
type Gateway interface {
	Initialize(ctx context.Context, req payments.InitializeRequest) (payments.InitializeResponse, error)
	Verify(ctx context.Context, txRef string) (*payments.VerifyResult, error)
}

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// VerifyOutcome is the body of a verification response.
type VerifyOutcome struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

type PaymentService struct {
	db         *gorm.DB
	gateway    Gateway
	dispatcher notifications.Dispatcher
	returnBase string
}

// NewPaymentService builds the workflow; returnBase is the public
// scheme://host:port that verification links start with.
func NewPaymentService(db *gorm.DB, gateway Gateway, dispatcher notifications.Dispatcher, returnBase string) *PaymentService {
	return &PaymentService{
		db:         db,
		gateway:    gateway,
		dispatcher: dispatcher,
		returnBase: strings.TrimRight(returnBase, "/"),
	}
}

func (s *PaymentService) VerifyURL(txRef string) string {
	return fmt.Sprintf("%s/api/payments/verify/%s/", s.returnBase, txRef)
}

// Initiate opens a checkout for booking, which must have Guest and Listing
// loaded. On success it stores the checkout URL on the booking and creates
// exactly one pending Payment; on any failure nothing is written.
func (s *PaymentService) Initiate(ctx context.Context, booking *models.Booking) error {
	txRef, err := utils.GenerateUniqueTxRef(s.db.WithContext(ctx))
	if err != nil {
		return apperrors.NewInternalError("failed to generate transaction reference", err)
	}

	req := payments.InitializeRequest{
		Amount:      booking.TotalPrice,
		Email:       booking.Guest.Email,
		FirstName:   booking.Guest.FirstName,
		LastName:    booking.Guest.LastName,
		PhoneNumber: booking.Guest.PhoneNumber,
		TxRef:       txRef,
		CallbackURL: s.VerifyURL(txRef),
		ReturnURL:   s.VerifyURL(txRef),
		Customization: payments.Customization{
			Title: payments.CheckoutTitle(booking.Listing.Title),
			Description: fmt.Sprintf("Staying from %s to %s",
				booking.StartDate.Format(models.DateLayout), booking.EndDate.Format(models.DateLayout)),
		},
	}

	resp, err := s.gateway.Initialize(ctx, req)
	if err != nil {
		return err
	}

	switch r := resp.(type) {
	case payments.InitializeSuccess:
		checkoutURL := r.CheckoutURL
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(booking).Update("payment_url", checkoutURL).Error; err != nil {
				return err
			}
			payment := models.Payment{
				BookingID:     booking.ID,
				TransactionID: txRef,
				Amount:        booking.TotalPrice,
				PaymentStatus: models.PaymentStatusPending,
			}
			return tx.Create(&payment).Error
		})
		if err != nil {
			return apperrors.NewInternalError("failed to record payment", err)
		}
		booking.PaymentURL = &checkoutURL
		return nil

	case payments.InitializeFailure:
		return apperrors.NewExternalError("payment gateway rejected initialization", errors.New(r.Reason))

	default:
		return apperrors.NewInternalError(fmt.Sprintf("unexpected gateway response %T", resp), nil)
	}
}

// Verify reconciles the payment identified by txRef with the gateway. The
// returned outcome is always usable as a response body, also when err is set.
func (s *PaymentService) Verify(ctx context.Context, txRef string) (*VerifyOutcome, error) {
	var payment models.Payment
	err := s.db.WithContext(ctx).
		Preload("Booking.Guest").
		Where("transaction_id = ?", txRef).
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &VerifyOutcome{Status: OutcomeError, Data: "Payment not found"}, apperrors.NewNotFoundError("payment not found")
	}
	if err != nil {
		return &VerifyOutcome{Status: OutcomeError, Data: "failed to load payment"}, apperrors.NewInternalError("failed to load payment", err)
	}

	res, err := s.gateway.Verify(ctx, txRef)
	if err != nil {
		log.Error().Err(err).Str("tx_ref", txRef).Msg("payment verification failed")
		return &VerifyOutcome{Status: OutcomeError, Data: apperrors.PublicMessage(err)}, err
	}

	// The guest may still be on the checkout page; the answer is not final.
	if res.InProgress() {
		log.Info().Str("tx_ref", txRef).Msg("payment still in progress")
		return &VerifyOutcome{Status: OutcomeError, Data: res.Payload}, nil
	}

	becameSuccessful, err := s.reconcile(ctx, &payment, res.Succeeded)
	if err != nil {
		return &VerifyOutcome{Status: OutcomeError, Data: "failed to update payment"}, err
	}

	if becameSuccessful {
		task := notifications.NewPaymentConfirmationTask(payment.Booking.Guest.Email, payment.BookingID)
		if err := s.dispatcher.Dispatch(ctx, task); err != nil {
			log.Error().Err(err).Str("tx_ref", txRef).Msg("failed to queue payment confirmation")
		}
	}

	if res.Succeeded {
		return &VerifyOutcome{Status: OutcomeSuccess, Data: res.Payload}, nil
	}
	return &VerifyOutcome{Status: OutcomeError, Data: res.Payload}, nil
}

// reconcile stores the verification result and moves the booking along.
// It reports whether the payment has just become successful.
func (s *PaymentService) reconcile(ctx context.Context, payment *models.Payment, succeeded bool) (bool, error) {
	next := models.PaymentStatusFailed
	if succeeded {
		next = models.PaymentStatusSuccess
	}
	// A settled payment is never downgraded by a later answer.
	if payment.PaymentStatus == models.PaymentStatusSuccess {
		next = models.PaymentStatusSuccess
	}
	becameSuccessful := next == models.PaymentStatusSuccess && payment.PaymentStatus != models.PaymentStatusSuccess

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(payment).Update("payment_status", next).Error; err != nil {
			return err
		}
		status, changed := BookingStatusAfterPayment(payment.Booking.Status, next)
		if !changed {
			return nil
		}
		return tx.Model(&models.Booking{}).Where("id = ?", payment.BookingID).Update("status", status).Error
	})
	if err != nil {
		return false, apperrors.NewInternalError("failed to update payment", err)
	}
	payment.PaymentStatus = next
	return becameSuccessful, nil
}

func (s *PaymentService) ListForGuest(ctx context.Context, guestID uuid.UUID) ([]models.Payment, error) {
	var list []models.Payment
	err := s.db.WithContext(ctx).
		Where("booking_id IN (?)", s.db.Model(&models.Booking{}).Select("id").Where("guest_id = ?", guestID)).
		Order("created_at desc").
		Find(&list).Error
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list payments", err)
	}
	return list, nil
}

// ReconcilePending re-verifies payments still pending after olderThan and
// returns how many were checked.
func (s *PaymentService) ReconcilePending(ctx context.Context, olderThan time.Duration) (int, error) {
	var pending []models.Payment
	err := s.db.WithContext(ctx).
		Where("payment_status = ? AND created_at < ?", models.PaymentStatusPending, time.Now().Add(-olderThan)).
		Find(&pending).Error
	if err != nil {
		return 0, fmt.Errorf("find pending payments: %w", err)
	}

	for _, p := range pending {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		if _, err := s.Verify(ctx, p.TransactionID); err != nil {
			log.Warn().Err(err).Str("tx_ref", p.TransactionID).Msg("reconcile: verification failed")
		}
	}
	return len(pending), nil
}
