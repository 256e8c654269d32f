package services

import (
	"context"
	"errors"
	"time"

	"github.com/anjiri1684/alx_travel/apperrors"
	"github.com/anjiri1684/alx_travel/models"
	"github.com/anjiri1684/alx_travel/notifications"
	"github.com/anjiri1684/alx_travel/policy"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentInitiator opens a checkout for a freshly priced booking.
type PaymentInitiator interface {
	Initiate(ctx context.Context, booking *models.Booking) error
}

type CreateBookingInput struct {
	ListingID uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

type UpdateBookingInput struct {
	StartDate time.Time
	EndDate   time.Time
}

type BookingService struct {
	db         *gorm.DB
	payments   PaymentInitiator
	dispatcher notifications.Dispatcher
}

func NewBookingService(db *gorm.DB, payments PaymentInitiator, dispatcher notifications.Dispatcher) *BookingService {
	return &BookingService{db: db, payments: payments, dispatcher: dispatcher}
}

// TotalPrice is the nightly price times the nights between start and end.
func TotalPrice(pricePerNight decimal.Decimal, start, end time.Time) (decimal.Decimal, error) {
	nights := models.Nights(start, end)
	if nights < 1 {
		return decimal.Zero, apperrors.NewValidationError("end_date must be after start_date")
	}
	return pricePerNight.Mul(decimal.NewFromInt(int64(nights))), nil
}

// Create books a listing for guestID. A gateway failure does not fail the
// booking; it is returned without a payment_url instead.
func (s *BookingService) Create(ctx context.Context, guestID uuid.UUID, in CreateBookingInput) (*models.Booking, error) {
	db := s.db.WithContext(ctx)

	var listing models.Listing
	if err := db.First(&listing, "id = ?", in.ListingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("listing not found")
		}
		return nil, apperrors.NewInternalError("failed to load listing", err)
	}

	total, err := TotalPrice(listing.PricePerNight, in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	var guest models.User
	if err := db.Preload("Role").First(&guest, "id = ?", guestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, apperrors.NewInternalError("failed to load user", err)
	}

	booking := models.Booking{
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		TotalPrice: total,
		Status:     models.BookingStatusPending,
		GuestID:    guestID,
		ListingID:  listing.ID,
	}
	if err := db.Create(&booking).Error; err != nil {
		return nil, apperrors.NewInternalError("failed to create booking", err)
	}

	if err := s.dispatcher.Dispatch(ctx, notifications.NewBookingConfirmationTask(booking.ID)); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID.String()).Msg("failed to queue booking confirmation")
	}

	created, err := s.load(ctx, booking.ID)
	if err != nil {
		// The row is stored; answer with what is already in memory.
		log.Error().Err(err).Str("booking_id", booking.ID.String()).Msg("failed to reload booking")
		booking.Guest = guest
		booking.Listing = listing
		created = &booking
	}
	s.initiatePayment(ctx, created)
	return created, nil
}

func (s *BookingService) initiatePayment(ctx context.Context, booking *models.Booking) {
	if err := s.payments.Initiate(ctx, booking); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID.String()).Msg("payment initialization failed")
	}
}

// List returns bookings where userID is the guest or hosts the listing.
func (s *BookingService) List(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	db := s.db.WithContext(ctx)
	hosted := db.Model(&models.Listing{}).Select("id").Where("host_id = ?", userID)

	var bookings []models.Booking
	err := db.Preload("Guest.Role").Preload("Listing").
		Where("guest_id = ? OR listing_id IN (?)", userID, hosted).
		Order("created_at desc").
		Find(&bookings).Error
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list bookings", err)
	}
	return bookings, nil
}

func (s *BookingService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Booking, error) {
	booking, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Booking(userID, booking, policy.Read); err != nil {
		return nil, err
	}
	return booking, nil
}

// Update moves the dates of a pending booking. The price is derived again
// and any open checkout is replaced by a new one for the new amount.
func (s *BookingService) Update(ctx context.Context, userID, id uuid.UUID, in UpdateBookingInput) (*models.Booking, error) {
	booking, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Booking(userID, booking, policy.Write); err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusPending {
		return nil, apperrors.NewConflictError("only pending bookings can be changed")
	}

	total, err := TotalPrice(booking.Listing.PricePerNight, in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	// Replaced checkouts stay on record so their tx_ref can still be verified.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Payment{}).
			Where("booking_id = ? AND payment_status = ?", id, models.PaymentStatusPending).
			Update("payment_status", models.PaymentStatusFailed).Error; err != nil {
			return err
		}
		return tx.Model(&models.Booking{}).Where("id = ?", id).Updates(map[string]any{
			"start_date":  in.StartDate,
			"end_date":    in.EndDate,
			"total_price": total,
			"payment_url": nil,
		}).Error
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update booking", err)
	}

	updated, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	s.initiatePayment(ctx, updated)
	return updated, nil
}

func (s *BookingService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	booking, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Booking(userID, booking, policy.Write); err != nil {
		return err
	}
	if err := Deletable(s.db.WithContext(ctx), "id = ?", id); err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Booking{}, "id = ?", id).Error
	})
	if err != nil {
		return apperrors.NewInternalError("failed to delete booking", err)
	}
	return nil
}

// Deletable returns a conflict when any booking matched by query has left
// PENDING or holds a successful payment.
func Deletable(db *gorm.DB, query string, args ...any) error {
	matched := db.Model(&models.Booking{}).Select("id").Where(query, args...)

	var settled int64
	err := db.Model(&models.Booking{}).
		Where("id IN (?)", matched).
		Where("status <> ? OR id IN (?)", models.BookingStatusPending,
			db.Model(&models.Payment{}).Select("booking_id").Where("payment_status = ?", models.PaymentStatusSuccess)).
		Count(&settled).Error
	if err != nil {
		return apperrors.NewInternalError("failed to check bookings", err)
	}
	if settled > 0 {
		return apperrors.NewConflictError("settled bookings cannot be deleted")
	}
	return nil
}

func (s *BookingService) load(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Preload("Guest.Role").
		Preload("Listing").
		First(&booking, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError("booking not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load booking", err)
	}
	return &booking, nil
}
