package testutil

import (
	"testing"
	"time"

	"github.com/anjiri1684/alx_travel/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const Password = "correct-horse"

func CreateUser(t testing.TB, db *gorm.DB, roleName string) models.User {
	t.Helper()

	var role models.Role
	if err := db.Where("name = ?", roleName).First(&role).Error; err != nil {
		t.Fatalf("load role %s: %v", roleName, err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	name := "user" + uuid.NewString()[:8]
	user := models.User{
		Username:    name,
		FirstName:   "Test",
		LastName:    "User",
		Email:       name + "@example.com",
		PhoneNumber: "0911000000",
		Password:    string(hash),
		IsActive:    true,
		RoleID:      role.ID,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	user.Role = role
	return user
}

func CreateLocation(t testing.TB, db *gorm.DB) models.Location {
	t.Helper()

	loc := models.Location{Country: "Ethiopia", State: "Addis Ababa", City: "Addis Ababa"}
	if err := db.Create(&loc).Error; err != nil {
		t.Fatalf("create location: %v", err)
	}
	return loc
}

func CreateListing(t testing.TB, db *gorm.DB, host models.User, price string) models.Listing {
	t.Helper()

	loc := CreateLocation(t, db)
	listing := models.Listing{
		Title:         "Sunny loft near Bole",
		PricePerNight: decimal.RequireFromString(price),
		Description:   "Two rooms, balcony",
		HostID:        host.ID,
		LocationID:    loc.ID,
	}
	if err := db.Create(&listing).Error; err != nil {
		t.Fatalf("create listing: %v", err)
	}
	return listing
}

func CreateBooking(t testing.TB, db *gorm.DB, guest models.User, listing models.Listing, start, end string) models.Booking {
	t.Helper()

	s := Date(t, start)
	e := Date(t, end)
	booking := models.Booking{
		StartDate:  s,
		EndDate:    e,
		TotalPrice: listing.PricePerNight.Mul(decimal.NewFromInt(int64(models.Nights(s, e)))),
		Status:     models.BookingStatusPending,
		GuestID:    guest.ID,
		ListingID:  listing.ID,
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return booking
}

func CreatePayment(t testing.TB, db *gorm.DB, booking models.Booking, txRef string) models.Payment {
	t.Helper()

	payment := models.Payment{
		BookingID:     booking.ID,
		TransactionID: txRef,
		Amount:        booking.TotalPrice,
		PaymentStatus: models.PaymentStatusPending,
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("create payment: %v", err)
	}
	return payment
}

func Date(t testing.TB, s string) time.Time {
	t.Helper()

	d, err := time.Parse(models.DateLayout, s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}
