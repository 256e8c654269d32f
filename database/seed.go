package database

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/anjiri1684/alx_travel/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// unusablePassword never matches a bcrypt comparison, so seeded users
// cannot log in until they set a password.
const unusablePassword = "!"

// Seeder loads sample data from CSV files, creating rows whose id is not
// yet present and reporting each row on out.
type Seeder struct {
	db    *gorm.DB
	out   io.Writer
	roles map[string]uuid.UUID
}

func NewSeeder(db *gorm.DB, out io.Writer) *Seeder {
	return &Seeder{db: db, out: out}
}

// Run seeds users, locations, listings, bookings and reviews from dir, in
// that order. A missing file is reported and skipped.
func (s *Seeder) Run(dir string) error {
	if err := SeedRoles(s.db); err != nil {
		return err
	}
	if err := s.loadRoles(); err != nil {
		return err
	}

	steps := []struct {
		file  string
		label string
		build func(map[string]string) (any, uuid.UUID, string, error)
	}{
		{"users.csv", "User", s.user},
		{"locations.csv", "Location", location},
		{"listings.csv", "Listing", listing},
		{"bookings.csv", "Booking", booking},
		{"reviews.csv", "Review", review},
	}
	for _, step := range steps {
		if err := s.table(filepath.Join(dir, step.file), step.label, step.build); err != nil {
			return err
		}
	}
	return s.promoteHosts()
}

func (s *Seeder) loadRoles() error {
	var roles []models.Role
	if err := s.db.Find(&roles).Error; err != nil {
		return fmt.Errorf("load roles: %w", err)
	}
	s.roles = make(map[string]uuid.UUID, len(roles))
	for _, r := range roles {
		s.roles[r.Name] = r.ID
	}
	return nil
}

func (s *Seeder) table(path, label string, build func(map[string]string) (any, uuid.UUID, string, error)) error {
	rows, err := readCSV(path)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(s.out, "[%s] Skipped: %s not found\n", label, filepath.Base(path))
		return nil
	}
	if err != nil {
		return err
	}

	for _, row := range rows {
		model, id, name, err := build(row)
		if err != nil {
			fmt.Fprintf(s.out, "[%s] Error: %v\n", label, err)
			continue
		}

		var n int64
		if err := s.db.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
			fmt.Fprintf(s.out, "[%s] Error: %v\n", label, err)
			continue
		}
		if n > 0 {
			fmt.Fprintf(s.out, "[%s] Exists: %s\n", label, name)
			continue
		}
		if err := s.db.Create(model).Error; err != nil {
			fmt.Fprintf(s.out, "[%s] Error: %v\n", label, err)
			continue
		}
		fmt.Fprintf(s.out, "[%s] Created: %s\n", label, name)
	}
	return nil
}

// promoteHosts gives the HOST role to every user that owns a listing.
func (s *Seeder) promoteHosts() error {
	hosts := s.db.Model(&models.Listing{}).Select("host_id")
	err := s.db.Model(&models.User{}).
		Where("id IN (?)", hosts).
		Update("role_id", s.roles[models.RoleHost]).Error
	if err != nil {
		return fmt.Errorf("promote hosts: %w", err)
	}
	return nil
}

func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[strings.TrimSpace(col)] = strings.TrimSpace(rec[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *Seeder) user(row map[string]string) (any, uuid.UUID, string, error) {
	id, err := uuid.Parse(row["id"])
	if err != nil {
		return nil, uuid.Nil, "", fmt.Errorf("invalid id %q", row["id"])
	}
	roleName := models.RoleGuest
	if r, ok := models.NormalizeRoleName(row["role"]); ok {
		roleName = r
	}
	u := &models.User{
		ID:        id,
		Username:  row["username"],
		FirstName: row["first_name"],
		LastName:  row["last_name"],
		Email:     row["email"],
		Password:  unusablePassword,
		IsActive:  row["is_active"] == "" || parseBool(row["is_active"]),
		RoleID:    s.roles[roleName],
	}
	if t, ok := parseTime(row["date_joined"]); ok {
		u.CreatedAt = t
	}
	return u, id, u.Username, nil
}

func location(row map[string]string) (any, uuid.UUID, string, error) {
	id, err := uuid.Parse(row["id"])
	if err != nil {
		return nil, uuid.Nil, "", fmt.Errorf("invalid id %q", row["id"])
	}
	return &models.Location{ID: id, Country: row["country"], State: row["state"], City: row["city"]}, id, row["city"], nil
}

func listing(row map[string]string) (any, uuid.UUID, string, error) {
	ids, err := parseUUIDs(row, "id", "host", "location")
	if err != nil {
		return nil, uuid.Nil, "", err
	}
	price, err := decimal.NewFromString(row["price_per_night"])
	if err != nil {
		return nil, uuid.Nil, "", fmt.Errorf("invalid price_per_night %q", row["price_per_night"])
	}
	l := &models.Listing{
		ID:            ids[0],
		Title:         row["title"],
		PricePerNight: price,
		Description:   row["description"],
		ImageURL:      row["image_url"],
		HostID:        ids[1],
		LocationID:    ids[2],
	}
	stamp(&l.CreatedAt, &l.UpdatedAt, row)
	return l, l.ID, l.Title, nil
}

func booking(row map[string]string) (any, uuid.UUID, string, error) {
	ids, err := parseUUIDs(row, "id", "guest", "listing")
	if err != nil {
		return nil, uuid.Nil, "", err
	}
	start, okStart := parseTime(row["start_date"])
	end, okEnd := parseTime(row["end_date"])
	if !okStart || !okEnd {
		return nil, uuid.Nil, "", errors.New("invalid start_date or end_date")
	}
	total, err := decimal.NewFromString(row["total_price"])
	if err != nil {
		return nil, uuid.Nil, "", fmt.Errorf("invalid total_price %q", row["total_price"])
	}
	status := models.BookingStatus(strings.ToUpper(row["status"]))
	if status == "" {
		status = models.BookingStatusPending
	}
	b := &models.Booking{
		ID:         ids[0],
		StartDate:  start,
		EndDate:    end,
		TotalPrice: total,
		Status:     status,
		GuestID:    ids[1],
		ListingID:  ids[2],
	}
	stamp(&b.CreatedAt, &b.UpdatedAt, row)
	return b, b.ID, b.ID.String(), nil
}

func review(row map[string]string) (any, uuid.UUID, string, error) {
	ids, err := parseUUIDs(row, "id", "guest", "listing")
	if err != nil {
		return nil, uuid.Nil, "", err
	}
	rating, err := strconv.Atoi(row["rating"])
	if err != nil || rating < 1 || rating > 5 {
		return nil, uuid.Nil, "", fmt.Errorf("invalid rating %q", row["rating"])
	}
	r := &models.Review{
		ID:        ids[0],
		GuestID:   ids[1],
		ListingID: ids[2],
		Rating:    rating,
		Comment:   row["comment"],
	}
	stamp(&r.CreatedAt, &r.UpdatedAt, row)
	return r, r.ID, r.ID.String(), nil
}

func parseUUIDs(row map[string]string, cols ...string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, len(cols))
	for i, col := range cols {
		id, err := uuid.Parse(row[col])
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q", col, row[col])
		}
		out[i] = id
	}
	return out, nil
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999-07:00", "2006-01-02 15:04:05", models.DateLayout}

func parseTime(v string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func stamp(created, updated *time.Time, row map[string]string) {
	if t, ok := parseTime(row["created_at"]); ok {
		*created = t
	}
	if t, ok := parseTime(row["updated_at"]); ok {
		*updated = t
	}
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	}
	return false
}
