package database_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/anjiri1684/alx_travel/database"
	"github.com/anjiri1684/alx_travel/models"
	"github.com/anjiri1684/alx_travel/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	hostID     = "11111111-1111-1111-1111-111111111111"
	guestID    = "22222222-2222-2222-2222-222222222222"
	locationID = "33333333-3333-3333-3333-333333333333"
	listingID  = "44444444-4444-4444-4444-444444444444"
	bookingID  = "55555555-5555-5555-5555-555555555555"
	reviewID   = "66666666-6666-6666-6666-666666666666"
)

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestSeeder_Run(t *testing.T) {
	db := testutil.NewDB(t)
	dir := t.TempDir()

	writeCSV(t, dir, "users.csv", "id,username,first_name,last_name,email,is_staff,is_active,date_joined\n"+
		hostID+",meron,Meron,T,meron@example.com,false,true,2024-01-01 10:00:00\n"+
		guestID+",dawit,Dawit,K,dawit@example.com,false,true,2024-01-02 10:00:00\n"+
		"not-a-uuid,broken,,,broken@example.com,false,true,\n")
	writeCSV(t, dir, "locations.csv", "id,country,state,city\n"+locationID+",Ethiopia,Amhara,Bahir Dar\n")
	writeCSV(t, dir, "listings.csv", "id,title,price_per_night,description,image_url,created_at,updated_at,host,location\n"+
		listingID+",Lakeside cabin,85.50,Quiet,,2024-01-03T10:00:00Z,2024-01-03T10:00:00Z,"+hostID+","+locationID+"\n")
	writeCSV(t, dir, "bookings.csv", "id,start_date,end_date,total_price,status,created_at,updated_at,guest,listing\n"+
		bookingID+",2024-02-01,2024-02-03,171.00,confirmed,,,"+guestID+","+listingID+"\n")
	writeCSV(t, dir, "reviews.csv", "id,rating,comment,created_at,updated_at,listing,guest\n"+
		reviewID+",5,Lovely,,,"+listingID+","+guestID+"\n")

	var out bytes.Buffer
	require.NoError(t, database.NewSeeder(db, &out).Run(dir))

	log := out.String()
	assert.Contains(t, log, "[User] Created: meron")
	assert.Contains(t, log, "[User] Error:")
	assert.Contains(t, log, "[Listing] Created: Lakeside cabin")
	assert.Contains(t, log, "[Review] Created: "+reviewID)

	var host models.User
	require.NoError(t, db.Preload("Role").First(&host, "id = ?", hostID).Error)
	assert.Equal(t, models.RoleHost, host.Role.Name)

	var guest models.User
	require.NoError(t, db.Preload("Role").First(&guest, "id = ?", guestID).Error)
	assert.Equal(t, models.RoleGuest, guest.Role.Name)

	var b models.Booking
	require.NoError(t, db.First(&b, "id = ?", bookingID).Error)
	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
	assert.True(t, decimal.RequireFromString("171").Equal(b.TotalPrice))

	// A second run only finds existing rows.
	out.Reset()
	require.NoError(t, database.NewSeeder(db, &out).Run(dir))
	assert.Contains(t, out.String(), "[User] Exists: meron")
	assert.NotContains(t, out.String(), "Created")
}

func TestSeeder_MissingFiles(t *testing.T) {
	db := testutil.NewDB(t)

	var out bytes.Buffer
	require.NoError(t, database.NewSeeder(db, &out).Run(t.TempDir()))
	assert.Contains(t, out.String(), "[User] Skipped: users.csv not found")
}
