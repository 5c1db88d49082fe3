//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123"
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, password_hash, role, is_active) VALUES ($1, $2, $3, $4, true) ON CONFLICT (email) WHERE is_active = true DO NOTHING",
		userID, email, testPasswordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1 AND is_active = true", email).Scan(&userID)
	}

	return userID
}

// RoomID looks up a room by its number ("1".."30").
func RoomID(t *testing.T, db DBLike, roomNumber string) uuid.UUID {
	t.Helper()

	var roomID uuid.UUID
	err := db.QueryRow(context.Background(),
		"SELECT id FROM rooms WHERE room_number = $1", roomNumber).Scan(&roomID)
	require.NoError(t, err, "room %s not found", roomNumber)
	return roomID
}

// CreateTestVoucher inserts an uploaded voucher awaiting review, as if OCR
// had already extracted its fields.
func CreateTestVoucher(t *testing.T, db DBLike, uploadedBy uuid.UUID, customerName, voucherNumber string) uuid.UUID {
	t.Helper()

	voucherID := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO vouchers (id, image_path, ocr_text, customer_name, voucher_number, check_in_date, check_out_date, status, uploaded_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending_review', $8)`,
		voucherID, "20250601_"+voucherID.String()+".jpg",
		"Passenger name/s: "+customerName+"\nVoucher #: "+voucherNumber,
		customerName, voucherNumber,
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		uploadedBy)
	require.NoError(t, err)
	return voucherID
}

// VoucherStatus reads a voucher's status and linked reservation.
func VoucherStatus(t *testing.T, db DBLike, voucherID uuid.UUID) (string, *uuid.UUID) {
	t.Helper()

	var status string
	var reservationID *uuid.UUID
	err := db.QueryRow(context.Background(),
		"SELECT status, reservation_id FROM vouchers WHERE id = $1", voucherID).
		Scan(&status, &reservationID)
	require.NoError(t, err)
	return status, reservationID
}

// CountReservations returns the number of reservations with the given status for a room.
func CountReservations(t *testing.T, db DBLike, roomID uuid.UUID, status string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM reservations WHERE room_id = $1 AND status = $2", roomID, status).Scan(&n)
	require.NoError(t, err)
	return n
}

// inserts the room inventory that the schema migration normally seeds
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO rooms (room_number)
		SELECT n::text FROM generate_series(1, 30) AS n
		ON CONFLICT (room_number) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
