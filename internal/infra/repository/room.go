package repository

import (
	"context"

	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/infra/db"
	"lodgekeeper/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type RoomRepository struct{}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{}
}

const lockRoomSQL = `
SELECT id FROM rooms WHERE id = $1 AND is_active FOR UPDATE
`

// LockForBooking serializes admission checks per room: two bookings for the
// same room queue on this row lock, so the second one sees the first one's
// committed reservation when it loads the holds.
func (r *RoomRepository) LockForBooking(ctx context.Context, tx db.DBTX, roomID uuid.UUID) error {
	var id uuid.UUID
	err := tx.QueryRow(ctx, lockRoomSQL, roomID).Scan(&id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to lock room", err)
	}

	return nil
}
