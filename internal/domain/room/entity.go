// Package room models the lodge's room inventory. Rooms are seeded once
// (numbers 1..30) and never mutated beyond the active flag; all booking
// state lives on reservations.
package room

import (
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyRoomNumber = errors.New("room number cannot be empty")
)

type Room struct {
	id         uuid.UUID
	roomNumber string
	roomType   *string
	isActive   bool
}

func NewRoom(id uuid.UUID, roomNumber string, roomType *string, isActive bool) (*Room, error) {
	roomNumber = strings.TrimSpace(roomNumber)
	if roomNumber == "" {
		return nil, ErrEmptyRoomNumber
	}
	return &Room{
		id:         id,
		roomNumber: roomNumber,
		roomType:   roomType,
		isActive:   isActive,
	}, nil
}

func (r *Room) ID() uuid.UUID      { return r.id }
func (r *Room) RoomNumber() string { return r.roomNumber }
func (r *Room) RoomType() *string  { return r.roomType }
func (r *Room) IsActive() bool     { return r.isActive }

// NumericRoomNumber supports ordering "1", "2", ... "30" numerically rather
// than lexically. Non-numeric room numbers sort last.
func (r *Room) NumericRoomNumber() int {
	n, err := strconv.Atoi(r.roomNumber)
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return n
}
