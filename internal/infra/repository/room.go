package repository

import (
	"context"
	"time"

	"cinebox/internal/domain/seat"
	"cinebox/internal/infra"
	"cinebox/internal/infra/db"

	"github.com/google/uuid"
)

type Room struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

type RoomRepository struct {
	dbx db.DBTX
}

func NewRoomRepository(dbx db.DBTX) *RoomRepository {
	return &RoomRepository{dbx: dbx}
}

func (r *RoomRepository) Create(ctx context.Context, room *Room) error {
	const q = `INSERT INTO rooms (id, name, created_at) VALUES ($1, $2, $3)`

	_, err := r.dbx.Exec(ctx, q, room.ID, room.Name, room.CreatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create room", err)
	}
	return nil
}

func (r *RoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	const q = `SELECT id, name, created_at FROM rooms WHERE id = $1`

	var room Room
	err := r.dbx.QueryRow(ctx, q, id).Scan(&room.ID, &room.Name, &room.CreatedAt)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room", err)
	}
	return &room, nil
}

func (r *RoomRepository) List(ctx context.Context) ([]*Room, error) {
	const q = `SELECT id, name, created_at FROM rooms ORDER BY name`

	rows, err := r.dbx.Query(ctx, q)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	var out []*Room
	for rows.Next() {
		var room Room
		if err := rows.Scan(&room.ID, &room.Name, &room.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room", err)
		}
		out = append(out, &room)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate rooms", err)
	}
	return out, nil
}

type SeatRepository struct {
	dbx db.DBTX
}

func NewSeatRepository(dbx db.DBTX) *SeatRepository {
	return &SeatRepository{dbx: dbx}
}

// CreateBatch writes a room's generated seat map. Called once, at room
// creation, inside the same transaction as the room row.
func (r *SeatRepository) CreateBatch(ctx context.Context, roomID uuid.UUID, seats []seat.Seat) error {
	const q = `
		INSERT INTO seats (room_id, seat_row, seat_number, tariff_id)
		SELECT $1, unnest($2::text[]), unnest($3::int[]), unnest($4::int[])`

	rowsArg := make([]string, len(seats))
	numbers := make([]int32, len(seats))
	tariffs := make([]int32, len(seats))
	for i, s := range seats {
		rowsArg[i] = s.Key.Row
		numbers[i] = int32(s.Key.Number)
		tariffs[i] = s.TariffID
	}

	_, err := r.dbx.Exec(ctx, q, roomID, rowsArg, numbers, tariffs)
	if err != nil {
		return infra.WrapRepoErr("failed to create seat map", err)
	}
	return nil
}

// FindByKeys returns the matching seats of the room's static map with their
// tariff prices. Requested seats missing from the result do not exist.
func (r *SeatRepository) FindByKeys(ctx context.Context, roomID uuid.UUID, keys []seat.Key) ([]seat.Seat, error) {
	const q = `
		SELECT s.seat_row, s.seat_number, s.tariff_id, t.price_cents
		FROM seats s
		JOIN seat_tariffs t ON t.id = s.tariff_id
		WHERE s.room_id = $1
		  AND (s.seat_row, s.seat_number) IN (SELECT * FROM unnest($2::text[], $3::int[]))`

	rowsArg := make([]string, len(keys))
	numbers := make([]int32, len(keys))
	for i, k := range keys {
		rowsArg[i] = k.Row
		numbers[i] = int32(k.Number)
	}

	rows, err := r.dbx.Query(ctx, q, roomID, rowsArg, numbers)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find seats", err)
	}
	defer rows.Close()

	var out []seat.Seat
	for rows.Next() {
		var s seat.Seat
		if err := rows.Scan(&s.Key.Row, &s.Key.Number, &s.TariffID, &s.PriceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan seat", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate seats", err)
	}
	return out, nil
}
