package table

import (
	"context"
	"encoding/json"
	"time"

	"niuniu-server/pkg/db"
	"niuniu-server/pkg/niuniu"
	"niuniu-server/pkg/token"
)

const roomColumns = `
rooms.id,
rooms.code,
rooms.creator_id,
rooms.admin_id,
rooms.max_rounds,
rooms.current_round,
rooms.enabled,
rooms.status,
rooms.created,
rooms.updated`

// room status values
const (
	RoomStatusWaiting  = "waiting"
	RoomStatusPlaying  = "playing"
	RoomStatusFinished = "finished"
)

const roomCodeLength = 6

// Room is a record in the `rooms` table
type Room struct {
	ID           int64          `json:"-"`
	Code         string         `json:"code"`
	CreatorID    int64          `json:"creatorId"`
	AdminID      int64          `json:"adminId"`
	MaxRounds    int            `json:"maxRounds"`
	CurrentRound int            `json:"currentRound"`
	Enabled      niuniu.Enabled `json:"enabled"`
	Status       string         `json:"status"`
	Created      time.Time      `json:"created"`
	Updated      time.Time      `json:"updated"`
}

func getRoomByRow(row db.Scanner) (*Room, error) {
	var room Room
	var enabledRaw []byte
	if err := row.Scan(&room.ID, &room.Code, &room.CreatorID, &room.AdminID, &room.MaxRounds, &room.CurrentRound, &enabledRaw, &room.Status, &room.Created, &room.Updated); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(enabledRaw, &room.Enabled); err != nil {
		return nil, err
	}

	return &room, nil
}

// CreateRoom creates a new room with the creator seated as dealer in seat 1
func CreateRoom(ctx context.Context, creator *User, maxRounds int, enabled niuniu.Enabled) (*Room, error) {
	code, err := token.Generate(roomCodeLength)
	if err != nil {
		return nil, err
	}

	enabledRaw, err := json.Marshal(enabled)
	if err != nil {
		return nil, err
	}

	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	const query = `
INSERT INTO rooms (code, creator_id, admin_id, max_rounds, current_round, enabled, status)
VALUES ($1, $2, $2, $3, 0, $4, $5)
RETURNING id, created, updated`

	room := Room{
		Code:      code,
		CreatorID: creator.ID,
		AdminID:   creator.ID,
		MaxRounds: maxRounds,
		Enabled:   enabled,
		Status:    RoomStatusWaiting,
	}

	row := tx.QueryRowContext(ctx, query, code, creator.ID, maxRounds, enabledRaw, RoomStatusWaiting)
	if err := row.Scan(&room.ID, &room.Created, &room.Updated); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	const playerQuery = `
INSERT INTO room_players (room_id, user_id, seat_number, is_dealer, room_score)
VALUES ($1, $2, 1, true, 0)`

	if _, err := tx.ExecContext(ctx, playerQuery, room.ID, creator.ID); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &room, nil
}

// GetRoomByCode returns a room by its public code
func GetRoomByCode(ctx context.Context, code string) (*Room, error) {
	const query = `
SELECT ` + roomColumns + `
FROM rooms
WHERE code = $1`

	row := db.Instance().QueryRowContext(ctx, query, code)
	return getRoomByRow(row)
}

// GetRoomByID returns a room by ID
func GetRoomByID(ctx context.Context, id int64) (*Room, error) {
	const query = `
SELECT ` + roomColumns + `
FROM rooms
WHERE id = $1`

	row := db.Instance().QueryRowContext(ctx, query, id)
	return getRoomByRow(row)
}

// SetAdmin transfers room admin rights to the user
func (r *Room) SetAdmin(ctx context.Context, userID int64) error {
	const query = `
UPDATE rooms
SET admin_id = $1,
    updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2`

	if _, err := db.Instance().ExecContext(ctx, query, userID, r.ID); err != nil {
		return err
	}

	r.AdminID = userID
	return nil
}

// SetStatus updates the room status
func (r *Room) SetStatus(ctx context.Context, status string) error {
	const query = `
UPDATE rooms
SET status = $1,
    updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2`

	if _, err := db.Instance().ExecContext(ctx, query, status, r.ID); err != nil {
		return err
	}

	r.Status = status
	return nil
}

// AdvanceRound increments the room's current round and returns the new round number
func (r *Room) AdvanceRound(ctx context.Context) (int, error) {
	const query = `
UPDATE rooms
SET current_round = current_round + 1,
    updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $1
RETURNING current_round`

	var round int
	row := db.Instance().QueryRowContext(ctx, query, r.ID)
	if err := row.Scan(&round); err != nil {
		return 0, err
	}

	r.CurrentRound = round
	return round, nil
}

// RoomWithPlayerCount is a room row with the number of seated players
type RoomWithPlayerCount struct {
	Room
	PlayerCount int `json:"playerCount"`
}

// GetAvailableRooms returns rooms that are not finished, newest first
func GetAvailableRooms(ctx context.Context) ([]*RoomWithPlayerCount, error) {
	const query = `
SELECT ` + roomColumns + `, COUNT(room_players.id)
FROM rooms
LEFT JOIN room_players ON room_players.room_id = rooms.id
WHERE rooms.status != $1
GROUP BY rooms.id
ORDER BY rooms.created DESC`

	rows, err := db.Instance().QueryContext(ctx, query, RoomStatusFinished)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*RoomWithPlayerCount, 0)
	for rows.Next() {
		var rec RoomWithPlayerCount
		var enabledRaw []byte
		if err := rows.Scan(&rec.ID, &rec.Code, &rec.CreatorID, &rec.AdminID, &rec.MaxRounds, &rec.CurrentRound, &enabledRaw, &rec.Status, &rec.Created, &rec.Updated, &rec.PlayerCount); err != nil {
			return nil, err
		}

		if err := json.Unmarshal(enabledRaw, &rec.Enabled); err != nil {
			return nil, err
		}

		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
