package table

import (
	"context"
	"database/sql"
	"time"

	"niuniu-server/pkg/db"
)

const roomPlayerColumns = `
room_players.id,
room_players.room_id,
room_players.user_id,
room_players.seat_number,
room_players.is_dealer,
room_players.room_score,
room_players.joined`

// MaxSeats is the maximum number of players in a room
const MaxSeats = 10

// errors returned when joining a room
var (
	ErrRoomIsFull        = UserError("the room is full")
	ErrSeatTaken         = UserError("that seat is already taken")
	ErrAlreadyInRoom     = UserError("you already have a seat in this room")
	ErrNotInRoom         = UserError("you do not have a seat in this room")
	ErrInvalidSeat       = UserError("seat number must be between 1 and 10")
	ErrDealerCannotLeave = UserError("the dealer cannot leave the room")
)

// RoomPlayer is a record in the `room_players` table
type RoomPlayer struct {
	ID         int64     `json:"-"`
	RoomID     int64     `json:"-"`
	UserID     int64     `json:"userId"`
	SeatNumber int       `json:"seatNumber"`
	IsDealer   bool      `json:"isDealer"`
	RoomScore  int       `json:"roomScore"`
	Joined     time.Time `json:"joined"`
	Nickname   string    `json:"nickname"`
}

func getRoomPlayerByRow(row db.Scanner) (*RoomPlayer, error) {
	var rp RoomPlayer
	if err := row.Scan(&rp.ID, &rp.RoomID, &rp.UserID, &rp.SeatNumber, &rp.IsDealer, &rp.RoomScore, &rp.Joined, &rp.Nickname); err != nil {
		return nil, err
	}

	return &rp, nil
}

// GetRoomPlayers returns the seated players in the room, ordered by seat
func (r *Room) GetRoomPlayers(ctx context.Context) ([]*RoomPlayer, error) {
	const query = `
SELECT ` + roomPlayerColumns + `, users.nickname
FROM room_players
INNER JOIN users ON users.id = room_players.user_id
WHERE room_players.room_id = $1
ORDER BY room_players.seat_number`

	rows, err := db.Instance().QueryContext(ctx, query, r.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*RoomPlayer, 0)
	for rows.Next() {
		rp, err := getRoomPlayerByRow(rows)
		if err != nil {
			return nil, err
		}

		players = append(players, rp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return players, nil
}

// GetRoomPlayer returns the player's seat in the room, or ErrNotInRoom
func (r *Room) GetRoomPlayer(ctx context.Context, userID int64) (*RoomPlayer, error) {
	const query = `
SELECT ` + roomPlayerColumns + `, users.nickname
FROM room_players
INNER JOIN users ON users.id = room_players.user_id
WHERE room_players.room_id = $1
  AND room_players.user_id = $2`

	row := db.Instance().QueryRowContext(ctx, query, r.ID, userID)
	rp, err := getRoomPlayerByRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotInRoom
		}

		return nil, err
	}

	return rp, nil
}

// findAvailableSeat returns the lowest free seat number, or 0 if the room is full
func findAvailableSeat(taken []int) int {
	seats := make(map[int]bool)
	for _, s := range taken {
		seats[s] = true
	}

	for seat := 1; seat <= MaxSeats; seat++ {
		if !seats[seat] {
			return seat
		}
	}

	return 0
}

// JoinRoom seats the user in the room. Pass seatNumber 0 to take the lowest free seat.
func (r *Room) JoinRoom(ctx context.Context, user *User, seatNumber int) (*RoomPlayer, error) {
	if seatNumber < 0 || seatNumber > MaxSeats {
		return nil, ErrInvalidSeat
	}

	players, err := r.GetRoomPlayers(ctx)
	if err != nil {
		return nil, err
	}

	taken := make([]int, 0, len(players))
	for _, p := range players {
		if p.UserID == user.ID {
			return nil, ErrAlreadyInRoom
		}

		taken = append(taken, p.SeatNumber)
	}

	if len(players) >= MaxSeats {
		return nil, ErrRoomIsFull
	}

	if seatNumber == 0 {
		seatNumber = findAvailableSeat(taken)
	} else {
		for _, s := range taken {
			if s == seatNumber {
				return nil, ErrSeatTaken
			}
		}
	}

	const query = `
INSERT INTO room_players (room_id, user_id, seat_number, is_dealer, room_score)
VALUES ($1, $2, $3, false, 0)
RETURNING id, joined`

	rp := RoomPlayer{
		RoomID:     r.ID,
		UserID:     user.ID,
		SeatNumber: seatNumber,
		Nickname:   user.Nickname,
	}

	row := db.Instance().QueryRowContext(ctx, query, r.ID, user.ID, seatNumber)
	if err := row.Scan(&rp.ID, &rp.Joined); err != nil {
		return nil, err
	}

	return &rp, nil
}

// LeaveRoom removes the user's seat from the room
func (r *Room) LeaveRoom(ctx context.Context, userID int64) error {
	rp, err := r.GetRoomPlayer(ctx, userID)
	if err != nil {
		return err
	}

	if rp.IsDealer {
		return ErrDealerCannotLeave
	}

	const query = `
DELETE FROM room_players
WHERE room_id = $1
  AND user_id = $2`

	_, err = db.Instance().ExecContext(ctx, query, r.ID, userID)
	return err
}

// SetDealer moves the dealer button to the user
func (r *Room) SetDealer(ctx context.Context, userID int64) error {
	if _, err := r.GetRoomPlayer(ctx, userID); err != nil {
		return err
	}

	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	const clearQuery = `
UPDATE room_players
SET is_dealer = false
WHERE room_id = $1`

	if _, err := tx.ExecContext(ctx, clearQuery, r.ID); err != nil {
		_ = tx.Rollback()
		return err
	}

	const setQuery = `
UPDATE room_players
SET is_dealer = true
WHERE room_id = $1
  AND user_id = $2`

	if _, err := tx.ExecContext(ctx, setQuery, r.ID, userID); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// ResetRoomScores zeroes every player's room score. Called before round 1.
func (r *Room) ResetRoomScores(ctx context.Context) error {
	const query = `
UPDATE room_players
SET room_score = 0
WHERE room_id = $1`

	_, err := db.Instance().ExecContext(ctx, query, r.ID)
	return err
}

// AddRoomScore adjusts a player's room score by delta
func (r *Room) AddRoomScore(ctx context.Context, userID int64, delta int) error {
	const query = `
UPDATE room_players
SET room_score = room_score + $1
WHERE room_id = $2
  AND user_id = $3`

	_, err := db.Instance().ExecContext(ctx, query, delta, r.ID, userID)
	return err
}
