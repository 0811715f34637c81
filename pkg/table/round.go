package table

import (
	"context"
	"database/sql"
	"time"

	"niuniu-server/pkg/db"
)

// round status values
const (
	RoundStatusInProgress = "in_progress"
	RoundStatusSettled    = "settled"
)

// Round is a record in the `rounds` table
type Round struct {
	ID          int64        `json:"-"`
	RoomID      int64        `json:"-"`
	RoundNumber int          `json:"roundNumber"`
	DealerID    int64        `json:"dealerId"`
	Status      string       `json:"status"`
	Started     time.Time    `json:"started"`
	Ended       sql.NullTime `json:"-"`
}

// CreateRound records the start of a round
func CreateRound(ctx context.Context, roomID int64, roundNumber int, dealerID int64) (*Round, error) {
	const query = `
INSERT INTO rounds (room_id, round_number, dealer_id, status)
VALUES ($1, $2, $3, $4)
RETURNING id, started`

	round := Round{
		RoomID:      roomID,
		RoundNumber: roundNumber,
		DealerID:    dealerID,
		Status:      RoundStatusInProgress,
	}

	row := db.Instance().QueryRowContext(ctx, query, roomID, roundNumber, dealerID, RoundStatusInProgress)
	if err := row.Scan(&round.ID, &round.Started); err != nil {
		return nil, err
	}

	return &round, nil
}

// MarkSettled marks the round settled. It is a no-op if the round already settled.
func (r *Round) MarkSettled(ctx context.Context) error {
	const query = `
UPDATE rounds
SET status = $1,
    ended = (NOW() AT TIME ZONE 'utc')
WHERE id = $2
  AND status = $3`

	if _, err := db.Instance().ExecContext(ctx, query, RoundStatusSettled, r.ID, RoundStatusInProgress); err != nil {
		return err
	}

	r.Status = RoundStatusSettled
	return nil
}
