package table

import (
	"context"
	"encoding/json"

	"niuniu-server/pkg/db"
	"niuniu-server/pkg/deck"
)

// SettlementDetail is a record in the `settlement_details` table
type SettlementDetail struct {
	ID          int64     `json:"-"`
	RoundID     int64     `json:"-"`
	UserID      int64     `json:"userId"`
	SeatNumber  int       `json:"seatNumber"`
	Bet         int       `json:"bet"`
	Cards       deck.Hand `json:"cards"`
	Category    string    `json:"category"`
	Multiplier  int       `json:"multiplier"`
	ScoreChange int       `json:"scoreChange"`
	IsWinner    bool      `json:"isWinner"`
}

// InsertSettlementDetail persists a per-seat settlement row for the round
func InsertSettlementDetail(ctx context.Context, detail *SettlementDetail) error {
	cardsRaw, err := json.Marshal(deck.CardsToString(detail.Cards))
	if err != nil {
		return err
	}

	const query = `
INSERT INTO settlement_details (round_id, user_id, seat_number, bet, cards, category, multiplier, score_change, is_winner)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`

	row := db.Instance().QueryRowContext(ctx, query, detail.RoundID, detail.UserID, detail.SeatNumber, detail.Bet, cardsRaw, detail.Category, detail.Multiplier, detail.ScoreChange, detail.IsWinner)
	return row.Scan(&detail.ID)
}

// GetSettlementDetails returns the settlement rows for a round, by seat
func GetSettlementDetails(ctx context.Context, roundID int64) ([]*SettlementDetail, error) {
	const query = `
SELECT id, round_id, user_id, seat_number, bet, cards, category, multiplier, score_change, is_winner
FROM settlement_details
WHERE round_id = $1
ORDER BY seat_number`

	rows, err := db.Instance().QueryContext(ctx, query, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]*SettlementDetail, 0)
	for rows.Next() {
		var d SettlementDetail
		var cardsRaw []byte
		if err := rows.Scan(&d.ID, &d.RoundID, &d.UserID, &d.SeatNumber, &d.Bet, &cardsRaw, &d.Category, &d.Multiplier, &d.ScoreChange, &d.IsWinner); err != nil {
			return nil, err
		}

		var cardsStr string
		if err := json.Unmarshal(cardsRaw, &cardsStr); err != nil {
			return nil, err
		}

		if cardsStr != "" {
			d.Cards = deck.CardsFromString(cardsStr)
		}

		details = append(details, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return details, nil
}
