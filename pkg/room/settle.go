package room

import (
	"context"

	"github.com/sirupsen/logrus"

	"niuniu-server/pkg/niuniu"
	"niuniu-server/pkg/table"
)

// computeSettlement scores every participant against the dealer. A
// player who beats the dealer wins bet times their own multiplier; a
// player who loses pays bet times the dealer's multiplier; a tie pushes.
// The dealer's change is the negation of everyone else's total, so the
// round always sums to zero.
func computeSettlement(participants []*participant) []*table.SettlementDetail {
	var dealer *participant
	for _, p := range participants {
		if p.isDealer {
			dealer = p
			break
		}
	}

	if dealer == nil {
		return nil
	}

	details := make([]*table.SettlementDetail, 0, len(participants))
	dealerChange := 0
	var dealerDetail *table.SettlementDetail

	for _, p := range participants {
		detail := &table.SettlementDetail{
			UserID:     p.userID,
			SeatNumber: p.seat,
			Bet:        p.bet,
			Cards:      p.cards,
			Category:   p.category.Name(),
			Multiplier: p.category.Multiplier(),
		}

		if p.isDealer {
			dealerDetail = detail
			details = append(details, detail)
			continue
		}

		change := 0
		switch cmp := niuniu.Compare(p.category, p.cards, dealer.category, dealer.cards); {
		case cmp > 0:
			change = p.bet * p.category.Multiplier()
		case cmp < 0:
			change = -p.bet * dealer.category.Multiplier()
		}

		detail.ScoreChange = change
		detail.IsWinner = change > 0
		dealerChange -= change

		details = append(details, detail)
	}

	dealerDetail.ScoreChange = dealerChange
	dealerDetail.IsWinner = dealerChange > 0

	return details
}

// settleRound scores the round, persists the outcome, and applies the
// score changes. The phase guard makes it safe to reach from both the
// display countdown and an early admin settle.
// Note: this must only be called from within the run loop
func (d *Dealer) settleRound() {
	r := d.round
	if r == nil || r.phase != phaseDisplay {
		return
	}

	r.phase = phaseSettled

	details := computeSettlement(r.participants)
	for _, detail := range details {
		detail.RoundID = r.record.ID

		if err := d.store.InsertSettlementDetail(context.Background(), detail); err != nil {
			logrus.WithField("code", d.room.Code).WithError(err).Error("could not save settlement detail")
		}

		if detail.ScoreChange != 0 {
			if err := d.store.AddRoomScore(context.Background(), d.room, detail.UserID, detail.ScoreChange); err != nil {
				logrus.WithField("code", d.room.Code).WithError(err).Error("could not update room score")
			}

			if err := d.store.AdjustUserBalance(context.Background(), detail.UserID, detail.ScoreChange); err != nil {
				logrus.WithField("code", d.room.Code).WithError(err).Error("could not update balance")
			}
		}
	}

	if err := d.store.MarkRoundSettled(context.Background(), r.record); err != nil {
		logrus.WithField("code", d.room.Code).WithError(err).Error("could not mark round settled")
	}

	d.broadcast(&Response{Key: "roundSettled", Data: map[string]interface{}{
		"roundNumber": r.number,
		"details":     details,
	}})

	if r.number >= d.room.MaxRounds {
		if err := d.store.SetStatus(context.Background(), d.room, table.RoomStatusFinished); err != nil {
			logrus.WithField("code", d.room.Code).WithError(err).Error("could not finish room")
		}

		d.broadcast(&Response{Key: "roomFinished"})
	}

	d.sendRoomState()
}
