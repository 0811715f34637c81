package room

import (
	"context"

	"github.com/sirupsen/logrus"

	"niuniu-server/pkg/deck"
	"niuniu-server/pkg/niuniu"
	"niuniu-server/pkg/table"
)

type phase int

const (
	phaseBetting phase = iota
	phaseRevealing
	phaseDisplay
	phaseSettled
)

func (p phase) String() string {
	switch p {
	case phaseBetting:
		return "betting"
	case phaseRevealing:
		return "revealing"
	case phaseDisplay:
		return "display"
	case phaseSettled:
		return "settled"
	}

	return "unknown"
}

// participant is a player locked into the current round. The snapshot
// is taken when the round starts; players joining or leaving the room
// afterwards do not affect it.
type participant struct {
	userID       int64
	seat         int
	nickname     string
	isDealer     bool
	bet          int
	hasBet       bool
	cards        deck.Hand
	category     niuniu.Category
	revealed     bool
	autoRevealed bool
}

// round is the in-memory state of a single round. It is owned by the
// dealer's run loop.
type round struct {
	record           *table.Round
	number           int
	dealerID         int64
	phase            phase
	participants     []*participant
	revealCountdown  *countdown
	displayCountdown *countdown
}

func (r *round) participantFor(userID int64) *participant {
	for _, p := range r.participants {
		if p.userID == userID {
			return p
		}
	}

	return nil
}

// revealedHand is the broadcast payload for a revealed hand
type revealedHand struct {
	Seat         int       `json:"seat"`
	UserID       int64     `json:"userId"`
	Cards        deck.Hand `json:"cards"`
	Category     string    `json:"category"`
	Multiplier   int       `json:"multiplier"`
	Bull         deck.Hand `json:"bull,omitempty"`
	Rest         deck.Hand `json:"rest,omitempty"`
	AutoRevealed bool      `json:"autoRevealed"`
}

func newRevealedHand(p *participant) *revealedHand {
	bull, rest := niuniu.Groups(p.cards)
	return &revealedHand{
		Seat:         p.seat,
		UserID:       p.userID,
		Cards:        p.cards,
		Category:     p.category.Name(),
		Multiplier:   p.category.Multiplier(),
		Bull:         bull,
		Rest:         rest,
		AutoRevealed: p.autoRevealed,
	}
}

// handView is what one recipient sees of a seat's hand before reveal
type handView struct {
	Seat     int       `json:"seat"`
	UserID   int64     `json:"userId"`
	IsDealer bool      `json:"isDealer"`
	Bet      int       `json:"bet"`
	HasBet   bool      `json:"hasBet"`
	Cards    deck.Hand `json:"cards,omitempty"`
	Hidden   int       `json:"hidden"`
	Revealed bool      `json:"revealed"`
}

// viewsFor builds the per-seat views for a recipient. The recipient
// sees four of their own cards face up with the fifth hidden; everyone
// else's hand shows only card backs until revealed.
func (r *round) viewsFor(userID int64) []*handView {
	views := make([]*handView, 0, len(r.participants))
	for _, p := range r.participants {
		view := &handView{
			Seat:     p.seat,
			UserID:   p.userID,
			IsDealer: p.isDealer,
			Bet:      p.bet,
			HasBet:   p.hasBet,
			Revealed: p.revealed,
		}

		if len(p.cards) == niuniu.HandSize {
			switch {
			case p.revealed:
				view.Cards = p.cards
			case p.userID == userID:
				view.Cards = p.cards[:niuniu.HandSize-1]
				view.Hidden = 1
			default:
				view.Hidden = niuniu.HandSize
			}
		}

		views = append(views, view)
	}

	return views
}

type roundState struct {
	RoundNumber int         `json:"roundNumber"`
	DealerID    int64       `json:"dealerId"`
	Phase       string      `json:"phase"`
	Hands       []*handView `json:"hands"`
}

// stateFor builds a catch-up snapshot of the round for a reconnecting
// client
func (r *round) stateFor(userID int64) *Response {
	return &Response{
		Key: "roundState",
		Data: &roundState{
			RoundNumber: r.number,
			DealerID:    r.dealerID,
			Phase:       r.phase.String(),
			Hands:       r.viewsFor(userID),
		},
	}
}

// startRound snapshots the participants and opens betting
// Note: this must only be called from within the run loop
func (d *Dealer) startRound() error {
	if d.room.Status == table.RoomStatusFinished {
		return table.UserError("the room is finished")
	}

	if r := d.round; r != nil && r.phase != phaseSettled {
		return table.UserError("a round is already in progress")
	}

	players, err := d.store.GetRoomPlayers(context.Background(), d.room)
	if err != nil {
		return err
	}

	// snapshot: online players marked ready, in seat order
	var flaggedDealer int64
	participants := make([]*participant, 0, len(players))
	for _, p := range players {
		if p.IsDealer {
			flaggedDealer = p.UserID
		}

		if !d.ready[p.UserID] || !d.pitBoss.sessions.IsOnline(p.UserID, d.room.ID) {
			continue
		}

		participants = append(participants, &participant{
			userID:   p.UserID,
			seat:     p.SeatNumber,
			nickname: p.Nickname,
		})
	}

	if len(participants) < 2 {
		return table.UserError("at least two players must be ready")
	}

	// the flagged dealer deals if they are in the snapshot, otherwise the
	// button moves to the lowest seat
	dealerID := participants[0].userID
	for _, p := range participants {
		if p.userID == flaggedDealer {
			dealerID = flaggedDealer
			break
		}
	}

	for _, p := range participants {
		p.isDealer = p.userID == dealerID
	}

	if dealerID != flaggedDealer {
		if err := d.store.SetDealer(context.Background(), d.room, dealerID); err != nil {
			return err
		}
	}

	number, err := d.store.AdvanceRound(context.Background(), d.room)
	if err != nil {
		return err
	}

	if number == 1 {
		if err := d.store.ResetRoomScores(context.Background(), d.room); err != nil {
			return err
		}
	}

	if d.room.Status == table.RoomStatusWaiting {
		if err := d.store.SetStatus(context.Background(), d.room, table.RoomStatusPlaying); err != nil {
			return err
		}
	}

	record, err := d.store.CreateRound(context.Background(), d.room.ID, number, dealerID)
	if err != nil {
		return err
	}

	d.ready = make(map[int64]bool)
	d.round = &round{
		record:       record,
		number:       number,
		dealerID:     dealerID,
		phase:        phaseBetting,
		participants: participants,
	}

	logrus.WithFields(logrus.Fields{
		"code":  d.room.Code,
		"round": number,
	}).Info("round started")

	for _, client := range d.Clients() {
		client.Send <- d.round.stateFor(client.user.ID)
	}

	d.broadcast(&Response{Key: "roundStarted", Data: &roundState{
		RoundNumber: number,
		DealerID:    dealerID,
		Phase:       d.round.phase.String(),
	}})
	d.sendRoomState()

	return nil
}

// placeBet records a bet. The dealer never bets. Once every other
// participant has bet, the cards go out automatically.
// Note: this must only be called from within the run loop
func (d *Dealer) placeBet(userID int64, amount int) error {
	r := d.round
	if r == nil || r.phase != phaseBetting {
		return table.UserError("betting is not open")
	}

	p := r.participantFor(userID)
	if p == nil {
		return table.UserError("you are not in this round")
	}

	if p.isDealer {
		return table.UserError("the dealer does not bet")
	}

	if p.hasBet {
		return table.UserError("you already placed your bet")
	}

	if amount <= 0 {
		return table.UserError("the bet must be greater than zero")
	}

	p.bet = amount
	p.hasBet = true

	d.broadcast(&Response{Key: "betPlaced", Data: &handView{
		Seat:   p.seat,
		UserID: p.userID,
		Bet:    p.bet,
		HasBet: true,
	}})

	for _, other := range r.participants {
		if !other.isDealer && !other.hasBet {
			return nil
		}
	}

	d.dealCards()
	return nil
}

// forceDeal closes betting early. Anyone who has not bet is assigned
// the default bet before the cards go out.
// Note: this must only be called from within the run loop
func (d *Dealer) forceDeal() error {
	r := d.round
	if r == nil || r.phase != phaseBetting {
		return table.UserError("betting is not open")
	}

	for _, p := range r.participants {
		if p.isDealer || p.hasBet {
			continue
		}

		p.bet = d.defaultBet
		p.hasBet = true
		d.broadcast(&Response{Key: "betPlaced", Data: &handView{
			Seat:   p.seat,
			UserID: p.userID,
			Bet:    p.bet,
			HasBet: true,
		}})
	}

	d.dealCards()
	return nil
}

// dealCards deals five cards to every participant from a single
// shuffled deck and starts the reveal countdown
// Note: this must only be called from within the run loop
func (d *Dealer) dealCards() {
	r := d.round

	cards := deck.New()
	cards.Shuffle(0)

	for _, p := range r.participants {
		hand := make(deck.Hand, 0, niuniu.HandSize)
		for i := 0; i < niuniu.HandSize; i++ {
			card, err := cards.Draw()
			if err != nil {
				// cannot happen with at most ten seats
				logrus.WithError(err).Panic("ran out of cards")
			}

			hand = append(hand, card)
		}

		p.cards = hand
		p.category = niuniu.Classify(hand, d.room.Enabled)
	}

	r.phase = phaseRevealing

	for _, client := range d.Clients() {
		client.Send <- &Response{Key: "dealt", Data: r.viewsFor(client.user.ID)}
	}

	r.revealCountdown = d.startCountdown(d.revealTicks, func(remaining int) {
		d.broadcast(&Response{Key: "revealCountdown", Data: remaining})
	}, func() {
		for _, p := range r.participants {
			if !p.revealed {
				p.revealed = true
				p.autoRevealed = true
				d.broadcast(&Response{Key: "handRevealed", Data: newRevealedHand(p)})
			}
		}

		d.startDisplay()
	})

	d.broadcast(&Response{Key: "revealCountdown", Data: d.revealTicks})
}

// revealHand turns a participant's cards face up. When the last hand
// is revealed the countdown is cleared and the display window begins.
// Note: this must only be called from within the run loop
func (d *Dealer) revealHand(userID int64, auto bool) error {
	r := d.round
	if r == nil || r.phase != phaseRevealing {
		return table.UserError("there is nothing to reveal")
	}

	p := r.participantFor(userID)
	if p == nil {
		return table.UserError("you are not in this round")
	}

	if p.revealed {
		return table.UserError("your hand is already revealed")
	}

	p.revealed = true
	p.autoRevealed = auto
	d.broadcast(&Response{Key: "handRevealed", Data: newRevealedHand(p)})

	for _, other := range r.participants {
		if !other.revealed {
			return nil
		}
	}

	r.revealCountdown.cancel()
	d.broadcast(&Response{Key: "revealCountdownCleared"})
	d.startDisplay()

	return nil
}

// startDisplay opens the window where everyone can study the revealed
// hands before the round settles
// Note: this must only be called from within the run loop
func (d *Dealer) startDisplay() {
	r := d.round
	r.phase = phaseDisplay

	r.displayCountdown = d.startCountdown(d.displayTicks, func(remaining int) {
		d.broadcast(&Response{Key: "cardDisplay", Data: remaining})
	}, func() {
		d.settleRound()
	})

	d.broadcast(&Response{Key: "cardDisplay", Data: d.displayTicks})
}
