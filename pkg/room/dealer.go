package room

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"niuniu-server/internal/config"
	"niuniu-server/pkg/table"
)

// ErrNotRoomAdmin is returned for admin-only actions
var ErrNotRoomAdmin = table.UserError("you do not have the appropriate permission")

// Dealer is responsible for running the rounds in a single room. All
// game state is owned by the run loop; anything that needs to touch it
// goes through execInRunLoop.
type Dealer struct {
	pitBoss *PitBoss
	room    *table.Room
	store   Store
	clients map[*Client]bool
	lock    sync.RWMutex

	ready          map[int64]bool
	readyCountdown *countdown
	round          *round

	tickInterval time.Duration
	readyTicks   int
	revealTicks  int
	displayTicks int
	defaultBet   int

	execInRunLoop chan func()
	close         chan bool
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, room *table.Room) *Dealer {
	game := config.Instance().Game

	return &Dealer{
		pitBoss:       pitBoss,
		room:          room,
		store:         NewStore(),
		clients:       make(map[*Client]bool),
		ready:         make(map[int64]bool),
		tickInterval:  time.Second,
		readyTicks:    game.ReadyCountdownTicks,
		revealTicks:   game.RevealCountdownTicks,
		displayTicks:  game.DisplayTicks,
		defaultBet:    game.DefaultBet,
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	log := logrus.WithField("code", d.room.Code)

	log.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			log.Debug("terminating dealer run loop")
			return
		}
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	displaced := d.pitBoss.sessions.Bind(client)

	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	if displaced != nil {
		delete(d.clients, displaced)
	}
	d.lock.Unlock()

	d.execInRunLoop <- func() {
		if displaced != nil {
			displaced.Send <- &Response{Key: "sessionSuperseded"}
		}

		d.sendRoomState()

		if r := d.round; r != nil && r.phase != phaseSettled {
			client.Send <- r.stateFor(client.user.ID)
		}

		d.evaluateReadySet()
	}
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	wasCurrent := d.pitBoss.sessions.Unbind(client)

	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	if nClients > 0 {
		if wasCurrent {
			d.execInRunLoop <- func() {
				d.sendRoomState()
				d.evaluateReadySet()
			}
		}

		return false
	}

	return true
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	close(d.close)
}

// broadcast sends a message to every connected client
func (d *Dealer) broadcast(res *Response) {
	for _, client := range d.Clients() {
		client.Send <- res
	}
}

// sendToUser sends a message to the user's active client, if connected
func (d *Dealer) sendToUser(userID int64, msg interface{}) {
	for _, client := range d.Clients() {
		if client.user.ID == userID {
			client.Send <- msg
		}
	}
}

// canAdminRoom will send an error message to the client if they are not the room admin
// If they are the admin, true is returned
func (d *Dealer) canAdminRoom(ctx string, c *Client) bool {
	if c.user.ID != d.room.AdminID {
		c.Send <- newErrorResponse(ctx, ErrNotRoomAdmin)
		return false
	}

	return true
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *PayloadIn) {
	if !d.pitBoss.sessions.IsCurrent(c) {
		c.Send <- newErrorResponse(msg.Context, table.UserError("your session has been superseded by a newer connection"))
		return
	}

	switch msg.Action {
	case "joinRoom":
		seat, _ := msg.AdditionalData.GetInt("seatNumber")
		d.execInRunLoop <- func() {
			if _, err := d.store.JoinRoom(context.Background(), d.room, c.user, seat); err != nil {
				c.Send <- newErrorResponse(msg.Context, err)
				return
			}

			c.Send <- OK(msg.Context)
			d.sendRoomState()
		}
	case "leaveRoom":
		d.execInRunLoop <- func() {
			if r := d.round; r != nil && r.phase != phaseSettled && r.participantFor(c.user.ID) != nil {
				c.Send <- newErrorResponse(msg.Context, table.UserError("you cannot leave in the middle of a round"))
				return
			}

			if err := d.store.LeaveRoom(context.Background(), d.room, c.user.ID); err != nil {
				c.Send <- newErrorResponse(msg.Context, err)
				return
			}

			delete(d.ready, c.user.ID)
			c.Send <- OK(msg.Context)
			d.sendRoomState()
			d.evaluateReadySet()
		}
	case "setAdmin":
		if !d.canAdminRoom(msg.Context, c) {
			return
		}

		userID, ok := msg.AdditionalData.GetInt64("userId")
		if !ok {
			c.Send <- newErrorResponse(msg.Context, table.UserError("could not obtain userId"))
			return
		}

		d.execInRunLoop <- func() {
			if _, err := d.store.GetRoomPlayer(context.Background(), d.room, userID); err != nil {
				c.Send <- newErrorResponse(msg.Context, err)
				return
			}

			if err := d.store.SetAdmin(context.Background(), d.room, userID); err != nil {
				c.Send <- newErrorResponse(msg.Context, err)
				return
			}

			c.Send <- OK(msg.Context)
			d.sendRoomState()
		}
	case "setDealer":
		if !d.canAdminRoom(msg.Context, c) {
			return
		}

		userID, ok := msg.AdditionalData.GetInt64("userId")
		if !ok {
			c.Send <- newErrorResponse(msg.Context, table.UserError("could not obtain userId"))
			return
		}

		d.execInRunLoop <- func() {
			if r := d.round; r != nil && r.phase != phaseSettled {
				c.Send <- newErrorResponse(msg.Context, table.UserError("the dealer button cannot move during a round"))
				return
			}

			player, err := d.store.GetRoomPlayer(context.Background(), d.room, userID)
			if err != nil {
				c.Send <- newErrorResponse(msg.Context, err)
				return
			}

			if err := d.store.SetDealer(context.Background(), d.room, userID); err != nil {
				c.Send <- newErrorResponse(msg.Context, err)
				return
			}

			c.Send <- OK(msg.Context)
			d.broadcast(&Response{Key: "dealerChanged", Data: map[string]interface{}{
				"userId":   userID,
				"nickname": player.Nickname,
			}})
			d.sendRoomState()
		}
	case "markReady":
		ready, ok := msg.AdditionalData.GetBool("ready")
		if !ok {
			ready = true
		}

		d.execInRunLoop <- func() {
			if err := d.markReady(c.user.ID, ready); err != nil {
				c.Send <- newErrorResponse(msg.Context, err)
				return
			}

			c.Send <- OK(msg.Context)
			d.sendRoomState()
			d.evaluateReadySet()
		}
	case "startRound":
		if !d.canAdminRoom(msg.Context, c) {
			return
		}

		d.execInRunLoop <- func() {
			if err := d.startRound(); err != nil {
				c.Send <- newErrorResponse(msg.Context, err)
				return
			}

			c.Send <- OK(msg.Context)
		}
	case "placeBet":
		amount, ok := msg.AdditionalData.GetInt("amount")
		if !ok {
			amount = d.defaultBet
		}

		d.execInRunLoop <- func() {
			if err := d.placeBet(c.user.ID, amount); err != nil {
				c.Send <- newErrorResponse(msg.Context, err)
				return
			}

			c.Send <- OK(msg.Context)
		}
	case "deal":
		if !d.canAdminRoom(msg.Context, c) {
			return
		}

		d.execInRunLoop <- func() {
			if err := d.forceDeal(); err != nil {
				c.Send <- newErrorResponse(msg.Context, err)
				return
			}

			c.Send <- OK(msg.Context)
		}
	case "reveal":
		d.execInRunLoop <- func() {
			if err := d.revealHand(c.user.ID, false); err != nil {
				c.Send <- newErrorResponse(msg.Context, err)
				return
			}

			c.Send <- OK(msg.Context)
		}
	case "settle":
		if !d.canAdminRoom(msg.Context, c) {
			return
		}

		d.execInRunLoop <- func() {
			r := d.round
			if r == nil || r.phase != phaseDisplay {
				c.Send <- newErrorResponse(msg.Context, table.UserError("there is nothing to settle"))
				return
			}

			r.displayCountdown.cancel()
			d.settleRound()
			c.Send <- OK(msg.Context)
		}
	case "finishRoom":
		if !d.canAdminRoom(msg.Context, c) {
			return
		}

		d.execInRunLoop <- func() {
			if err := d.finishRoom(); err != nil {
				c.Send <- newErrorResponse(msg.Context, err)
				return
			}

			c.Send <- OK(msg.Context)
		}
	default:
		logrus.WithField("msg", msg).Warn("unknown message")
	}
}

// markReady records the player's ready state
// Note: this must only be called from within the run loop
func (d *Dealer) markReady(userID int64, ready bool) error {
	if d.room.Status == table.RoomStatusFinished {
		return table.UserError("the room is finished")
	}

	if r := d.round; r != nil && r.phase != phaseSettled {
		return table.UserError("a round is already in progress")
	}

	if _, err := d.store.GetRoomPlayer(context.Background(), d.room, userID); err != nil {
		return err
	}

	if ready {
		d.ready[userID] = true
	} else {
		delete(d.ready, userID)
	}

	return nil
}

// evaluateReadySet reacts to a change in the ready set
// Note: this must only be called from within the run loop
func (d *Dealer) evaluateReadySet() {
	if r := d.round; r != nil && r.phase != phaseSettled {
		return
	}

	online, ready := d.readyCounts()
	switch evaluateReady(online, ready) {
	case readyStartNow:
		if d.readyCountdown != nil {
			d.readyCountdown.cancel()
			d.readyCountdown = nil
		}

		if err := d.startRound(); err != nil {
			logrus.WithField("code", d.room.Code).WithError(err).Error("could not start round")
		}
	case readyCountdown:
		if d.readyCountdown != nil && !d.readyCountdown.done {
			return
		}

		d.readyCountdown = d.startCountdown(d.readyTicks, func(remaining int) {
			d.broadcast(&Response{Key: "readyCountdown", Data: remaining})

			// start early if the stragglers opted in
			online, ready := d.readyCounts()
			if evaluateReady(online, ready) == readyStartNow {
				d.readyCountdown.cancel()
				d.readyCountdown = nil
				if err := d.startRound(); err != nil {
					logrus.WithField("code", d.room.Code).WithError(err).Error("could not start round")
				}
			}
		}, func() {
			d.readyCountdown = nil
			if err := d.startRound(); err != nil {
				logrus.WithField("code", d.room.Code).WithError(err).Error("could not start round")
			}
		})

		d.broadcast(&Response{Key: "readyCountdown", Data: d.readyTicks})
	case readyWait:
		if d.readyCountdown != nil {
			d.readyCountdown.cancel()
			d.readyCountdown = nil
			d.broadcast(&Response{Key: "readyCountdownCleared"})
		}
	}
}

// readyCounts returns how many seated players are online, and how many
// of those are marked ready
// Note: this must only be called from within the run loop
func (d *Dealer) readyCounts() (online, ready int) {
	players, err := d.store.GetRoomPlayers(context.Background(), d.room)
	if err != nil {
		logrus.WithField("code", d.room.Code).WithError(err).Error("could not get players")
		return 0, 0
	}

	for _, p := range players {
		if !d.pitBoss.sessions.IsOnline(p.UserID, d.room.ID) {
			continue
		}

		online++
		if d.ready[p.UserID] {
			ready++
		}
	}

	return online, ready
}

type roomStatePlayer struct {
	*table.RoomPlayer
	IsConnected bool `json:"isConnected"`
	IsReady     bool `json:"isReady"`
}

type roomState struct {
	Code         string             `json:"code"`
	Status       string             `json:"status"`
	AdminID      int64              `json:"adminId"`
	CurrentRound int                `json:"currentRound"`
	MaxRounds    int                `json:"maxRounds"`
	Players      []*roomStatePlayer `json:"players"`
}

// sendRoomState broadcasts the current room roster
// Note: this must only be called from within the run loop
func (d *Dealer) sendRoomState() {
	players, err := d.store.GetRoomPlayers(context.Background(), d.room)
	if err != nil {
		logrus.WithField("code", d.room.Code).WithError(err).Error("could not get players")
		return
	}

	statePlayers := make([]*roomStatePlayer, 0, len(players))
	for _, p := range players {
		statePlayers = append(statePlayers, &roomStatePlayer{
			RoomPlayer:  p,
			IsConnected: d.pitBoss.sessions.IsOnline(p.UserID, d.room.ID),
			IsReady:     d.ready[p.UserID],
		})
	}

	d.broadcast(&Response{
		Key: "roomUpdate",
		Data: &roomState{
			Code:         d.room.Code,
			Status:       d.room.Status,
			AdminID:      d.room.AdminID,
			CurrentRound: d.room.CurrentRound,
			MaxRounds:    d.room.MaxRounds,
			Players:      statePlayers,
		},
	})
}

// finishRoom closes the room for good
// Note: this must only be called from within the run loop
func (d *Dealer) finishRoom() error {
	if d.room.Status == table.RoomStatusFinished {
		return table.UserError("the room is already finished")
	}

	if r := d.round; r != nil && r.phase != phaseSettled {
		return table.UserError("a round is still in progress")
	}

	if err := d.store.SetStatus(context.Background(), d.room, table.RoomStatusFinished); err != nil {
		return err
	}

	d.broadcast(&Response{Key: "roomFinished"})
	d.sendRoomState()
	return nil
}
