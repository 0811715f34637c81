package room

import (
	"context"
	"sync"

	"niuniu-server/pkg/table"
)

// memStore keeps everything in memory so dealer tests can run without
// postgres
type memStore struct {
	mu          sync.Mutex
	players     []*table.RoomPlayer
	rounds      []*table.Round
	details     []*table.SettlementDetail
	balances    map[int64]int
	nextRoundID int64
}

func newMemStore(players ...*table.RoomPlayer) *memStore {
	return &memStore{
		players:  players,
		balances: make(map[int64]int),
	}
}

func (m *memStore) GetRoomPlayers(_ context.Context, _ *table.Room) ([]*table.RoomPlayer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	players := make([]*table.RoomPlayer, len(m.players))
	copy(players, m.players)
	return players, nil
}

func (m *memStore) GetRoomPlayer(_ context.Context, _ *table.Room, userID int64) (*table.RoomPlayer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.players {
		if p.UserID == userID {
			return p, nil
		}
	}

	return nil, table.ErrNotInRoom
}

func (m *memStore) JoinRoom(_ context.Context, room *table.Room, user *table.User, seatNumber int) (*table.RoomPlayer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	taken := make([]int, 0, len(m.players))
	for _, p := range m.players {
		if p.UserID == user.ID {
			return nil, table.ErrAlreadyInRoom
		}

		taken = append(taken, p.SeatNumber)
	}

	if len(m.players) >= table.MaxSeats {
		return nil, table.ErrRoomIsFull
	}

	if seatNumber == 0 {
		for seat := 1; seat <= table.MaxSeats; seat++ {
			free := true
			for _, s := range taken {
				if s == seat {
					free = false
					break
				}
			}
			if free {
				seatNumber = seat
				break
			}
		}
	} else {
		for _, s := range taken {
			if s == seatNumber {
				return nil, table.ErrSeatTaken
			}
		}
	}

	rp := &table.RoomPlayer{RoomID: room.ID, UserID: user.ID, SeatNumber: seatNumber, Nickname: user.Nickname}
	m.players = append(m.players, rp)
	return rp, nil
}

func (m *memStore) LeaveRoom(_ context.Context, _ *table.Room, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.players {
		if p.UserID == userID {
			if p.IsDealer {
				return table.ErrDealerCannotLeave
			}

			m.players = append(m.players[:i], m.players[i+1:]...)
			return nil
		}
	}

	return table.ErrNotInRoom
}

func (m *memStore) SetAdmin(_ context.Context, room *table.Room, userID int64) error {
	room.AdminID = userID
	return nil
}

func (m *memStore) SetDealer(_ context.Context, _ *table.Room, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.players {
		p.IsDealer = p.UserID == userID
	}

	return nil
}

func (m *memStore) SetStatus(_ context.Context, room *table.Room, status string) error {
	room.Status = status
	return nil
}

func (m *memStore) AdvanceRound(_ context.Context, room *table.Room) (int, error) {
	room.CurrentRound++
	return room.CurrentRound, nil
}

func (m *memStore) ResetRoomScores(_ context.Context, _ *table.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.players {
		p.RoomScore = 0
	}

	return nil
}

func (m *memStore) AddRoomScore(_ context.Context, _ *table.Room, userID int64, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.players {
		if p.UserID == userID {
			p.RoomScore += delta
			return nil
		}
	}

	return table.ErrNotInRoom
}

func (m *memStore) AdjustUserBalance(_ context.Context, userID int64, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.balances[userID] += delta
	return nil
}

func (m *memStore) CreateRound(_ context.Context, roomID int64, roundNumber int, dealerID int64) (*table.Round, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextRoundID++
	round := &table.Round{
		ID:          m.nextRoundID,
		RoomID:      roomID,
		RoundNumber: roundNumber,
		DealerID:    dealerID,
		Status:      table.RoundStatusInProgress,
	}

	m.rounds = append(m.rounds, round)
	return round, nil
}

func (m *memStore) MarkRoundSettled(_ context.Context, round *table.Round) error {
	round.Status = table.RoundStatusSettled
	return nil
}

func (m *memStore) InsertSettlementDetail(_ context.Context, detail *table.SettlementDetail) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.details = append(m.details, detail)
	return nil
}

func (m *memStore) settlementDetails() []*table.SettlementDetail {
	m.mu.Lock()
	defer m.mu.Unlock()

	details := make([]*table.SettlementDetail, len(m.details))
	copy(details, m.details)
	return details
}

func (m *memStore) roomScore(userID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.players {
		if p.UserID == userID {
			return p.RoomScore
		}
	}

	return 0
}
