package room

import (
	"context"

	"niuniu-server/pkg/table"
)

// Store is the persistence boundary the dealer works against
type Store interface {
	GetRoomPlayers(ctx context.Context, room *table.Room) ([]*table.RoomPlayer, error)
	GetRoomPlayer(ctx context.Context, room *table.Room, userID int64) (*table.RoomPlayer, error)
	JoinRoom(ctx context.Context, room *table.Room, user *table.User, seatNumber int) (*table.RoomPlayer, error)
	LeaveRoom(ctx context.Context, room *table.Room, userID int64) error
	SetAdmin(ctx context.Context, room *table.Room, userID int64) error
	SetDealer(ctx context.Context, room *table.Room, userID int64) error
	SetStatus(ctx context.Context, room *table.Room, status string) error
	AdvanceRound(ctx context.Context, room *table.Room) (int, error)
	ResetRoomScores(ctx context.Context, room *table.Room) error
	AddRoomScore(ctx context.Context, room *table.Room, userID int64, delta int) error
	AdjustUserBalance(ctx context.Context, userID int64, delta int) error
	CreateRound(ctx context.Context, roomID int64, roundNumber int, dealerID int64) (*table.Round, error)
	MarkRoundSettled(ctx context.Context, round *table.Round) error
	InsertSettlementDetail(ctx context.Context, detail *table.SettlementDetail) error
}

// sqlStore backs the dealer with the postgres tables
type sqlStore struct{}

// NewStore returns the postgres-backed store
func NewStore() Store {
	return &sqlStore{}
}

func (s *sqlStore) GetRoomPlayers(ctx context.Context, room *table.Room) ([]*table.RoomPlayer, error) {
	return room.GetRoomPlayers(ctx)
}

func (s *sqlStore) GetRoomPlayer(ctx context.Context, room *table.Room, userID int64) (*table.RoomPlayer, error) {
	return room.GetRoomPlayer(ctx, userID)
}

func (s *sqlStore) JoinRoom(ctx context.Context, room *table.Room, user *table.User, seatNumber int) (*table.RoomPlayer, error) {
	return room.JoinRoom(ctx, user, seatNumber)
}

func (s *sqlStore) LeaveRoom(ctx context.Context, room *table.Room, userID int64) error {
	return room.LeaveRoom(ctx, userID)
}

func (s *sqlStore) SetAdmin(ctx context.Context, room *table.Room, userID int64) error {
	return room.SetAdmin(ctx, userID)
}

func (s *sqlStore) SetDealer(ctx context.Context, room *table.Room, userID int64) error {
	return room.SetDealer(ctx, userID)
}

func (s *sqlStore) SetStatus(ctx context.Context, room *table.Room, status string) error {
	return room.SetStatus(ctx, status)
}

func (s *sqlStore) AdvanceRound(ctx context.Context, room *table.Room) (int, error) {
	return room.AdvanceRound(ctx)
}

func (s *sqlStore) ResetRoomScores(ctx context.Context, room *table.Room) error {
	return room.ResetRoomScores(ctx)
}

func (s *sqlStore) AddRoomScore(ctx context.Context, room *table.Room, userID int64, delta int) error {
	return room.AddRoomScore(ctx, userID, delta)
}

func (s *sqlStore) AdjustUserBalance(ctx context.Context, userID int64, delta int) error {
	return table.AdjustUserBalance(ctx, userID, delta)
}

func (s *sqlStore) CreateRound(ctx context.Context, roomID int64, roundNumber int, dealerID int64) (*table.Round, error) {
	return table.CreateRound(ctx, roomID, roundNumber, dealerID)
}

func (s *sqlStore) MarkRoundSettled(ctx context.Context, round *table.Round) error {
	return round.MarkSettled(ctx)
}

func (s *sqlStore) InsertSettlementDetail(ctx context.Context, detail *table.SettlementDetail) error {
	return table.InsertSettlementDetail(ctx, detail)
}
