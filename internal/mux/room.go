package mux

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"niuniu-server/internal/config"
	"niuniu-server/pkg/niuniu"
	"niuniu-server/pkg/table"
)

func (m *Mux) getRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rooms, err := table.GetAvailableRooms(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, rooms)
	}
}

type postRoomPayload struct {
	MaxRounds int             `json:"maxRounds"`
	Enabled   *niuniu.Enabled `json:"enabled"`
}

func (m *Mux) postRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postRoomPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		maxRounds := pp.MaxRounds
		if maxRounds == 0 {
			maxRounds = config.Instance().Game.MaxRounds
		}

		if maxRounds < 1 || maxRounds > 100 {
			writeJSONError(w, http.StatusBadRequest, errors.New("maxRounds must be 1-100"))
			return
		}

		enabled := niuniu.AllEnabled()
		if pp.Enabled != nil {
			enabled = *pp.Enabled
		}

		user := r.Context().Value(ctxUserKey).(*table.User)
		rm, err := table.CreateRoom(r.Context(), user, maxRounds, enabled)
		if err != nil {
			var ue table.UserError
			if errors.As(err, &ue) {
				writeJSONError(w, http.StatusBadRequest, err)
			} else {
				writeJSONError(w, http.StatusInternalServerError, err)
			}
			return
		}

		writeJSON(w, http.StatusCreated, rm)
	}
}

type getRoomCodeResponse struct {
	*table.Room
	Players []*table.RoomPlayer `json:"players"`
}

func (m *Mux) getRoomCode() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rm := r.Context().Value(ctxRoomKey).(*table.Room)
		players, err := rm.GetRoomPlayers(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, getRoomCodeResponse{
			Room:    rm,
			Players: players,
		})
	})
}

func (m *Mux) roomMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := mux.Vars(r)["code"]
		rm, err := table.GetRoomByCode(r.Context(), code)
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxRoomKey, rm)

		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
