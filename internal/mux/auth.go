package mux

import (
	"errors"
	"net/http"

	"niuniu-server/internal/jwt"
	"niuniu-server/pkg/table"
)

type postAuthPayload struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type postAuthResponse struct {
	JWT  string      `json:"jwt"`
	User *table.User `json:"user"`
}

func (m *Mux) postAuth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postAuthPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		user, err := table.GetUserByPhoneAndPassword(r.Context(), pp.Phone, pp.Password)
		if err != nil {
			var ue table.UserError
			if errors.As(err, &ue) {
				writeJSONError(w, http.StatusUnauthorized, err)
			} else {
				writeJSONError(w, http.StatusInternalServerError, err)
			}
			return
		}

		signed, err := jwt.Sign(user.ID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, postAuthResponse{
			JWT:  signed,
			User: user,
		})
	}
}
