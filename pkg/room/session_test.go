package room

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"niuniu-server/pkg/table"
)

func newTestClient(userID, roomID int64) *Client {
	return NewClient(nil, &table.User{ID: userID}, &table.Room{ID: roomID, Code: "test"})
}

func TestSessions_supersession(t *testing.T) {
	a := assert.New(t)
	s := NewSessions()

	c1 := newTestClient(1, 10)
	a.Nil(s.Bind(c1))
	a.True(s.IsCurrent(c1))
	a.True(s.IsOnline(1, 10))

	// a second connection for the same user displaces the first
	c2 := newTestClient(1, 10)
	a.Equal(c1, s.Bind(c2))
	a.False(s.IsCurrent(c1))
	a.True(s.IsCurrent(c2))

	// the stale client's disconnect must not evict the new session
	a.False(s.Unbind(c1))
	a.True(s.IsCurrent(c2))
	a.True(s.IsOnline(1, 10))

	a.True(s.Unbind(c2))
	a.False(s.IsOnline(1, 10))
}

func TestSessions_roomsAreIndependent(t *testing.T) {
	a := assert.New(t)
	s := NewSessions()

	c1 := newTestClient(1, 10)
	c2 := newTestClient(1, 20)

	a.Nil(s.Bind(c1))
	a.Nil(s.Bind(c2))
	a.True(s.IsCurrent(c1))
	a.True(s.IsCurrent(c2))

	// rebinding the same client is a no-op
	a.Nil(s.Bind(c1))
	a.True(s.IsCurrent(c1))
}
