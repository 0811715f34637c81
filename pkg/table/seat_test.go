package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindAvailableSeat(t *testing.T) {
	a := assert.New(t)

	a.Equal(1, findAvailableSeat(nil))
	a.Equal(2, findAvailableSeat([]int{1}))
	a.Equal(1, findAvailableSeat([]int{2, 3}))
	a.Equal(4, findAvailableSeat([]int{1, 2, 3, 5}))
	a.Equal(10, findAvailableSeat([]int{1, 2, 3, 4, 5, 6, 7, 8, 9}))
	a.Equal(0, findAvailableSeat([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}))
}
