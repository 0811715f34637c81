package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateReady(t *testing.T) {
	a := assert.New(t)

	a.Equal(readyWait, evaluateReady(0, 0))
	a.Equal(readyWait, evaluateReady(1, 1))
	a.Equal(readyWait, evaluateReady(5, 1))
	a.Equal(readyWait, evaluateReady(1, 2))

	// both online players ready means nobody to wait for
	a.Equal(readyStartNow, evaluateReady(2, 2))
	a.Equal(readyStartNow, evaluateReady(5, 5))

	// some online players not ready yet
	a.Equal(readyCountdown, evaluateReady(3, 2))
	a.Equal(readyCountdown, evaluateReady(10, 9))
}
