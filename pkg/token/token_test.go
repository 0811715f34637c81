package token

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	a := assert.New(t)

	rx := regexp.MustCompile(`^[A-Za-z0-9_-]+\z`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := Generate(16)
		a.NoError(err)
		a.Equal(16, len(tok))
		a.True(rx.MatchString(tok))
		a.False(seen[tok])
		seen[tok] = true
	}

	tok, err := Generate(4)
	a.NoError(err)
	a.Equal(4, len(tok))
}
