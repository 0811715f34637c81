package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"niuniu-server/internal/util"
)

func TestLoad(t *testing.T) {
	clear1 := util.SetEnv("NN_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := util.SetEnv("NN_JWT_PRIVATE_KEY", "private2.key")
	defer clear2()

	a := assert.New(t)
	a.NoError(Load())
	cfg := Instance()

	a.Equal("postgres://niuniu@localhost:5432/niuniu?sslmode=disable", cfg.PGDSN)
	a.Equal("public.pem", cfg.JWT.PublicKey)

	// environment overrides the file
	a.Equal("private2.key", cfg.JWT.PrivateKey)

	// file overrides the defaults
	a.Equal(5, cfg.Game.ReadyCountdownTicks)
	a.Equal(25, cfg.Game.DefaultBet)

	// untouched keys fall back to defaults
	a.Equal(10, cfg.Game.RevealCountdownTicks)
	a.Equal(8, cfg.Game.DisplayTicks)
	a.Equal(20, cfg.Game.MaxRounds)
	a.Equal("./sql", cfg.MigrationsPath)
}

func TestInstance_loadsOnce(t *testing.T) {
	clear1 := util.SetEnv("NN_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()

	a := assert.New(t)
	a.NoError(Load())

	cfg := Instance()
	a.Equal(25, cfg.Game.DefaultBet)

	// ensure we aren't handing out a pointer
	cfg.Game.DefaultBet = -1
	a.Equal(25, Instance().Game.DefaultBet)
}
