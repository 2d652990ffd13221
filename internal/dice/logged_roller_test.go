package dice_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/dicebag/internal/dice"
	"github.com/cory-johannsen/dicebag/internal/random"
)

func newObservedRoller(src random.Source) (*dice.Roller, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return dice.NewLoggedRoller(src, zap.New(core)), logs
}

func TestRoller_RollDetailed_LogsDebug(t *testing.T) {
	roller, logs := newObservedRoller(newSequenceSource())
	res, err := roller.RollDetailed(" 3d6 + 2 ")
	require.NoError(t, err)
	assert.Equal(t, 8, res.Total())

	entries := logs.FilterMessage("dice roll").All()
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, zap.DebugLevel, e.Level)

	fields := e.ContextMap()
	assert.Equal(t, "3d6 + 2", fields["formula"])
	assert.EqualValues(t, 8, fields["total"])
	_, err = uuid.Parse(fields["roll_id"].(string))
	assert.NoError(t, err, "roll_id must be a uuid")

	terms, ok := fields["terms"].([]interface{})
	require.True(t, ok, "terms must be logged as an array")
	require.Len(t, terms, 2)
	first := terms[0].(map[string]interface{})
	assert.Equal(t, "3d6", first["term"])
	assert.EqualValues(t, 6, first["subtotal"])
}

func TestRoller_Roll_UniqueRollIDs(t *testing.T) {
	roller, logs := newObservedRoller(random.NewCryptoSource())
	for i := 0; i < 5; i++ {
		_, err := roller.Roll("d20")
		require.NoError(t, err)
	}
	seen := make(map[string]bool)
	for _, e := range logs.FilterMessage("dice roll").All() {
		id := e.ContextMap()["roll_id"].(string)
		assert.False(t, seen[id], "duplicate roll_id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, 5)
}

func TestRoller_Roll_InvalidLogsWarn(t *testing.T) {
	roller, logs := newObservedRoller(newSequenceSource())
	_, err := roller.Roll("3D6")
	assert.ErrorIs(t, err, dice.ErrInvalidFormula)

	entries := logs.FilterMessage("dice formula rejected").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
	assert.Equal(t, "3D6", entries[0].ContextMap()["formula"])
	assert.Empty(t, logs.FilterMessage("dice roll").All())
}

func TestRoller_RollDie(t *testing.T) {
	roller, logs := newObservedRoller(newSequenceSource())
	assert.Equal(t, 1, roller.RollDie(dice.D20))
	assert.Equal(t, 2, roller.RollDie(dice.D20))
	entries := logs.FilterMessage("die roll").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "d20", entries[0].ContextMap()["die"])
}

func TestRoller_ValidAndSrc(t *testing.T) {
	src := newSequenceSource()
	roller, _ := newObservedRoller(src)
	assert.True(t, roller.Valid("d6 + 1"))
	assert.False(t, roller.Valid("d6 +"))
	assert.Same(t, src, roller.Src())
}
