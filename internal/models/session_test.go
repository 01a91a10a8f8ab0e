package models

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 1, 1, hour, min, 0, 0, time.UTC)
}

func TestSession_AddPunch_SortedAndUnique(t *testing.T) {
	punches := []time.Time{at(17, 0), at(8, 0), at(12, 0), at(8, 0), at(13, 0), at(17, 0)}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := append([]time.Time(nil), punches...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		s := NewSession("Ana", "A1", at(0, 0), shuffled...)
		require.Len(t, s.Punches, 4)
		assert.Equal(t, []time.Time{at(8, 0), at(12, 0), at(13, 0), at(17, 0)}, s.Punches)
		assert.Equal(t, 9*3600.0, s.WorkedSeconds())
	}
}

func TestSession_AddPunch_ReportsDuplicate(t *testing.T) {
	s := NewSession("Ana", "", at(0, 0), at(8, 0))

	assert.False(t, s.AddPunch(at(8, 0)))
	assert.True(t, s.AddPunch(at(9, 0)))
	assert.Len(t, s.Punches, 2)
}

func TestSession_WorkedSeconds_ZeroForSinglePunch(t *testing.T) {
	assert.Zero(t, NewSession("Ana", "", at(0, 0)).WorkedSeconds())
	assert.Zero(t, NewSession("Ana", "", at(0, 0), at(1, 30)).WorkedSeconds())
}
