package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qed/internal/shor"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMarkLessonRead(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.MarkLessonRead("qubits"))
	require.NoError(t, s.MarkLessonRead("qubits"))
	require.NoError(t, s.MarkLessonRead("shor"))

	reads, err := s.LessonReads()
	require.NoError(t, err)
	assert.Len(t, reads, 2)
	assert.Equal(t, 2, reads["qubits"].Count)
	assert.Equal(t, 1, reads["shor"].Count)
	assert.False(t, reads["qubits"].FirstRead.After(reads["qubits"].LastRead))
}

func TestRecordAndListRuns(t *testing.T) {
	s := openTestStore(t)

	res := shor.Result{N: 15, Factors: [2]int64{3, 5}, Base: 2, Order: 4, Attempts: 1}
	id, err := s.RecordFactorRun(res, 12*time.Millisecond)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	res2 := shor.Result{N: 10013, Factors: [2]int64{17, 589}, Base: 5, Order: 144, Attempts: 2}
	_, err = s.RecordFactorRun(res2, 40*time.Millisecond)
	require.NoError(t, err)

	runs, err := s.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, int64(10013), runs[0].N)
	assert.Equal(t, int64(15), runs[1].N)
	assert.Equal(t, 12*time.Millisecond, runs[1].Duration)
}

func TestRecentRunsLimit(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 5; i++ {
		_, err := s.RecordFactorRun(shor.Result{N: 15, Factors: [2]int64{3, 5}}, time.Millisecond)
		require.NoError(t, err)
	}
	runs, err := s.RecentRuns(3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.MarkLessonRead("gates"))
	_, err := s.RecordFactorRun(shor.Result{N: 15, Factors: [2]int64{3, 5}}, time.Millisecond)
	require.NoError(t, err)

	require.NoError(t, s.Reset())

	reads, err := s.LessonReads()
	require.NoError(t, err)
	assert.Empty(t, reads)
	runs, err := s.RecentRuns(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestReopenPersists(t *testing.T) {
	ws := t.TempDir()
	s, err := Open(ws)
	require.NoError(t, err)
	require.NoError(t, s.MarkLessonRead("grover"))
	require.NoError(t, s.Close())

	s2, err := Open(ws)
	require.NoError(t, err)
	defer s2.Close()
	reads, err := s2.LessonReads()
	require.NoError(t, err)
	assert.Contains(t, reads, "grover")
}
