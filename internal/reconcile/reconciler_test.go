package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sinkCall struct {
	op     string
	tempID string
	realID string
	record interface{}
}

type recordingSink struct {
	calls []sinkCall
}

func (s *recordingSink) Render(tempID string, record interface{}) {
	s.calls = append(s.calls, sinkCall{op: "render", tempID: tempID, record: record})
}

func (s *recordingSink) Replace(tempID, realID string, record interface{}) {
	s.calls = append(s.calls, sinkCall{op: "replace", tempID: tempID, realID: realID, record: record})
}

func (s *recordingSink) Remove(tempID string) {
	s.calls = append(s.calls, sinkCall{op: "remove", tempID: tempID})
}

func (s *recordingSink) Insert(realID string, record interface{}) {
	s.calls = append(s.calls, sinkCall{op: "insert", realID: realID, record: record})
}

type testRecord struct {
	Text string
}

func matchByText(pending, echo interface{}) bool {
	p, ok1 := pending.(testRecord)
	e, ok2 := echo.(testRecord)
	return ok1 && ok2 && p.Text == e.Text
}

func TestConfirmResolvesPendingAction(t *testing.T) {
	sink := &recordingSink{}
	r := New(sink, matchByText)

	tempID := r.Begin(testRecord{Text: "hi"})
	assert.Equal(t, StatePending, r.StateOf(tempID))
	require.Len(t, sink.calls, 1)
	assert.Equal(t, "render", sink.calls[0].op)

	r.Confirm(tempID, "real-1", testRecord{Text: "hi"})
	assert.Equal(t, StateConfirmed, r.StateOf(tempID))
	require.Len(t, sink.calls, 2)
	assert.Equal(t, "replace", sink.calls[1].op)
	assert.Equal(t, "real-1", sink.calls[1].realID)

	// The broadcaster's echo of the same record arrives later and must be
	// suppressed, not rendered a second time.
	r.HandleEcho("real-1", testRecord{Text: "hi"})
	assert.Len(t, sink.calls, 2)
}

func TestFailRollsBack(t *testing.T) {
	sink := &recordingSink{}
	r := New(sink, matchByText)

	tempID := r.Begin(testRecord{Text: "oops"})
	r.Fail(tempID)

	assert.Equal(t, StateRolledBack, r.StateOf(tempID))
	require.Len(t, sink.calls, 2)
	assert.Equal(t, "remove", sink.calls[1].op)
	assert.Equal(t, tempID, sink.calls[1].tempID)

	// Terminal: a late confirm changes nothing.
	r.Confirm(tempID, "real-9", testRecord{Text: "oops"})
	assert.Equal(t, StateRolledBack, r.StateOf(tempID))
	assert.Len(t, sink.calls, 2)
}

func TestEchoBeatsWriteCallback(t *testing.T) {
	sink := &recordingSink{}
	r := New(sink, matchByText)

	tempID := r.Begin(testRecord{Text: "fast"})

	// The fan-out echo arrives before the HTTP callback.
	r.HandleEcho("real-2", testRecord{Text: "fast"})
	assert.Equal(t, StateConfirmed, r.StateOf(tempID))
	require.Len(t, sink.calls, 2)
	assert.Equal(t, "replace", sink.calls[1].op)

	// The late callback must now be a no-op.
	r.Confirm(tempID, "real-2", testRecord{Text: "fast"})
	assert.Len(t, sink.calls, 2)
}

func TestForeignEchoIsInserted(t *testing.T) {
	sink := &recordingSink{}
	r := New(sink, matchByText)

	r.HandleEcho("real-3", testRecord{Text: "from someone else"})

	require.Len(t, sink.calls, 1)
	assert.Equal(t, "insert", sink.calls[0].op)
	assert.Equal(t, "real-3", sink.calls[0].realID)
}

func TestNilMatcherNeverMatches(t *testing.T) {
	sink := &recordingSink{}
	r := New(sink, nil)

	tempID := r.Begin(testRecord{Text: "same"})
	r.HandleEcho("real-4", testRecord{Text: "same"})

	assert.Equal(t, StatePending, r.StateOf(tempID))
	require.Len(t, sink.calls, 2)
	assert.Equal(t, "insert", sink.calls[1].op)
}

func TestStateOfUnknownActionIsIdle(t *testing.T) {
	r := New(&recordingSink{}, nil)
	assert.Equal(t, StateIdle, r.StateOf("nope"))
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "optimistic-pending", StatePending.String())
	assert.Equal(t, "confirmed", StateConfirmed.String())
	assert.Equal(t, "rolled-back", StateRolledBack.String())
}
