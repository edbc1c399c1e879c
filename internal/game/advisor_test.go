package game

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// stubAdvisor answers from a channel so tests control exactly when a
// recommendation arrives.
type stubAdvisor struct {
	calls   atomic.Int32
	answers chan HintResponse
	fail    bool
}

func (a *stubAdvisor) Recommend(req HintRequest) (HintResponse, error) {
	a.calls.Add(1)
	if a.fail {
		return HintResponse{}, errors.New("stub failure")
	}
	return <-a.answers, nil
}

func TestHintMailbox_SingleOutstandingRequest(t *testing.T) {
	var m hintMailbox
	if !m.tryBegin() {
		t.Fatal("first begin must claim the slot")
	}
	if m.tryBegin() {
		t.Fatal("second begin must be refused while one is pending")
	}
	m.deliver(HintResponse{Message: "go left"}, nil)
	if !m.tryBegin() {
		t.Fatal("slot must free after delivery")
	}
}

func TestHintMailbox_TakeConsumesResult(t *testing.T) {
	var m hintMailbox
	m.tryBegin()
	m.deliver(HintResponse{Message: "pop the reds"}, nil)

	resp, failed := m.take()
	if failed || resp == nil || resp.Message != "pop the reds" {
		t.Fatalf("take: resp=%v failed=%v", resp, failed)
	}
	if resp, failed := m.take(); resp != nil || failed {
		t.Fatal("second take must be empty")
	}
}

func TestHintMailbox_FailureFlag(t *testing.T) {
	var m hintMailbox
	m.tryBegin()
	m.deliver(HintResponse{}, errors.New("down"))
	resp, failed := m.take()
	if resp != nil || !failed {
		t.Fatal("failed delivery must surface as a failure, not a result")
	}
}

func TestSession_AdvisorResultStraddlesTicks(t *testing.T) {
	advisor := &stubAdvisor{answers: make(chan HintResponse, 1)}
	ts := NewTestSim(
		WithSeed(11),
		WithRows(3, 0.2),
		WithAdvisor(advisor),
		WithScanInterval(50*time.Millisecond),
	)

	// The first scan fires on the first tick; the answer is withheld, so
	// the session must keep ticking hint-less without blocking.
	ts.RunTicks(30)
	if ts.Session.Hint() != nil {
		t.Fatal("hint appeared before the advisor answered")
	}

	advisor.answers <- HintResponse{Message: "aim high"}
	tick := ts.RunUntil(func(ts *TestSim) bool {
		return ts.Session.Hint() != nil
	}, 200)
	if tick < 0 {
		t.Fatalf("hint never consumed\n%s", ts.SimLog.Format())
	}
	if ts.Session.Hint().Message != "aim high" {
		t.Fatalf("wrong hint: %q", ts.Session.Hint().Message)
	}
}

func TestSession_PendingScanIsDroppedNotQueued(t *testing.T) {
	advisor := &stubAdvisor{answers: make(chan HintResponse)}
	ts := NewTestSim(
		WithSeed(11),
		WithRows(3, 0.2),
		WithAdvisor(advisor),
		WithScanInterval(32*time.Millisecond),
	)

	// Many scan intervals pass with the first request still outstanding;
	// none of them may start a second call.
	ts.RunTicks(100)
	if got := advisor.calls.Load(); got != 1 {
		t.Fatalf("advisor called %d times with one answer outstanding, want 1", got)
	}
	close(advisor.answers)
}

func TestSession_AdvisorFailureIsRecoverable(t *testing.T) {
	advisor := &stubAdvisor{fail: true}
	ts := NewTestSim(
		WithSeed(11),
		WithRows(3, 0.2),
		WithAdvisor(advisor),
		WithScanInterval(32*time.Millisecond),
	)

	tick := ts.RunUntil(func(ts *TestSim) bool {
		return ts.Session.Status().AdvisorDown
	}, 500)
	if tick < 0 {
		t.Fatal("advisor failure never surfaced as a status flag")
	}
	// Play continues: more ticks, no hint, no terminal state.
	ts.RunTicks(50)
	if ts.Session.Hint() != nil {
		t.Fatal("failed advisor left a stale hint")
	}
	if ts.Session.Over() {
		t.Fatal("advisor failure must not end the session")
	}
}

func TestSession_PlayableWithoutAdvisor(t *testing.T) {
	ts := NewTestSim(WithSeed(4), WithRows(3, 0.2))
	ts.RunTicks(200)
	if ts.Session.Over() {
		t.Fatal("hint-less session should idle without incident")
	}
	if ts.SimLog.CountCategory("target", "scan") != 0 {
		t.Fatal("scans requested with no advisor attached")
	}
}
