package game

import "sync"

// DifficultyTier selects the scenario escalation level. It travels to the
// advisor so hints can match the pace of the game.
type DifficultyTier uint8

const (
	TierRelaxed DifficultyTier = iota // no ceiling advance
	TierSteady                        // slow advance
	TierFrantic                       // fast advance
)

func (t DifficultyTier) String() string {
	switch t {
	case TierRelaxed:
		return "relaxed"
	case TierSteady:
		return "steady"
	case TierFrantic:
		return "frantic"
	default:
		return "unknown"
	}
}

// HintRequest is the complete contract handed to the external strategic
// advisor: the candidate list from a targeting scan plus field context.
type HintRequest struct {
	Candidates     []CandidateTarget `json:"candidates"`
	MaxOccupiedRow int               `json:"maxOccupiedRow"`
	Tier           DifficultyTier    `json:"tier"`
	Locale         string            `json:"locale"`
}

// HintResponse is the advisor's recommendation. Everything in it is
// advisory: the game must stay fully playable if it never arrives.
type HintResponse struct {
	Cell      *Cell             `json:"cell,omitempty"`
	Color     *BubbleColor      `json:"color,omitempty"`
	Message   string            `json:"message"`
	Rationale string            `json:"rationale,omitempty"`
	Debug     map[string]string `json:"debug,omitempty"`
}

// Advisor converts a candidate list into a shot recommendation. Calls may
// take arbitrarily long; the session invokes them off the tick loop.
type Advisor interface {
	Recommend(req HintRequest) (HintResponse, error)
}

// hintMailbox is a single-slot "latest result" mailbox between the tick
// loop and the background advisor call. At most one request is outstanding;
// scans wanted while one is pending are dropped, not queued. The tick loop
// only ever polls, never blocks.
type hintMailbox struct {
	mu      sync.Mutex
	pending bool
	result  *HintResponse
	failed  bool
}

// tryBegin claims the outstanding-request slot. Reports false when a
// request is already in flight.
func (m *hintMailbox) tryBegin() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending {
		return false
	}
	m.pending = true
	return true
}

// deliver stores the call outcome and frees the slot. Called from the
// background goroutine.
func (m *hintMailbox) deliver(resp HintResponse, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = false
	if err != nil {
		m.result = nil
		m.failed = true
		return
	}
	r := resp
	m.result = &r
	m.failed = false
}

// take consumes the latest delivered result. failed reports an advisor
// error since the last successful delivery.
func (m *hintMailbox) take() (resp *HintResponse, failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	resp = m.result
	failed = m.failed
	m.result = nil
	m.failed = false
	return resp, failed
}

// busy reports whether a request is currently outstanding.
func (m *hintMailbox) busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}
