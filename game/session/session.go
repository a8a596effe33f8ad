package session

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wordrace/wordrace/game/grid"
)

var (
	ErrSessionNotActive = errors.New("session is not active")
	ErrSessionFull      = errors.New("session is already full")
)

// MaxParticipants is fixed: a session is exactly a two-player match.
const MaxParticipants = 2

// pointsPerLetter scores a found word at 10 points per letter.
const pointsPerLetter = 10

// Status is the session lifecycle state.
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// EndReason records why a session finished.
type EndReason string

const (
	ReasonTimeUp        EndReason = "time_up"
	ReasonAllWordsFound EndReason = "all_words_found"
	ReasonOpponentLeft  EndReason = "opponent_left"
)

// RejectReason explains a rejected word submission.
type RejectReason string

const (
	RejectAlreadyFound RejectReason = "already_found"
	RejectNotInPuzzle  RejectReason = "not_in_puzzle"
)

// Participant is one player bound to the session.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Settings are chosen by the creator and immutable afterwards.
type Settings struct {
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
}

// FinalScore is one row of the frozen scoreboard.
type FinalScore struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Result is the resolution computed when the session ends.
type Result struct {
	Reason EndReason
	Winner *Participant // nil on a tie
	IsTie  bool
	Scores []FinalScore // sorted by score, descending
}

// SubmitResult describes the outcome of one word submission.
type SubmitResult struct {
	Word       string
	Accepted   bool
	Reason     RejectReason // set when not accepted
	FinderID   string       // original finder on RejectAlreadyFound
	FinderName string
	NewScore   int
	FoundCount int
	TotalWords int
	Completed  bool // every placed word has now been found
}

// TickResult describes one countdown tick.
type TickResult struct {
	Remaining int
	Expired   bool
	Active    bool // false when the tick raced a concurrent end
}

// LeaveOutcome tells the manager what a departure means for the session.
type LeaveOutcome int

const (
	LeaveNoop        LeaveOutcome = iota // participant was not a member
	LeaveDiscard                         // sole participant left a waiting lobby
	LeaveEndsSession                     // active session must end
	LeaveAfterFinish                     // session already finished
)

// Session is one match between two participants. All mutating methods are
// serialized by mu; accessors return copies.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu           sync.Mutex
	status       Status
	settings     Settings
	participants []Participant     // current members, in join order
	names        map[string]string // everyone ever in the session
	scores       map[string]int
	puzzle       *grid.Puzzle
	foundWords   map[string]string // word -> finder participant ID
	remaining    int
	done         chan struct{}
}

// New creates a Waiting session owned by its creator.
func New(id string, creator Participant, settings Settings) *Session {
	return &Session{
		ID:           id,
		CreatedAt:    time.Now(),
		status:       StatusWaiting,
		settings:     settings,
		participants: []Participant{creator},
		names:        map[string]string{creator.ID: creator.Name},
		scores:       map[string]int{creator.ID: 0},
		foundWords:   make(map[string]string),
		done:         make(chan struct{}),
	}
}

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Settings returns the creator's settings.
func (s *Session) Settings() Settings {
	return s.settings
}

// Participants returns a copy of the current membership in join order.
func (s *Session) Participants() []Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Participant, len(s.participants))
	copy(out, s.participants)
	return out
}

// ParticipantIDs returns the IDs of the current members.
func (s *Session) ParticipantIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, len(s.participants))
	for i, p := range s.participants {
		ids[i] = p.ID
	}
	return ids
}

// MemberIDs returns everyone ever bound to the session, including
// participants who already left.
func (s *Session) MemberIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.names))
	for id := range s.names {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Puzzle returns the generated puzzle, or nil while Waiting.
func (s *Session) Puzzle() *grid.Puzzle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puzzle
}

// Remaining returns the remaining seconds of the countdown.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// Score returns the participant's current score.
func (s *Session) Score(participantID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scores[participantID]
}

// Done is closed exactly once, when the session ends. The countdown
// goroutine selects on it to stop deterministically.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Activate adds the second participant, attaches the generated puzzle, and
// starts the countdown at durationSeconds. It is the only Waiting→Active
// transition and happens at most once.
func (s *Session) Activate(joiner Participant, puzzle *grid.Puzzle, durationSeconds int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusWaiting || len(s.participants) >= MaxParticipants {
		return ErrSessionFull
	}

	s.participants = append(s.participants, joiner)
	s.names[joiner.ID] = joiner.Name
	s.scores[joiner.ID] = 0
	s.puzzle = puzzle
	s.remaining = durationSeconds
	s.status = StatusActive
	return nil
}

// Submit validates a word submission against the shared state.
//
// Outcomes in priority order: already found (rejected, names the original
// finder), not in the puzzle (rejected), otherwise accepted and scored at
// 10 points per letter. Finding the last placed word sets Completed.
func (s *Session) Submit(participantID, raw string) (SubmitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusActive {
		return SubmitResult{}, ErrSessionNotActive
	}

	word := strings.ToUpper(strings.TrimSpace(raw))
	res := SubmitResult{
		Word:       word,
		TotalWords: s.puzzle.WordCount(),
	}

	if finderID, found := s.foundWords[word]; found {
		res.Reason = RejectAlreadyFound
		res.FinderID = finderID
		res.FinderName = s.names[finderID]
		res.FoundCount = len(s.foundWords)
		return res, nil
	}

	if !s.puzzle.Contains(word) {
		res.Reason = RejectNotInPuzzle
		res.FoundCount = len(s.foundWords)
		return res, nil
	}

	s.foundWords[word] = participantID
	s.scores[participantID] += len(word) * pointsPerLetter

	res.Accepted = true
	res.FinderID = participantID
	res.FinderName = s.names[participantID]
	res.NewScore = s.scores[participantID]
	res.FoundCount = len(s.foundWords)
	res.Completed = len(s.foundWords) == s.puzzle.WordCount()
	return res, nil
}

// Tick decrements the countdown by one second. A tick that arrives after
// the session ended reports Active=false and changes nothing.
func (s *Session) Tick() TickResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusActive {
		return TickResult{}
	}

	s.remaining--
	if s.remaining <= 0 {
		s.remaining = 0
		return TickResult{Remaining: 0, Expired: true, Active: true}
	}
	return TickResult{Remaining: s.remaining, Active: true}
}

// Leave removes the participant and reports what the departure means. The
// leaver's name and score stay in the ledger so resolution can still rank
// them.
func (s *Session) Leave(participantID string) LeaveOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, p := range s.participants {
		if p.ID == participantID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return LeaveNoop
	}
	s.participants = append(s.participants[:idx], s.participants[idx+1:]...)

	switch s.status {
	case StatusWaiting:
		return LeaveDiscard
	case StatusActive:
		return LeaveEndsSession
	default:
		return LeaveAfterFinish
	}
}

// End transitions to Finished, freezes scores, and computes the
// resolution. It is idempotent: only the first call has effect, and it
// reports ok=false on every later call regardless of reason.
func (s *Session) End(reason EndReason) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusActive {
		return Result{}, false
	}
	s.status = StatusFinished
	close(s.done)

	return s.resolve(reason), true
}

// resolve ranks everyone ever in the session by frozen score. Called with
// mu held.
func (s *Session) resolve(reason EndReason) Result {
	result := Result{Reason: reason}

	for id, score := range s.scores {
		result.Scores = append(result.Scores, FinalScore{
			ID:    id,
			Name:  s.names[id],
			Score: score,
		})
	}
	sort.Slice(result.Scores, func(i, j int) bool {
		if result.Scores[i].Score != result.Scores[j].Score {
			return result.Scores[i].Score > result.Scores[j].Score
		}
		return result.Scores[i].ID < result.Scores[j].ID
	})

	// Strictly highest score wins; equal top scores are a tie, including
	// the zero-zero case.
	if len(result.Scores) >= 2 && result.Scores[0].Score == result.Scores[1].Score {
		result.IsTie = true
		return result
	}
	if len(result.Scores) > 0 {
		top := result.Scores[0]
		result.Winner = &Participant{ID: top.ID, Name: top.Name}
	}
	return result
}
