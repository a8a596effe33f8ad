package manager

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/wordrace/wordrace/game/grid"
	"github.com/wordrace/wordrace/game/session"
	"github.com/wordrace/wordrace/game/words"
)

var (
	ErrAlreadyInSession = errors.New("you are already in a game")
	ErrLobbyAlreadyOpen = errors.New("another game lobby is already open, try joining")
	ErrNoOpenLobby      = errors.New("no game lobby is currently available to join")
	ErrInvalidSettings  = errors.New("invalid game settings")
	ErrGenerationFailed = errors.New("could not generate a playable puzzle")
	ErrNotInSession     = errors.New("you are not currently in a game")
)

// Options configure a Manager. Zero values pick the defaults.
type Options struct {
	GameDuration      time.Duration // countdown length; default 3 minutes
	TickInterval      time.Duration // countdown cadence; default 1 second
	RemoveDelay       time.Duration // grace before a finished session is removed; default 5 seconds
	MinPlacedWords    int           // placement floor below which a puzzle is rejected; default 3
	GenerationRetries int           // attempts before join fails; default 3
	Clock             clockwork.Clock
	Rand              *rand.Rand
}

func (o *Options) applyDefaults() {
	if o.GameDuration <= 0 {
		o.GameDuration = 3 * time.Minute
	}
	if o.TickInterval <= 0 {
		o.TickInterval = time.Second
	}
	if o.RemoveDelay <= 0 {
		o.RemoveDelay = 5 * time.Second
	}
	if o.MinPlacedWords <= 0 {
		o.MinPlacedWords = 3
	}
	if o.GenerationRetries <= 0 {
		o.GenerationRetries = 3
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
}

// Stats is the read-only snapshot served by the API.
type Stats struct {
	ActiveSessions     int  `json:"active_sessions"`
	OpenLobbyAvailable bool `json:"open_lobby_available"`
}

// Manager owns every session and routes participant requests to the right
// one.
type Manager struct {
	notifier Notifier
	clock    clockwork.Clock
	gen      *grid.Generator
	opts     Options

	mu            sync.RWMutex
	sessions      map[string]*session.Session
	byParticipant map[string]string // participant ID -> session ID
	openLobbyID   string            // at most one Waiting session system-wide
}

// New creates a manager that fans events out through the notifier.
func New(notifier Notifier, opts Options) *Manager {
	opts.applyDefaults()
	return &Manager{
		notifier:      notifier,
		clock:         opts.Clock,
		gen:           grid.NewGenerator(opts.Rand),
		opts:          opts,
		sessions:      make(map[string]*session.Session),
		byParticipant: make(map[string]string),
	}
}

// displayName derives the default display name from a participant ID.
func displayName(participantID string) string {
	short := participantID
	if len(short) > 4 {
		short = short[:4]
	}
	return "Player_" + short
}

// Connect pushes the current lobby availability to a newly connected
// participant.
func (m *Manager) Connect(participantID string) {
	m.mu.RLock()
	open := m.openLobbyID != ""
	m.mu.RUnlock()

	m.notifier.ToParticipant(participantID, LobbyStatus{OpenLobbyAvailable: open})
}

// CreateSession opens a new Waiting lobby owned by the requester. The
// one-open-lobby check and the availability broadcast happen atomically
// with respect to concurrent creates and joins.
func (m *Manager) CreateSession(participantID, category, difficulty string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, bound := m.byParticipant[participantID]; bound {
		return ErrAlreadyInSession
	}
	if m.openLobbyID != "" {
		m.notifier.ToParticipant(participantID, LobbyStatus{OpenLobbyAvailable: true})
		return ErrLobbyAlreadyOpen
	}
	if _, ok := words.Lookup(category, difficulty); !ok {
		return ErrInvalidSettings
	}

	id := "game_" + uuid.NewString()
	creator := session.Participant{ID: participantID, Name: displayName(participantID)}
	s := session.New(id, creator, session.Settings{Category: category, Difficulty: difficulty})

	m.sessions[id] = s
	m.byParticipant[participantID] = id
	m.openLobbyID = id

	log.Info().
		Str("session_id", id).
		Str("participant_id", participantID).
		Str("category", category).
		Str("difficulty", difficulty).
		Msg("lobby created")

	m.notifier.ToParticipant(participantID, StatusUpdate{
		Message: "Game created. Waiting for an opponent to join...",
	})
	m.notifier.Broadcast(LobbyStatus{OpenLobbyAvailable: true})
	return nil
}

// JoinSession adds the requester to the open lobby, generates the puzzle,
// and activates the session. On generation failure the join is fully
// rejected and the lobby stays open.
func (m *Manager) JoinSession(participantID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, bound := m.byParticipant[participantID]; bound {
		return ErrAlreadyInSession
	}
	if m.openLobbyID == "" {
		m.notifier.ToParticipant(participantID, LobbyStatus{OpenLobbyAvailable: false})
		return ErrNoOpenLobby
	}

	s := m.sessions[m.openLobbyID]
	if len(s.Participants()) >= session.MaxParticipants {
		// Stale pointer; the table is authoritative.
		m.openLobbyID = ""
		m.notifier.Broadcast(LobbyStatus{OpenLobbyAvailable: false})
		return session.ErrSessionFull
	}

	settings := s.Settings()
	puzzle, err := m.generatePuzzle(settings)
	if err != nil {
		log.Warn().
			Str("session_id", s.ID).
			Str("category", settings.Category).
			Str("difficulty", settings.Difficulty).
			Msg("puzzle generation failed, join rejected")
		return err
	}

	joiner := session.Participant{ID: participantID, Name: displayName(participantID)}
	duration := int(m.opts.GameDuration / time.Second)
	if err := s.Activate(joiner, puzzle, duration); err != nil {
		return err
	}

	m.byParticipant[participantID] = s.ID
	m.openLobbyID = ""

	log.Info().
		Str("session_id", s.ID).
		Str("participant_id", participantID).
		Int("placed_words", puzzle.WordCount()).
		Msg("session starting")

	m.notifier.ToParticipants(s.ParticipantIDs(), SessionStarting{
		SessionID:       s.ID,
		Grid:            puzzle.Cells,
		Words:           puzzle.PlacedWords,
		Participants:    s.Participants(),
		DurationSeconds: duration,
		Settings:        settings,
	})
	m.notifier.Broadcast(LobbyStatus{OpenLobbyAvailable: false})

	go m.runCountdown(s)
	return nil
}

// generatePuzzle builds a puzzle for the settings, retrying when too few
// words place. A puzzle below the floor would be unplayable, so the caller
// surfaces the failure rather than starting an empty game.
func (m *Manager) generatePuzzle(settings session.Settings) (*grid.Puzzle, error) {
	for attempt := 0; attempt < m.opts.GenerationRetries; attempt++ {
		selected, tier, ok := words.Pick(m.opts.Rand, settings.Category, settings.Difficulty)
		if !ok {
			return nil, ErrInvalidSettings
		}
		puzzle := m.gen.Generate(selected, tier.GridSize, grid.AllDirections)
		if puzzle.WordCount() >= m.opts.MinPlacedWords {
			return puzzle, nil
		}
	}
	return nil, ErrGenerationFailed
}

// SubmitWord validates a word submission against the participant's active
// session. Rejections are delivered as word_rejected events; only a
// missing or inactive session is an error.
func (m *Manager) SubmitWord(participantID, word string) error {
	s, err := m.sessionFor(participantID)
	if err != nil {
		return err
	}

	res, err := s.Submit(participantID, word)
	if err != nil {
		return err
	}

	if !res.Accepted {
		log.Debug().
			Str("session_id", s.ID).
			Str("participant_id", participantID).
			Str("word", res.Word).
			Str("reason", string(res.Reason)).
			Msg("word rejected")

		m.notifier.ToParticipant(participantID, WordRejected{
			Word:     res.Word,
			Reason:   res.Reason,
			FinderID: res.FinderID,
		})
		return nil
	}

	log.Info().
		Str("session_id", s.ID).
		Str("participant_id", participantID).
		Str("word", res.Word).
		Int("new_score", res.NewScore).
		Msg("word found")

	m.notifier.ToParticipants(s.ParticipantIDs(), WordFound{
		Word:       res.Word,
		FinderID:   res.FinderID,
		FinderName: res.FinderName,
		NewScore:   res.NewScore,
		FoundCount: res.FoundCount,
		TotalWords: res.TotalWords,
	})

	if res.Completed {
		m.finish(s, session.ReasonAllWordsFound)
	}
	return nil
}

// Leave removes a participant, normally on channel closure. A waiting
// lobby is discarded outright; an active session ends with opponent_left
// and resolves by frozen scores.
func (m *Manager) Leave(participantID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sessionID, bound := m.byParticipant[participantID]
	if !bound {
		return
	}
	delete(m.byParticipant, participantID)

	s, ok := m.sessions[sessionID]
	if !ok {
		return
	}

	switch s.Leave(participantID) {
	case session.LeaveDiscard:
		delete(m.sessions, sessionID)
		if m.openLobbyID == sessionID {
			m.openLobbyID = ""
			m.notifier.Broadcast(LobbyStatus{OpenLobbyAvailable: false})
		}
		log.Info().
			Str("session_id", sessionID).
			Str("participant_id", participantID).
			Msg("waiting lobby discarded")

	case session.LeaveEndsSession:
		m.notifier.ToParticipants(s.ParticipantIDs(), ParticipantLeft{
			ParticipantID: participantID,
			Message:       "Opponent disconnected.",
		})
		m.finish(s, session.ReasonOpponentLeft)

	case session.LeaveAfterFinish, session.LeaveNoop:
		// Removal goroutine cleans up the rest.
	}
}

// SessionFor returns the ID of the session the participant is bound to.
func (m *Manager) SessionFor(participantID string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byParticipant[participantID]
	return id, ok
}

// Stats returns the read-only snapshot for the status endpoint.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Stats{
		ActiveSessions:     len(m.sessions),
		OpenLobbyAvailable: m.openLobbyID != "",
	}
}

// sessionFor resolves the participant's session for submissions.
func (m *Manager) sessionFor(participantID string) (*session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sessionID, bound := m.byParticipant[participantID]
	if !bound {
		return nil, ErrNotInSession
	}
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrNotInSession
	}
	return s, nil
}

// runCountdown drives one Active session's timer. It exits when the
// session ends, whatever the reason; the done channel guards against a
// tick firing after a concurrent completion-based end.
func (m *Manager) runCountdown(s *session.Session) {
	ticker := m.clock.NewTicker(m.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.Done():
			return
		case <-ticker.Chan():
			tr := s.Tick()
			if !tr.Active {
				return
			}
			if tr.Expired {
				m.finish(s, session.ReasonTimeUp)
				return
			}
			m.notifier.ToParticipants(s.ParticipantIDs(), TimeUpdate{RemainingSeconds: tr.Remaining})
		}
	}
}

// finish ends a session once, delivers the resolution, and schedules
// removal after the grace delay.
func (m *Manager) finish(s *session.Session, reason session.EndReason) {
	res, ok := s.End(reason)
	if !ok {
		return
	}

	ended := SessionEnded{
		Reason:      res.Reason,
		IsTie:       res.IsTie,
		FinalScores: res.Scores,
	}
	if res.Winner != nil {
		ended.Winner = &Winner{ID: res.Winner.ID, Name: res.Winner.Name}
	}
	m.notifier.ToParticipants(s.ParticipantIDs(), ended)

	winnerID := ""
	if res.Winner != nil {
		winnerID = res.Winner.ID
	}
	log.Info().
		Str("session_id", s.ID).
		Str("reason", string(reason)).
		Str("winner_id", winnerID).
		Bool("is_tie", res.IsTie).
		Msg("session ended")

	go func() {
		<-m.clock.After(m.opts.RemoveDelay)
		m.remove(s.ID)
	}()
}

// remove drops a finished session from the table and releases every
// participant binding still pointing at it.
func (m *Manager) remove(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return
	}
	delete(m.sessions, sessionID)
	for _, id := range s.MemberIDs() {
		if m.byParticipant[id] == sessionID {
			delete(m.byParticipant, id)
		}
	}

	log.Debug().Str("session_id", sessionID).Msg("session removed")
}
