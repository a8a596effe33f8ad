package manager

import "github.com/wordrace/wordrace/game/session"

// Event is an outbound protocol message. EventType is the wire type tag the
// transport puts on the envelope.
type Event interface {
	EventType() string
}

// Notifier delivers events to participants. The transport adapter
// implements it. Implementations must not block: the manager may call them
// while holding its lock.
type Notifier interface {
	ToParticipant(participantID string, event Event)
	ToParticipants(participantIDs []string, event Event)
	Broadcast(event Event)
}

// LobbyStatus is broadcast to every connected participant whenever the
// open-lobby availability changes, and unicast on connect.
type LobbyStatus struct {
	OpenLobbyAvailable bool `json:"open_lobby_available"`
}

func (LobbyStatus) EventType() string { return "lobby_status" }

// StatusUpdate is a human-readable unicast progress message.
type StatusUpdate struct {
	Message string `json:"message"`
}

func (StatusUpdate) EventType() string { return "status_update" }

// SessionStarting is sent to both participants when a session activates.
// Words is the authoritative placed-word list, never the requested one.
type SessionStarting struct {
	SessionID       string                `json:"session_id"`
	Grid            [][]string            `json:"grid"`
	Words           []string              `json:"words"`
	Participants    []session.Participant `json:"participants"`
	DurationSeconds int                   `json:"duration_seconds"`
	Settings        session.Settings      `json:"settings"`
}

func (SessionStarting) EventType() string { return "session_starting" }

// TimeUpdate is sent to the session on every countdown tick.
type TimeUpdate struct {
	RemainingSeconds int `json:"remaining_seconds"`
}

func (TimeUpdate) EventType() string { return "time_update" }

// WordFound is sent to the session when a submission is accepted.
type WordFound struct {
	Word       string `json:"word"`
	FinderID   string `json:"finder_id"`
	FinderName string `json:"finder_name"`
	NewScore   int    `json:"new_score"`
	FoundCount int    `json:"found_count"`
	TotalWords int    `json:"total_words"`
}

func (WordFound) EventType() string { return "word_found" }

// WordRejected is unicast to the submitter. FinderID is set when the word
// was already found by someone.
type WordRejected struct {
	Word     string               `json:"word"`
	Reason   session.RejectReason `json:"reason"`
	FinderID string               `json:"finder_id,omitempty"`
}

func (WordRejected) EventType() string { return "word_rejected" }

// ParticipantLeft is sent to the remaining session members.
type ParticipantLeft struct {
	ParticipantID string `json:"participant_id"`
	Message       string `json:"message"`
}

func (ParticipantLeft) EventType() string { return "participant_left" }

// Winner identifies the resolved winner of a finished session.
type Winner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SessionEnded carries the frozen resolution to the session.
type SessionEnded struct {
	Reason      session.EndReason    `json:"reason"`
	Winner      *Winner              `json:"winner"` // null on a tie
	IsTie       bool                 `json:"is_tie"`
	FinalScores []session.FinalScore `json:"final_scores"`
}

func (SessionEnded) EventType() string { return "session_ended" }

// ErrorMessage is unicast to a participant whose request was rejected.
type ErrorMessage struct {
	Text string `json:"text"`
}

func (ErrorMessage) EventType() string { return "error_message" }
