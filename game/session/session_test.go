package session

import (
	"math/rand"
	"testing"

	"github.com/wordrace/wordrace/game/grid"
)

var (
	alice = Participant{ID: "p-alice", Name: "Alice"}
	bob   = Participant{ID: "p-bob", Name: "Bob"}
)

// testPuzzle generates a puzzle guaranteed to contain all the given words,
// retrying seeds until placement succeeds.
func testPuzzle(t *testing.T, words ...string) *grid.Puzzle {
	t.Helper()
	for seed := int64(1); seed <= 100; seed++ {
		gen := grid.NewGenerator(rand.New(rand.NewSource(seed)))
		p := gen.Generate(words, 12, grid.AllDirections)
		if p.WordCount() == len(words) {
			return p
		}
	}
	t.Fatalf("could not place %v on a 12x12 grid in 100 seeds", words)
	return nil
}

func activeSession(t *testing.T, words ...string) *Session {
	t.Helper()
	s := New("game-1", alice, Settings{Category: "animals", Difficulty: "easy"})
	if err := s.Activate(bob, testPuzzle(t, words...), 180); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	return s
}

func TestNew(t *testing.T) {
	s := New("game-1", alice, Settings{Category: "food", Difficulty: "hard"})

	if s.Status() != StatusWaiting {
		t.Errorf("status = %s, want %s", s.Status(), StatusWaiting)
	}
	if got := s.Participants(); len(got) != 1 || got[0] != alice {
		t.Errorf("participants = %v, want just the creator", got)
	}
	if s.Puzzle() != nil {
		t.Error("waiting session should have no puzzle")
	}
}

func TestActivate(t *testing.T) {
	s := New("game-1", alice, Settings{Category: "animals", Difficulty: "easy"})
	puzzle := testPuzzle(t, "LION", "TIGER")

	if err := s.Activate(bob, puzzle, 180); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if s.Status() != StatusActive {
		t.Errorf("status = %s, want %s", s.Status(), StatusActive)
	}
	if s.Remaining() != 180 {
		t.Errorf("remaining = %d, want 180", s.Remaining())
	}
	if len(s.Participants()) != 2 {
		t.Errorf("participants = %v, want two", s.Participants())
	}

	carol := Participant{ID: "p-carol", Name: "Carol"}
	if err := s.Activate(carol, puzzle, 180); err != ErrSessionFull {
		t.Errorf("third Activate err = %v, want ErrSessionFull", err)
	}
}

func TestSubmit_BeforeActive(t *testing.T) {
	s := New("game-1", alice, Settings{Category: "animals", Difficulty: "easy"})
	if _, err := s.Submit(alice.ID, "LION"); err != ErrSessionNotActive {
		t.Errorf("err = %v, want ErrSessionNotActive", err)
	}
}

func TestSubmit_Accepted(t *testing.T) {
	s := activeSession(t, "LION", "TIGER")

	res, err := s.Submit(alice.ID, "lion")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if !res.Accepted {
		t.Fatalf("submission rejected: %+v", res)
	}
	if res.NewScore != 40 {
		t.Errorf("score = %d, want 40 (10 per letter)", res.NewScore)
	}
	if res.FoundCount != 1 || res.TotalWords != 2 {
		t.Errorf("progress = %d/%d, want 1/2", res.FoundCount, res.TotalWords)
	}
	if res.Completed {
		t.Error("session reported complete with one of two words found")
	}
	if s.Score(alice.ID) != 40 {
		t.Errorf("ledger score = %d, want 40", s.Score(alice.ID))
	}
}

func TestSubmit_AlreadyFound(t *testing.T) {
	s := activeSession(t, "LION", "TIGER")

	if _, err := s.Submit(alice.ID, "LION"); err != nil {
		t.Fatal(err)
	}

	// Same word from the other participant: rejected, names the original
	// finder, and changes no score.
	res, err := s.Submit(bob.ID, "LION")
	if err != nil {
		t.Fatal(err)
	}
	if res.Accepted || res.Reason != RejectAlreadyFound {
		t.Fatalf("result = %+v, want already_found rejection", res)
	}
	if res.FinderID != alice.ID || res.FinderName != alice.Name {
		t.Errorf("finder = %s/%s, want the original finder", res.FinderID, res.FinderName)
	}
	if s.Score(bob.ID) != 0 {
		t.Errorf("bob's score = %d, want 0 after rejection", s.Score(bob.ID))
	}
	if s.Score(alice.ID) != 40 {
		t.Errorf("alice's score = %d, want unchanged 40", s.Score(alice.ID))
	}
}

func TestSubmit_NotInPuzzle(t *testing.T) {
	s := activeSession(t, "LION", "TIGER")

	res, err := s.Submit(alice.ID, "ZEBRA")
	if err != nil {
		t.Fatal(err)
	}
	if res.Accepted || res.Reason != RejectNotInPuzzle {
		t.Fatalf("result = %+v, want not_in_puzzle rejection", res)
	}
	if s.Score(alice.ID) != 0 {
		t.Errorf("score = %d, want 0", s.Score(alice.ID))
	}
}

func TestSubmit_CompletionTrigger(t *testing.T) {
	s := activeSession(t, "LION", "TIGER")

	if _, err := s.Submit(alice.ID, "LION"); err != nil {
		t.Fatal(err)
	}
	res, err := s.Submit(bob.ID, "TIGER")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Completed {
		t.Error("finding the last word should set Completed")
	}
}

func TestTick(t *testing.T) {
	s := New("game-1", alice, Settings{Category: "animals", Difficulty: "easy"})
	if err := s.Activate(bob, testPuzzle(t, "LION"), 3); err != nil {
		t.Fatal(err)
	}

	if tr := s.Tick(); !tr.Active || tr.Remaining != 2 || tr.Expired {
		t.Errorf("tick 1 = %+v, want remaining 2", tr)
	}
	if tr := s.Tick(); tr.Remaining != 1 {
		t.Errorf("tick 2 = %+v, want remaining 1", tr)
	}
	if tr := s.Tick(); !tr.Expired || tr.Remaining != 0 {
		t.Errorf("tick 3 = %+v, want expiry at 0", tr)
	}

	s.End(ReasonTimeUp)
	if tr := s.Tick(); tr.Active {
		t.Error("tick after end should be a no-op")
	}
}

func TestEnd_Idempotent(t *testing.T) {
	s := activeSession(t, "LION")

	res, ok := s.End(ReasonTimeUp)
	if !ok {
		t.Fatal("first End should take effect")
	}
	if res.Reason != ReasonTimeUp {
		t.Errorf("reason = %s, want %s", res.Reason, ReasonTimeUp)
	}
	if s.Status() != StatusFinished {
		t.Errorf("status = %s, want finished", s.Status())
	}

	if _, ok := s.End(ReasonOpponentLeft); ok {
		t.Error("second End with a different reason must be ignored")
	}

	select {
	case <-s.Done():
	default:
		t.Error("Done channel should be closed after End")
	}
}

func TestResolution(t *testing.T) {
	t.Run("higher score wins", func(t *testing.T) {
		s := activeSession(t, "LION", "TIGER")
		s.Submit(alice.ID, "TIGER") // 50
		s.Submit(bob.ID, "LION")    // 40

		res, _ := s.End(ReasonTimeUp)
		if res.IsTie || res.Winner == nil || res.Winner.ID != alice.ID {
			t.Fatalf("resolution = %+v, want alice as winner", res)
		}
		if res.Scores[0].Score != 50 || res.Scores[1].Score != 40 {
			t.Errorf("scores not sorted descending: %+v", res.Scores)
		}
	})

	t.Run("zero-zero is a tie", func(t *testing.T) {
		s := activeSession(t, "LION")
		res, _ := s.End(ReasonTimeUp)
		if !res.IsTie || res.Winner != nil {
			t.Fatalf("resolution = %+v, want a tie", res)
		}
	})

	t.Run("departed leader still wins", func(t *testing.T) {
		s := activeSession(t, "LION", "TIGER")
		s.Submit(bob.ID, "TIGER") // 50

		if outcome := s.Leave(bob.ID); outcome != LeaveEndsSession {
			t.Fatalf("leave outcome = %v, want LeaveEndsSession", outcome)
		}
		res, ok := s.End(ReasonOpponentLeft)
		if !ok {
			t.Fatal("End failed")
		}
		// No automatic win for the remaining participant: frozen scores decide.
		if res.IsTie || res.Winner == nil || res.Winner.ID != bob.ID {
			t.Fatalf("resolution = %+v, want departed bob as winner", res)
		}
	})
}

func TestLeave(t *testing.T) {
	t.Run("sole participant of waiting lobby", func(t *testing.T) {
		s := New("game-1", alice, Settings{Category: "animals", Difficulty: "easy"})
		if outcome := s.Leave(alice.ID); outcome != LeaveDiscard {
			t.Errorf("outcome = %v, want LeaveDiscard", outcome)
		}
	})

	t.Run("non-member", func(t *testing.T) {
		s := New("game-1", alice, Settings{Category: "animals", Difficulty: "easy"})
		if outcome := s.Leave("p-stranger"); outcome != LeaveNoop {
			t.Errorf("outcome = %v, want LeaveNoop", outcome)
		}
	})

	t.Run("after finish", func(t *testing.T) {
		s := activeSession(t, "LION")
		s.End(ReasonTimeUp)
		if outcome := s.Leave(alice.ID); outcome != LeaveAfterFinish {
			t.Errorf("outcome = %v, want LeaveAfterFinish", outcome)
		}
	})
}
