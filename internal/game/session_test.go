package game

import "testing"

func TestNewSessionStartsWithQuestionerTurn(t *testing.T) {
	q := NewHuman("conn-a")
	c := NewBot()
	s := NewSession(q, c)

	if s.State != StateWaiting {
		t.Fatalf("State = %q, want %q", s.State, StateWaiting)
	}
	if s.TurnHolder != q {
		t.Fatal("new session must give the first turn to the questioner")
	}
	if s.ID == "" {
		t.Fatal("session id must be set")
	}
}

func TestAdvanceTurnAlternates(t *testing.T) {
	q := NewHuman("conn-a")
	c := NewHuman("conn-b")
	s := NewSession(q, c)
	s.Start()

	for i := 0; i < 6; i++ {
		want := c
		if i%2 == 1 {
			want = q
		}
		s.AdvanceTurn()
		if s.TurnHolder != want {
			t.Fatalf("turn %d: holder = %+v, want %+v", i, s.TurnHolder, want)
		}
	}
}

func TestRecordTurnAppendsToAuthorOnly(t *testing.T) {
	q := NewHuman("conn-a")
	c := NewBot()
	s := NewSession(q, c)
	s.Start()

	s.RecordTurn(q, "hello")
	s.RecordTurn(c, "hi there")
	s.RecordTurn(q, "how are you")

	if got := len(q.Transcript); got != 2 {
		t.Fatalf("questioner transcript length = %d, want 2", got)
	}
	if got := len(c.Transcript); got != 1 {
		t.Fatalf("counterpart transcript length = %d, want 1", got)
	}
	if q.Transcript[1] != "how are you" {
		t.Fatalf("transcript order broken: %v", q.Transcript)
	}
}

func TestCastVoteEndsSession(t *testing.T) {
	q := NewHuman("conn-a")
	c := NewBot()
	s := NewSession(q, c)
	s.Start()

	accused := s.CastVote(VoteBot)
	if accused != c {
		t.Fatal("voting bot must accuse the counterpart")
	}
	if s.State != StateEnded {
		t.Fatalf("State = %q, want %q", s.State, StateEnded)
	}

	// Session is over; a second vote is ignored.
	if again := s.CastVote(VoteParticipant); again != nil {
		t.Fatal("vote after end must be rejected")
	}
	if s.Vote != VoteBot {
		t.Fatalf("Vote = %q, want %q", s.Vote, VoteBot)
	}
}

func TestCastVoteParticipantAccusesQuestioner(t *testing.T) {
	q := NewHuman("conn-a")
	c := NewHuman("conn-b")
	s := NewSession(q, c)
	s.Start()

	if accused := s.CastVote(VoteParticipant); accused != q {
		t.Fatal("voting participant must fall back to the questioner")
	}
}

func TestComputeWinnerTable(t *testing.T) {
	cases := []struct {
		name      string
		vote      Vote
		automated bool
		want      string
	}{
		{"voted bot, was bot", VoteBot, true, OutcomeBot},
		{"voted participant, was human", VoteParticipant, false, OutcomeBotHuman},
		{"voted bot, was human", VoteBot, false, OutcomeHuman},
		{"voted participant, was bot", VoteParticipant, true, OutcomeHuman},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := NewHuman("conn-a")
			c := NewHuman("conn-b")
			if tc.automated {
				c = NewBot()
			}
			s := NewSession(q, c)
			s.Start()
			s.CastVote(tc.vote)
			winner, ok := s.ComputeWinner()
			if !ok || winner != tc.want {
				t.Fatalf("ComputeWinner() = (%q, %v), want (%q, true)", winner, ok, tc.want)
			}
		})
	}
}

func TestComputeWinnerUndefinedWithoutVote(t *testing.T) {
	s := NewSession(NewHuman("conn-a"), NewBot())
	s.Start()
	if winner, ok := s.ComputeWinner(); ok {
		t.Fatalf("ComputeWinner() = %q, want undefined", winner)
	}
}

func TestForcedOutcomeOverridesVote(t *testing.T) {
	q := NewHuman("conn-a")
	c := NewBot()
	s := NewSession(q, c)
	s.Start()
	s.CastVote(VoteBot)
	s.ForceEnd(OutcomeBotHuman)

	winner, ok := s.ComputeWinner()
	if !ok || winner != OutcomeBotHuman {
		t.Fatalf("ComputeWinner() = (%q, %v), want (%q, true)", winner, ok, OutcomeBotHuman)
	}
}

func TestForceEndFromAnyState(t *testing.T) {
	s := NewSession(NewHuman("conn-a"), NewBot())
	s.ForceEnd(OutcomeHuman)
	if s.State != StateEnded {
		t.Fatalf("State = %q, want %q", s.State, StateEnded)
	}
	if winner, _ := s.ComputeWinner(); winner != OutcomeHuman {
		t.Fatalf("winner = %q, want %q", winner, OutcomeHuman)
	}
}
