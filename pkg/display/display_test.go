package display

import (
	"testing"
	"time"

	"github.com/moyu-x/minecraft-timer/internal"
)

func TestState_Default(t *testing.T) {
	var s State
	if got := s.String(time.Now()); got != "00:00:00" {
		t.Errorf("String() = %q, want 00:00:00", got)
	}
	if _, ok := s.Last(); ok {
		t.Error("expected no last message")
	}
}

func TestState_WorldCreatedThenStats(t *testing.T) {
	var s State
	t0 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	s.Apply(internal.Message{World: &internal.WorldInfo{Name: "World", LastModified: t0}}, t0)
	if got := s.String(t0); got != "00:00:00" {
		t.Errorf("right after world creation String() = %q", got)
	}
	if got := s.String(t0.Add(127 * time.Second)); got != "00:02:07" {
		t.Errorf("String() = %q, want 00:02:07", got)
	}

	t1 := t0.Add(300 * time.Second)
	s.Apply(internal.Message{
		Player: &internal.PlayerStats{TicksPlayed: 0},
		World:  &internal.WorldInfo{Name: "World", LastModified: t1},
	}, t1)

	if got := s.String(t1); got != "00:00:00" {
		t.Errorf("String() = %q, want 00:00:00", got)
	}
	if got := s.String(t1.Add(10 * time.Second)); got != "00:00:10" {
		t.Errorf("String() = %q, want 00:00:10", got)
	}
	if s.Updates() != 2 {
		t.Errorf("Updates() = %d, want 2", s.Updates())
	}
}

func TestState_AccumulatedPlayTime(t *testing.T) {
	var s State
	mtime := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	s.Apply(internal.Message{
		Player: &internal.PlayerStats{TicksPlayed: 6666 * 20},
		World:  &internal.WorldInfo{LastModified: mtime},
	}, mtime.Add(time.Second))

	if got := s.String(mtime); got != "01:51:06" {
		t.Errorf("String() = %q, want 01:51:06", got)
	}
	if got := s.Seconds(mtime.Add(4 * time.Second)); got != 6670 {
		t.Errorf("Seconds() = %v, want 6670", got)
	}
}

func TestState_PlayerWithoutWorldUsesReceiptTime(t *testing.T) {
	var s State
	received := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	s.Apply(internal.Message{Player: &internal.PlayerStats{TicksPlayed: 119}}, received)

	if got := s.Seconds(received); got != 5.95 {
		t.Errorf("Seconds() = %v, want 5.95", got)
	}
	if !s.Since().Equal(received) {
		t.Errorf("Since() = %v, want %v", s.Since(), received)
	}
}

func TestState_ClockSkewNeverNegative(t *testing.T) {
	var s State
	future := time.Now().Add(time.Hour)
	s.Apply(internal.Message{World: &internal.WorldInfo{LastModified: future}}, time.Now())

	if got := s.Seconds(time.Now()); got != 0 {
		t.Errorf("Seconds() = %v, want 0", got)
	}
}

func TestState_IgnoresEmptyMessage(t *testing.T) {
	var s State
	s.Apply(internal.Message{}, time.Now())
	if _, ok := s.Last(); ok {
		t.Error("an empty message must not replace the display state")
	}
}

func TestState_DuplicateMessages(t *testing.T) {
	var s State
	mtime := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	msg := internal.Message{
		Player: &internal.PlayerStats{TicksPlayed: 200},
		World:  &internal.WorldInfo{LastModified: mtime},
	}

	s.Apply(msg, mtime)
	first := s.String(mtime.Add(time.Minute))
	s.Apply(msg, mtime.Add(time.Second))
	if got := s.String(mtime.Add(time.Minute)); got != first {
		t.Errorf("duplicate message changed display: %q != %q", got, first)
	}
}
