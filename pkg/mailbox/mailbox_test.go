package mailbox

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/moyu-x/minecraft-timer/internal"
)

func playerMsg(ticks uint64) internal.Message {
	return internal.Message{Player: &internal.PlayerStats{TicksPlayed: ticks}}
}

func TestRecvTimeout_NoMessage(t *testing.T) {
	_, r := New()

	start := time.Now()
	_, ok, err := r.RecvTimeout(20 * time.Millisecond)
	if err != nil {
		t.Fatalf("timeout must not be an error, got %v", err)
	}
	if ok {
		t.Fatal("expected no message")
	}
	if time.Since(start) < 15*time.Millisecond {
		t.Error("RecvTimeout returned before the timeout elapsed")
	}
}

func TestSendRecv(t *testing.T) {
	s, r := New()

	if err := s.Send(playerMsg(119)); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	msg, ok, err := r.RecvTimeout(10 * time.Millisecond)
	if err != nil || !ok {
		t.Fatalf("RecvTimeout() ok=%v err=%v", ok, err)
	}
	if msg.Player.TicksPlayed != 119 {
		t.Errorf("TicksPlayed = %d, want 119", msg.Player.TicksPlayed)
	}
}

func TestLatestWins(t *testing.T) {
	s, r := New()

	for i := uint64(1); i <= 5; i++ {
		if err := s.Send(playerMsg(i)); err != nil {
			t.Fatalf("Send() error = %v", err)
		}
	}

	msg, ok, _ := r.RecvTimeout(10 * time.Millisecond)
	if !ok {
		t.Fatal("expected a message")
	}
	if msg.Player.TicksPlayed != 5 {
		t.Errorf("expected latest message (5), got %d", msg.Player.TicksPlayed)
	}

	if _, ok, _ := r.RecvTimeout(10 * time.Millisecond); ok {
		t.Error("older messages must have been replaced")
	}
}

func TestSend_ReceiverClosed(t *testing.T) {
	s, r := New()
	r.Close()
	r.Close()

	if err := s.Send(playerMsg(1)); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestRecv_SenderClosed(t *testing.T) {
	s, r := New()

	if err := s.Send(playerMsg(7)); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	s.Close()

	msg, ok, err := r.RecvTimeout(10 * time.Millisecond)
	if err != nil || !ok || msg.Player.TicksPlayed != 7 {
		t.Fatalf("pending message must still be delivered: ok=%v err=%v", ok, err)
	}

	if _, _, err := r.RecvTimeout(10 * time.Millisecond); !errors.Is(err, ErrDisconnected) {
		t.Errorf("expected ErrDisconnected, got %v", err)
	}
}

func TestShared_NoDuplicateDelivery(t *testing.T) {
	s, r := New()
	shared := NewShared(r)

	const total = 200
	var (
		mu       sync.Mutex
		received int
		wg       sync.WaitGroup
	)

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				_, ok, err := shared.RecvTimeout(5 * time.Millisecond)
				if err != nil {
					return
				}
				if ok {
					mu.Lock()
					received++
					mu.Unlock()
				}
			}
		}()
	}

	for i := 0; i < total; i++ {
		if err := s.Send(playerMsg(uint64(i))); err != nil {
			t.Fatalf("Send() error = %v", err)
		}
		time.Sleep(time.Millisecond / 4)
	}
	time.Sleep(20 * time.Millisecond)
	s.Close()
	wg.Wait()

	if received == 0 {
		t.Fatal("expected at least one message")
	}
	if received > total {
		t.Errorf("received %d messages, more than the %d sent", received, total)
	}
}
