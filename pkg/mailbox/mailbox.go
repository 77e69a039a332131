// Package mailbox 实现监听线程与界面之间的单生产者消息通道。
//
// 通道容量为 1：发送方总是用最新消息覆盖尚未被取走的旧消息，
// 接收方只关心最近的状态。
package mailbox

import (
	"errors"
	"sync"
	"time"

	"github.com/moyu-x/minecraft-timer/internal"
)

var (
	// ErrClosed 表示接收方已关闭，发送方应当退出
	ErrClosed = errors.New("mailbox: receiver closed")
	// ErrDisconnected 表示发送方已关闭且没有待取的消息
	ErrDisconnected = errors.New("mailbox: sender disconnected")
)

type link struct {
	slot       chan internal.Message
	recvClosed chan struct{}
	sendClosed chan struct{}
	recvOnce   sync.Once
	sendOnce   sync.Once
}

type Sender struct {
	l *link
}

type Receiver struct {
	l *link
}

// New 创建一对相连的发送端与接收端
func New() (*Sender, *Receiver) {
	l := &link{
		slot:       make(chan internal.Message, 1),
		recvClosed: make(chan struct{}),
		sendClosed: make(chan struct{}),
	}
	return &Sender{l: l}, &Receiver{l: l}
}

// Send 投递消息，覆盖尚未被接收的旧消息；接收方关闭后返回 ErrClosed
func (s *Sender) Send(msg internal.Message) error {
	for {
		select {
		case <-s.l.recvClosed:
			return ErrClosed
		default:
		}

		select {
		case s.l.slot <- msg:
			return nil
		default:
		}

		// 丢弃旧消息后重试
		select {
		case <-s.l.slot:
		default:
		}
	}
}

// Close 通知接收方不会再有新消息
func (s *Sender) Close() {
	s.l.sendOnce.Do(func() {
		close(s.l.sendClosed)
	})
}

// RecvTimeout 最多等待 timeout。超时返回 ok=false 且 err 为 nil，这不是错误。
func (r *Receiver) RecvTimeout(timeout time.Duration) (internal.Message, bool, error) {
	select {
	case msg := <-r.l.slot:
		return msg, true, nil
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case msg := <-r.l.slot:
		return msg, true, nil
	case <-r.l.recvClosed:
		return internal.Message{}, false, ErrClosed
	case <-r.l.sendClosed:
		select {
		case msg := <-r.l.slot:
			return msg, true, nil
		default:
		}
		return internal.Message{}, false, ErrDisconnected
	case <-timer.C:
		return internal.Message{}, false, nil
	}
}

// Close 关闭接收端，之后的 Send 都会返回 ErrClosed
func (r *Receiver) Close() {
	r.l.recvOnce.Do(func() {
		close(r.l.recvClosed)
	})
}

// Shared 允许多个回调共用一个接收端，同一时刻只有一个调用在取消息
type Shared struct {
	mu sync.Mutex
	r  *Receiver
}

func NewShared(r *Receiver) *Shared {
	return &Shared{r: r}
}

func (s *Shared) RecvTimeout(timeout time.Duration) (internal.Message, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.RecvTimeout(timeout)
}

func (s *Shared) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r.Close()
}
