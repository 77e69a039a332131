package watcher

import (
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

type pendingEvent struct {
	path  string
	op    fsnotify.Op
	seq   uint64
	first time.Time
	last  time.Time
}

// debouncer 按路径合并原始事件。路径静默满一个窗口，或距首次事件超过 maxDelay 时才放行，
// 放行顺序与路径首次出现的顺序一致。
type debouncer struct {
	window   time.Duration
	maxDelay time.Duration
	seq      uint64
	pending  map[string]*pendingEvent
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window:   window,
		maxDelay: 2 * window,
		pending:  make(map[string]*pendingEvent),
	}
}

func (d *debouncer) record(path string, op fsnotify.Op, t time.Time) {
	if p, ok := d.pending[path]; ok {
		p.op |= op
		p.last = t
		return
	}
	d.seq++
	d.pending[path] = &pendingEvent{
		path:  path,
		op:    op,
		seq:   d.seq,
		first: t,
		last:  t,
	}
}

func (d *debouncer) due(now time.Time) []*pendingEvent {
	var ready []*pendingEvent
	for path, p := range d.pending {
		if now.Sub(p.last) >= d.window || now.Sub(p.first) >= d.maxDelay {
			ready = append(ready, p)
			delete(d.pending, path)
		}
	}
	sort.Slice(ready, func(i, j int) bool {
		return ready[i].seq < ready[j].seq
	})
	return ready
}

func (d *debouncer) size() int {
	return len(d.pending)
}
