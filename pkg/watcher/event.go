package watcher

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/moyu-x/minecraft-timer/internal"
	"github.com/moyu-x/minecraft-timer/pkg/scanner"
)

// EventKind 是归类后的事件类型
type EventKind int

const (
	KindIgnored EventKind = iota
	KindNewWorld
	KindStatsWritten
)

func (k EventKind) String() string {
	switch k {
	case KindNewWorld:
		return "new_world"
	case KindStatsWritten:
		return "stats_written"
	default:
		return "ignored"
	}
}

// Event 是经过防抖与归类后的文件系统事件
type Event struct {
	Kind EventKind
	Path string
	Op   fsnotify.Op
	Time time.Time
}

// Classify 只根据操作类型和路径形状判断事件类别，不访问文件系统
func Classify(root string, op fsnotify.Op, path string) EventKind {
	path = filepath.Clean(path)
	parent := filepath.Dir(path)

	if op.Has(fsnotify.Write) || op.Has(fsnotify.Create) {
		if scanner.IsStatsFile(path) {
			return KindStatsWritten
		}
	}

	if op.Has(fsnotify.Create) && path != filepath.Clean(root) {
		if parent == filepath.Clean(root) || filepath.Base(parent) == internal.SavesDirName {
			return KindNewWorld
		}
	}

	return KindIgnored
}
