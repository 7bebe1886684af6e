package store

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// ============================================================
// Notices
// ============================================================

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is a user-facing, non-fatal message about the outcome of an operation.
type Notice struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type Notifier interface {
	Notify(Notice)
}

// NoticeLog buffers notices until the host shell drains them into a response.
type NoticeLog struct {
	mu      sync.Mutex
	log     *zap.Logger
	pending []Notice
	limit   int
}

func NewNoticeLog(log *zap.Logger) *NoticeLog {
	if log == nil {
		log = zap.NewNop()
	}
	return &NoticeLog{log: log, limit: 50}
}

func (l *NoticeLog) Notify(n Notice) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n.At.IsZero() {
		n.At = time.Now()
	}
	l.pending = append(l.pending, n)
	if len(l.pending) > l.limit {
		l.pending = l.pending[len(l.pending)-l.limit:]
	}

	l.log.Debug("notice", zap.String("level", string(n.Level)), zap.String("message", n.Message))
}

// Drain returns and clears the buffered notices.
func (l *NoticeLog) Drain() []Notice {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := l.pending
	l.pending = nil
	if out == nil {
		out = []Notice{}
	}
	return out
}
