package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// LogNotifier は通知を info で slog に流す（エラー自体は usecase が warn で記録済み）。
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) NotifyError(ctx context.Context, message string) {
	n.log.InfoContext(ctx, "notification", slog.String("message", message))
}

// WriterNotifier は "error: <message>" を1行ずつ書く（CLIの stderr 用）
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) NotifyError(ctx context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "error: %s\n", message) //nolint:errcheck
}

// Recorder は通知を覚えておく。
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *Recorder) NotifyError(ctx context.Context, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

// Messages は受け取った順のコピーを返す。
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}

// Notifier は NotifyError を持つもの
type Notifier interface {
	NotifyError(ctx context.Context, message string)
}

// Multi は全ての notifier に順に配る。
type Multi []Notifier

func (m Multi) NotifyError(ctx context.Context, message string) {
	for _, n := range m {
		n.NotifyError(ctx, message)
	}
}
