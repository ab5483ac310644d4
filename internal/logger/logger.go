package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// API サーバーは json、CLI は text（人が stderr で読む）
const (
	FormatJSON = "json"
	FormatText = "text"
)

type Options struct {
	Service string
	Env     string
	Level   string // debug / info / warn / error
	Format  string // 空なら json
	// 呼び出し元の file:line を付ける
	AddSource bool
	Output    io.Writer // 省略時は stdout
}

// New は Options から slog.Logger を作る。デフォルトへの設定は main でやる。
func New(opts Options) (*slog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	ho := &slog.HandlerOptions{Level: level, AddSource: opts.AddSource}

	var h slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", FormatJSON:
		h = slog.NewJSONHandler(out, ho)
	case FormatText:
		h = slog.NewTextHandler(out, ho)
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	l := slog.New(h).With(slog.String("service", opts.Service))
	if opts.Env != "" {
		l = l.With(slog.String("env", opts.Env))
	}
	return l, nil
}

// ParseLevel は "warn" や "DEBUG+2" のような slog の表記を受け付ける。
// 空は info。"warning" も warn として扱う。
func ParseLevel(s string) (slog.Level, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return slog.LevelInfo, nil
	case "warning":
		return slog.LevelWarn, nil
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}
