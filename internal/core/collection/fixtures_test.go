package collection

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aevon-lab/sift/internal/core/logging"
)

type user struct {
	Name   string
	Age    int
	Score  float64
	Tags   []string
	Attrs  map[string]any
	Parent *user
}

func threeKingdoms() []*user {
	return []*user{
		{Name: "张飞", Age: 23, Score: 88.5, Attrs: map[string]any{"state": "shu"}},
		{Name: "关羽", Age: 24, Score: 91, Attrs: map[string]any{"state": "shu"}},
		{Name: "刘备", Age: 25, Score: 79.25, Attrs: map[string]any{"state": "shu"}},
	}
}

func mixedStates() []*user {
	return []*user{
		{Name: "曹操", Age: 30, Attrs: map[string]any{"state": "wei"}},
		{Name: "刘备", Age: 25, Attrs: map[string]any{"state": "shu"}},
		{Name: "孙权", Age: 20, Attrs: map[string]any{"state": "wu"}},
		{Name: "关羽", Age: 24, Attrs: map[string]any{"state": "shu"}},
		{Name: "司马懿", Age: 28, Attrs: map[string]any{"state": "wei"}},
		{Name: "张飞", Age: 23, Attrs: map[string]any{"state": "shu"}},
	}
}

// captureLogs returns a context whose logger writes debug-level text to buf.
func captureLogs(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logging.WithLogger(context.Background(), l), &buf
}
