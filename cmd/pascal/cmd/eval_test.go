package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	mdwlog "github.com/msto63/pascal/foundation/core/log"
	"github.com/msto63/pascal/internal/pascal/session"
)

func testSession(t *testing.T) *session.Session {
	t.Helper()
	sess, err := session.New(session.Options{Logger: mdwlog.Discard()})
	if err != nil {
		t.Fatalf("session.New() error = %v", err)
	}
	return sess
}

func TestEvalLines(t *testing.T) {
	tests := []struct {
		name       string
		lines      []string
		mode       evalMode
		want       string
		wantFailed int
	}{
		{
			name:  "shared session",
			lines: []string{"r = 2", "", "r * 3"},
			mode:  modeEvaluate,
			want:  "r = 2\n6\n",
		},
		{
			name:       "error lines are counted",
			lines:      []string{"y", "1 + 1"},
			mode:       modeEvaluate,
			want:       "y not defined\n2\n",
			wantFailed: 1,
		},
		{
			name:  "quit stops evaluation",
			lines: []string{"1", "quit", "2"},
			mode:  modeEvaluate,
			want:  "1\n",
		},
		{
			name:  "scan",
			lines: []string{"x=2"},
			mode:  modeScan,
			want:  "ID(x) EQUAL NUM(2) EOF\n",
		},
		{
			name:  "ast",
			lines: []string{"1 - 2 + 3"},
			mode:  modeAST,
			want:  "(1 - (2 + 3))\n",
		},
		{
			name:       "ast syntax error",
			lines:      []string{"(1"},
			mode:       modeAST,
			wantFailed: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			failed := evalLines(context.Background(), &buf, testSession(t), tt.lines, tt.mode)

			if failed != tt.wantFailed {
				t.Errorf("failed = %d, want %d", failed, tt.wantFailed)
			}
			if tt.want != "" && buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestEvalLines_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	if failed := evalLines(ctx, &buf, testSession(t), []string{"1"}, modeEvaluate); failed != 0 {
		t.Errorf("failed = %d, want 0", failed)
	}
	if buf.Len() != 0 {
		t.Errorf("output = %q, want empty", buf.String())
	}
}

func TestReadLines(t *testing.T) {
	lines, err := readLines(strings.NewReader("a = 1\n\na * 2\n"))
	if err != nil {
		t.Fatalf("readLines() error = %v", err)
	}
	if got := strings.Join(lines, "|"); got != "a = 1||a * 2" {
		t.Errorf("lines = %q", got)
	}
}
