package repl

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/stride/internal/autocomplete"
)

// scriptReader replays lines and then returns its final error.
type scriptReader struct {
	lines   []string
	errs    map[int]error
	end     error
	calls   int
	history []string
}

func (r *scriptReader) Prompt(string) (string, error) {
	defer func() { r.calls++ }()
	if err, ok := r.errs[r.calls]; ok {
		return "", err
	}
	if len(r.lines) == 0 {
		return "", r.end
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptReader) AppendHistory(item string) {
	r.history = append(r.history, item)
}

func newTestSession() (*Session, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewSession(&buf, Config{Precision: 2}), &buf
}

func TestHandle_Expressions(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{name: "race time", line: "10 km at 5:00 min/km", want: "50 minutes"},
		{name: "conversion", line: "10 km to mile", want: "6.21 miles"},
		{name: "incompatible", line: "10 km at 3 miles", want: "error: "},
		{name: "syntax", line: "10 km to", want: "error: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, buf := newTestSession()
			require.NoError(t, s.Handle(context.Background(), tt.line))
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestHandle_RemembersLastValidResult(t *testing.T) {
	s, _ := newTestSession()
	ctx := context.Background()

	require.NoError(t, s.Handle(ctx, "10 km to mile"))
	require.NotNil(t, s.Last())
	assert.Equal(t, "mile", s.Last().UnitName())

	require.NoError(t, s.Handle(ctx, "10 km at 3 miles"))
	assert.Equal(t, "mile", s.Last().UnitName())
}

func TestHandle_DidYouMean(t *testing.T) {
	s, buf := newTestSession()
	require.NoError(t, s.Handle(context.Background(), "10 mlie to km"))
	assert.Contains(t, buf.String(), "error: ")
	assert.Contains(t, buf.String(), `did you mean "mile"?`)
}

func TestHandle_Quit(t *testing.T) {
	s, _ := newTestSession()
	assert.ErrorIs(t, s.Handle(context.Background(), "exit"), ErrQuit)
	assert.ErrorIs(t, s.Handle(context.Background(), " quit "), ErrQuit)
	assert.NoError(t, s.Handle(context.Background(), "   "))
}

func TestHandle_Commands(t *testing.T) {
	ctx := context.Background()

	t.Run("help", func(t *testing.T) {
		s, buf := newTestSession()
		require.NoError(t, s.Handle(ctx, ":help"))
		assert.Contains(t, buf.String(), ":suggest")
		assert.Contains(t, buf.String(), "exit, quit")
	})

	t.Run("suggest needs a result", func(t *testing.T) {
		s, buf := newTestSession()
		require.NoError(t, s.Handle(ctx, ":suggest"))
		assert.Equal(t, "no result yet\n", buf.String())
	})

	t.Run("suggest after result", func(t *testing.T) {
		s, buf := newTestSession()
		require.NoError(t, s.Handle(ctx, "10 km to mile"))
		buf.Reset()
		require.NoError(t, s.Handle(ctx, ":s"))
		assert.NotEmpty(t, buf.String())
		assert.NotContains(t, buf.String(), "no result yet")
	})

	t.Run("compliment", func(t *testing.T) {
		s, buf := newTestSession()
		require.NoError(t, s.Handle(ctx, "10 km to mile"))
		buf.Reset()
		require.NoError(t, s.Handle(ctx, ":compliment"))
		assert.Contains(t, buf.String(), "  ")
		assert.NotContains(t, buf.String(), "no result yet")
	})

	t.Run("options", func(t *testing.T) {
		s, buf := newTestSession()
		require.NoError(t, s.Handle(ctx, ":options distance"))
		assert.Contains(t, buf.String(), "mile")
		assert.NotContains(t, buf.String(), "minute")
	})

	t.Run("options unknown kind", func(t *testing.T) {
		s, buf := newTestSession()
		require.NoError(t, s.Handle(ctx, ":options parsecs"))
		assert.Equal(t, "unknown kind \"parsecs\"\n", buf.String())
	})

	t.Run("precision", func(t *testing.T) {
		s, buf := newTestSession()
		require.NoError(t, s.Handle(ctx, ":precision 0"))
		assert.Equal(t, 0, s.Precision())
		require.NoError(t, s.Handle(ctx, "10 km to mile"))
		assert.Contains(t, buf.String(), "precision set to 0\n6 miles\n")
	})

	t.Run("precision out of range", func(t *testing.T) {
		s, buf := newTestSession()
		require.NoError(t, s.Handle(ctx, ":p 11"))
		assert.Contains(t, buf.String(), "precision must be a number from 0 to 10")
		assert.Equal(t, 2, s.Precision())
	})

	t.Run("unknown", func(t *testing.T) {
		s, buf := newTestSession()
		require.NoError(t, s.Handle(ctx, ":bogus"))
		assert.Contains(t, buf.String(), "Unknown command: :bogus")
	})
}

func TestSplitClause(t *testing.T) {
	tests := []struct {
		line     string
		wantHead string
		wantTail string
	}{
		{"5 mi", "", "5 mi"},
		{"10 km to mi", "10 km to ", "mi"},
		{"10 km at 5:00 min/k", "10 km at ", "5:00 min/k"},
		{"5 kph for 3 hours TO mi", "5 kph for 3 hours TO ", "mi"},
		{"tornado", "", "tornado"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			head, tail := splitClause(tt.line)
			assert.Equal(t, tt.wantHead, head)
			assert.Equal(t, tt.wantTail, tail)
		})
	}
}

func TestComplete(t *testing.T) {
	s, _ := newTestSession()

	got := s.Complete("5 mi")
	require.NotEmpty(t, got)
	assert.Equal(t, "5 mile", got[0])

	got = s.Complete("10 km to mi")
	require.NotEmpty(t, got)
	assert.Equal(t, "10 km to mile", got[0])
	for _, c := range got {
		assert.Contains(t, c, "10 km to mi")
	}

	assert.Empty(t, s.Complete(""))
	assert.Empty(t, s.Complete("10 km to "))
	assert.Empty(t, s.Complete(":he"))
}

func TestComplete_Substring(t *testing.T) {
	var buf bytes.Buffer
	s := NewSession(&buf, Config{Search: autocomplete.SearchOptions{Mode: autocomplete.MatchSubstring, Limit: 2}})
	assert.Equal(t, []string{"5 mile", "5 miles"}, s.Complete("5 ile"))
}

func TestLoop(t *testing.T) {
	t.Run("exit", func(t *testing.T) {
		s, buf := newTestSession()
		r := &scriptReader{lines: []string{"10 km to mile", "", "exit", "never read"}, end: io.EOF}

		require.NoError(t, s.Loop(context.Background(), r))
		assert.Equal(t, []string{"10 km to mile", "exit"}, r.history)
		assert.Equal(t, []string{"never read"}, r.lines)
		assert.Contains(t, buf.String(), "6.21 miles")
		assert.Contains(t, buf.String(), "Goodbye!")
	})

	t.Run("eof", func(t *testing.T) {
		s, buf := newTestSession()
		r := &scriptReader{lines: []string{":help"}, end: io.EOF}

		require.NoError(t, s.Loop(context.Background(), r))
		assert.Contains(t, buf.String(), "\nGoodbye!\n")
	})

	t.Run("ctrl-c keeps going", func(t *testing.T) {
		s, buf := newTestSession()
		r := &scriptReader{
			lines: []string{"10 km to mile"},
			errs:  map[int]error{0: liner.ErrPromptAborted},
			end:   io.EOF,
		}

		require.NoError(t, s.Loop(context.Background(), r))
		assert.Contains(t, buf.String(), "^C\n")
		assert.Contains(t, buf.String(), "6.21 miles")
	})

	t.Run("read error", func(t *testing.T) {
		s, _ := newTestSession()
		boom := errors.New("boom")
		r := &scriptReader{end: boom}

		err := s.Loop(context.Background(), r)
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("cancelled", func(t *testing.T) {
		s, _ := newTestSession()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := s.Loop(ctx, &scriptReader{end: io.EOF})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
