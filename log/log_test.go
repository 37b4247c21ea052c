package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// decode returns the JSON records written to buf.
func decode(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var records []map[string]any

	for line := range strings.SplitSeq(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}

		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("invalid record %q: %v", line, err)
		}

		records = append(records, rec)
	}

	return records
}

func plainJSON(buf *bytes.Buffer, opts ...Option) Logger {
	return Make(buf, append([]Option{WithFormat(FormatJSON), WithPretty(false)}, opts...)...)
}

func TestMake_Defaults(t *testing.T) {
	l := Make(nil)

	if l.Level() != DefaultLevel {
		t.Errorf("Level() = %v, want %v", l.Level(), DefaultLevel)
	}

	if l.Format() != DefaultFormat {
		t.Errorf("Format() = %v, want %v", l.Format(), DefaultFormat)
	}

	if l.config.caller != DefaultCaller || l.config.pretty != DefaultPretty {
		t.Errorf("config = %+v", l.config)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	emitters := map[Level]func(Logger, string, ...slog.Attr){
		LevelTrace: Logger.Trace,
		LevelDebug: Logger.Debug,
		LevelInfo:  Logger.Info,
		LevelWarn:  Logger.Warn,
		LevelError: Logger.Error,
	}

	for _, floor := range levels {
		for level, emit := range emitters {
			t.Run(floor.String()+"/"+level.String(), func(t *testing.T) {
				var buf bytes.Buffer

				emit(plainJSON(&buf, WithLevel(floor)), "message")

				records := decode(t, &buf)
				if want := level >= floor; (len(records) == 1) != want {
					t.Fatalf("got %d records, want logged=%t", len(records), want)
				}

				if len(records) == 1 && records[0]["level"] != level.label() {
					t.Errorf("level = %v, want %s", records[0]["level"], level.label())
				}
			})
		}
	}
}

func TestLogger_ContextMethods(t *testing.T) {
	type key struct{}

	ctx := context.WithValue(context.Background(), key{}, "value")

	tests := []struct {
		name string
		emit func(Logger, context.Context, string, ...slog.Attr)
		want string
	}{
		{"trace", Logger.TraceContext, "TRACE"},
		{"debug", Logger.DebugContext, "DEBUG"},
		{"info", Logger.InfoContext, "INFO"},
		{"warn", Logger.WarnContext, "WARN"},
		{"error", Logger.ErrorContext, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.emit(plainJSON(&buf, WithLevel(LevelTrace)), ctx, "dispatch", slog.Int("tokens", 3))

			records := decode(t, &buf)
			if len(records) != 1 {
				t.Fatalf("got %d records, want 1", len(records))
			}

			rec := records[0]
			if rec["level"] != tt.want || rec["msg"] != "dispatch" || rec["tokens"] != float64(3) {
				t.Errorf("record = %v", rec)
			}
		})
	}
}

func TestLogger_NilContext(t *testing.T) {
	var buf bytes.Buffer

	plainJSON(&buf).InfoContext(nil, "tolerated")

	if !strings.Contains(buf.String(), "tolerated") {
		t.Errorf("got %q", buf.String())
	}
}

func TestLogger_Caller(t *testing.T) {
	tests := []struct {
		name   string
		caller bool
	}{
		{"enabled", true},
		{"disabled", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			plainJSON(&buf, WithCaller(tt.caller)).Warn("where")

			records := decode(t, &buf)
			src, ok := records[0][slog.SourceKey].(map[string]any)

			if ok != tt.caller {
				t.Fatalf("source present = %t, want %t", ok, tt.caller)
			}

			if ok && !strings.HasSuffix(src["file"].(string), "log_test.go") {
				t.Errorf("source file = %v, want log_test.go", src["file"])
			}
		})
	}
}

func TestLogger_TimeLayout(t *testing.T) {
	tests := []struct {
		layout  string
		present bool
	}{
		{"RFC3339Nano", true},
		{"kitchen", true},
		{"none", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			var buf bytes.Buffer

			plainJSON(&buf, WithTimeLayout(tt.layout)).Info("tick")

			_, ok := decode(t, &buf)[0][slog.TimeKey]
			if ok != tt.present {
				t.Errorf("time present = %t, want %t", ok, tt.present)
			}
		})
	}
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatText), WithPretty(false), WithLevel(LevelTrace))
	l.Trace("descend", slog.String("token", "ls"))

	output := buf.String()
	for _, want := range []string{"level=TRACE", "msg=descend", "token=ls"} {
		if !strings.Contains(output, want) {
			t.Errorf("got %q, want it to contain %q", output, want)
		}
	}
}

func TestLogger_Wrap(t *testing.T) {
	var first, second bytes.Buffer

	base := plainJSON(&first, WithLevel(LevelWarn))
	wrapped := base.Wrap(WithOutput(&second), WithLevel(LevelDebug))

	base.Info("hidden")
	wrapped.Debug("shown")

	if first.Len() != 0 {
		t.Errorf("base logged %q", first.String())
	}

	if wrapped.Level() != LevelDebug || wrapped.Format() != FormatJSON {
		t.Errorf("wrapped config = %+v", wrapped.config)
	}

	if records := decode(t, &second); len(records) != 1 || records[0]["msg"] != "shown" {
		t.Errorf("wrapped records = %v", records)
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer

	base := plainJSON(&buf)
	scoped := base.With(slog.String("manifest", "commands.yaml"))

	scoped.Info("scoped")
	base.Info("bare")

	records := decode(t, &buf)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	if records[0]["manifest"] != "commands.yaml" {
		t.Errorf("scoped record = %v", records[0])
	}

	if _, ok := records[1]["manifest"]; ok {
		t.Errorf("base record gained attribute: %v", records[1])
	}

	if scoped.Level() != base.Level() {
		t.Errorf("With changed level to %v", scoped.Level())
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var l Logger

	l.Trace("x")
	l.Info("x")
	l.ErrorContext(context.Background(), "x")

	if l.With(slog.Bool("k", true)).Logger != nil {
		t.Error("With on zero Logger returned a live logger")
	}

	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Errorf("zero Logger reports %v/%v", l.Level(), l.Format())
	}
}

func TestLogger_Concurrent(t *testing.T) {
	var buf bytes.Buffer

	l := plainJSON(&buf)

	var wg sync.WaitGroup

	for i := range 64 {
		wg.Go(func() { l.Info("parallel", slog.Int("id", i)) })
	}

	wg.Wait()

	if got := len(decode(t, &buf)); got != 64 {
		t.Errorf("got %d records, want 64", got)
	}
}

func BenchmarkLogger(b *testing.B) {
	cases := map[string][]Option{
		"plain":  {WithPretty(false)},
		"caller": {WithPretty(false), WithCaller(true)},
		"pretty": {WithPretty(true)},
	}

	for name, opts := range cases {
		b.Run(name, func(b *testing.B) {
			var buf bytes.Buffer

			l := Make(&buf, opts...).With(slog.String("component", "bench"))

			for i := 0; b.Loop(); i++ {
				l.Info("benchmark", slog.Int("iteration", i))
			}
		})
	}
}
