package console

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormatStringPlain(t *testing.T) {
	tests := []struct {
		msg  string
		args []any
		want string
	}{
		{"ROOM{corridor} placed", nil, "corridor placed"},
		{"entering FLOOR{%d}", []any{2}, "entering Floor 2"},
		{"GT{UNTRANSLATED_KEY}", nil, "UNTRANSLATED_KEY"},
		{"WARN{careful} now", nil, "careful now"},
		{"left alone: map{x}", nil, "left alone: map{x}"},
	}

	for _, tt := range tests {
		if got := FormatString(false, tt.msg, tt.args...); got != tt.want {
			t.Errorf("FormatString(%q) = %q, want %q", tt.msg, got, tt.want)
		}
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelInfo)

	log.Debugf("hidden")
	log.Infof("placed ROOM{%s}", "vault")
	log.Errorf("boom")

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("debug message written at info level: %q", got)
	}
	if !strings.Contains(got, "INF placed vault\n") {
		t.Errorf("output = %q, want an INF line for vault", got)
	}
	if !strings.Contains(got, "ERR boom\n") {
		t.Errorf("output = %q, want an ERR line", got)
	}

	log.SetLevel(LevelDebug)
	if !log.Enabled(LevelDebug) {
		t.Error("Enabled(LevelDebug) = false after SetLevel(LevelDebug)")
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"debug": LevelDebug, "INFO": LevelInfo, "warning": LevelWarn, "error": LevelError} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel(\"loud\") error = nil, want error")
	}
}

func TestLoadCatalog(t *testing.T) {
	saved := catalog
	defer func() { catalog = saved }()

	LoadCatalog([]byte("msgid \"\"\nmsgstr \"\"\n\nmsgid \"GREETING\"\nmsgstr \"Hello %s\"\n"))

	if got := T("GREETING", "floor"); got != "Hello floor" {
		t.Errorf("T(GREETING) = %q, want %q", got, "Hello floor")
	}
	if got := FormatString(false, "GT{MISSING} GT{GREETING}"); got != "MISSING Hello %s" {
		t.Errorf("FormatString() = %q, want %q", got, "MISSING Hello %s")
	}
}
