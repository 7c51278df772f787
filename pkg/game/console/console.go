// Package console is the program's logger. Messages carry a small markup,
// GT{KEY} for translated text and ROOM{name} / FLOOR{n} / WARN{text} for
// highlighted operands, which is expanded into colored output when writing
// to a terminal and into plain text otherwise.
package console

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"floorforge/pkg/engine/terminal"
)

// Level is a log severity
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DBG"
	case LevelInfo:
		return "INF"
	case LevelWarn:
		return "WRN"
	case LevelError:
		return "ERR"
	default:
		return "???"
	}
}

var (
	ColorRoom    = color.Style{color.FgCyan}
	ColorFloor   = color.Style{color.FgMagenta, color.OpBold}
	ColorWarn    = color.Style{color.FgYellow, color.OpBold}
	ColorDenied  = color.Style{color.FgRed, color.OpBold}
	ColorSubtle  = color.Style{color.FgGray}
	ColorSuccess = color.Style{color.FgGreen, color.OpBold}

	levelStyles = map[Level]color.Style{
		LevelDebug: ColorSubtle,
		LevelInfo:  ColorSuccess,
		LevelWarn:  ColorWarn,
		LevelError: ColorDenied,
	}

	regexpStringFunctions = regexp.MustCompile(`([A-Z]*){([a-z A-Z0-9_,:.\-]+)}`)
)

// catalog translates GT{} keys. An empty catalog returns keys unchanged.
var catalog gotext.Translator = gotext.NewPo()

// LoadCatalog installs a gettext catalog as the source of translations
func LoadCatalog(po []byte) {
	c := gotext.NewPo()
	c.Parse(po)
	catalog = c
}

// T translates key and, when vars are given, formats the translation with them
func T(key string, vars ...any) string {
	msg := catalog.Get(key)
	if len(vars) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, vars...)
}

// FormatString formats a string and expands its markup. Styles are only
// applied when colored is true.
func FormatString(colored bool, msg string, a ...any) string {
	ret := msg
	if len(a) > 0 {
		ret = fmt.Sprintf(msg, a...)
	}

	for _, match := range regexpStringFunctions.FindAllStringSubmatch(ret, -1) {
		function := match[1]
		operand := match[2]

		var val string
		switch function {
		case "GT":
			val = T(operand)
		case "ROOM":
			val = paint(colored, ColorRoom, operand)
		case "FLOOR":
			val = paint(colored, ColorFloor, T("Floor")+" "+operand)
		case "WARN":
			val = paint(colored, ColorWarn, operand)
		default:
			continue
		}

		ret = strings.Replace(ret, match[0], val, -1)
	}

	return ret
}

func paint(colored bool, style color.Style, s string) string {
	if !colored {
		return s
	}
	return style.Sprint(s)
}

// Logger writes leveled, marked-up messages
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	level   Level
	colored bool
}

// New creates a logger writing to out. Colors are used only when out is a terminal.
func New(out io.Writer, level Level) *Logger {
	colored := false
	if f, ok := out.(*os.File); ok {
		colored = terminal.IsTerminal(f)
	}
	return &Logger{out: out, level: level, colored: colored}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return &Logger{out: io.Discard, level: LevelError + 1}
}

// SetLevel changes the minimum level written
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Enabled reports whether messages at level would be written
func (l *Logger) Enabled(level Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return level >= l.level
}

func (l *Logger) logf(level Level, msg string, a ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}
	line := FormatString(l.colored, msg, a...)
	tag := level.String()
	if l.colored {
		tag = levelStyles[level].Sprint(tag)
	} else {
		line = color.ClearCode(line)
	}
	fmt.Fprintf(l.out, "%s %s\n", tag, line)
}

// Debugf logs at debug level
func (l *Logger) Debugf(msg string, a ...any) { l.logf(LevelDebug, msg, a...) }

// Infof logs at info level
func (l *Logger) Infof(msg string, a ...any) { l.logf(LevelInfo, msg, a...) }

// Warnf logs at warning level
func (l *Logger) Warnf(msg string, a ...any) { l.logf(LevelWarn, msg, a...) }

// Errorf logs at error level
func (l *Logger) Errorf(msg string, a ...any) { l.logf(LevelError, msg, a...) }

// ParseLevel reads a level name such as "debug" or "warn"
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}
