package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/flarenetwork/bindgen/logging/colors"
	"github.com/rs/zerolog"
)

// GlobalLogger describes a Logger that is disabled by default and is configured by the CLI once the project
// configuration is known. Each package should create its own sub-logger off of it.
var GlobalLogger = NewLogger(zerolog.Disabled)

// Logger describes a custom logging object that can log events to any arbitrary channel in structured,
// unstructured, or unstructured and colorized format.
type Logger struct {
	// level describes the log level
	level zerolog.Level

	// context holds the key-value pairs added through NewSubLogger, in insertion order. They are re-applied every
	// time the underlying zerolog loggers are rebuilt.
	context []string

	// structuredLogger outputs JSON-formatted logs to structuredWriters
	structuredLogger zerolog.Logger
	// structuredWriters is the list of writers receiving JSON-formatted logs
	structuredWriters []io.Writer

	// unstructuredLogger outputs plain console-formatted logs to unstructuredWriters
	unstructuredLogger zerolog.Logger
	// unstructuredWriters is the list of writers receiving plain console-formatted logs
	unstructuredWriters []io.Writer

	// unstructuredColorLogger outputs colorized console-formatted logs to unstructuredColorWriters
	unstructuredColorLogger zerolog.Logger
	// unstructuredColorWriters is the list of writers receiving colorized console-formatted logs
	unstructuredColorWriters []io.Writer
}

// LogFormat describes what format to log in
type LogFormat string

const (
	// STRUCTURED describes that logging should be done in structured JSON format
	STRUCTURED LogFormat = "structured"
	// UNSTRUCTURED describes that logging should be done in an unstructured format
	UNSTRUCTURED LogFormat = "unstructured"
)

// StructuredLogInfo describes a key-value mapping that can be used to log structured data
type StructuredLogInfo map[string]any

// NewLogger will create a new Logger object with a specific log level. Writers are attached afterwards using
// AddWriter.
func NewLogger(level zerolog.Level) *Logger {
	l := &Logger{
		level:                    level,
		structuredWriters:        make([]io.Writer, 0),
		unstructuredWriters:      make([]io.Writer, 0),
		unstructuredColorWriters: make([]io.Writer, 0),
	}
	l.rebuild()
	return l
}

// NewSubLogger will create a new Logger with unique context in the form of a key-value pair. The expected use of this
// function is for each package to have their own unique logger so that parsing of logs is "grep-able" based on some key
func (l *Logger) NewSubLogger(key string, value string) *Logger {
	subLogger := &Logger{
		level:                    l.level,
		context:                  append(append([]string{}, l.context...), key, value),
		structuredWriters:        append([]io.Writer{}, l.structuredWriters...),
		unstructuredWriters:      append([]io.Writer{}, l.unstructuredWriters...),
		unstructuredColorWriters: append([]io.Writer{}, l.unstructuredColorWriters...),
	}
	subLogger.rebuild()
	return subLogger
}

// AddWriter will add a writer to the list of channels where log output will be sent. If the writer was already added
// for the given format, this is a no-op.
func (l *Logger) AddWriter(writer io.Writer, format LogFormat, colored bool) {
	writers := l.writersFor(format, colored)
	for _, w := range *writers {
		if w == writer {
			return
		}
	}
	*writers = append(*writers, writer)
	l.rebuild()
}

// RemoveWriter will remove a writer from the list of writers that the logger manages. If the writer does not exist,
// this function is a no-op
func (l *Logger) RemoveWriter(writer io.Writer, format LogFormat, colored bool) {
	writers := l.writersFor(format, colored)
	for i, w := range *writers {
		if w == writer {
			*writers = append((*writers)[:i], (*writers)[i+1:]...)
			l.rebuild()
			return
		}
	}
}

// Level will get the log level of the Logger
func (l *Logger) Level() zerolog.Level {
	return l.level
}

// SetLevel will update the log level of the Logger
func (l *Logger) SetLevel(level zerolog.Level) {
	l.level = level
	l.rebuild()
}

// Trace is a wrapper function that will log a trace event
func (l *Logger) Trace(args ...any) {
	l.log(zerolog.TraceLevel, args...)
}

// Debug is a wrapper function that will log a debug event
func (l *Logger) Debug(args ...any) {
	l.log(zerolog.DebugLevel, args...)
}

// Info is a wrapper function that will log an info event
func (l *Logger) Info(args ...any) {
	l.log(zerolog.InfoLevel, args...)
}

// Warn is a wrapper function that will log a warning event
func (l *Logger) Warn(args ...any) {
	l.log(zerolog.WarnLevel, args...)
}

// Error is a wrapper function that will log an error event
func (l *Logger) Error(args ...any) {
	l.log(zerolog.ErrorLevel, args...)
}

// Panic is a wrapper function that will log a panic event and then panic
func (l *Logger) Panic(args ...any) {
	l.log(zerolog.PanicLevel, args...)
}

// log builds the messages for every output format and sends the event to each of the underlying loggers.
func (l *Logger) log(level zerolog.Level, args ...any) {
	coloredMsg, plainMsg, err, info := buildMsgs(args...)
	withStack := level == zerolog.PanicLevel || l.level <= zerolog.DebugLevel

	coloredEvent := l.unstructuredColorLogger.WithLevel(level)
	unstructuredEvent := l.unstructuredLogger.WithLevel(level)
	structuredEvent := l.structuredLogger.WithLevel(level)

	for _, event := range []*zerolog.Event{coloredEvent, unstructuredEvent, structuredEvent} {
		chainErrorAndInfo(event, err, info, withStack)
	}

	unstructuredEvent.Msg(plainMsg)
	coloredEvent.Msg(coloredMsg)
	structuredEvent.Msg(plainMsg)

	if level == zerolog.PanicLevel {
		panic(plainMsg)
	}
}

// writersFor returns a pointer to the writer list that backs the given format.
func (l *Logger) writersFor(format LogFormat, colored bool) *[]io.Writer {
	if format == STRUCTURED {
		return &l.structuredWriters
	}
	if colored {
		return &l.unstructuredColorWriters
	}
	return &l.unstructuredWriters
}

// rebuild recreates the underlying zerolog loggers from the current writers, level, and context.
func (l *Logger) rebuild() {
	l.structuredLogger = l.newZerologLogger(l.structuredWriters, func(w io.Writer) io.Writer {
		return w
	}).With().Timestamp().Logger()
	l.unstructuredLogger = l.newZerologLogger(l.unstructuredWriters, func(w io.Writer) io.Writer {
		return setupDefaultFormatting(zerolog.ConsoleWriter{Out: w, NoColor: true}, l.level)
	})
	l.unstructuredColorLogger = l.newZerologLogger(l.unstructuredColorWriters, func(w io.Writer) io.Writer {
		return setupDefaultFormatting(zerolog.ConsoleWriter{Out: w}, l.level)
	})
}

// newZerologLogger creates a zerolog.Logger over the provided writers, each wrapped by wrap. With no writers the
// returned logger is disabled.
func (l *Logger) newZerologLogger(writers []io.Writer, wrap func(io.Writer) io.Writer) zerolog.Logger {
	if len(writers) == 0 {
		return zerolog.Nop()
	}
	wrapped := make([]io.Writer, len(writers))
	for i, w := range writers {
		wrapped[i] = wrap(w)
	}
	ctx := zerolog.New(zerolog.MultiLevelWriter(wrapped...)).Level(l.level).With()
	for i := 0; i+1 < len(l.context); i += 2 {
		ctx = ctx.Str(l.context[i], l.context[i+1])
	}
	return ctx.Logger()
}

// buildMsgs takes in a variadic list of arguments of any type and returns two strings and, optionally, an error and
// a StructuredLogInfo object. The first string is colorized for console logging while the second is plain text for
// file/structured logging.
func buildMsgs(args ...any) (string, string, error, StructuredLogInfo) {
	// Guard clause
	if len(args) == 0 {
		return "", "", nil, nil
	}

	colorCtx := colors.Reset
	consoleOutput := make([]string, 0)
	fileOutput := make([]string, 0)
	var info StructuredLogInfo
	var err error

	for _, arg := range args {
		switch t := arg.(type) {
		case colors.ColorFunc:
			// Switch the current color context
			colorCtx = t
		case StructuredLogInfo:
			// Only one structured log info can be provided for each log message
			info = t
		case error:
			// Only one error can be provided for each log message
			err = t
		default:
			consoleOutput = append(consoleOutput, colorCtx(t))
			fileOutput = append(fileOutput, fmt.Sprintf("%v", t))
		}
	}

	return strings.Join(consoleOutput, ""), strings.Join(fileOutput, ""), err, info
}

// chainErrorAndInfo attaches the error, an optional stack trace, and any structured log info to the event.
func chainErrorAndInfo(event *zerolog.Event, err error, info StructuredLogInfo, withStack bool) {
	// Err and Stack are safe to call on a nil error or a disabled event
	event.Err(err)
	if withStack {
		event.Stack()
	}
	if info != nil {
		event.Any("info", info)
	}
}

// setupDefaultFormatting will update the console writer's formatting to the bindgen standard
func setupDefaultFormatting(writer zerolog.ConsoleWriter, level zerolog.Level) zerolog.ConsoleWriter {
	// Get rid of the timestamp for console output
	writer.FormatTimestamp = func(i any) string {
		return ""
	}

	// Plain writers must not receive ANSI codes from the level glyphs
	style := func(colorFunc colors.ColorFunc, s any) string {
		if writer.NoColor {
			return colors.Reset(s)
		}
		return colorFunc(s)
	}

	// We will define a custom format for each level
	writer.FormatLevel = func(i any) string {
		levelStr, _ := i.(string)
		parsed, err := zerolog.ParseLevel(levelStr)
		if err != nil {
			return levelStr
		}

		switch parsed {
		case zerolog.TraceLevel:
			return style(colors.CyanBold, zerolog.LevelTraceValue)
		case zerolog.DebugLevel:
			return style(colors.BlueBold, zerolog.LevelDebugValue)
		case zerolog.InfoLevel:
			return style(colors.GreenBold, colors.LEFT_ARROW)
		case zerolog.WarnLevel:
			return style(colors.YellowBold, zerolog.LevelWarnValue)
		case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
			return style(colors.RedBold, levelStr)
		default:
			return levelStr
		}
	}

	// Messages carry their own colors.ColorFunc styling, so they are printed as is
	writer.FormatMessage = func(i any) string {
		if i == nil {
			return ""
		}
		return fmt.Sprintf("%v", i)
	}
	writer.FormatFieldName = func(i any) string {
		return style(colors.Cyan, fmt.Sprintf("%s=", i))
	}
	writer.FormatErrFieldName = func(i any) string {
		return style(colors.Cyan, fmt.Sprintf("%s=", i))
	}
	writer.FormatErrFieldValue = func(i any) string {
		return style(colors.RedBold, fmt.Sprintf("%v", i))
	}

	// Above debug level, the module key is noise on the console
	if level > zerolog.DebugLevel {
		writer.FieldsExclude = []string{"module"}
	}

	return writer
}
