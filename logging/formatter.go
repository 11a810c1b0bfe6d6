// Copyright 2021 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level is scriptrt's own small severity enum, decoupled from
// logrus.Level so callers configuring --log-level never need to import
// logrus directly.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

// GetLevel parses a --log-level flag value. An empty string defaults
// to Info.
func GetLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return Debug, nil
	case "", "info":
		return Info, nil
	case "warn":
		return Warn, nil
	case "error":
		return Error, nil
	default:
		return Debug, fmt.Errorf("invalid log level: %v", level)
	}
}

func (l Level) logrusLevel() logrus.Level {
	switch l {
	case Debug:
		return logrus.DebugLevel
	case Warn:
		return logrus.WarnLevel
	case Error:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// GetFormatter returns the logrus.Formatter for a --log-format flag
// value: "text" (the default, human-oriented), "json", or
// "json-pretty".
func GetFormatter(format, timestampFormat string) logrus.Formatter {
	switch format {
	case "text", "":
		return &lineFormatter{}
	case "json-pretty":
		return &logrus.JSONFormatter{PrettyPrint: true, TimestampFormat: timestampFormat}
	default:
		return &logrus.JSONFormatter{TimestampFormat: timestampFormat}
	}
}

// Configure applies level and format to the global logger, called once
// at process startup from cmd.
func Configure(level Level, format, timestampFormat string) {
	origLogger.SetLevel(level.logrusLevel())
	origLogger.SetFormatter(GetFormatter(format, timestampFormat))
}

// lineFormatter renders one bracketed severity line per entry, followed
// by its attached fields indented underneath in a deterministic
// (sorted) order — easier to scan in a terminal than logrus's default
// key="value" run-on line, and easier to diff across runs than one
// keyed on map iteration order.
type lineFormatter struct{}

const (
	fieldIndent     = 2
	multiLineIndent = 6
)

func (f *lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s] %s\n", strings.ToUpper(e.Level.String()), e.Message)

	for _, key := range sortedFieldNames(e.Data) {
		rendered, err := renderFieldValue(e.Data[key])
		if err != nil {
			return nil, err
		}
		writeField(&b, key, rendered)
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func sortedFieldNames(data logrus.Fields) []string {
	names := make([]string, 0, len(data))
	for k := range data {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// renderFieldValue turns one field's value into display text: a
// multi-line string is re-indented as-is, a string that parses as JSON
// is pretty-printed, and anything else is JSON-marshaled.
func renderFieldValue(v interface{}) (string, error) {
	if s, ok := v.(string); ok {
		if strings.Contains(s, "\n") {
			return indentContinuationLines(s), nil
		}
		if looksLikeJSON(s) {
			var buf bytes.Buffer
			if err := json.Indent(&buf, []byte(s), strings.Repeat(" ", multiLineIndent), "  "); err != nil {
				return "", err
			}
			return buf.String(), nil
		}
	}
	out, err := json.MarshalIndent(v, strings.Repeat(" ", multiLineIndent), "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func indentContinuationLines(s string) string {
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = strings.Repeat(" ", multiLineIndent) + lines[i]
	}
	return strings.Join(lines, "\n")
}

func looksLikeJSON(s string) bool {
	var discard interface{}
	return json.Unmarshal([]byte(s), &discard) == nil
}

func writeField(b *bytes.Buffer, key, rendered string) {
	b.WriteString(strings.Repeat(" ", fieldIndent))
	b.WriteString(key)
	if strings.Contains(rendered, "\n") {
		b.WriteString(" = |\n")
		b.WriteString(strings.Repeat(" ", multiLineIndent))
	} else {
		b.WriteString(" = ")
	}
	b.WriteString(rendered)
	b.WriteByte('\n')
}
