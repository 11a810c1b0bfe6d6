// Copyright 2019 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package logging is scriptrt's wrapper around logrus: a single global
// entry, the four levels the --log-level flag exposes, and the
// field-attachment calls the pipeline stages use to tag their output
// (the Runner's per-run correlation ID, the Plugin Manager's load
// events).
package logging

import (
	"github.com/sirupsen/logrus"
)

// Fields aliases logrus.Fields
type Fields = logrus.Fields

// Entry aliases logrus.Entry
type Entry = logrus.Entry

var origLogger = logrus.New()
var globalLogger = logrus.NewEntry(origLogger)

// Debugf logs a message at level Debug on the global logger.
func Debugf(format string, args ...interface{}) {
	globalLogger.Debugf(format, args...)
}

// Infof logs a message at level Info on the global logger.
func Infof(format string, args ...interface{}) {
	globalLogger.Infof(format, args...)
}

// Warnf logs a message at level Warn on the global logger.
func Warnf(format string, args ...interface{}) {
	globalLogger.Warnf(format, args...)
}

// Errorf logs a message at level Error on the global logger.
func Errorf(format string, args ...interface{}) {
	globalLogger.Errorf(format, args...)
}

// WithField returns an Entry scoped to one field, e.g. the Runner's
// per-run correlation ID.
func WithField(key string, value interface{}) *Entry {
	return globalLogger.WithField(key, value)
}

// WithFields returns an Entry scoped to a set of fields.
func WithFields(fields Fields) *Entry {
	return globalLogger.WithFields(fields)
}
