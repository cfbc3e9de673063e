// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"time"
)

type handlerKeyTy string
type filterKeyTy string
type tagKeyTy string
type traceKeyTy string
type valuesKeyTy string
type clockKeyTy string

const (
	handlerKey handlerKeyTy = "log.handlerKey"
	filterKey  filterKeyTy  = "log.filterKey"
	tagKey     tagKeyTy     = "log.tagKey"
	traceKey   traceKeyTy   = "log.traceKey"
	valuesKey  valuesKeyTy  = "log.valuesKey"
	clockKey   clockKeyTy   = "log.clockKey"
)

// PutHandler returns a new context with the Handler assigned to w.
func PutHandler(ctx context.Context, w Handler) context.Context {
	return context.WithValue(ctx, handlerKey, w)
}

// GetHandler returns the Handler assigned to ctx.
func GetHandler(ctx context.Context) Handler {
	out, _ := ctx.Value(handlerKey).(Handler)
	return out
}

// Filter is the filter of log messages.
type Filter interface {
	// ShowSeverity returns true if the message of severity s should be shown.
	ShowSeverity(s Severity) bool
}

// SeverityFilter implements the Filter interface which filters out any messages
// below the severity value.
type SeverityFilter Severity

// ShowSeverity returns true if the message of severity s should be shown.
func (f SeverityFilter) ShowSeverity(s Severity) bool { return Severity(f) <= s }

// PutFilter returns a new context with the Filter assigned to w.
func PutFilter(ctx context.Context, w Filter) context.Context {
	return context.WithValue(ctx, filterKey, w)
}

// GetFilter returns the Filter assigned to ctx.
func GetFilter(ctx context.Context) Filter {
	out, _ := ctx.Value(filterKey).(Filter)
	return out
}

// PutTag returns a new context with the tag assigned to w.
func PutTag(ctx context.Context, w string) context.Context {
	return context.WithValue(ctx, tagKey, w)
}

// GetTag returns the Tag assigned to ctx.
func GetTag(ctx context.Context) string {
	out, _ := ctx.Value(tagKey).(string)
	return out
}

// trace is a single entry in a stack of Enter()s.
type trace struct {
	name   string
	parent *trace
}

// Enter returns a new context with the trace-stack pushed by name.
func Enter(ctx context.Context, name string) context.Context {
	parent, _ := ctx.Value(traceKey).(*trace)
	return context.WithValue(ctx, traceKey, &trace{name: name, parent: parent})
}

// GetTrace returns the trace-stack, outermost entry first.
func GetTrace(ctx context.Context) []string {
	var out []string
	for t, _ := ctx.Value(traceKey).(*trace); t != nil; t = t.parent {
		out = append([]string{t.name}, out...)
	}
	return out
}

// V is a map of key-value pairs attached to every message logged from a
// context they are bound to.
type V map[string]interface{}

type values struct {
	v      V
	parent *values
}

// Bind returns a new context with V attached. Values bound later shadow
// earlier values of the same name.
func (v V) Bind(ctx context.Context) context.Context {
	return context.WithValue(ctx, valuesKey, &values{v: v, parent: getValues(ctx)})
}

func getValues(ctx context.Context) *values {
	out, _ := ctx.Value(valuesKey).(*values)
	return out
}

// Clock is the interface implemented by types that can provide the current
// time for messages.
type Clock interface {
	Time() time.Time
}

type fixedClock time.Time

func (c fixedClock) Time() time.Time { return time.Time(c) }

// FixedClock returns a Clock that always returns t.
func FixedClock(t time.Time) Clock { return fixedClock(t) }

// PutClock returns a new context with the Clock assigned to c.
func PutClock(ctx context.Context, c Clock) context.Context {
	return context.WithValue(ctx, clockKey, c)
}

// GetClock returns the Clock assigned to ctx.
func GetClock(ctx context.Context) Clock {
	out, _ := ctx.Value(clockKey).(Clock)
	return out
}
