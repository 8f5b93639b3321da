/*
Copyright 2015 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package jsonpath

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"k8s.io/klog/v2"
)

// JSONPath is a chainable, reusable handle on a compiled expression,
// generalizing the teacher's own *JSONPath type (originally a template
// engine handle) to the query engine's three evaluation modes.
type JSONPath struct {
	name string
	node Node

	opts        *Options
	floatFormat string

	enableDebugMsgs bool
}

// New creates an unparsed JSONPath. Parse must be called before Find,
// Update, Include, Exclude or Execute.
func New(name string) *JSONPath {
	return &JSONPath{
		name:        name,
		opts:        &Options{},
		floatFormat: DefaultFloatFormat,
	}
}

// NewJSONPath creates a JSONPath with the given name and parses expr.
func NewJSONPath(name string, expr string) (*JSONPath, error) {
	j := New(name)
	if err := j.Parse(expr); err != nil {
		return nil, err
	}
	return j, nil
}

// Parse compiles expr, replacing any expression previously parsed into
// this handle.
func (j *JSONPath) Parse(expr string) error {
	node, err := Parse(expr)
	if err != nil {
		klog.V(2).Infof("%s: parse error: %v", j.name, err)
		return err
	}
	j.node = node
	return nil
}

// SetAutoIDField overrides the process-wide auto_id_field for Find and
// Execute run through this handle. Update, Include and Exclude run
// through this handle do not see it; they use the process-wide setting.
// The receiver is returned for chaining, matching the teacher's
// AllowMissingKeys/EnableJSONOutput style.
func (j *JSONPath) SetAutoIDField(name string) *JSONPath {
	j.opts.AutoIDField = name
	return j
}

// SetFloatFormat defines the printf-style format used for float scalars
// in Execute's output; default "%g".
func (j *JSONPath) SetFloatFormat(format string) *JSONPath {
	if !ValidFloatFormat(format) {
		panic("illegal float format - use printf style")
	}
	j.floatFormat = format
	return j
}

// EnableDebugMsgs turns on klog.V(4) tracing of each evaluation run
// through this handle, including a go-spew dump of the input document.
func (j *JSONPath) EnableDebugMsgs() *JSONPath {
	j.enableDebugMsgs = true
	return j
}

func (j *JSONPath) requireParsed() error {
	if j.node == nil {
		return fmt.Errorf("%s is an incomplete JSONPath - needs to be parsed first", j.name)
	}
	return nil
}

func (j *JSONPath) trace(op string, data any) {
	if !j.enableDebugMsgs {
		return
	}
	klog.V(4).Infof("%s: %s %s against:\n%s", j.name, op, j.node, spew.Sdump(data))
}

// Find enumerates every Datum the expression matches against data.
func (j *JSONPath) Find(data any) ([]Datum, error) {
	if err := j.requireParsed(); err != nil {
		return nil, err
	}
	j.trace("find", data)
	return FindWithOptions(j.node, data, j.opts)
}

// Update returns a copy of data with every matched location replaced
// by value.
func (j *JSONPath) Update(data any, value any) (any, error) {
	if err := j.requireParsed(); err != nil {
		return nil, err
	}
	j.trace("update", data)
	return Update(j.node, data, value)
}

// Include returns the smallest sub-document of data retaining exactly
// the matched locations.
func (j *JSONPath) Include(data any) (any, error) {
	if err := j.requireParsed(); err != nil {
		return nil, err
	}
	j.trace("include", data)
	return Include(j.node, data)
}

// Exclude returns data with every matched location removed.
func (j *JSONPath) Exclude(data any) (any, error) {
	if err := j.requireParsed(); err != nil {
		return nil, err
	}
	j.trace("exclude", data)
	return Exclude(j.node, data)
}

// Execute writes each Find match's value to wr, one per line, in the
// form spec.md §6 specifies for the CLI: scalars as their scalar text,
// composite values as compact JSON.
func (j *JSONPath) Execute(wr io.Writer, data any) error {
	matches, err := j.Find(data)
	if err != nil {
		return err
	}
	for _, d := range matches {
		s, err := FormatValue(d.Value, j.floatFormat)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(wr, s); err != nil {
			return err
		}
	}
	return nil
}

// String returns the canonical textual form of the parsed expression,
// or "" if Parse has not been called.
func (j *JSONPath) String() string {
	if j.node == nil {
		return ""
	}
	return j.node.String()
}
