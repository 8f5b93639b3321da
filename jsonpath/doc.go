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

// Package jsonpath implements an extended JSONPath query language over
// values produced by encoding/json: maps, slices and scalars (the
// "dynamic JSON" representation, not Go structs). An expression is
// compiled once with Parse into an AST and can then be evaluated
// repeatedly in three modes:
//
//   - Find enumerates every (value, path) match of the expression against
//     a document.
//   - Update replaces the value at every match with a caller-supplied
//     replacement value, returning a modified copy of the document.
//   - Include and Exclude restrict a document to, or remove from it, the
//     locations the expression matches.
//
// The grammar is the jsonpath-rw dialect: '$' denotes the document root,
// '@' the current node inside a filter, '..' recursive descent, '*'
// wildcards, '[i]'/'[i:j:k]' index and slice selectors, '[?expr]' bracket
// filters and "where" subject-narrowing. The precedence grammar is
// summarized in the comment on the parser type in parser.go.
package jsonpath // import "github.com/go-jsonpath-rw/jsonpath"

// design notes
// * evaluation is total: a path that does not match anything yields zero
//   results rather than an error; SyntaxError is reserved for malformed
//   expressions and ExecutionError for operations misused at runtime
//   (e.g. an unknown back-tick named operator).
// * Update/Include/Exclude are not implemented as three independent
//   recursive splicers. They are one generic engine layered on top of
//   Find's own traversal (see mutate.go) so that the match-then-splice
//   step only has to be gotten right once.
