/* Copyright 2018-2026 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package certres resolves message-sequence specifications against
// component architectures.
//
// The architecture (package arch) is a graph of modules, controllers,
// state machines, operations and platforms joined by connections.  A
// specification (package spec) says, for a target in that
// architecture, which messages its actors exchange.  Package core
// works out which connections each message denotes, and package wf
// turns the results into well-formedness diagnostics, optionally
// extended by scripted checks (package interpreters).
//
// Package model reads both halves from a YAML document, package
// report summarises a run, package storage keeps reports, and package
// tools renders graphs, sequence diagrams and HTML.  The command
// cmd/certtool puts all of that on the command line.
package certres
