// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package diag carries the zoo's ambient logging: a start/elapsed timing
// helper in the style of the teacher's pkg/util.PerfStats, built on
// logrus rather than a bare fmt.Printf so verbosity is controlled the same
// way as everywhere else in the module.
package diag

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// Stopwatch times a single named phase of a run (parsing, seeding,
// positive closure, negative closure, snapshot I/O, ...). Start logs the
// phase's beginning at Info; Done logs its elapsed time and an optional
// round count at Debug, mirroring rmupdater.py's "Elapsed: Xs" lines.
type Stopwatch struct {
	phase string
	start time.Time
}

// Start begins timing phase and logs its start at Info level.
func Start(phase string) *Stopwatch {
	log.Infof("%s: starting", phase)

	return &Stopwatch{phase: phase, start: time.Now()}
}

// Done logs the elapsed time for the phase at Debug level. rounds is the
// number of fixpoint iterations the phase took, or 0 if not applicable.
func (s *Stopwatch) Done(rounds int) {
	elapsed := time.Since(s.start)

	if rounds > 0 {
		log.Debugf("%s: done in %s (%d rounds)", s.phase, elapsed, rounds)
	} else {
		log.Debugf("%s: done in %s", s.phase, elapsed)
	}
}
