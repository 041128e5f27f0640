/* Copyright (C) 2025 Tuomas Borman
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package main

/* -------------------------------------------------------------------------- */

import   "fmt"

/* -------------------------------------------------------------------------- */

// InputValidationError reports malformed arguments or data shapes. It is
// always raised before any model is fitted.
type InputValidationError struct {
  Reason string
}

func (obj InputValidationError) Error() string {
  return fmt.Sprintf("invalid input: %s", obj.Reason)
}

/* -------------------------------------------------------------------------- */

// InvalidGroupingError reports a group too small to be held out.
type InvalidGroupingError struct {
  Group string
  N     int
}

func (obj InvalidGroupingError) Error() string {
  return fmt.Sprintf("group `%s' has %d sample(s); every group must contain at least 2 samples", obj.Group, obj.N)
}

/* -------------------------------------------------------------------------- */

// DegenerateGroupError reports a group whose samples all carry the same
// class label; holding it out leaves no way to score that class
type DegenerateGroupError struct {
  Group string
  Class string
}

func (obj DegenerateGroupError) Error() string {
  return fmt.Sprintf("group `%s' contains only samples of class `%s' and cannot be scored", obj.Group, obj.Class)
}

/* -------------------------------------------------------------------------- */

// FoldEvaluationError reports a failed fit or prediction on a single
// held-out group; the whole component search is aborted since dropping
// the fold would bias the mean toward the remaining groups.
type FoldEvaluationError struct {
  Group string
  KeepX int
  Err   error
}

func (obj FoldEvaluationError) Error() string {
  return fmt.Sprintf("evaluation failed for held-out group `%s' (keepX=%d): %v", obj.Group, obj.KeepX, obj.Err)
}

func (obj FoldEvaluationError) Unwrap() error {
  return obj.Err
}
