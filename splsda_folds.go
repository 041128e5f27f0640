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

//import   "fmt"

/* -------------------------------------------------------------------------- */

// Fold holds one leave-one-group-out split; Test contains the row indices
// of the held-out group, Train all remaining rows
type Fold struct {
  Group int
  Test  []int
  Train []int
}

/* -------------------------------------------------------------------------- */

// logocvFolds derives one fold per distinct group. The same partition is
// reused across all sparsity candidates and components so that error
// estimates stay comparable
func logocvFolds(config Config, data DataSet) ([]Fold, error) {
  m := len(data.GroupNames)
  k := len(data.Classes)

  members := make([][]int, m)
  for i, g := range data.Groups {
    members[g] = append(members[g], i)
  }
  // class coverage per group
  coverage := make([][]int, m)
  for g := 0; g < m; g++ {
    coverage[g] = make([]int, k)
  }
  for i, g := range data.Groups {
    coverage[g][data.Y[i]]++
  }
  for g := 0; g < m; g++ {
    if len(members[g]) < 2 {
      return nil, InvalidGroupingError{Group: data.GroupNames[g], N: len(members[g])}
    }
    observed := 0
    last     := 0
    for j := 0; j < k; j++ {
      if coverage[g][j] > 0 {
        observed++
        last = j
      }
    }
    if observed < 2 {
      return nil, DegenerateGroupError{Group: data.GroupNames[g], Class: data.Classes[last]}
    }
    if len(members[g]) < 5 {
      PrintStderr(config, 0, "Warning: group `%s' has only %d samples; error estimates may be unstable\n", data.GroupNames[g], len(members[g]))
    }
    if observed < k {
      PrintStderr(config, 0, "Warning: group `%s' does not cover all %d classes\n", data.GroupNames[g], k)
    }
  }
  folds := make([]Fold, m)
  for g := 0; g < m; g++ {
    train := make([]int, 0, data.Len()-len(members[g]))
    for i := 0; i < data.Len(); i++ {
      if data.Groups[i] != g {
        train = append(train, i)
      }
    }
    folds[g] = Fold{Group: g, Test: members[g], Train: train}
  }
  return folds, nil
}
