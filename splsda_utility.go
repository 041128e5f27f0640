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
import   "os"
import   "sort"

/* -------------------------------------------------------------------------- */

func PrintStderr(config Config, level int, format string, args ...interface{}) {
  if config.Verbose >= level {
    fmt.Fprintf(os.Stderr, format, args...)
  }
}

/* -------------------------------------------------------------------------- */

// sort ascending and remove duplicates, so that an argmin scan over the
// grid resolves ties to the smallest value
func sortGrid(grid []int) []int {
  r := make([]int, len(grid))
  copy(r, grid)
  sort.Ints(r)
  k := 0
  for i := 0; i < len(r); i++ {
    if i == 0 || r[i] != r[i-1] {
      r[k] = r[i]
      k++
    }
  }
  return r[0:k]
}

/* -------------------------------------------------------------------------- */

func cloneInts(values []int) []int {
  r := make([]int, len(values))
  copy(r, values)
  return r
}

func cloneFloats(values []float64) []float64 {
  r := make([]float64, len(values))
  copy(r, values)
  return r
}
