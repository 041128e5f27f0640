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

import   "math"

import   "gonum.org/v1/gonum/stat"
import   "gonum.org/v1/gonum/stat/distuv"

/* -------------------------------------------------------------------------- */

// OptimalNComp is the recommended number of components; Available is
// false when too few groups or components were searched to run the
// significance test
type OptimalNComp struct {
  NComp     int
  Available bool
}

/* -------------------------------------------------------------------------- */

// paired_ttest_greater returns the p-value of a one-sided paired t-test
// with alternative mean(x) > mean(y)
func paired_ttest_greater(x, y []float64) float64 {
  n := len(x)
  d := make([]float64, n)
  for i := 0; i < n; i++ {
    d[i] = x[i]-y[i]
  }
  mean := stat.Mean  (d, nil)
  sd   := stat.StdDev(d, nil)
  if sd == 0.0 {
    // identical error profiles carry no evidence of improvement
    if mean > 0.0 {
      return 0.0
    }
    return 1.0
  }
  t := mean/(sd/math.Sqrt(float64(n)))
  studentsT := distuv.StudentsT{Mu: 0.0, Sigma: 1.0, Nu: float64(n-1)}
  return 1.0 - studentsT.CDF(t)
}

/* -------------------------------------------------------------------------- */

// selectNcomp recommends the smallest sufficient number of components
// from the component x group error matrix. All adjacent component pairs
// are tested and the recommendation is one past the last pair with a
// significant error reduction; testing only until the first
// non-significant pair would under-count components when the error is
// non-monotone.
func selectNcomp(errorMatrix [][]float64, alpha float64) OptimalNComp {
  ncomp := len(errorMatrix)
  if ncomp < 2 {
    return OptimalNComp{}
  }
  ngroups := len(errorMatrix[0])
  if ngroups <= 2 {
    return OptimalNComp{}
  }
  r := 1
  for h := 0; h < ncomp-1; h++ {
    if p := paired_ttest_greater(errorMatrix[h], errorMatrix[h+1]); p < alpha {
      r = h+2
    }
  }
  return OptimalNComp{NComp: r, Available: true}
}
