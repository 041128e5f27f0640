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

import   "sort"

import   "gonum.org/v1/gonum/integrate"
import   "gonum.org/v1/gonum/stat"

/* -------------------------------------------------------------------------- */

// Confusion counts true class (rows) against predicted class (columns)
type Confusion struct {
  Counts [][]int
}

func NewConfusion(k int) *Confusion {
  counts := make([][]int, k)
  for i := 0; i < k; i++ {
    counts[i] = make([]int, k)
  }
  return &Confusion{Counts: counts}
}

func (obj *Confusion) Add(observed, predicted int) {
  obj.Counts[observed][predicted]++
}

func (obj *Confusion) AddConfusion(other *Confusion) {
  for i := 0; i < len(obj.Counts); i++ {
    for j := 0; j < len(obj.Counts); j++ {
      obj.Counts[i][j] += other.Counts[i][j]
    }
  }
}

func (obj *Confusion) N() int {
  n := 0
  for i := 0; i < len(obj.Counts); i++ {
    for j := 0; j < len(obj.Counts); j++ {
      n += obj.Counts[i][j]
    }
  }
  return n
}

func (obj *Confusion) Support(class int) int {
  n := 0
  for j := 0; j < len(obj.Counts); j++ {
    n += obj.Counts[class][j]
  }
  return n
}

/* -------------------------------------------------------------------------- */

// ClassError returns the misclassification rate of a single class, or
// zero if the class has no samples
func (obj *Confusion) ClassError(class int) float64 {
  n := obj.Support(class)
  if n == 0 {
    return 0.0
  }
  return float64(n-obj.Counts[class][class])/float64(n)
}

// OverallError returns the fraction of misclassified samples
func (obj *Confusion) OverallError() float64 {
  n := obj.N()
  if n == 0 {
    return 0.0
  }
  e := 0
  for i := 0; i < len(obj.Counts); i++ {
    e += obj.Support(i)-obj.Counts[i][i]
  }
  return float64(e)/float64(n)
}

// BalancedError averages the per-class error rates over the classes that
// are actually observed, which removes the majority-class bias of the
// overall error
func (obj *Confusion) BalancedError() float64 {
  e := 0.0
  k := 0
  for i := 0; i < len(obj.Counts); i++ {
    if obj.Support(i) > 0 {
      e += obj.ClassError(i)
      k++
    }
  }
  if k == 0 {
    return 0.0
  }
  return e/float64(k)
}

func (obj *Confusion) Error(measure string) float64 {
  switch measure {
  case "BER":
    return obj.BalancedError()
  default:
    return obj.OverallError()
  }
}

/* -------------------------------------------------------------------------- */

// computeAuc computes the area under the ROC curve for one class against
// all others
func computeAuc(scores []float64, positive []bool) float64 {
  type pair struct {
    score float64
    label bool
  }
  pairs := make([]pair, len(scores))
  for i := 0; i < len(scores); i++ {
    pairs[i] = pair{scores[i], positive[i]}
  }
  sort.Slice(pairs, func(i, j int) bool { return pairs[i].score < pairs[j].score })
  y := make([]float64, len(pairs))
  c := make([]bool,    len(pairs))
  for i, v := range pairs {
    y[i] = v.score
    c[i] = v.label
  }
  tpr, fpr, _ := stat.ROC(nil, y, c, nil)
  return integrate.Trapezoidal(fpr, tpr)
}

// class_auc computes a one-vs-rest AUC for every class from per-sample
// prediction scores
func class_auc(scores [][]float64, labels []int, k int) []float64 {
  r := make([]float64, k)
  for class := 0; class < k; class++ {
    s := make([]float64, len(labels))
    c := make([]bool,    len(labels))
    for i := 0; i < len(labels); i++ {
      s[i] = scores[i][class]
      c[i] = labels[i] == class
    }
    r[class] = computeAuc(s, c)
  }
  return r
}
