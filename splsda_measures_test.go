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
import   "math"
import   "testing"

/* -------------------------------------------------------------------------- */

// with an imbalanced data set and a model that fails mostly on the
// minority class, the overall error and the balanced error must diverge
func TestMeasuresImbalance(test *testing.T) {
  confusion := NewConfusion(2)
  // class 0: 90 samples, 10 misclassified
  confusion.Counts[0][0] = 80
  confusion.Counts[0][1] = 10
  // class 1: 10 samples, 8 misclassified
  confusion.Counts[1][0] = 8
  confusion.Counts[1][1] = 2

  overall := confusion.OverallError()
  ber     := confusion.BalancedError()
  if math.Abs(overall-0.18) > 1e-12 {
    test.Errorf("expected overall error 0.18, got %f", overall)
  }
  if math.Abs(ber-(10.0/90.0+8.0/10.0)/2.0) > 1e-12 {
    test.Errorf("unexpected balanced error %f", ber)
  }
  if math.Abs(confusion.ClassError(1)-0.8) > 1e-12 {
    test.Errorf("unexpected class error %f", confusion.ClassError(1))
  }
}

func TestMeasuresEmptyClass(test *testing.T) {
  confusion := NewConfusion(3)
  confusion.Counts[0][0] = 5
  confusion.Counts[1][0] = 1
  confusion.Counts[1][1] = 4
  // class 2 has no samples; it must not contribute to the balanced error
  ber := confusion.BalancedError()
  if math.Abs(ber-(0.0+0.2)/2.0) > 1e-12 {
    test.Errorf("unexpected balanced error %f", ber)
  }
}

/* -------------------------------------------------------------------------- */

func TestAuc1(test *testing.T) {
  // perfectly separated scores
  scores   := []float64{0.9, 0.8, 0.7, 0.2, 0.1}
  positive := []bool   {true, true, true, false, false}
  if auc := computeAuc(scores, positive); math.Abs(auc-1.0) > 1e-12 {
    test.Errorf("expected AUC 1.0, got %f", auc)
  }
  // inverted scores
  positive  = []bool   {false, false, false, true, true}
  if auc := computeAuc(scores, positive); math.Abs(auc-0.0) > 1e-12 {
    test.Errorf("expected AUC 0.0, got %f", auc)
  }
}
