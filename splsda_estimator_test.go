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
import   "testing"

/* -------------------------------------------------------------------------- */

func TestEstimatorSparsity(test *testing.T) {
  config := Config{}
  data   := simulate_data(3, 20, 30, 42)

  estimator := NewSplsdaEstimator(config, 2, []int{5, 10})
  classifier, err := estimator.Estimate(config, data.X, data.Y, data.Classes); if err != nil {
    test.Fatal(err)
  }
  nonzero := classifier.Nonzero()
  if nonzero[0] > 5 {
    test.Errorf("component 1 has %d non-zero weights, expected at most 5", nonzero[0])
  }
  if nonzero[1] > 10 {
    test.Errorf("component 2 has %d non-zero weights, expected at most 10", nonzero[1])
  }
  if nonzero[0] == 0 || nonzero[1] == 0 {
    test.Error("components must have at least one non-zero weight")
  }
}

func TestEstimatorDeterminism(test *testing.T) {
  config := Config{}
  data   := simulate_data(3, 20, 30, 42)

  estimator := NewSplsdaEstimator(config, 2, []int{5, 10})
  classifier1, err := estimator.Estimate(config, data.X, data.Y, data.Classes); if err != nil {
    test.Fatal(err)
  }
  classifier2, err := estimator.Estimate(config, data.X, data.Y, data.Classes); if err != nil {
    test.Fatal(err)
  }
  for h := 0; h < 2; h++ {
    for j := 0; j < len(classifier1.WeightsX[h]); j++ {
      if classifier1.WeightsX[h][j] != classifier2.WeightsX[h][j] {
        test.Fatal("repeated estimation produced different weights")
      }
    }
  }
}

func TestEstimatorSeparation(test *testing.T) {
  config := Config{}
  data   := simulate_data(3, 20, 30, 42)

  estimator := NewSplsdaEstimator(config, 2, []int{5, 5})
  classifier, err := estimator.Estimate(config, data.X, data.Y, data.Classes); if err != nil {
    test.Fatal(err)
  }
  // the class signal sits on the first five features; with keepX=5 the
  // training error must be small for every distance rule
  for _, distance := range []string{"max", "centroid", "mahalanobis"} {
    predicted, _, err := classifier.Predict(config, data.X, distance); if err != nil {
      test.Fatal(err)
    }
    confusion := NewConfusion(len(data.Classes))
    for i := 0; i < data.Len(); i++ {
      confusion.Add(data.Y[i], predicted[i])
    }
    if e := confusion.OverallError(); e > 0.1 {
      test.Errorf("training error %f too large for distance `%s'", e, distance)
    }
  }
}

func TestEstimatorInvalidDistance(test *testing.T) {
  config := Config{}
  data   := simulate_data(2, 10, 10, 42)

  estimator := NewSplsdaEstimator(config, 1, []int{5})
  classifier, err := estimator.Estimate(config, data.X, data.Y, data.Classes); if err != nil {
    test.Fatal(err)
  }
  if _, _, err := classifier.Predict(config, data.X, "euclidean"); err == nil {
    test.Error("expected an error for an unknown distance metric")
  }
}
