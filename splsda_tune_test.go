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

func tuneTestConfig() Config {
  config := Config{}
  config.NComp    = 2
  config.KeepX    = []int{5, 10, 20}
  config.Measure  = "BER"
  config.Distance = "max"
  config.Alpha    = 0.01
  return config
}

/* -------------------------------------------------------------------------- */

func TestSelectBest1(test *testing.T) {
  records := []ErrorRecord{
    {KeepX:  5, MeanError: 0.3},
    {KeepX: 10, MeanError: 0.2},
    {KeepX: 20, MeanError: 0.2},
  }
  if i := select_best(records); records[i].KeepX != 10 {
    test.Errorf("expected keepX=10, got keepX=%d", records[i].KeepX)
  }
  // on a full tie the sparsest candidate wins
  for i, _ := range records {
    records[i].MeanError = 0.25
  }
  if i := select_best(records); records[i].KeepX != 5 {
    test.Errorf("expected keepX=5, got keepX=%d", records[i].KeepX)
  }
}

func TestSortGrid(test *testing.T) {
  grid := sortGrid([]int{20, 5, 10, 5, 20})
  if len(grid) != 3 || grid[0] != 5 || grid[1] != 10 || grid[2] != 20 {
    test.Errorf("unexpected grid %v", grid)
  }
}

/* -------------------------------------------------------------------------- */

func TestTuneValidation(test *testing.T) {
  data := simulate_data(3, 20, 30, 42)

  config := tuneTestConfig()
  config.KeepX = []int{10}
  if _, err := tuneSplsda(config, data); err == nil {
    test.Error("expected an error for a single-valued grid")
  } else if _, ok := err.(InputValidationError); !ok {
    test.Errorf("expected InputValidationError, got %T", err)
  }

  // duplicates collapse before the search, so this grid is effectively
  // single-valued as well
  config = tuneTestConfig()
  config.KeepX = []int{10, 10}
  if _, err := tuneSplsda(config, data); err == nil {
    test.Error("expected an error for a duplicate-only grid")
  } else if _, ok := err.(InputValidationError); !ok {
    test.Errorf("expected InputValidationError, got %T", err)
  }

  config = tuneTestConfig()
  config.KeepX = []int{10, 50}
  if _, err := tuneSplsda(config, data); err == nil {
    test.Error("expected an error for a grid value exceeding the feature count")
  }

  config = tuneTestConfig()
  config.Alpha = 1.5
  if _, err := tuneSplsda(config, data); err == nil {
    test.Error("expected an error for an invalid significance threshold")
  }

  config = tuneTestConfig()
  config.KeepXPrefix = []int{5, 10}
  if _, err := tuneSplsda(config, data); err == nil {
    test.Error("expected an error when all components are already fixed")
  }

  config = tuneTestConfig()
  config.Measure = "accuracy"
  if _, err := tuneSplsda(config, data); err == nil {
    test.Error("expected an error for an invalid measure")
  }
}

/* -------------------------------------------------------------------------- */

func TestTuneEndToEnd(test *testing.T) {
  data   := simulate_data(3, 20, 30, 42)
  config := tuneTestConfig()

  result, err := tuneSplsda(config, data); if err != nil {
    test.Fatal(err)
  }
  if len(result.KeepX) != 2 {
    test.Fatalf("expected 2 chosen sparsity values, got %d", len(result.KeepX))
  }
  for _, v := range result.KeepX {
    if v != 5 && v != 10 && v != 20 {
      test.Errorf("chosen sparsity value %d does not lie in the grid", v)
    }
  }
  if len(result.ErrorMatrix) != 2 {
    test.Fatalf("expected 2 rows in the error matrix, got %d", len(result.ErrorMatrix))
  }
  for _, row := range result.ErrorMatrix {
    if len(row) != 3 {
      test.Errorf("expected 3 groups per error matrix row, got %d", len(row))
    }
  }
  for _, record := range result.Error {
    if len(record.ClassError) != 2 {
      test.Errorf("expected 2 per-class errors, got %d", len(record.ClassError))
    }
    if len(record.GroupError) != 3 {
      test.Errorf("expected 3 per-group errors, got %d", len(record.GroupError))
    }
    if record.MeanError < 0.0 || record.MeanError > 1.0 {
      test.Errorf("mean error %f out of range", record.MeanError)
    }
  }
  // 3 groups and 2 searched components admit a recommendation
  if !result.NCompOpt.Available {
    test.Fatal("expected a component count recommendation")
  }
  if result.NCompOpt.NComp != 1 && result.NCompOpt.NComp != 2 {
    test.Errorf("unexpected component count recommendation %d", result.NCompOpt.NComp)
  }
  if result.Auc != nil || result.Predictions != nil {
    test.Error("optional outputs must be absent unless requested")
  }
}

func TestTuneIdempotence(test *testing.T) {
  data   := simulate_data(3, 20, 30, 42)
  config := tuneTestConfig()

  result1, err := tuneSplsda(config, data); if err != nil {
    test.Fatal(err)
  }
  result2, err := tuneSplsda(config, data); if err != nil {
    test.Fatal(err)
  }
  for h := 0; h < len(result1.KeepX); h++ {
    if result1.KeepX[h] != result2.KeepX[h] {
      test.Fatal("repeated runs chose different sparsity values")
    }
  }
  for h := 0; h < len(result1.ErrorMatrix); h++ {
    for g := 0; g < len(result1.ErrorMatrix[h]); g++ {
      if result1.ErrorMatrix[h][g] != result2.ErrorMatrix[h][g] {
        test.Fatal("repeated runs produced different error matrices")
      }
    }
  }
}

// the sparsity value of the first component must be frozen before the
// second component is searched; with a deterministic fitter, tuning one
// component and then tuning two must agree on the first value
func TestTunePrefixInvariant(test *testing.T) {
  data   := simulate_data(3, 20, 30, 42)
  config := tuneTestConfig()

  config.NComp = 1
  result1, err := tuneSplsda(config, data); if err != nil {
    test.Fatal(err)
  }
  config.NComp = 2
  result2, err := tuneSplsda(config, data); if err != nil {
    test.Fatal(err)
  }
  if result1.KeepX[0] != result2.KeepX[0] {
    test.Error("first component's sparsity value changed when tuning a second component")
  }
  // an explicitly fixed prefix must be carried into the result unchanged
  config.KeepXPrefix = []int{7}
  result3, err := tuneSplsda(config, data); if err != nil {
    test.Fatal(err)
  }
  if result3.KeepX[0] != 7 {
    test.Error("fixed sparsity prefix was not preserved")
  }
  if len(result3.Error) != 1 {
    test.Errorf("expected 1 searched component, got %d", len(result3.Error))
  }
}

/* -------------------------------------------------------------------------- */

func TestTuneOptionalOutputs(test *testing.T) {
  data   := simulate_data(3, 20, 30, 42)
  config := tuneTestConfig()
  config.Auc       = true
  config.SaveTrace = true

  result, err := tuneSplsda(config, data); if err != nil {
    test.Fatal(err)
  }
  if len(result.Auc) != 2 {
    test.Fatalf("expected AUC values for 2 components, got %d", len(result.Auc))
  }
  for _, auc := range result.Auc {
    if len(auc) != 2 {
      test.Errorf("expected 2 per-class AUC values, got %d", len(auc))
    }
    for _, v := range auc {
      if v < 0.0 || v > 1.0 {
        test.Errorf("AUC %f out of range", v)
      }
    }
  }
  if len(result.Predictions) != 2 {
    test.Fatalf("expected predictions for 2 components, got %d", len(result.Predictions))
  }
  for _, predicted := range result.Predictions {
    if len(predicted) != data.Len() {
      test.Errorf("expected %d predictions, got %d", data.Len(), len(predicted))
    }
  }
}

// a constant feature matrix makes the cross-covariance vanish, so the
// very first fold fit fails; the search must abort with a
// FoldEvaluationError and still hand back the components that completed
// before the failure
func TestTuneFoldFailure(test *testing.T) {
  data   := simulate_data(3, 20, 30, 42)
  config := tuneTestConfig()
  data.X.Zero()

  result, err := tuneSplsda(config, data)
  if err == nil {
    test.Fatal("expected an error for a constant feature matrix")
  }
  if r, ok := err.(FoldEvaluationError); !ok {
    test.Fatalf("expected FoldEvaluationError, got %T", err)
  } else {
    if r.Err == nil {
      test.Error("expected a wrapped cause")
    }
    if r.Group == "" {
      test.Error("expected the offending group to be reported")
    }
  }
  if result == nil {
    test.Fatal("expected a partial result alongside the error")
  }
  if len(result.Error) != 0 {
    test.Errorf("expected no completed components, got %d", len(result.Error))
  }
  if result.NCompOpt.Available {
    test.Error("partial result must not carry a component count recommendation")
  }
}

func TestTuneStoppingRuleUnavailable(test *testing.T) {
  // two groups: the search runs but no recommendation is possible
  data   := simulate_data(2, 20, 30, 42)
  config := tuneTestConfig()

  result, err := tuneSplsda(config, data); if err != nil {
    test.Fatal(err)
  }
  if result.NCompOpt.Available {
    test.Error("expected no component count recommendation with 2 groups")
  }
  if len(result.ErrorMatrix) != 2 {
    test.Errorf("expected 2 rows in the error matrix, got %d", len(result.ErrorMatrix))
  }
}
