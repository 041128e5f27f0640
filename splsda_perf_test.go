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

func TestPerf1(test *testing.T) {
  data := simulate_data(3, 20, 30, 42)

  config := Config{}
  config.NComp     = 2
  config.Distances = []string{"max", "centroid", "mahalanobis"}

  result, err := perfSplsda(config, data); if err != nil {
    test.Fatal(err)
  }
  // 3 distances x 2 measures
  if len(result.Records) != 6 {
    test.Fatalf("expected 6 records, got %d", len(result.Records))
  }
  for _, record := range result.Records {
    if len(record.Mean) != 2 || len(record.Sd) != 2 {
      test.Errorf("expected 2 components per record, got %d", len(record.Mean))
    }
    for h := 0; h < len(record.Mean); h++ {
      if record.Mean[h] < 0.0 || record.Mean[h] > 1.0 {
        test.Errorf("mean error %f out of range", record.Mean[h])
      }
    }
  }
  // without a sparsity constraint all features are retained
  if len(result.KeepX) != 2 || result.KeepX[0] != 30 || result.KeepX[1] != 30 {
    test.Errorf("unexpected keepX %v", result.KeepX)
  }
}

func TestPerfKeepXMismatch(test *testing.T) {
  data := simulate_data(3, 20, 30, 42)

  config := Config{}
  config.NComp       = 2
  config.KeepXPrefix = []int{5}
  config.Distances   = []string{"max"}

  if _, err := perfSplsda(config, data); err == nil {
    test.Error("expected an error for a sparsity vector of the wrong length")
  }
}
