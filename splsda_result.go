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
import   "bufio"
import   "os"

/* -------------------------------------------------------------------------- */

// TuneResult packages the outcome of the sequential hyper-parameter
// search; pure data, no computation happens here. Auc and Predictions
// are nil unless requested. Error and ErrorMatrix are indexed by searched
// component, KeepX covers all components including the fixed prefix
type TuneResult struct {
  Classes     []string
  Groups      []string
  Measure       string
  Distance      string
  KeepX       []int
  Error       []ErrorRecord
  ErrorMatrix [][]float64
  NCompOpt      OptimalNComp
  Auc         [][]float64
  Predictions [][]int
}

func assemble_tune_result(config Config, data DataSet, keepX []int, records []ErrorRecord, errorMatrix [][]float64, aucs [][]float64, predictions [][]int, opt OptimalNComp) *TuneResult {
  r := TuneResult{}
  r.Classes     = data.Classes
  r.Groups      = data.GroupNames
  r.Measure     = config.Measure
  r.Distance    = config.Distance
  r.KeepX       = cloneInts(keepX)
  r.Error       = records
  r.ErrorMatrix = errorMatrix
  r.NCompOpt    = opt
  r.Auc         = aucs
  r.Predictions = predictions
  return &r
}

/* -------------------------------------------------------------------------- */

func saveTuneResult(config Config, filename string, result *TuneResult) {
  PrintStderr(config, 1, "Exporting result to `%s'... ", filename)
  f, err := os.Create(filename)
  if err != nil {
    PrintStderr(config, 1, "failed\n")
    panic(err)
  }
  defer f.Close()

  w := bufio.NewWriter(f)
  defer w.Flush()

  if result.NCompOpt.Available {
    fmt.Fprintf(w, "# measure: %s, distance: %s, optimal components: %d\n", result.Measure, result.Distance, result.NCompOpt.NComp)
  } else {
    fmt.Fprintf(w, "# measure: %s, distance: %s, optimal components: NA\n", result.Measure, result.Distance)
  }
  fmt.Fprintf(w, "%9s\t%6s\t%15s\t%15s", "component", "keepX", "mean", "sd")
  for _, class := range result.Classes {
    fmt.Fprintf(w, "\t%15s", fmt.Sprintf("error.%s", class))
  }
  for _, group := range result.Groups {
    fmt.Fprintf(w, "\t%15s", fmt.Sprintf("error.%s", group))
  }
  if result.Auc != nil {
    for _, class := range result.Classes {
      fmt.Fprintf(w, "\t%15s", fmt.Sprintf("auc.%s", class))
    }
  }
  fmt.Fprintf(w, "\n")

  nprev := len(result.KeepX)-len(result.Error)
  for i, record := range result.Error {
    fmt.Fprintf(w, "%9d\t%6d\t%15e\t%15e", nprev+i+1, record.KeepX, record.MeanError, record.SdError)
    for _, v := range record.ClassError {
      fmt.Fprintf(w, "\t%15e", v)
    }
    for _, v := range record.GroupError {
      fmt.Fprintf(w, "\t%15e", v)
    }
    if result.Auc != nil {
      for _, v := range result.Auc[i] {
        fmt.Fprintf(w, "\t%15e", v)
      }
    }
    fmt.Fprintf(w, "\n")
  }
  PrintStderr(config, 1, "done\n")
}

/* -------------------------------------------------------------------------- */

// saveTuneTrace exports the cross-validated class prediction of every
// sample under the winning candidate of each searched component
func saveTuneTrace(config Config, filename string, data DataSet, result *TuneResult) {
  if result.Predictions == nil {
    return
  }
  PrintStderr(config, 1, "Exporting predictions to `%s'... ", filename)
  f, err := os.Create(filename)
  if err != nil {
    PrintStderr(config, 1, "failed\n")
    panic(err)
  }
  defer f.Close()

  w := bufio.NewWriter(f)
  defer w.Flush()

  nprev := len(result.KeepX)-len(result.Error)
  fmt.Fprintf(w, "%15s\t%15s", "group", "observed")
  for i := 0; i < len(result.Predictions); i++ {
    fmt.Fprintf(w, "\t%15s", fmt.Sprintf("component.%d", nprev+i+1))
  }
  fmt.Fprintf(w, "\n")
  for j := 0; j < data.Len(); j++ {
    fmt.Fprintf(w, "%15s\t%15s", data.GroupNames[data.Groups[j]], data.Classes[data.Y[j]])
    for i := 0; i < len(result.Predictions); i++ {
      fmt.Fprintf(w, "\t%15s", data.Classes[result.Predictions[i][j]])
    }
    fmt.Fprintf(w, "\n")
  }
  PrintStderr(config, 1, "done\n")
}
