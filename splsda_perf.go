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
import   "log"
import   "os"
import   "strconv"

import   "github.com/pbenner/threadpool"

import   "gonum.org/v1/gonum/stat"

import   "github.com/pborman/getopt"

/* -------------------------------------------------------------------------- */

// PerfRecord carries the cross-validated error of a fixed model
// configuration for one distance metric and one error measure, indexed
// by component count
type PerfRecord struct {
  Distance   string
  Measure    string
  Mean     []float64
  Sd       []float64
}

type PerfResult struct {
  Classes   []string
  Groups    []string
  NComp       int
  KeepX     []int
  Records  []PerfRecord
}

/* -------------------------------------------------------------------------- */

var perfMeasures = []string{"overall", "BER"}

// perfSplsda estimates the performance of a fixed configuration by
// leave-one-group-out cross-validation; every distance metric and both
// error measures are evaluated for every component count up to NComp
func perfSplsda(config Config, data DataSet) (*PerfResult, error) {
  n, p := data.X.Dims()
  if n != len(data.Y) || n != len(data.Groups) {
    return nil, InputValidationError{"feature matrix and label vectors differ in length"}
  }
  if len(data.Classes) < 2 {
    return nil, InputValidationError{"outcome must have at least 2 classes"}
  }
  if len(data.GroupNames) < 2 {
    return nil, InputValidationError{"leave-one-group-out cross-validation requires at least 2 groups"}
  }
  if config.NComp < 1 {
    return nil, InputValidationError{fmt.Sprintf("invalid number of components `%d'", config.NComp)}
  }
  keepX := config.KeepXPrefix
  if len(keepX) == 0 {
    keepX = make([]int, config.NComp)
    for h := 0; h < config.NComp; h++ {
      keepX[h] = p
    }
  }
  if len(keepX) != config.NComp {
    return nil, InputValidationError{fmt.Sprintf("%d sparsity values given for %d components", len(keepX), config.NComp)}
  }
  for _, distance := range config.Distances {
    if err := validate_distance(distance); err != nil {
      return nil, err
    }
  }
  folds, err := logocvFolds(config, data); if err != nil {
    return nil, err
  }
  k := len(data.Classes)
  // confusions[g][d][h]
  confusions := make([][][]*Confusion, len(folds))

  err = config.Pool.RangeJob(0, len(folds), func(g int, pool threadpool.ThreadPool, erf func() error) error {
    if erf() != nil {
      return nil
    }
    fold := folds[g]
    dataTrain := data.Subset(fold.Train)
    dataTest  := data.Subset(fold.Test)

    estimator := NewSplsdaEstimator(config, config.NComp, keepX)
    classifier, err := estimator.Estimate(config, dataTrain.X, dataTrain.Y, data.Classes); if err != nil {
      return FoldEvaluationError{Group: data.GroupNames[fold.Group], KeepX: keepX[0], Err: err}
    }
    confusions[g] = make([][]*Confusion, len(config.Distances))
    for d, distance := range config.Distances {
      confusions[g][d] = make([]*Confusion, config.NComp)
      for h := 1; h <= config.NComp; h++ {
        predicted, _, err := classifier.PredictComp(config, dataTest.X, distance, h); if err != nil {
          return FoldEvaluationError{Group: data.GroupNames[fold.Group], KeepX: keepX[h-1], Err: err}
        }
        confusion := NewConfusion(k)
        for i, j := range fold.Test {
          confusion.Add(data.Y[j], predicted[i])
        }
        confusions[g][d][h-1] = confusion
      }
    }
    return nil
  })
  if err != nil {
    return nil, err
  }
  r := PerfResult{}
  r.Classes = data.Classes
  r.Groups  = data.GroupNames
  r.NComp   = config.NComp
  r.KeepX   = cloneInts(keepX)
  for d, distance := range config.Distances {
    for _, measure := range perfMeasures {
      record := PerfRecord{Distance: distance, Measure: measure}
      record.Mean = make([]float64, config.NComp)
      record.Sd   = make([]float64, config.NComp)
      groupError := make([]float64, len(folds))
      for h := 0; h < config.NComp; h++ {
        for g := 0; g < len(folds); g++ {
          groupError[g] = confusions[g][d][h].Error(measure)
        }
        record.Mean[h] = stat.Mean  (groupError, nil)
        record.Sd  [h] = stat.StdDev(groupError, nil)
      }
      r.Records = append(r.Records, record)
    }
  }
  return &r, nil
}

/* -------------------------------------------------------------------------- */

func savePerfResult(config Config, filename string, result *PerfResult) {
  PrintStderr(config, 1, "Exporting result to `%s'... ", filename)
  f, err := os.Create(filename)
  if err != nil {
    PrintStderr(config, 1, "failed\n")
    panic(err)
  }
  defer f.Close()

  w := bufio.NewWriter(f)
  defer w.Flush()

  fmt.Fprintf(w, "%15s\t%8s\t%9s\t%15s\t%15s\n", "distance", "measure", "component", "mean", "sd")
  for _, record := range result.Records {
    for h := 0; h < result.NComp; h++ {
      fmt.Fprintf(w, "%15s\t%8s\t%9d\t%15e\t%15e\n", record.Distance, record.Measure, h+1, record.Mean[h], record.Sd[h])
    }
  }
  PrintStderr(config, 1, "done\n")
}

/* -------------------------------------------------------------------------- */

func perf(config Config, filename_in, filename_out string) {
  data, err := compile_training_data(config, filename_in); if err != nil {
    log.Fatal(err)
  }
  result, err := perfSplsda(config, data); if err != nil {
    log.Fatal(err)
  }
  savePerfResult(config, filename_out, result)
}

/* -------------------------------------------------------------------------- */

func main_perf(config Config, args []string) {
  options := getopt.New()

  optNComp   := options.    IntLong("components",     0 ,      2, "number of latent components")
  optKeepX   := options. StringLong("keepx",          0 ,     "", "sparsity value per component [default: all features]")
  optScale   := options.   BoolLong("scale",          0 ,         "scale features to unit variance")
  optEpsilon := options. StringLong("epsilon",        0 , "1e-6", "convergence tolerance of the model fit")
  optMaxIter := options.    IntLong("max-iterations", 0 ,    100, "maximum number of iterations of the model fit")
  optHelp    := options.   BoolLong("help",          'h',         "print help")

  options.SetParameters("<DATA.csv> <RESULT.table>")
  options.Parse(args)

  // parse options
  //////////////////////////////////////////////////////////////////////////////
  if *optHelp {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  if v, err := strconv.ParseFloat(*optEpsilon, 64); err != nil {
    log.Fatal(err)
  } else {
    config.Epsilon = v
  }
  config.NComp         = *optNComp
  config.KeepXPrefix   = parse_int_list_or_fatal(*optKeepX)
  config.Scale         = *optScale
  config.MaxIterations = *optMaxIter
  config.Distances     = []string{"max", "centroid", "mahalanobis"}
  // parse arguments
  //////////////////////////////////////////////////////////////////////////////
  if len(options.Args()) != 2 {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  filename_in  := options.Args()[0]
  filename_out := options.Args()[1]

  perf(config, filename_in, filename_out)
}
