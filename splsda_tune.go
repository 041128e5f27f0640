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

import   "log"
import   "os"
import   "strconv"

import   "github.com/pbenner/threadpool"

import   "gonum.org/v1/gonum/stat"

import   "github.com/pborman/getopt"

/* -------------------------------------------------------------------------- */

// ErrorRecord summarizes the cross-validated error of one sparsity
// candidate for one component
type ErrorRecord struct {
  KeepX        int
  MeanError    float64
  SdError      float64
  ClassError []float64
  GroupError []float64
}

type candidateResult struct {
  record   ErrorRecord
  scores [][]float64
  labels   []int
}

/* -------------------------------------------------------------------------- */

// evaluate_candidate fits one model per fold with the frozen sparsity
// prefix extended by the candidate value and scores the held-out group.
// Folds are independent and run on the thread pool; each writes only its
// own confusion and its own test rows of the shared score matrix
func evaluate_candidate(config Config, data DataSet, folds []Fold, prefix []int, candidate int) (candidateResult, error) {
  n := data.Len()
  k := len(data.Classes)
  h := len(prefix)+1

  keepX := append(cloneInts(prefix), candidate)

  confusions := make([]*Confusion, len(folds))
  scores     := make([][]float64,  n)
  labels     := make([]int,        n)
  for i := 0; i < n; i++ {
    scores[i] = make([]float64, k)
  }
  err := config.Pool.RangeJob(0, len(folds), func(g int, pool threadpool.ThreadPool, erf func() error) error {
    if erf() != nil {
      return nil
    }
    fold := folds[g]
    dataTrain := data.Subset(fold.Train)
    dataTest  := data.Subset(fold.Test)

    estimator := NewSplsdaEstimator(config, h, keepX)
    classifier, err := estimator.Estimate(config, dataTrain.X, dataTrain.Y, data.Classes); if err != nil {
      return FoldEvaluationError{Group: data.GroupNames[fold.Group], KeepX: candidate, Err: err}
    }
    predicted, s, err := classifier.Predict(config, dataTest.X, config.Distance); if err != nil {
      return FoldEvaluationError{Group: data.GroupNames[fold.Group], KeepX: candidate, Err: err}
    }
    confusion := NewConfusion(k)
    for i, j := range fold.Test {
      confusion.Add(data.Y[j], predicted[i])
      labels[j] = predicted[i]
      for c := 0; c < k; c++ {
        scores[j][c] = s.At(i, c)
      }
    }
    confusions[g] = confusion
    return nil
  })
  if err != nil {
    return candidateResult{}, err
  }
  // reduce fold results
  groupError := make([]float64, len(folds))
  total      := NewConfusion(k)
  for g := 0; g < len(folds); g++ {
    groupError[g] = confusions[g].Error(config.Measure)
    total.AddConfusion(confusions[g])
  }
  classError := make([]float64, k)
  for c := 0; c < k; c++ {
    classError[c] = total.ClassError(c)
  }
  r := candidateResult{}
  r.record.KeepX      = candidate
  r.record.MeanError  = stat.Mean  (groupError, nil)
  r.record.SdError    = stat.StdDev(groupError, nil)
  r.record.ClassError = classError
  r.record.GroupError = groupError
  r.scores = scores
  r.labels = labels
  return r, nil
}

/* -------------------------------------------------------------------------- */

// select_best returns the index of the record with the lowest mean error;
// the scan keeps the first minimum, so with an ascending grid ties
// resolve to the sparsest candidate
func select_best(records []ErrorRecord) int {
  r := 0
  for i := 1; i < len(records); i++ {
    if records[i].MeanError < records[r].MeanError {
      r = i
    }
  }
  return r
}

// tune_component searches the sparsity grid for a single new component
// while all previously chosen values stay frozen
func tune_component(config Config, data DataSet, folds []Fold, grid []int, prefix []int) (candidateResult, error) {
  h := len(prefix)+1

  records := make([]ErrorRecord,     len(grid))
  results := make([]candidateResult, len(grid))
  for i, candidate := range grid {
    PrintStderr(config, 1, "Component %d: evaluating keepX=%d... ", h, candidate)
    result, err := evaluate_candidate(config, data, folds, prefix, candidate); if err != nil {
      PrintStderr(config, 1, "failed\n")
      return candidateResult{}, err
    }
    PrintStderr(config, 1, "done (mean %s error %f)\n", config.Measure, result.record.MeanError)
    records[i] = result.record
    results[i] = result
  }
  return results[select_best(records)], nil
}

/* -------------------------------------------------------------------------- */

// tuneSplsda runs the sequential component search. Components are tuned
// strictly in order; the winning sparsity value of each component is
// appended to the prefix before the next component is searched. On a
// mid-search failure the returned result carries the components that
// completed before the failure
func tuneSplsda(config Config, data DataSet) (*TuneResult, error) {
  if err := validate_tuning(config, data); err != nil {
    return nil, err
  }
  folds, err := logocvFolds(config, data); if err != nil {
    return nil, err
  }
  grid  := sortGrid(config.KeepX)
  k     := len(data.Classes)
  nprev := len(config.KeepXPrefix)

  // each searched component writes exactly one row
  keepX := make([]int, config.NComp)
  copy(keepX, config.KeepXPrefix)
  records     := make([]ErrorRecord, 0, config.NComp-nprev)
  errorMatrix := make([][]float64,   0, config.NComp-nprev)
  aucs        := [][]float64(nil)
  predictions := [][]int    (nil)

  for h := nprev+1; h <= config.NComp; h++ {
    best, err := tune_component(config, data, folds, grid, keepX[0:h-1]); if err != nil {
      return assemble_tune_result(config, data, keepX[0:h-1], records, errorMatrix, aucs, predictions, OptimalNComp{}), err
    }
    PrintStderr(config, 1, "Component %d: selected keepX=%d\n", h, best.record.KeepX)
    keepX[h-1]  = best.record.KeepX
    records     = append(records,     best.record)
    errorMatrix = append(errorMatrix, best.record.GroupError)
    if config.Auc {
      aucs = append(aucs, class_auc(best.scores, data.Y, k))
    }
    if config.SaveTrace {
      predictions = append(predictions, best.labels)
    }
  }
  opt := selectNcomp(errorMatrix, config.Alpha)
  if opt.Available {
    PrintStderr(config, 1, "Recommending %d component(s)\n", opt.NComp+nprev)
    opt.NComp += nprev
  } else {
    PrintStderr(config, 1, "Too few groups or components to recommend a number of components\n")
  }
  return assemble_tune_result(config, data, keepX, records, errorMatrix, aucs, predictions, opt), nil
}

/* -------------------------------------------------------------------------- */

func tune(config Config, filename_in, basename_out string) {
  data, err := compile_training_data(config, filename_in); if err != nil {
    log.Fatal(err)
  }
  if len(config.KeepX) == 0 {
    // no sparsity grid requested; estimate the performance of the full
    // model over all distance metrics instead
    result, err := perfSplsda(config, data); if err != nil {
      log.Fatal(err)
    }
    savePerfResult(config, basename_out+".table", result)
    return
  }
  result, err := tuneSplsda(config, data); if err != nil {
    log.Fatal(err)
  }
  saveTuneResult(config, basename_out+".table", result)
  if config.SaveTrace {
    saveTuneTrace(config, basename_out+".trace", data, result)
  }
}

/* -------------------------------------------------------------------------- */

func main_tune(config Config, args []string) {
  options := getopt.New()

  optNComp     := options.    IntLong("components",     0 ,         2, "number of latent components to tune")
  optGrid      := options. StringLong("grid",           0 ,        "", "comma separated sparsity candidates, e.g. 5,10,20")
  optKeepX     := options. StringLong("keepx",          0 ,        "", "sparsity values already fixed for leading components")
  optMeasure   := options. StringLong("measure",        0 ,     "BER", "error measure [overall, BER]")
  optDistance  := options. StringLong("distance",       0 ,     "max", "distance metric [max, centroid, mahalanobis]")
  optAlpha     := options. StringLong("alpha",          0 ,    "0.01", "significance threshold for the component count recommendation")
  optAuc       := options.   BoolLong("auc",            0 ,            "report per-class AUC for the selected candidates")
  optScale     := options.   BoolLong("scale",          0 ,            "scale features to unit variance")
  optEpsilon   := options. StringLong("epsilon",        0 ,    "1e-6", "convergence tolerance of the model fit")
  optMaxIter   := options.    IntLong("max-iterations", 0 ,       100, "maximum number of iterations of the model fit")
  optSaveTrace := options.   BoolLong("save-trace",     0 ,            "save per-sample predictions to file")
  optHelp      := options.   BoolLong("help",          'h',            "print help")

  options.SetParameters("<DATA.csv> <BASENAME_RESULT>")
  options.Parse(args)

  // parse options
  //////////////////////////////////////////////////////////////////////////////
  if *optHelp {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  if v, err := strconv.ParseFloat(*optAlpha, 64); err != nil {
    log.Fatal(err)
  } else {
    config.Alpha = v
  }
  if v, err := strconv.ParseFloat(*optEpsilon, 64); err != nil {
    log.Fatal(err)
  } else {
    config.Epsilon = v
  }
  config.NComp         = *optNComp
  config.KeepX         = parse_int_list_or_fatal(*optGrid)
  config.KeepXPrefix   = parse_int_list_or_fatal(*optKeepX)
  config.Measure       = *optMeasure
  config.Distance      = *optDistance
  config.Auc           = *optAuc
  config.Scale         = *optScale
  config.MaxIterations = *optMaxIter
  config.SaveTrace     = *optSaveTrace
  config.Distances     = []string{"max", "centroid", "mahalanobis"}
  // parse arguments
  //////////////////////////////////////////////////////////////////////////////
  if len(options.Args()) != 2 {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  filename_in  := options.Args()[0]
  basename_out := options.Args()[1]

  tune(config, filename_in, basename_out)
}
