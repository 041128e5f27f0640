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
import   "log"
import   "os"
import   "strconv"

import   "github.com/pborman/getopt"

/* -------------------------------------------------------------------------- */

func train(config Config, filename_in, filename_json string) {
  data, err := compile_training_data(config, filename_in); if err != nil {
    log.Fatal(err)
  }
  p := data.Dim()
  keepX := config.KeepXPrefix
  if len(keepX) == 0 {
    keepX = make([]int, config.NComp)
    for h := 0; h < config.NComp; h++ {
      keepX[h] = p
    }
  }
  if len(keepX) != config.NComp {
    log.Fatal(InputValidationError{fmt.Sprintf("%d sparsity values given for %d components", len(keepX), config.NComp)})
  }
  PrintStderr(config, 1, "Estimating model with %d component(s)...\n", config.NComp)
  estimator := NewSplsdaEstimator(config, config.NComp, keepX)
  classifier, err := estimator.Estimate(config, data.X, data.Y, data.Classes); if err != nil {
    log.Fatal(err)
  }
  if config.Verbose >= 1 {
    for h, n := range classifier.Nonzero() {
      PrintStderr(config, 1, "Component %d has %d non-zero weight(s)\n", h+1, n)
    }
  }
  SaveModel(config, filename_json, classifier)
}

/* -------------------------------------------------------------------------- */

func main_train(config Config, args []string) {
  options := getopt.New()

  optNComp   := options.    IntLong("components",     0 ,      2, "number of latent components")
  optKeepX   := options. StringLong("keepx",          0 ,     "", "sparsity value per component [default: all features]")
  optScale   := options.   BoolLong("scale",          0 ,         "scale features to unit variance")
  optEpsilon := options. StringLong("epsilon",        0 , "1e-6", "convergence tolerance of the model fit")
  optMaxIter := options.    IntLong("max-iterations", 0 ,    100, "maximum number of iterations of the model fit")
  optHelp    := options.   BoolLong("help",          'h',         "print help")

  options.SetParameters("<DATA.csv> <MODEL.json>")
  options.Parse(args)

  // parse options
  //////////////////////////////////////////////////////////////////////////////
  if *optHelp {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  if *optNComp < 1 {
    log.Fatalf("invalid number of components `%d'", *optNComp)
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
  // parse arguments
  //////////////////////////////////////////////////////////////////////////////
  if len(options.Args()) != 2 {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  filename_in   := options.Args()[0]
  filename_json := options.Args()[1]

  train(config, filename_in, filename_json)
}
