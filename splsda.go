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
import   "io"
import   "log"
import   "os"

import   "github.com/pbenner/threadpool"

import   "github.com/pborman/getopt"

/* -------------------------------------------------------------------------- */

type Config struct {
  NComp           int
  KeepX         []int
  KeepXPrefix   []int
  Measure         string
  Distance        string
  Distances     []string
  Alpha           float64
  Auc             bool
  Scale           bool
  Epsilon         float64
  MaxIterations   int
  Seed            int64
  SaveTrace       bool
  Pool            threadpool.ThreadPool
  Verbose         int
}

/* -------------------------------------------------------------------------- */

var Version   string
var BuildTime string
var GitHash   string

func printVersion(writer io.Writer) {
  fmt.Fprintf(writer, "splsda (https://github.com/TuomasBorman/mixOmics)\n")
  fmt.Fprintf(writer, " - Version   : %s\n", Version)
  fmt.Fprintf(writer, " - Build time: %s\n", BuildTime)
  fmt.Fprintf(writer, " - Git Hash  : %s\n", GitHash)
}

/* -------------------------------------------------------------------------- */

func main() {
  log.SetFlags(0)

  config  := Config{}
  options := getopt.New()

  optThreads := options.    IntLong("threads",  0 ,  1, "number of threads")
  optSeed    := options.    IntLong("seed",     0 ,  1, "seed for the random number generator")
  optHelp    := options.   BoolLong("help",    'h',     "print help")
  optVerbose := options.CounterLong("verbose", 'v',     "verbose level [-v or -vv]")
  optVersion := options.   BoolLong("version",  0 ,     "print version")

  options.SetParameters("<COMMAND>\n\n" +
    " Commands:\n" +
    "     tune         - select sparsity levels and number of components\n" +
    "                    by leave-one-group-out cross-validation\n" +
    "     train        - estimate a sparse PLS-DA model\n" +
    "     predict      - use an estimated model to predict labels\n" +
    "     perf         - evaluate a fixed model configuration by\n" +
    "                    leave-one-group-out cross-validation\n")
  options.Parse(os.Args)

  // command options
  if *optHelp {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  if *optVersion {
    printVersion(os.Stdout)
    os.Exit(0)
  }
  if *optVerbose != 0 {
    config.Verbose = *optVerbose
  }
  if *optThreads < 1 {
    log.Fatalf("invalid number of threads `%d'", *optThreads)
  }
  if *optThreads > 1 {
    config.Pool = threadpool.New(*optThreads, 100)
  }
  config.Seed = int64(*optSeed)
  // command arguments
  if len(options.Args()) == 0 {
    options.PrintUsage(os.Stderr)
    os.Exit(1)
  }
  command := options.Args()[0]

  switch command {
  case "tune":
    main_tune(config, options.Args())
  case "train":
    main_train(config, options.Args())
  case "predict":
    main_predict(config, options.Args())
  case "perf":
    main_perf(config, options.Args())
  default:
    options.PrintUsage(os.Stderr)
    os.Exit(1)
  }
}
