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
import   "math"
import   "os"

import   "gonum.org/v1/gonum/mat"

import   "github.com/pborman/getopt"

/* -------------------------------------------------------------------------- */

func validate_distance(distance string) error {
  switch distance {
  case "max", "centroid", "mahalanobis":
    return nil
  default:
    return InputValidationError{fmt.Sprintf("invalid distance metric `%s'", distance)}
  }
}

/* -------------------------------------------------------------------------- */

// project maps test samples into the latent space of the fitted model by
// applying the training standardization, the per-component projection
// weights, and the same deflation steps used during estimation
func (obj *Splsda) project(x *mat.Dense) *mat.Dense {
  n, p := x.Dims()
  xd := mat.NewDense(n, p, nil)
  for i := 0; i < n; i++ {
    for j := 0; j < p; j++ {
      xd.Set(i, j, (x.At(i, j)-obj.XMean[j])/obj.XScale[j])
    }
  }
  t := mat.NewDense(n, obj.NComp, nil)
  ti := mat.NewVecDense(n, nil)
  for h := 0; h < obj.NComp; h++ {
    ti.MulVec(xd, mat.NewVecDense(p, obj.WeightsX[h]))
    for i := 0; i < n; i++ {
      t.Set(i, h, ti.AtVec(i))
      for j := 0; j < p; j++ {
        xd.Set(i, j, xd.At(i, j)-ti.AtVec(i)*obj.LoadingsX[h][j])
      }
    }
  }
  return t
}

// scores regresses the class indicators on the first ncomp latent
// variates; the result is used both by the max rule and as per-class
// prediction scores
func (obj *Splsda) scores(t *mat.Dense, ncomp int) *mat.Dense {
  n, _ := t.Dims()
  k    := len(obj.Classes)
  r := mat.NewDense(n, k, nil)
  for i := 0; i < n; i++ {
    for j := 0; j < k; j++ {
      v := obj.YMean[j]
      for h := 0; h < ncomp; h++ {
        v += t.At(i, h)*obj.LoadingsY[h][j]
      }
      r.Set(i, j, v)
    }
  }
  return r
}

/* -------------------------------------------------------------------------- */

// centroids of the training samples in latent space, restricted to the
// first ncomp components
func (obj *Splsda) centroids(ncomp int) *mat.Dense {
  k := len(obj.Classes)
  r := mat.NewDense(k, ncomp, nil)
  c := make([]int, k)
  for _, y := range obj.Labels {
    c[y]++
  }
  for i, y := range obj.Labels {
    for h := 0; h < ncomp; h++ {
      r.Set(y, h, r.At(y, h)+obj.Variates[h][i]/float64(c[y]))
    }
  }
  return r
}

// inverse of the pooled within-class covariance of the training variates
func (obj *Splsda) pooledCovariance(centroids *mat.Dense, ncomp int) (*mat.Dense, error) {
  n := len(obj.Labels)
  k := len(obj.Classes)
  s := mat.NewDense(ncomp, ncomp, nil)
  d := make([]float64, ncomp)
  for i, y := range obj.Labels {
    for h := 0; h < ncomp; h++ {
      d[h] = obj.Variates[h][i]-centroids.At(y, h)
    }
    for h1 := 0; h1 < ncomp; h1++ {
      for h2 := 0; h2 < ncomp; h2++ {
        s.Set(h1, h2, s.At(h1, h2)+d[h1]*d[h2])
      }
    }
  }
  if n <= k {
    return nil, fmt.Errorf("too few samples to estimate a within-class covariance")
  }
  s.Scale(1.0/float64(n-k), s)
  r := mat.NewDense(ncomp, ncomp, nil)
  if err := r.Inverse(s); err != nil {
    return nil, fmt.Errorf("within-class covariance is singular: %v", err)
  }
  return r, nil
}

/* -------------------------------------------------------------------------- */

// PredictComp predicts class labels using only the first ncomp components.
// The returned matrix carries one prediction score per class and sample
// regardless of the distance rule
func (obj *Splsda) PredictComp(config Config, x *mat.Dense, distance string, ncomp int) ([]int, *mat.Dense, error) {
  if err := validate_distance(distance); err != nil {
    return nil, nil, err
  }
  if ncomp < 1 || ncomp > obj.NComp {
    return nil, nil, InputValidationError{fmt.Sprintf("invalid number of components `%d'", ncomp)}
  }
  n, _ := x.Dims()
  k    := len(obj.Classes)
  t := obj.project(x)
  scores := obj.scores(t, ncomp)
  labels := make([]int, n)

  switch distance {
  case "max":
    for i := 0; i < n; i++ {
      j0 := 0
      for j := 1; j < k; j++ {
        if scores.At(i, j) > scores.At(i, j0) {
          j0 = j
        }
      }
      labels[i] = j0
    }
  case "centroid":
    g := obj.centroids(ncomp)
    for i := 0; i < n; i++ {
      j0 := 0
      d0 := math.Inf(1)
      for j := 0; j < k; j++ {
        d := 0.0
        for h := 0; h < ncomp; h++ {
          d += (t.At(i, h)-g.At(j, h))*(t.At(i, h)-g.At(j, h))
        }
        if d < d0 {
          d0 = d
          j0 = j
        }
      }
      labels[i] = j0
    }
  case "mahalanobis":
    g := obj.centroids(ncomp)
    sInv, err := obj.pooledCovariance(g, ncomp); if err != nil {
      return nil, nil, err
    }
    d := make([]float64, ncomp)
    for i := 0; i < n; i++ {
      j0 := 0
      d0 := math.Inf(1)
      for j := 0; j < k; j++ {
        for h := 0; h < ncomp; h++ {
          d[h] = t.At(i, h)-g.At(j, h)
        }
        v := 0.0
        for h1 := 0; h1 < ncomp; h1++ {
          for h2 := 0; h2 < ncomp; h2++ {
            v += d[h1]*sInv.At(h1, h2)*d[h2]
          }
        }
        if v < d0 {
          d0 = v
          j0 = j
        }
      }
      labels[i] = j0
    }
  }
  return labels, scores, nil
}

func (obj *Splsda) Predict(config Config, x *mat.Dense, distance string) ([]int, *mat.Dense, error) {
  return obj.PredictComp(config, x, distance, obj.NComp)
}

/* -------------------------------------------------------------------------- */

func savePredictions(filename string, classes []string, labels []int, scores *mat.Dense) {
  f, err := os.Create(filename)
  if err != nil {
    panic(err)
  }
  defer f.Close()

  w := bufio.NewWriter(f)
  defer w.Flush()

  fmt.Fprintf(w, "%15s", "prediction")
  for _, class := range classes {
    fmt.Fprintf(w, "\t%15s", class)
  }
  fmt.Fprintf(w, "\n")
  for i := 0; i < len(labels); i++ {
    fmt.Fprintf(w, "%15s", classes[labels[i]])
    for j := 0; j < len(classes); j++ {
      fmt.Fprintf(w, "\t%15e", scores.At(i, j))
    }
    fmt.Fprintf(w, "\n")
  }
}

/* -------------------------------------------------------------------------- */

func predict(config Config, distance, filename_json, filename_in, filename_out string) {
  classifier := ImportSplsda(config, filename_json)

  x, err := compile_test_data(config, filename_in); if err != nil {
    log.Fatal(err)
  }
  labels, scores, err := classifier.Predict(config, x, distance); if err != nil {
    log.Fatal(err)
  }
  savePredictions(filename_out, classifier.Classes, labels, scores)
}

/* -------------------------------------------------------------------------- */

func main_predict(config Config, args []string) {
  options := getopt.New()

  optDistance := options.StringLong("distance", 0 , "max", "distance metric [max, centroid, mahalanobis]")
  optHelp     := options.  BoolLong("help",    'h',        "print help")

  options.SetParameters("<MODEL.json> <DATA.csv> <RESULT.table>")
  options.Parse(args)

  // parse options
  //////////////////////////////////////////////////////////////////////////////
  if *optHelp {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  if err := validate_distance(*optDistance); err != nil {
    log.Fatal(err)
  }
  // parse arguments
  //////////////////////////////////////////////////////////////////////////////
  if len(options.Args()) != 3 {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  filename_json := options.Args()[0]
  filename_in   := options.Args()[1]
  filename_out  := options.Args()[2]

  predict(config, *optDistance, filename_json, filename_in, filename_out)
}
