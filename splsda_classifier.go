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

import   "encoding/json"

/* -------------------------------------------------------------------------- */

// Splsda is a fitted sparse PLS-DA model. WeightsX carry the sparse
// projection directions (one per component), LoadingsX/LoadingsY the
// deflation and regression loadings required for prediction. Variates
// and Labels retain the training samples in latent space for the
// centroid and mahalanobis prediction rules.
type Splsda struct {
  Classes     []string
  NComp         int
  KeepX       []int
  Scale         bool
  XMean       []float64
  XScale      []float64
  YMean       []float64
  WeightsX  [][]float64
  LoadingsX [][]float64
  LoadingsY [][]float64
  Variates  [][]float64
  Labels      []int
}

/* -------------------------------------------------------------------------- */

func (obj *Splsda) Clone() *Splsda {
  r := Splsda{}
  r.Classes = append([]string{}, obj.Classes...)
  r.NComp   = obj.NComp
  r.KeepX   = cloneInts  (obj.KeepX)
  r.Scale   = obj.Scale
  r.XMean   = cloneFloats(obj.XMean)
  r.XScale  = cloneFloats(obj.XScale)
  r.YMean   = cloneFloats(obj.YMean)
  r.Labels  = cloneInts  (obj.Labels)
  r.WeightsX  = make([][]float64, len(obj.WeightsX))
  r.LoadingsX = make([][]float64, len(obj.LoadingsX))
  r.LoadingsY = make([][]float64, len(obj.LoadingsY))
  r.Variates  = make([][]float64, len(obj.Variates))
  for i := 0; i < len(obj.WeightsX); i++ {
    r.WeightsX [i] = cloneFloats(obj.WeightsX [i])
    r.LoadingsX[i] = cloneFloats(obj.LoadingsX[i])
    r.LoadingsY[i] = cloneFloats(obj.LoadingsY[i])
    r.Variates [i] = cloneFloats(obj.Variates [i])
  }
  return &r
}

/* -------------------------------------------------------------------------- */

// Nonzero returns the number of non-zero projection weights per component
func (obj *Splsda) Nonzero() []int {
  r := make([]int, len(obj.WeightsX))
  for h := 0; h < len(obj.WeightsX); h++ {
    for _, v := range obj.WeightsX[h] {
      if v != 0.0 {
        r[h]++
      }
    }
  }
  return r
}

/* -------------------------------------------------------------------------- */

func ImportSplsda(config Config, filename string) *Splsda {
  PrintStderr(config, 1, "Importing model from `%s'... ", filename)
  f, err := os.Open(filename)
  if err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  defer f.Close()

  classifier := Splsda{}
  if err := json.NewDecoder(f).Decode(&classifier); err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  PrintStderr(config, 1, "done\n")
  return &classifier
}

func SaveModel(config Config, filename string, classifier *Splsda) {
  PrintStderr(config, 1, "Exporting model to `%s'... ", filename)
  f, err := os.Create(filename)
  if err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  defer f.Close()

  encoder := json.NewEncoder(f)
  encoder.SetIndent("", "  ")
  if err := encoder.Encode(classifier); err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  PrintStderr(config, 1, "done\n")
}
