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
import   "math"
import   "sort"

import   "gonum.org/v1/gonum/floats"
import   "gonum.org/v1/gonum/mat"
import   "gonum.org/v1/gonum/stat"

/* -------------------------------------------------------------------------- */

type SplsdaEstimator struct {
  NComp           int
  KeepX         []int
  Scale           bool
  Epsilon         float64
  MaxIterations   int
}

/* -------------------------------------------------------------------------- */

func NewSplsdaEstimator(config Config, ncomp int, keepX []int) *SplsdaEstimator {
  r := SplsdaEstimator{}
  r.NComp         = ncomp
  r.KeepX         = cloneInts(keepX)
  r.Scale         = config.Scale
  r.Epsilon       = config.Epsilon
  r.MaxIterations = config.MaxIterations
  if r.Epsilon == 0.0 {
    r.Epsilon = 1e-6
  }
  if r.MaxIterations == 0 {
    r.MaxIterations = 100
  }
  return &r
}

/* -------------------------------------------------------------------------- */

// soft-threshold a loading vector so that at most keep entries remain
// non-zero; entries tied with the threshold magnitude are zeroed
func soft_threshold(a []float64, keep int) {
  if keep >= len(a) {
    return
  }
  abs := make([]float64, len(a))
  for i, v := range a {
    abs[i] = math.Abs(v)
  }
  sort.Sort(sort.Reverse(sort.Float64Slice(abs)))
  lambda := abs[keep]
  for i, v := range a {
    if v >= 0.0 {
      a[i] =  math.Max(math.Abs(v)-lambda, 0.0)
    } else {
      a[i] = -math.Max(math.Abs(v)-lambda, 0.0)
    }
  }
}

/* -------------------------------------------------------------------------- */

func (obj *SplsdaEstimator) standardize(x *mat.Dense) (*mat.Dense, []float64, []float64) {
  n, p := x.Dims()
  mean  := make([]float64, p)
  scale := make([]float64, p)
  col   := make([]float64, n)
  xd    := mat.NewDense(n, p, nil)
  xd.Copy(x)
  for j := 0; j < p; j++ {
    mat.Col(col, j, x)
    mean [j] = stat.Mean(col, nil)
    scale[j] = 1.0
    if obj.Scale {
      if sd := stat.StdDev(col, nil); sd > 0.0 {
        scale[j] = sd
      }
    }
    for i := 0; i < n; i++ {
      xd.Set(i, j, (x.At(i, j)-mean[j])/scale[j])
    }
  }
  return xd, mean, scale
}

// dummy_response builds the centered indicator matrix of the class labels
func dummy_response(y []int, k int) (*mat.Dense, []float64) {
  n  := len(y)
  yd := mat.NewDense(n, k, nil)
  ym := make([]float64, k)
  for i := 0; i < n; i++ {
    yd.Set(i, y[i], 1.0)
    ym[y[i]] += 1.0/float64(n)
  }
  for i := 0; i < n; i++ {
    for j := 0; j < k; j++ {
      yd.Set(i, j, yd.At(i, j)-ym[j])
    }
  }
  return yd, ym
}

/* -------------------------------------------------------------------------- */

// extract_component computes one pair of sparse projection directions from
// the cross-covariance of the deflated data
func (obj *SplsdaEstimator) extract_component(m *mat.Dense, keep int) ([]float64, error) {
  p, k := m.Dims()
  // initialize with the column of largest norm
  b  := make([]float64, k)
  j0 := 0
  v0 := 0.0
  col := make([]float64, p)
  for j := 0; j < k; j++ {
    mat.Col(col, j, m)
    if v := floats.Norm(col, 2); v > v0 {
      v0 = v
      j0 = j
    }
  }
  if v0 == 0.0 {
    return nil, fmt.Errorf("cross-covariance matrix is zero")
  }
  b[j0] = 1.0

  a    := make([]float64, p)
  bNew := make([]float64, k)
  av := mat.NewVecDense(p, a)
  bv := mat.NewVecDense(k, b)
  nv := mat.NewVecDense(k, bNew)
  for iter := 0; iter < obj.MaxIterations; iter++ {
    av.MulVec(m, bv)
    soft_threshold(a, keep)
    na := floats.Norm(a, 2)
    if na == 0.0 {
      return nil, fmt.Errorf("all projection weights were thresholded to zero")
    }
    floats.Scale(1.0/na, a)

    nv.MulVec(m.T(), av)
    nb := floats.Norm(bNew, 2)
    if nb == 0.0 {
      return nil, fmt.Errorf("response weights collapsed to zero")
    }
    floats.Scale(1.0/nb, bNew)

    d := 0.0
    for j := 0; j < k; j++ {
      d += (bNew[j]-b[j])*(bNew[j]-b[j])
    }
    copy(b, bNew)
    if math.Sqrt(d) < obj.Epsilon {
      break
    }
  }
  return cloneFloats(a), nil
}

/* -------------------------------------------------------------------------- */

func (obj *SplsdaEstimator) Estimate(config Config, x *mat.Dense, y []int, classes []string) (*Splsda, error) {
  n, p := x.Dims()
  k    := len(classes)
  if n != len(y) {
    return nil, InputValidationError{fmt.Sprintf("feature matrix has %d rows but %d labels", n, len(y))}
  }
  if len(obj.KeepX) != obj.NComp {
    return nil, InputValidationError{fmt.Sprintf("%d sparsity values given for %d components", len(obj.KeepX), obj.NComp)}
  }
  xd, mean, scale := obj.standardize(x)
  yd, ym          := dummy_response(y, k)

  r := Splsda{}
  r.Classes   = classes
  r.NComp     = obj.NComp
  r.KeepX     = cloneInts(obj.KeepX)
  r.Scale     = obj.Scale
  r.XMean     = mean
  r.XScale    = scale
  r.YMean     = ym
  r.Labels    = cloneInts(y)
  r.WeightsX  = make([][]float64, obj.NComp)
  r.LoadingsX = make([][]float64, obj.NComp)
  r.LoadingsY = make([][]float64, obj.NComp)
  r.Variates  = make([][]float64, obj.NComp)

  m := mat.NewDense(p, k, nil)
  t := mat.NewVecDense(n, nil)
  for h := 0; h < obj.NComp; h++ {
    m.Mul(xd.T(), yd)
    a, err := obj.extract_component(m, obj.KeepX[h]); if err != nil {
      return nil, fmt.Errorf("component %d: %v", h+1, err)
    }
    t.MulVec(xd, mat.NewVecDense(p, a))
    tt := mat.Dot(t, t)
    if tt == 0.0 {
      return nil, fmt.Errorf("component %d: latent variate is zero", h+1)
    }
    pvec := make([]float64, p)
    cvec := make([]float64, k)
    pv := mat.NewVecDense(p, pvec)
    cv := mat.NewVecDense(k, cvec)
    pv.MulVec(xd.T(), t)
    cv.MulVec(yd.T(), t)
    floats.Scale(1.0/tt, pvec)
    floats.Scale(1.0/tt, cvec)
    // deflate
    for i := 0; i < n; i++ {
      ti := t.AtVec(i)
      for j := 0; j < p; j++ {
        xd.Set(i, j, xd.At(i, j)-ti*pvec[j])
      }
      for j := 0; j < k; j++ {
        yd.Set(i, j, yd.At(i, j)-ti*cvec[j])
      }
    }
    r.WeightsX [h] = a
    r.LoadingsX[h] = pvec
    r.LoadingsY[h] = cvec
    r.Variates [h] = cloneFloats(t.RawVector().Data)
  }
  return &r, nil
}
