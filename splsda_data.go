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
import   "sort"
import   "strconv"
import   "strings"

import   "encoding/csv"

import   "gonum.org/v1/gonum/mat"

/* -------------------------------------------------------------------------- */

type DataSet struct {
  X            *mat.Dense
  Y          []int
  Groups     []int
  Classes    []string
  GroupNames []string
  Features   []string
}

/* -------------------------------------------------------------------------- */

func (obj DataSet) Len() int {
  n, _ := obj.X.Dims()
  return n
}

func (obj DataSet) Dim() int {
  _, p := obj.X.Dims()
  return p
}

func (obj DataSet) ClassCounts() []int {
  r := make([]int, len(obj.Classes))
  for _, k := range obj.Y {
    r[k]++
  }
  return r
}

// Subset returns a data set restricted to the given row indices; the
// feature matrix is copied, factor codings are shared
func (obj DataSet) Subset(indices []int) DataSet {
  _, p := obj.X.Dims()
  x := mat.NewDense(len(indices), p, nil)
  y := make([]int, len(indices))
  g := make([]int, len(indices))
  for i, j := range indices {
    x.SetRow(i, obj.X.RawRowView(j))
    y[i] = obj.Y     [j]
    g[i] = obj.Groups[j]
  }
  return DataSet{X: x, Y: y, Groups: g, Classes: obj.Classes, GroupNames: obj.GroupNames, Features: obj.Features}
}

/* -------------------------------------------------------------------------- */

// encode a string label vector as factor levels sorted alphabetically,
// so that class and group indices do not depend on row order
func encode_factor(values []string) ([]int, []string) {
  m := make(map[string]int)
  for _, v := range values {
    m[v] = 0
  }
  levels := make([]string, 0, len(m))
  for v, _ := range m {
    levels = append(levels, v)
  }
  sort.Strings(levels)
  for i, v := range levels {
    m[v] = i
  }
  r := make([]int, len(values))
  for i, v := range values {
    r[i] = m[v]
  }
  return r, levels
}

/* -------------------------------------------------------------------------- */

func read_table(config Config, filename string) ([][]string, error) {
  f, err := os.Open(filename)
  if err != nil {
    return nil, err
  }
  defer f.Close()

  reader := csv.NewReader(f)
  reader.TrimLeadingSpace = true
  return reader.ReadAll()
}

// compile_training_data imports a table with one sample per row; the first
// column carries the class label, the second column the group (study)
// identifier, and all remaining columns numeric features
func compile_training_data(config Config, filename string) (DataSet, error) {
  PrintStderr(config, 1, "Reading data table `%s'... ", filename)
  records, err := read_table(config, filename)
  if err != nil {
    PrintStderr(config, 1, "failed\n")
    return DataSet{}, err
  }
  PrintStderr(config, 1, "done\n")
  if len(records) < 2 {
    return DataSet{}, InputValidationError{"data table has no samples"}
  }
  header := records[0]
  if len(header) < 3 {
    return DataSet{}, InputValidationError{"data table must have label, group, and at least one feature column"}
  }
  p := len(header)-2
  n := len(records)-1

  labels   := make([]string, n)
  groups   := make([]string, n)
  features := make([]string, p)
  copy(features, header[2:])

  x := mat.NewDense(n, p, nil)
  for i := 1; i < len(records); i++ {
    if len(records[i]) != len(header) {
      return DataSet{}, InputValidationError{fmt.Sprintf("row %d has %d columns, expected %d", i+1, len(records[i]), len(header))}
    }
    labels[i-1] = records[i][0]
    groups[i-1] = records[i][1]
    for j := 0; j < p; j++ {
      v, err := strconv.ParseFloat(records[i][j+2], 64)
      if err != nil {
        return DataSet{}, InputValidationError{fmt.Sprintf("row %d column `%s': %v", i+1, header[j+2], err)}
      }
      x.Set(i-1, j, v)
    }
  }
  y, classes   := encode_factor(labels)
  g, groupIds  := encode_factor(groups)

  return DataSet{X: x, Y: y, Groups: g, Classes: classes, GroupNames: groupIds, Features: features}, nil
}

// compile_test_data imports an unlabeled table whose columns are all
// numeric features
func compile_test_data(config Config, filename string) (*mat.Dense, error) {
  PrintStderr(config, 1, "Reading data table `%s'... ", filename)
  records, err := read_table(config, filename)
  if err != nil {
    PrintStderr(config, 1, "failed\n")
    return nil, err
  }
  PrintStderr(config, 1, "done\n")
  if len(records) < 2 {
    return nil, InputValidationError{"data table has no samples"}
  }
  p := len(records[0])
  n := len(records)-1
  x := mat.NewDense(n, p, nil)
  for i := 1; i < len(records); i++ {
    if len(records[i]) != p {
      return nil, InputValidationError{fmt.Sprintf("row %d has %d columns, expected %d", i+1, len(records[i]), p)}
    }
    for j := 0; j < p; j++ {
      v, err := strconv.ParseFloat(records[i][j], 64)
      if err != nil {
        return nil, InputValidationError{fmt.Sprintf("row %d column %d: %v", i+1, j+1, err)}
      }
      x.Set(i-1, j, v)
    }
  }
  return x, nil
}

/* -------------------------------------------------------------------------- */

// validate_tuning checks all arguments of the hyper-parameter search before
// any computation starts
func validate_tuning(config Config, data DataSet) error {
  n, p := data.X.Dims()
  if n != len(data.Y) {
    return InputValidationError{fmt.Sprintf("feature matrix has %d rows but %d labels", n, len(data.Y))}
  }
  if n != len(data.Groups) {
    return InputValidationError{fmt.Sprintf("feature matrix has %d rows but %d group labels", n, len(data.Groups))}
  }
  if len(data.Classes) < 2 {
    return InputValidationError{"outcome must have at least 2 classes"}
  }
  if len(data.GroupNames) < 2 {
    return InputValidationError{"leave-one-group-out cross-validation requires at least 2 groups"}
  }
  if config.NComp < 1 {
    return InputValidationError{fmt.Sprintf("invalid number of components `%d'", config.NComp)}
  }
  if len(sortGrid(config.KeepX)) < 2 {
    return InputValidationError{"grid must contain more than one distinct entry"}
  }
  for _, v := range config.KeepX {
    if v < 1 {
      return InputValidationError{fmt.Sprintf("invalid grid value `%d'", v)}
    }
    if v > p {
      return InputValidationError{fmt.Sprintf("grid value `%d' exceeds the number of features (%d)", v, p)}
    }
  }
  if len(config.KeepXPrefix) >= config.NComp {
    return InputValidationError{fmt.Sprintf("%d sparsity values are already fixed but only %d components are requested", len(config.KeepXPrefix), config.NComp)}
  }
  for _, v := range config.KeepXPrefix {
    if v < 1 || v > p {
      return InputValidationError{fmt.Sprintf("invalid fixed sparsity value `%d'", v)}
    }
  }
  if config.Alpha <= 0.0 || config.Alpha >= 1.0 {
    return InputValidationError{fmt.Sprintf("significance threshold `%f' must lie in (0,1)", config.Alpha)}
  }
  switch config.Measure {
  case "overall", "BER":
  default:
    return InputValidationError{fmt.Sprintf("invalid error measure `%s'", config.Measure)}
  }
  if err := validate_distance(config.Distance); err != nil {
    return err
  }
  return nil
}

/* -------------------------------------------------------------------------- */

func parse_int_list(s string) ([]int, error) {
  if s == "" {
    return nil, nil
  }
  fields := strings.Split(s, ",")
  r := make([]int, len(fields))
  for i, field := range fields {
    v, err := strconv.ParseInt(field, 10, 64)
    if err != nil {
      return nil, err
    }
    r[i] = int(v)
  }
  return r, nil
}

func parse_int_list_or_fatal(s string) []int {
  r, err := parse_int_list(s)
  if err != nil {
    log.Fatal(err)
  }
  return r
}
