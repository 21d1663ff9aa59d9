// Package eda provides data frames for exploratory data analysis.
//
// The statistics live in package stat, preprocessing steps in package
// prep and charts in package chart. All of them consume and produce
// *DataFrame values and never modify the frame they are given.
//
//
// Data Representation: Data Frames
//
// A data frame is an ordered collection of named columns (Fields) of equal
// length. Frames can be built column-wise
//
//      df, err := eda.FromColumns("people",
//          eda.FloatColumn("Height", 1.88, 1.85, math.NaN()),
//          eda.StringColumn("Origin", "de", "ch", "uk"))
//
// from a CSV file with ReadCSV, or from a "slice of measurements":
//      var DataSOM []Measurement
//      type Measurement struct {
//          Height float64
//          Weigth float64
//          Age    int
//      }
//
//      df, err := eda.NewDataFrameFrom(DataSOM)
//
//
// Types of Data Elements
//
// Each field has one of the following types:
//     Int     discrete numeric data
//     Float   continous numeric data
//     String  discrete text (categorical) data
//     Time    time data
// Every field stores its values as float64: strings are interned in the
// StringPool of the frame and stored as the pool index, times are stored
// as seconds since the Unix epoch.
//
// NaN is the missing-value marker for all types.
//
//
// Calculated Values
//
// When constructing from a slice of measurements, methods without
// parameters returning one of the supported types become fields too:
//    func(m Measurement) BMI() float64 { return m.Weight / (m.Height * m.Height) }
//
package eda
