// Package figure turns small literal datasets into static charts.
//
//
// Pipeline
//
// Every chart is produced in three strictly sequential steps:
//
//   1. Dataset construction: a Dataset of Records is built from literals.
//   2. Derived values: interval strings are parsed (ParseInterval), error
//      bar magnitudes computed (ErrorBar), categories placed on an axis
//      (Layout), colors attached and axis limits padded (Padding).
//   3. Rendering: Geoms turn the records into Grobs which carry fully
//      resolved coordinates and colors; Chart draws them with gonum/plot.
//
// Nothing computed in step 3 feeds back into the data.
//
//
// Interval Strings
//
// Confidence intervals are given as "<point> (<lower>, <upper>)", e.g.
//     "1.177 (1.117, 1.241)"
// Negative numbers and scientific notation are fine. A malformed string
// yields a *ParseError naming the input.
//
//
// Category Layout
//
// Sub-grouped categories, e.g. women and men per plaque feature, are placed
// by a Layout: categories GroupSep apart, sub-groups spread over PairSep
// around the category center. Place fails with a *LayoutError if a
// category/sub-group combination is missing or duplicated.
//
//
// Errors
//
// The three error types are *ParseError, *LayoutError and *RenderError.
// None of them is recovered inside this package.
package figure
