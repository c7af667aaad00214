// Package listview provides the scrolling option list shown under the
// interactive entry field.
//
// The list renders a fixed-height window around the selection and accepts
// up/down, page and home/end keys. Printable keys are ignored so the text
// input above it keeps receiving them.
package listview
