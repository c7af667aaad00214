// Package batch maps many inputs, such as the lines of an expression file,
// to results in fixed-size batches with bounded concurrency.
//
// Results are returned in input order whatever order batches finish in, and
// the first failure cancels the batches still waiting to run.
package batch
