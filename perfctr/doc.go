// Package perfctr parses captured likwid-perfctr console output.
//
// A log file holds the output of one or more benchmark invocations,
// each introduced by the "likwid-perfctr" command line. SplitRuns cuts
// a file into run blocks, ParseCommand recovers the invocation
// parameters from a block's header, and an Extractor pulls single
// metric values out of the result tables, whether they are printed as
// multi-threaded STAT summaries, single-threaded event rows with a
// counter column, or single-threaded derived metric rows. A Group
// declares which metrics make up an output table, and a Processor
// drives the whole pipeline over a set of files, writing one CSV file
// per group.
package perfctr
