// Package dispatch sizes GPU compute dispatches over the fixed terrain grid.
//
// A dispatch covers a fraction of the grid's cells. The planner turns that
// fraction into a covered-cell count and a work-group count, then lays the
// counts out for single-pass and multi-pass pipelines. Multi-pass sequences
// of three to six stages carry one reduction stage in slot 1, sized with a
// coarser fan-in than the per-cell stages.
//
// Every function is pure. Invalid input is rejected with a sentinel error
// and never corrected.
package dispatch
