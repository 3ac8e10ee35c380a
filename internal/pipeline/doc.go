// Package pipeline runs named build tasks in dependency order.
//
// A Graph is validated on construction: names must be unique, every
// dependency must name a known task and the graph must be acyclic. Run
// executes the requested tasks plus everything they depend on, one at a
// time, in topological order with ties broken by name. A task only runs
// once every task it depends on has completed; after the first failure no
// further task runs and the remainder are reported as skipped.
package pipeline
