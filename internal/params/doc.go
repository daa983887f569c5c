// Package params turns raw parameter values into a validated Set.
//
// The recognized parameters are fixed; a profile only supplies their bounds,
// labels and choices. Schema describes them (it also drives the -describe
// template) and Bind checks supplied values against it.
package params
