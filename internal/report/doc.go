// Package report defines the bunker analysis report kinds, the fields each
// kind collects, their validation rules, and the derived and laboratory
// values filled in on top of the operator's answers. The output of a build
// is the field map the document pipeline consumes.
package report
