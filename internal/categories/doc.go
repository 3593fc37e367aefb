// Package categories assigns workflows to service categories based on
// their integrations.
//
// Classification is derived at read time rather than stored, so category
// rules can change without reindexing. Rules are an ordered list of
// (name, substrings) pairs; the first rule whose substrings appear in
// any integration wins, and workflows matching nothing land in "Other".
// The built-in table can be replaced wholesale through configuration.
package categories
