// Package species reads and edits species records without modelling their
// full schema.
//
// A Record keeps the record's original JSON bytes and touches only the
// fields the sound replacer needs: the species name, the form names and the
// sound list of each form's first palette. Every other field passes through
// untouched, so a record written to the data pack differs from its source
// only in the sound lists that were replaced.
package species
