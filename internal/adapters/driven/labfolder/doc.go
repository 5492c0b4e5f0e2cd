// Package labfolder reads source entries from a labfolder project export.
//
// An export is a JSON document holding the project's entries, either as
// a top-level array or under an "entries" key. Each entry carries an id,
// its tags and its elements; elements have an element_type of DATA, TEXT
// or TABLE with the payload in labfolder_data or content.
package labfolder
