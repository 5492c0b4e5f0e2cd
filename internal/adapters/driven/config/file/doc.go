// Package file provides the TOML-backed configuration store.
//
// Keys are addressed in dot notation ("storage.sink") and written back as
// nested TOML tables, so a hand-edited config.toml and one written by
// `elnmap config set` look the same.
package file
