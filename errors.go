package galaxyjukebox

import "errors"

// Sentinel errors returned by the NBS reader and score preprocessor.
var (
	ErrNotANBSFile     = errors.New("galaxyjukebox: not an NBS file")
	ErrUnsupportedNBS  = errors.New("galaxyjukebox: unsupported NBS version")
	ErrEmptySong       = errors.New("galaxyjukebox: song has no notes to convert")
	ErrTooManyLines    = errors.New("galaxyjukebox: too many lines for the requested layout")
	ErrInvalidSides    = errors.New("galaxyjukebox: sides must be -1, 1, 2 or 3")
)
