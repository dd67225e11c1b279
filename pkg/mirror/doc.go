// Package mirror reproduces a source directory tree under a destination
// root, one way and incrementally: destination directories are created as
// needed, a file is copied only when the source copy is strictly newer than
// an existing destination copy, and destination-only entries are left alone
// unless the caller asks for a clean start. A failed file copy is logged and
// does not stop the walk; the only hard precondition is that the destination
// must not sit inside the source.
package mirror
