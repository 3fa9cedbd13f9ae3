// Package source loads carousel cards from files, standard input or the
// output of a command, optionally filtered with a CEL expression and
// reloaded when a file changes.
package source
