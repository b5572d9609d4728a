// Package application wires one squadconv invocation together: stack
// resolution, settings loading, logging and the transcoder. It keeps the main
// package focused on CLI parsing and exit handling.
package application
