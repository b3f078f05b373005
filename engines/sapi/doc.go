// Package sapi adapts the speech engine contract to Microsoft SAPI on
// Windows. It is a call-through shim: voice selection, prosody and
// playback are handled by the native speech stack, and failures from that
// stack are the only source of the error state. On other platforms the
// backend registers but refuses to construct.
package sapi
