// Package gen emits dbus-glib client stub code from interface
// descriptors.
//
// A Context owns the two output buffers for one generation run: the
// declarations artifact (a C header with prototypes and inline
// signal-registration helpers) and the definitions artifact (a C
// source file with one synchronous blocking call stub per method).
// The emitter never touches the filesystem; WriteArtifacts flushes
// the finished buffers in one step so a failed run leaves nothing
// half-written worth trusting.
package gen
