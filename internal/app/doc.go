// Package app owns the application lifecycle: configuration, logger setup,
// and the orchestration of the compile-and-run pipeline.
//
// The pipeline is single-threaded and synchronous end to end. The only call
// that blocks for external work is the final child-process invocation of the
// generated launcher.
package app
