// Package build runs a complete site build.
//
// A build is a state machine over
//
//	init -> load_templates -> index_posts -> assign_slugs -> render_pages -> write_pages -> done
//
// with a terminal failed state reachable from every stage. Nothing is retried.
// The first error stops the build and is returned wrapped in a *StageError, so
// errors.As still reaches the original error. Output is staged next to the
// output directory and only promoted after every file was written, which
// leaves the previous output untouched when a build fails.
package build
