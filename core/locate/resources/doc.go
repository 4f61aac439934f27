/*
Package resources resolves the input files of a font generation and manages
its output directory.

Input paths are given relative to either the directory of the configuration
file or the work directory. A Resolver turns them into checked paths; a
missing input is a configuration error, reported before any output is
written.

Loading glyph sources may be a time-consuming task, so the loader works in an
async/await fashion by returning a promise. Functions named

   Load…(…)

will return a resource-specific promise type, which the client will call later
to receive the loaded resource. The call to the promise-function will then block
until loading has completed.

Output is written to a Staging directory inside the output directory first and
moved into place only when the generation succeeded.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'lcdfont.resources'.
func tracer() tracing.Trace {
	return tracing.Select("lcdfont.resources")
}
