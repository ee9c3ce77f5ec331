// Package reconstruct drives whole-document reconstruction: it fits
// translated text into every region, detects and resolves the layout
// conflicts the fitting introduced, and hands the adjusted pages to a
// format-specific [Reconstructor] for byte serialization.
//
// The [Engine] dispatches on the document's format string through a flat
// registry; requesting a format with no registered reconstructor is a caller
// error and aborts the document ([ErrUnsupportedFormat]). Everything else,
// such as truncated regions or malformed geometry, is recorded as data on
// the output and never stops processing: a document with a registered
// reconstructor always produces bytes.
//
// Conflict resolution is a single pass per page. Applied resolutions are not
// re-checked, so residual conflicts are possible; callers that need a
// guarantee can re-run detection on the result.
package reconstruct
