// Package fitting decides how translated text is made to fit the bounding
// box of the original text it replaces.
//
// The [Engine] maps an original region plus a translated string to an
// [model.AdjustedRegion] by estimating the space the translation needs and
// choosing one of four strategies: no change, a minor font shrink, a font
// shrink combined with tighter line spacing, or truncation. Text measurement
// uses a deliberately approximate character-width heuristic (see
// [CharWidthFactor]) rather than real font shaping, so it can be swapped for
// a text-shaping backend without touching the strategy logic.
//
// The [ConflictEngine] then checks the fitted regions of a page against each
// other, reporting overlaps and under-spacing as [model.LayoutConflict]
// values and producing reposition resolutions. Applying a resolution is a
// pure function: it returns a new region value and leaves the input alone.
package fitting
