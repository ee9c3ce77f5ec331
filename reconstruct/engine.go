package reconstruct

import (
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tsawler/reflow/fitting"
	"github.com/tsawler/reflow/format"
	"github.com/tsawler/reflow/model"
)

// ErrUnsupportedFormat is returned when a document requests a format with no
// registered reconstructor. This aborts the whole document: it is a caller
// configuration error, not a transient condition.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Translations maps page numbers (as decimal strings) to per-region
// translated text, keyed by region id. A region absent from the map passes
// through with its original text unchanged.
type Translations map[string]map[string]string

// Reconstructor is implemented once per document format. Optimize pre-adjusts
// fonts and spacing document-wide before fitting; Reconstruct serializes the
// final pages, honoring each region's fitted text, adjusted bounding box and
// font size changes.
type Reconstructor interface {
	Optimize(doc *model.DocumentStructure) *model.DocumentStructure
	Reconstruct(doc *model.DocumentStructure, adjusted map[int][]*model.AdjustedRegion) ([]byte, error)
}

// EngineConfig holds configuration for the reconstruction engine
type EngineConfig struct {
	// Fitting configures the text fitting engine
	Fitting fitting.Config `yaml:"fitting"`

	// Conflict configures conflict detection and resolution
	Conflict fitting.ConflictConfig `yaml:"conflict"`
}

// DefaultEngineConfig returns sensible default configuration
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Fitting:  fitting.DefaultConfig(),
		Conflict: fitting.DefaultConflictConfig(),
	}
}

// Engine orchestrates document reconstruction. It is synchronous and keeps
// no state across calls; callers may run one engine per goroutine or share
// one across documents, but must not share region slices between concurrent
// calls.
type Engine struct {
	config   EngineConfig
	fitter   *fitting.Engine
	conflict *fitting.ConflictEngine
	writers  map[format.Format]Reconstructor
	log      *zap.Logger
}

// NewEngine creates an engine with default configuration and the built-in
// PDF, DOCX and EPUB reconstructors registered. A nil logger disables logging.
func NewEngine(log *zap.Logger) *Engine {
	return NewEngineWithConfig(DefaultEngineConfig(), log)
}

// NewEngineWithConfig creates an engine with custom configuration and the
// built-in reconstructors registered. A nil logger disables logging.
func NewEngineWithConfig(config EngineConfig, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}

	e := &Engine{
		config:   config,
		fitter:   fitting.NewEngineWithConfig(config.Fitting),
		conflict: fitting.NewConflictEngineWithConfig(config.Conflict),
		writers:  make(map[format.Format]Reconstructor),
		log:      log,
	}

	e.Register(format.PDF, NewPDFReconstructor())
	e.Register(format.DOCX, NewDOCXReconstructor())
	e.Register(format.EPUB, NewEPUBReconstructor())

	return e
}

// Register installs a reconstructor for a format, replacing any existing one.
func (e *Engine) Register(f format.Format, r Reconstructor) {
	e.writers[f] = r
}

// ReconstructDocument rebuilds the document with translated text fitted into
// the original layout and returns the serialized bytes.
//
// For every page it fits each translated region (untranslated regions pass
// through unchanged), detects conflicts among the fitted regions, resolves
// them in a single pass, and applies the resulting position shifts before
// serialization.
func (e *Engine) ReconstructDocument(doc *model.DocumentStructure, translations Translations) ([]byte, error) {
	writer, ok := e.writers[format.Parse(doc.Format)]
	if !ok {
		return nil, fmt.Errorf("no reconstructor for format %q: %w", doc.Format, ErrUnsupportedFormat)
	}

	if err := validateGeometry(doc); err != nil {
		// Malformed boxes are clamped downstream; worth surfacing, not fatal.
		e.log.Warn("document contains malformed geometry", zap.Error(err))
	}

	optimized := writer.Optimize(doc)

	adjusted := make(map[int][]*model.AdjustedRegion, len(optimized.Pages))
	for _, page := range optimized.Pages {
		adjusted[page.Number] = e.fitPage(page, translations[strconv.Itoa(page.Number)])
	}

	data, err := writer.Reconstruct(optimized, adjusted)
	if err != nil {
		return nil, fmt.Errorf("reconstructing %s document: %w", doc.Format, err)
	}

	e.log.Info("document reconstructed",
		zap.String("format", doc.Format),
		zap.Int("pages", len(optimized.Pages)),
		zap.Int("bytes", len(data)),
	)

	return data, nil
}

// fitPage fits every region of one page and runs the single-pass conflict
// cycle over the results.
func (e *Engine) fitPage(page *model.PageStructure, pageTranslations map[string]string) []*model.AdjustedRegion {
	regions := make([]*model.AdjustedRegion, 0, len(page.TextRegions))

	for _, region := range page.TextRegions {
		if translated, ok := pageTranslations[region.ID]; ok {
			regions = append(regions, e.fitter.Fit(region, translated))
		} else {
			regions = append(regions, passThrough(region))
		}
	}

	conflicts := e.conflict.DetectConflicts(regions)
	if len(conflicts) > 0 {
		resolutions := e.conflict.ResolveConflicts(conflicts, regions)
		regions = fitting.ApplyResolutions(regions, resolutions)

		e.log.Debug("resolved page conflicts",
			zap.Int("page", page.Number),
			zap.Int("conflicts", len(conflicts)),
			zap.Int("resolutions", len(resolutions)),
		)
	}

	return regions
}

// passThrough wraps an untranslated region as a perfectly fitting result.
func passThrough(region *model.TextRegion) *model.AdjustedRegion {
	return &model.AdjustedRegion{
		Region:     region,
		Text:       region.Text,
		BBox:       region.BBox,
		FitQuality: 1.0,
	}
}

// validateGeometry reports every degenerate bounding box in the document as
// one combined error, or nil when all boxes are valid.
func validateGeometry(doc *model.DocumentStructure) error {
	var err error

	for _, page := range doc.Pages {
		for _, region := range page.TextRegions {
			if !region.BBox.IsValid() {
				err = multierr.Append(err, fmt.Errorf(
					"page %d: region %s has degenerate bounds %.1fx%.1f",
					page.Number, region.ID, region.BBox.Width, region.BBox.Height))
			}
		}
		for _, elem := range page.VisualElements {
			if !elem.BBox.IsValid() {
				err = multierr.Append(err, fmt.Errorf(
					"page %d: visual element %s has degenerate bounds %.1fx%.1f",
					page.Number, elem.ID, elem.BBox.Width, elem.BBox.Height))
			}
		}
	}

	return err
}
