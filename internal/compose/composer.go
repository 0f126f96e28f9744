package compose

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/curate/pkg/types"
)

// Mode selects how a composition session is seeded.
type Mode string

// Entry modes.
const (
	ModePlaceFirst  Mode = "place-first"
	ModePromptFirst Mode = "prompt-first"
	ModeScratch     Mode = "scratch"
)

// Entry is the payload for Initialize. Place is read in place-first mode,
// Prompt in prompt-first mode; scratch mode reads neither.
type Entry struct {
	Mode   Mode
	Place  types.Place
	Prompt string
}

// Catalog is the read-only view of places the composer needs.
// *catalog.Catalog satisfies it.
type Catalog interface {
	Categories() []string
	HasCategory(category string) bool
	InCategory(category string) []types.Place
	IndexInCategory(place types.Place) (int, bool)
}

// Composer applies composition transitions against a catalog. It holds no
// session state; step lists belong to the caller.
type Composer struct {
	catalog Catalog
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string
}

// Option configures a Composer.
type Option func(*Composer)

// WithLogger sets the logger used for transition events.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Composer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Composer) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIDGenerator overrides how experience IDs are minted.
func WithIDGenerator(newID func() string) Option {
	return func(c *Composer) {
		if newID != nil {
			c.newID = newID
		}
	}
}

// New returns a Composer over catalog.
func New(catalog Catalog, opts ...Option) *Composer {
	c := &Composer{
		catalog: catalog,
		logger:  zap.NewNop(),
		now:     time.Now,
		newID:   generateUUID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// generateUUID generates a new UUID v7 for experience IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// Initialize seeds a step list for the entry mode.
// Returns ErrEmptyCatalog when the catalog has no categories and
// ErrUnknownMode for an unrecognised mode.
func (c *Composer) Initialize(entry Entry) (types.StepList, error) {
	switch entry.Mode {
	case ModePlaceFirst:
		return c.PlaceFirst(entry.Place)
	case ModePromptFirst:
		return c.PromptFirst(entry.Prompt)
	case ModeScratch:
		return c.Scratch()
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownMode, entry.Mode)
	}
}

// PlaceFirst starts from a chosen place: the place itself, locked, followed
// by two unlocked steps from the pairing table for its category.
func (c *Composer) PlaceFirst(place types.Place) (types.StepList, error) {
	if err := c.requireCategories(); err != nil {
		return nil, err
	}
	idx, ok := c.catalog.IndexInCategory(place)
	if !ok {
		return nil, fmt.Errorf("%w: %d %q in %q", types.ErrPlaceNotFound, place.ID, place.Name, place.Category)
	}

	steps := types.StepList{
		{Category: place.Category, Cursor: idx, Locked: true},
		{Category: c.recommendedCategory(place.Category, 0)},
		{Category: c.recommendedCategory(place.Category, 1)},
	}
	c.logger.Debug("session initialized",
		zap.String("mode", string(ModePlaceFirst)),
		zap.Int("place_id", place.ID),
		zap.Strings("categories", steps.Categories()),
	)
	return steps, nil
}

// PromptFirst classifies a free-text prompt into suggested steps. The
// classification is synchronous; any artificial delay belongs to the caller.
func (c *Composer) PromptFirst(prompt string) (types.StepList, error) {
	if err := c.requireCategories(); err != nil {
		return nil, err
	}
	steps := c.stepsFor(classifyPrompt(prompt))
	c.logger.Debug("session initialized",
		zap.String("mode", string(ModePromptFirst)),
		zap.String("prompt", prompt),
		zap.Strings("categories", steps.Categories()),
	)
	return steps, nil
}

// Scratch returns the fixed two-step starting list.
func (c *Composer) Scratch() (types.StepList, error) {
	if err := c.requireCategories(); err != nil {
		return nil, err
	}
	steps := c.stepsFor(scratchCategories)
	c.logger.Debug("session initialized",
		zap.String("mode", string(ModeScratch)),
		zap.Strings("categories", steps.Categories()),
	)
	return steps, nil
}

// RecommendedCategory returns the category suggested at position after an
// anchor category. Missing anchors, positions, or paired categories the
// catalog does not carry fall back to the first enumerated category.
// Returns "" only for a catalog without categories.
func (c *Composer) RecommendedCategory(anchor string, position int) string {
	return c.recommendedCategory(anchor, position)
}

func (c *Composer) recommendedCategory(anchor string, position int) string {
	if pair, ok := pairings[anchor]; ok && position >= 0 && position < len(pair) {
		return c.knownCategory(pair[position])
	}
	return c.firstCategory()
}

// stepsFor builds unlocked steps at cursor 0 for categories.
func (c *Composer) stepsFor(categories []string) types.StepList {
	steps := make(types.StepList, len(categories))
	for i, cat := range categories {
		steps[i] = types.Step{Category: c.knownCategory(cat)}
	}
	return steps
}

// knownCategory keeps every produced step on a category the catalog knows.
func (c *Composer) knownCategory(category string) string {
	if c.catalog.HasCategory(category) {
		return category
	}
	return c.firstCategory()
}

func (c *Composer) firstCategory() string {
	cats := c.catalog.Categories()
	if len(cats) == 0 {
		return ""
	}
	return cats[0]
}

func (c *Composer) requireCategories() error {
	if len(c.catalog.Categories()) == 0 {
		return types.ErrEmptyCatalog
	}
	return nil
}

func indexError(index, length int) error {
	return fmt.Errorf("%w: index %d, %d steps", types.ErrIndexOutOfRange, index, length)
}
