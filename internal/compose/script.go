package compose

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/curate/pkg/types"
)

// Op names. Scripts address steps and candidates from 1, as they are shown.
const (
	OpAdd    = "add"
	OpRemove = "remove"
	OpUp     = "up"
	OpDown   = "down"
	OpLock   = "lock"
	OpNext   = "next"
	OpPick   = "pick"
	OpAssign = "assign"
)

// Op is one scripted edit: "add", "NAME:STEP" or "NAME:STEP=VALUE".
type Op struct {
	Name  string
	Step  int
	Value int
}

func (o Op) String() string {
	switch o.Name {
	case OpAdd:
		return o.Name
	case OpPick, OpAssign:
		return fmt.Sprintf("%s:%d=%d", o.Name, o.Step, o.Value)
	default:
		return fmt.Sprintf("%s:%d", o.Name, o.Step)
	}
}

// ParseOp reads one op. Errors wrap types.ErrInvalidOp.
func ParseOp(s string) (Op, error) {
	s = strings.TrimSpace(s)
	name, rest, hasStep := strings.Cut(s, ":")
	name = strings.ToLower(name)

	invalid := func(format string, args ...any) (Op, error) {
		return Op{}, fmt.Errorf("%w %q: %s", types.ErrInvalidOp, s, fmt.Sprintf(format, args...))
	}

	if name == OpAdd {
		if hasStep {
			return invalid("add takes no step")
		}
		return Op{Name: OpAdd}, nil
	}

	switch name {
	case OpRemove, OpUp, OpDown, OpLock, OpNext, OpPick, OpAssign:
	default:
		return invalid("unknown operation")
	}
	if !hasStep {
		return invalid("missing step number")
	}

	needsValue := name == OpPick || name == OpAssign
	stepText, valueText, hasValue := strings.Cut(rest, "=")
	if hasValue != needsValue {
		if needsValue {
			return invalid("expected %s:STEP=N", name)
		}
		return invalid("unexpected value")
	}

	step, err := strconv.Atoi(stepText)
	if err != nil {
		return invalid("step %q is not a number", stepText)
	}
	op := Op{Name: name, Step: step}
	if needsValue {
		if op.Value, err = strconv.Atoi(valueText); err != nil {
			return invalid("value %q is not a number", valueText)
		}
	}
	return op, nil
}

// ParseScript parses every op, stopping at the first bad one.
func ParseScript(lines []string) ([]Op, error) {
	ops := make([]Op, 0, len(lines))
	for _, line := range lines {
		op, err := ParseOp(line)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// PlaceLookup finds catalog places by ID for assign ops.
// *catalog.Catalog satisfies it.
type PlaceLookup interface {
	PlaceByID(id int) (types.Place, error)
}

// Apply runs op against steps. pick selects the Nth candidate of the
// step's browse list; assign binds the step to a catalog place and fails
// with ErrInvalidOp when places is nil.
func (c *Composer) Apply(steps types.StepList, op Op, places PlaceLookup) (types.StepList, error) {
	i := op.Step - 1
	switch op.Name {
	case OpAdd:
		return c.AddStep(steps)
	case OpRemove:
		return c.RemoveStep(steps, i)
	case OpUp:
		return c.MoveUp(steps, i)
	case OpDown:
		return c.MoveDown(steps, i)
	case OpLock:
		return c.ToggleLock(steps, i)
	case OpNext:
		return c.Regenerate(steps, i)
	case OpPick:
		return c.RegenerateAt(steps, i, op.Value-1)
	case OpAssign:
		if places == nil {
			return nil, fmt.Errorf("%w: assign needs a place lookup", types.ErrInvalidOp)
		}
		place, err := places.PlaceByID(op.Value)
		if err != nil {
			return nil, err
		}
		return c.AssignPlace(steps, i, place)
	}
	return nil, fmt.Errorf("%w: %q", types.ErrInvalidOp, op.Name)
}

// Plan is a whole scripted session: how to seed, the edits to apply in
// order, and the details to finalize with.
type Plan struct {
	Entry   Entry
	Ops     []Op
	Details Details
}

// Outcome is the result of running a Plan.
type Outcome struct {
	Steps      types.StepList
	Experience types.Experience
}

// Run seeds a step list from plan.Entry, applies plan.Ops and finalizes.
// Errors name the failing op.
func (c *Composer) Run(plan Plan, places PlaceLookup) (Outcome, error) {
	steps, err := c.Initialize(plan.Entry)
	if err != nil {
		return Outcome{}, err
	}
	for _, op := range plan.Ops {
		if steps, err = c.Apply(steps, op, places); err != nil {
			return Outcome{}, fmt.Errorf("op %s: %w", op, err)
		}
	}
	return Outcome{
		Steps:      steps,
		Experience: c.Finalize(steps, plan.Details),
	}, nil
}

// StepView is the serialisable form of a step and its current place.
// Place is nil when the category has no candidates.
type StepView struct {
	Category string       `json:"category"`
	Cursor   int          `json:"cursor"`
	Locked   bool         `json:"locked"`
	Place    *types.Place `json:"place"`
}

// Views resolves steps into their serialisable form.
func (c *Composer) Views(steps types.StepList) []StepView {
	resolved := c.ResolveAll(steps)
	views := make([]StepView, len(resolved))
	for i, r := range resolved {
		views[i] = StepView{Category: r.Step.Category, Cursor: r.Step.Cursor, Locked: r.Step.Locked}
		if r.OK {
			p := r.Place
			views[i].Place = &p
		}
	}
	return views
}
