package samurai

import (
	"fmt"
	"strconv"
	"strings"
)

// Action is one atomic step of a plan, encoded as its protocol code.
type Action int8

const (
	actionAttack Action = 1 // + direction
	actionMove   Action = 5 // + direction

	Appear Action = 9
	Hide   Action = 10
)

// MaxCost is the per-turn action budget.
const MaxCost = 7

var actionCosts = [...]int{-1, 4, 4, 4, 4, 2, 2, 2, 2, 1, 1}

// Attack returns the attack action toward d.
func Attack(d Direction) Action {
	if !d.Valid() {
		panic(fmt.Sprintf("samurai: attack in invalid direction %d", d))
	}
	return actionAttack + Action(d)
}

// Move returns the move action toward d.
func Move(d Direction) Action {
	if !d.Valid() {
		panic(fmt.Sprintf("samurai: move in invalid direction %d", d))
	}
	return actionMove + Action(d)
}

// Valid reports whether a is a recognized action code.
func (a Action) Valid() bool {
	return a >= actionAttack && a <= Hide
}

// IsAttack reports whether a is an attack.
func (a Action) IsAttack() bool {
	return a >= actionAttack && a < actionAttack+DirectionCount
}

// IsMove reports whether a is a move.
func (a Action) IsMove() bool {
	return a >= actionMove && a < actionMove+DirectionCount
}

// Direction returns the direction of an attack or move.
func (a Action) Direction() Direction {
	switch {
	case a.IsAttack():
		return Direction(a - actionAttack)
	case a.IsMove():
		return Direction(a - actionMove)
	default:
		panic(fmt.Sprintf("samurai: action %d has no direction", a))
	}
}

// Cost returns the budget consumed by a, or -1 for unknown codes.
func (a Action) Cost() int {
	if !a.Valid() {
		return -1
	}
	return actionCosts[a]
}

func (a Action) String() string {
	switch {
	case a.IsAttack():
		return "attack-" + a.Direction().String()
	case a.IsMove():
		return "move-" + a.Direction().String()
	case a == Appear:
		return "appear"
	case a == Hide:
		return "hide"
	default:
		return "invalid(" + strconv.Itoa(int(a)) + ")"
	}
}

// Plan is an ordered sequence of actions executed in one turn.
type Plan []Action

// Cost returns the sum of action costs. Unknown codes count as zero.
func (p Plan) Cost() int {
	total := 0
	for _, a := range p {
		if c := a.Cost(); c > 0 {
			total += c
		}
	}
	return total
}

// Displacement returns the net movement of the plan.
func (p Plan) Displacement() Point {
	var d Point
	for _, a := range p {
		if a.IsMove() {
			d = d.Add(a.Direction().Vector())
		}
	}
	return d
}

// With returns a new plan with actions appended. p is left untouched.
func (p Plan) With(actions ...Action) Plan {
	out := make(Plan, 0, len(p)+len(actions))
	out = append(out, p...)
	return append(out, actions...)
}

// Codes returns the protocol codes of the plan, without the terminating zero.
func (p Plan) Codes() []int {
	codes := make([]int, len(p))
	for i, a := range p {
		codes[i] = int(a)
	}
	return codes
}

// PlanFromCodes decodes protocol codes. A zero code terminates the plan.
func PlanFromCodes(codes []int) (Plan, error) {
	plan := Plan{}
	for i, c := range codes {
		if c == 0 {
			return plan, nil
		}
		a := Action(c)
		if c < 0 || c > int(Hide) || !a.Valid() {
			return nil, fmt.Errorf("action %d: unknown code %d", i, c)
		}
		plan = append(plan, a)
	}
	return plan, nil
}

// String formats the plan as its wire form: codes separated by spaces and a
// terminating zero.
func (p Plan) String() string {
	var b strings.Builder
	for _, a := range p {
		b.WriteString(strconv.Itoa(int(a)))
		b.WriteByte(' ')
	}
	b.WriteByte('0')
	return b.String()
}

// ParsePlan parses the wire form produced by Plan.String.
func ParsePlan(s string) (Plan, error) {
	fields := strings.Fields(s)
	codes := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("parse plan: %w", err)
		}
		codes = append(codes, n)
		if n == 0 {
			break
		}
	}
	return PlanFromCodes(codes)
}
