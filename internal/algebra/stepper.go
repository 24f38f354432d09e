package algebra

// NotAvailable is the value reported for a failed step and for the final
// product of an empty or halted reduction.
const NotAvailable = "?"

// StepperState is the state of a left-to-right reduction.
type StepperState string

const (
	StateEmpty        StepperState = "empty"
	StateAccumulating StepperState = "accumulating"
	StateHalted       StepperState = "halted"
)

// Step records one stage of a reduction. Step 1 carries only the first
// element; later steps carry the operands that produced Value.
type Step struct {
	Step  int    `json:"step" yaml:"step"`
	Value string `json:"value" yaml:"value"`
	Left  string `json:"left,omitempty" yaml:"left,omitempty"`
	Right string `json:"right,omitempty" yaml:"right,omitempty"`
	Error bool   `json:"error,omitempty" yaml:"error,omitempty"`
}

// Stepper folds elements into a running product one at a time.
//
// Transitions: Empty -> Accumulating on the first valid element,
// Accumulating -> Accumulating on each valid element, and any state -> Halted
// on an invalid operand. Halted is terminal: further pushes are ignored.
type Stepper struct {
	group *Group
	state StepperState
	acc   string
	steps []Step
}

// NewStepper starts an empty reduction over g.
func NewStepper(g *Group) *Stepper {
	return &Stepper{group: g, state: StateEmpty}
}

// Push folds label into the running product and returns the recorded step.
// Once halted, Push records nothing and returns the zero Step and false.
func (s *Stepper) Push(label string) (Step, bool) {
	switch s.state {
	case StateHalted:
		return Step{}, false
	case StateEmpty:
		step := Step{Step: 1, Value: label}
		if _, ok := s.group.Index(label); !ok {
			step.Value = NotAvailable
			step.Error = true
			s.state = StateHalted
		} else {
			s.acc = label
			s.state = StateAccumulating
		}
		s.steps = append(s.steps, step)
		return step, true
	}

	step := Step{Step: len(s.steps) + 1, Left: s.acc, Right: label}
	product, err := s.group.Product(s.acc, label)
	if err != nil {
		step.Value = NotAvailable
		step.Error = true
		s.state = StateHalted
	} else {
		step.Value = product
		s.acc = product
	}
	s.steps = append(s.steps, step)
	return step, true
}

// State returns the current state.
func (s *Stepper) State() StepperState { return s.state }

// Steps returns a copy of the recorded steps.
func (s *Stepper) Steps() []Step {
	return append([]Step(nil), s.steps...)
}

// Final returns the running product, or NotAvailable and false when the
// reduction is empty or halted.
func (s *Stepper) Final() (string, bool) {
	if s.state != StateAccumulating {
		return NotAvailable, false
	}
	return s.acc, true
}

// Trace is the complete record of reducing a sequence.
type Trace struct {
	Steps []Step       `json:"steps" yaml:"steps"`
	Final string       `json:"final" yaml:"final"`
	State StepperState `json:"state" yaml:"state"`
}

// Reduce folds seq over g left to right, stopping at the first label that is
// not a member.
func Reduce(g *Group, seq []string) *Trace {
	s := NewStepper(g)
	for _, label := range seq {
		if _, ok := s.Push(label); !ok {
			break
		}
	}
	final, _ := s.Final()
	steps := s.Steps()
	if steps == nil {
		steps = []Step{}
	}
	return &Trace{Steps: steps, Final: final, State: s.State()}
}
