package patch

import "fmt"

// Step is one command in a flow script: a dialog/event sequencer's
// single instruction, addressed by its index within the script. Next
// chains to the following step by default; Branches overrides specific
// switch cases to jump elsewhere (or terminate the script, when the
// target is nil).
type Step struct {
	Index    int
	Kind     int
	Value    int
	Arg1     int
	Next     *int
	Branches map[int]*int
}

// FlowScript is an ordered, mutable sequence of Steps — the Go
// equivalent of the original source's macro-driven step editor
// (patch/flow.rs), expressed here as explicit methods instead of a
// `apply!`/`action!` macro pair, since Go has no macro system to mirror
// it with.
type FlowScript struct {
	Course string
	Name   string
	steps  map[int]*Step
}

// NewFlowScript wraps a flat step list (as decoded from a course's
// archive) for editing.
func NewFlowScript(course, name string, steps []*Step) *FlowScript {
	f := &FlowScript{Course: course, Name: name, steps: make(map[int]*Step, len(steps))}
	for _, s := range steps {
		f.steps[s.Index] = s
	}
	return f
}

func (f *FlowScript) step(index int) (*Step, error) {
	s, ok := f.steps[index]
	if !ok {
		return nil, fmt.Errorf("patch: %s/%s: no step at index %d", f.Course, f.Name, index)
	}
	return s, nil
}

// SetNext rewires step index's default successor — the equivalent of
// the original's bare `[index] => next` edit.
func (f *FlowScript) SetNext(index int, next *int) error {
	s, err := f.step(index)
	if err != nil {
		return err
	}
	s.Next = next
	return nil
}

// SkipStep sets step index's default successor to skipTo, cutting the
// steps that followed it out of the flow — used for the camera pans and
// "we're cut off!" textboxes a skip setting removes.
func (f *FlowScript) SkipStep(index int, skipTo int) error {
	return f.SetNext(index, &skipTo)
}

// SetBranch rewires a single switch case of a branching step, leaving
// its other cases untouched — the equivalent of the original's
// `[index] switch { [case] => next, ... }` edit.
func (f *FlowScript) SetBranch(index, caseValue int, next *int) error {
	s, err := f.step(index)
	if err != nil {
		return err
	}
	if s.Branches == nil {
		s.Branches = make(map[int]*int)
	}
	s.Branches[caseValue] = next
	return nil
}

// ApplyTrialSkip rewires the three Lorule Castle trial gatehouse scripts
// so each trial's door opens immediately instead of waiting on the
// platform puzzle — the flow-script equivalent of SkipTrials, in the
// same single-purpose-function style as the original's
// patch_thieves_hideout.
func ApplyTrialSkip(flows map[string]*FlowScript) error {
	trialGatehouses := map[string]int{
		"FieldDark_2F_TrialA": 0,
		"FieldDark_2F_TrialB": 0,
		"FieldDark_2F_TrialC": 0,
	}
	for name, doneStep := range trialGatehouses {
		flow, ok := flows[name]
		if !ok {
			return fmt.Errorf("patch: trial skip: flow script %q not loaded", name)
		}
		if err := flow.SkipStep(1, doneStep); err != nil {
			return fmt.Errorf("patch: trial skip: %w", err)
		}
	}
	return nil
}
