package service

// Action is a forward status move offered to the user.
type Action string

const (
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
)

// transitions defines the only status moves a client may request.
// CREATED and TODO are one pre-work state; nothing leaves DONE and nothing moves backward.
var transitions = map[Status]Status{
	StatusCreated:    StatusInProgress,
	StatusTodo:       StatusInProgress,
	StatusInProgress: StatusDone,
}

// CanTransitionTo returns true if a task in s may be moved to target.
func (s Status) CanTransitionTo(target Status) bool {
	next, ok := transitions[s]
	return ok && next == target
}

// NextAction returns the single action available from s, if any.
func (s Status) NextAction() (Action, bool) {
	switch transitions[s] {
	case StatusInProgress:
		return ActionStart, true
	case StatusDone:
		return ActionComplete, true
	default:
		return "", false
	}
}

// Target returns the status an action moves a task to.
func (a Action) Target() Status {
	switch a {
	case ActionStart:
		return StatusInProgress
	case ActionComplete:
		return StatusDone
	default:
		return ""
	}
}

// Display returns the button label for the action.
func (a Action) Display() string {
	switch a {
	case ActionStart:
		return "Start"
	case ActionComplete:
		return "Complete"
	default:
		return string(a)
	}
}
