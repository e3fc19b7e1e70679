package domain

import (
	"fmt"
)

// RepairState is where the tool is in its one-shot lifecycle
type RepairState string

const (
	// RepairStateNotStarted means no repair record exists yet
	RepairStateNotStarted RepairState = "NotStarted"
	// RepairStateRunning means inspection and mutation are in progress
	RepairStateRunning RepairState = "Running"
	// RepairStatePendingNotice means a record is stored but the operator has not seen it
	RepairStatePendingNotice RepairState = "CompletedPendingNotice"
	// RepairStateDone means the notice was shown and the tool disabled itself
	RepairStateDone RepairState = "Done"
)

// RepairTransition represents an action that can change repair state
type RepairTransition string

const (
	// TransitionStart begins a repair run
	TransitionStart RepairTransition = "Start"
	// TransitionSkip records an obsolete-schema notice without running
	TransitionSkip RepairTransition = "Skip"
	// TransitionRecord persists the run's audit trail
	TransitionRecord RepairTransition = "Record"
	// TransitionNotify shows the audit trail and disables the tool
	TransitionNotify RepairTransition = "Notify"
)

// RepairStateMachine enforces valid state transitions for the repair lifecycle.
type RepairStateMachine struct {
	transitions map[stateTransitionKey]RepairState
}

type stateTransitionKey struct {
	state      RepairState
	transition RepairTransition
}

// NewRepairStateMachine creates the state machine.
// State diagram:
//
//	[NotStarted] ──Start──▶ [Running] ──Record──▶ [CompletedPendingNotice] ──Notify──▶ [Done]
//	     │                                               ▲
//	     └──────────────────Skip─────────────────────────┘
func NewRepairStateMachine() *RepairStateMachine {
	sm := &RepairStateMachine{
		transitions: make(map[stateTransitionKey]RepairState),
	}

	sm.addTransition(RepairStateNotStarted, TransitionStart, RepairStateRunning)
	sm.addTransition(RepairStateNotStarted, TransitionSkip, RepairStatePendingNotice)
	sm.addTransition(RepairStateRunning, TransitionRecord, RepairStatePendingNotice)
	sm.addTransition(RepairStatePendingNotice, TransitionNotify, RepairStateDone)

	return sm
}

func (sm *RepairStateMachine) addTransition(from RepairState, via RepairTransition, to RepairState) {
	key := stateTransitionKey{state: from, transition: via}
	sm.transitions[key] = to
}

// Transition returns the new state or an error if the transition is invalid.
func (sm *RepairStateMachine) Transition(current RepairState, action RepairTransition) (RepairState, error) {
	key := stateTransitionKey{state: current, transition: action}
	next, ok := sm.transitions[key]
	if !ok {
		return current, fmt.Errorf("invalid state transition: cannot %s from %s", action, current)
	}
	return next, nil
}

// CanTransition checks if a transition is valid without performing it.
func (sm *RepairStateMachine) CanTransition(current RepairState, action RepairTransition) bool {
	key := stateTransitionKey{state: current, transition: action}
	_, ok := sm.transitions[key]
	return ok
}

// IsTerminal returns true for Done.
func (sm *RepairStateMachine) IsTerminal(state RepairState) bool {
	return state == RepairStateDone
}
