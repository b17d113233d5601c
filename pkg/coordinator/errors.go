package coordinator

import (
	"errors"
	"fmt"
)

var (
	ErrNoSession      = errors.New("no authenticated session")
	ErrAlreadyLoaded  = errors.New("plots already loaded for this session")
	ErrCommitInFlight = errors.New("a plot is already being created")
	ErrNotDrawing     = errors.New("not in drawing mode")
	ErrNoSelection    = errors.New("no plot selected")
	ErrFutureDate     = errors.New("observation date is in the future")
	ErrClosed         = errors.New("coordinator closed")
)

const createFailedMessage = "Failed to create plot. Please try again."

type Reason int

const (
	ReasonEmptyName Reason = iota + 1
	ReasonDuplicateName
	ReasonTooFewVertices
	ReasonEmptyCropType
	ReasonInvalidFertigation
)

// ValidationError is a local rejection; nothing was sent to the server.
type ValidationError struct {
	Reason   Reason
	Count    int    // ReasonTooFewVertices
	Min      int    // ReasonTooFewVertices
	Conflict string // ReasonDuplicateName: the existing plot's name
	Msg      string // ReasonInvalidFertigation
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonEmptyName:
		return "Please enter a plot name."
	case ReasonDuplicateName:
		return fmt.Sprintf("A plot named %q already exists. Please choose a different name.", e.Conflict)
	case ReasonTooFewVertices:
		return fmt.Sprintf("A plot needs at least %d points; %d placed so far.", e.Min, e.Count)
	case ReasonEmptyCropType:
		return "Please enter a crop type."
	default:
		return e.Msg
	}
}
