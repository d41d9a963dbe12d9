package models

// ReviewMode distinguishes a learner's first exposure from an ordinary
// review pass.
type ReviewMode string

const (
	// ModeInitial is returned for a learner with no review history.
	ModeInitial ReviewMode = "initial"
	// ModeReview is returned once at least one outcome has been recorded.
	ModeReview ReviewMode = "review"
)

// ReviewSession is the ephemeral batch of words chosen for presentation.
// It is never persisted; outcomes are committed one word at a time.
type ReviewSession struct {
	Mode  ReviewMode `json:"mode"`
	Words []Word     `json:"words"`
}
