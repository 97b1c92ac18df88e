package models

// Event announces a content change to connected admin panels.
type Event struct {
	Kind   string `json:"kind"`   // projects, professionals, slides, homewords, ...
	Action string `json:"action"` // created, updated, deleted
	ID     string `json:"id"`
}

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)
