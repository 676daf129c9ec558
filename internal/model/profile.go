package model

import "encoding/json"

type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestDeclined RequestStatus = "DECLINED"
)

// ProfileChangeRequest is a user's request to change profile fields,
// reviewed by an admin. ChangeData is the server's JSON string of
// {"field": {"old": ..., "new": ...}}.
type ProfileChangeRequest struct {
	RequestID    int64         `json:"requestId"`
	User         User          `json:"user"`
	ChangeData   string        `json:"changeData"`
	Status       RequestStatus `json:"status"`
	AdminComment string        `json:"adminComment"`
	CreatedAt    Timestamp     `json:"createdAt"`
}

// FieldChange is one requested field edit.
type FieldChange struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// ProfileChanges maps a profile field name to its requested edit.
type ProfileChanges map[string]FieldChange

// Changes decodes ChangeData. A blank ChangeData yields an empty map.
func (r ProfileChangeRequest) Changes() (ProfileChanges, error) {
	changes := ProfileChanges{}
	if r.ChangeData == "" {
		return changes, nil
	}
	if err := json.Unmarshal([]byte(r.ChangeData), &changes); err != nil {
		return nil, err
	}
	return changes, nil
}
