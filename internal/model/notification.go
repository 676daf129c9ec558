package model

type Notification struct {
	ID                      int64     `json:"id"`
	Message                 string    `json:"message"`
	IsRead                  bool      `json:"read"`
	RelatedOrderID          *int64    `json:"relatedOrderId,omitempty"`
	RelatedProfileRequestID *int64    `json:"relatedProfileRequestId,omitempty"`
	CreatedAt               Timestamp `json:"createdAt"`
}
