package notification

type NotificationResponse struct {
	ID             string  `json:"id"`
	EventType      string  `json:"event_type"`
	Title          string  `json:"title"`
	Body           string  `json:"body"`
	LeaveRequestID *string `json:"leave_request_id,omitempty"`
	IsRead         bool    `json:"is_read"`
	ReadAt         *string `json:"read_at,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

type ListNotificationQuery struct {
	UnreadOnly bool `form:"unread_only"`
}

type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}
