package entities

import "time"

// Notification is an inbox message addressed to a role or to one user.
type Notification struct {
	ID            string    `json:"id"`
	Message       string    `json:"message"`
	RecipientRole Role      `json:"recipient_role,omitempty"`
	RecipientID   string    `json:"recipient_id,omitempty"`
	RemovalID     string    `json:"removal_id,omitempty"`
	Read          bool      `json:"read"`
	CreatedAt     time.Time `json:"created_at"`
}

func NotifyRole(role Role, message, removalID string) Notification {
	return Notification{Message: message, RecipientRole: role, RemovalID: removalID}
}

func NotifyUser(userID, message, removalID string) Notification {
	return Notification{Message: message, RecipientID: userID, RemovalID: removalID}
}

// AddressedTo reports whether the notification reaches a user holding role.
func (n Notification) AddressedTo(userID string, role Role) bool {
	if n.RecipientID != "" {
		return n.RecipientID == userID
	}
	return n.RecipientRole == role
}
