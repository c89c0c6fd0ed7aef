package model

// Notifier defines a generic interface for delivering alert notifications.
type Notifier interface {
	// Send delivers a notification with the given subject and HTML body.
	Send(subject, body string) error
}
