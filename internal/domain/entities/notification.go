package entities

// Notification is a message for a user. Delivery channels pick the address
// they need; a channel with no address for the notification skips it.
type Notification struct {
	Email   string
	Mobile  string
	Subject string
	Body    string
}
