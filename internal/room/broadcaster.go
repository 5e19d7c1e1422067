package room

// Broadcaster is the outbound half of the transport. ToRoom reaches every
// connection subscribed to a stake tier; ToUser reaches every live
// connection of one user and nothing else.
type Broadcaster interface {
	ToRoom(stake int, action string, data interface{})
	ToUser(userID string, action string, data interface{})
}
