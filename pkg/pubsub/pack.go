package pubsub

// Pack is a single message published to a topic. Key is used for partition
// routing, Msg is an opaque payload.
type Pack struct {
	Key []byte
	Msg []byte
}
