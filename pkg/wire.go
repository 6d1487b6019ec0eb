package protocol

// Wire literals. Every record except READY travels with a trailing NUL.
const (
	Ready    = "READY"
	ReadyAck = "READY ACK"
	Ack      = "ACK"
	Bye      = "bye"
)

// Server session states.
type State string

const (
	StateInit       State = "INIT"
	StateListening  State = "LISTENING"
	StateAccepted   State = "ACCEPTED"
	StateAwaitReady State = "AWAIT_READY"
	StateReadySent  State = "READY_SENT"
	StateAwaitDir   State = "AWAIT_DIR"
	StateReceiving  State = "RECEIVING"
	StateDone       State = "DONE"
	StateFailed     State = "FAILED"
)
