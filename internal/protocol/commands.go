package protocol

// Command is one STOMP frame command verb.
type Command string

const (
	CommandConnect     Command = "CONNECT"
	CommandConnected   Command = "CONNECTED"
	CommandSubscribe   Command = "SUBSCRIBE"
	CommandUnsubscribe Command = "UNSUBSCRIBE"
	CommandSend        Command = "SEND"
	CommandMessage     Command = "MESSAGE"
	CommandReceipt     Command = "RECEIPT"
	CommandDisconnect  Command = "DISCONNECT"
	CommandError       Command = "ERROR"
)

// AcceptVersion is the STOMP protocol version sent on CONNECT.
const AcceptVersion = "1.2"

// IsClientCommand reports whether cmd is a verb this client may send.
func IsClientCommand(cmd Command) bool {
	switch cmd {
	case CommandConnect, CommandSubscribe, CommandUnsubscribe, CommandSend, CommandDisconnect:
		return true
	}
	return false
}

// IsServerCommand reports whether cmd is a verb the server may send.
func IsServerCommand(cmd Command) bool {
	switch cmd {
	case CommandConnected, CommandMessage, CommandReceipt, CommandError:
		return true
	}
	return false
}
