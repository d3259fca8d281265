package session

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/stompctl/stompctl/internal/events"
	"github.com/stompctl/stompctl/internal/protocol"
	"github.com/stompctl/stompctl/internal/protocol/frame"
)

// Transport is the byte-stream boundary the engine sends frames through.
// The caller hands over complete frame text already terminated by the
// single terminator byte.
type Transport interface {
	Send(frame []byte) error
	Close() error
}

// EventSource loads one report file into team names plus ordered events.
type EventSource interface {
	LoadReport(path string) (events.Report, error)
}

// Console receives the user-facing output the engine produces.
type Console interface {
	Notice(msg string)
	Error(msg string)
}

type writerConsole struct{ w *os.File }

func (c writerConsole) Notice(msg string) { fmt.Fprintln(c.w, msg) }
func (c writerConsole) Error(msg string)  { fmt.Fprintln(c.w, msg) }

// Config wires the engine's collaborators. Transport is required; the
// rest default to the file-backed source, stdout, and a no-op logger.
type Config struct {
	Transport Transport
	Source    EventSource
	Console   Console
	Logger    zerolog.Logger
}

// Engine is the protocol state machine. One goroutine feeds it user
// command lines through HandleCommand, another feeds it inbound frames
// through HandleFrame; a single mutex guards every table and flag both
// paths touch. Sends happen outside the lock.
type Engine struct {
	transport Transport
	source    EventSource
	console   Console
	log       zerolog.Logger

	mu       sync.Mutex
	subs     *SubscriptionTable
	receipts *ReceiptTable
	ledger   *EventLedger

	currentUser     string
	connected       bool
	logoutRequested bool
	halted          bool
}

func NewEngine(cfg Config) *Engine {
	e := &Engine{
		transport: cfg.Transport,
		source:    cfg.Source,
		console:   cfg.Console,
		log:       cfg.Logger,
		subs:      NewSubscriptionTable(),
		receipts:  NewReceiptTable(),
		ledger:    NewEventLedger(),
	}
	if e.source == nil {
		e.source = events.FileSource{}
	}
	if e.console == nil {
		e.console = writerConsole{w: os.Stdout}
	}
	return e
}

// Connected reports whether the server has confirmed the session.
func (e *Engine) Connected() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.connected
}

// ShouldTerminate reports whether both worker loops may stop: the logout
// handshake finished, or the server tore the session down with ERROR.
func (e *Engine) ShouldTerminate() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.connected && (e.logoutRequested || e.halted)
}

// HandleCommand dispatches one user command line. Malformed arity and
// unknown verbs produce a usage notice and no state change.
func (e *Engine) HandleCommand(line string) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return
	}

	switch args[0] {
	case "login":
		if len(args) < 4 {
			e.console.Error("Usage: login {host:port} {username} {password}")
			return
		}
		e.login(args[1], args[2], args[3])
	case "join":
		if !e.Connected() {
			e.console.Error("Please login first")
			return
		}
		if len(args) < 2 {
			e.console.Error("Usage: join {game_name}")
			return
		}
		e.join(args[1])
	case "exit":
		if !e.Connected() {
			e.console.Error("Please login first")
			return
		}
		if len(args) < 2 {
			e.console.Error("Usage: exit {game_name}")
			return
		}
		e.leave(args[1])
	case "report":
		if !e.Connected() {
			e.console.Error("Please login first")
			return
		}
		if len(args) < 2 {
			e.console.Error("Usage: report {file}")
			return
		}
		e.report(args[1])
	case "summary":
		if len(args) < 4 {
			e.console.Error("Usage: summary {game_name} {user} {file}")
			return
		}
		e.summary(args[1], args[2], args[3])
	case "logout":
		if !e.Connected() {
			e.console.Error("Please login first")
			return
		}
		e.logout()
	default:
		e.console.Error("Unknown command: " + args[0])
	}
}

// HandleFrame dispatches one raw inbound frame (terminator already
// stripped by the transport). Frames the client does not understand are
// dropped, not fatal.
func (e *Engine) HandleFrame(raw string) {
	raw = strings.TrimSuffix(raw, "\n")
	f, err := frame.Parse(raw)
	if err != nil {
		e.log.Debug().Err(err).Msg("dropping unparseable frame")
		return
	}
	if !protocol.IsServerCommand(f.Command) {
		e.log.Debug().Str("command", string(f.Command)).Msg("dropping non-server frame")
		return
	}

	switch f.Command {
	case protocol.CommandConnected:
		e.handleConnected()
	case protocol.CommandMessage:
		e.handleMessage(f)
	case protocol.CommandReceipt:
		e.handleReceipt(f)
	case protocol.CommandError:
		e.handleError(f)
	}
}

func (e *Engine) login(hostPort, user, pass string) {
	e.mu.Lock()
	if e.connected {
		e.mu.Unlock()
		e.console.Error("The client is already logged in, log out before trying again")
		return
	}
	// Tentative: confirmed only when CONNECTED arrives, never rolled back.
	e.currentUser = user
	e.mu.Unlock()

	f := frame.New(protocol.CommandConnect)
	f.Append(protocol.HeaderAcceptVersion, protocol.AcceptVersion)
	f.Append(protocol.HeaderHost, hostPort)
	f.Append(protocol.HeaderLogin, user)
	f.Append(protocol.HeaderPasscode, pass)
	e.send(f)
}

func (e *Engine) join(channel string) {
	e.mu.Lock()
	subID, err := e.subs.Join(channel)
	if err != nil {
		e.mu.Unlock()
		e.console.Notice("Already subscribed to " + channel)
		return
	}
	receiptID := e.receipts.Register(ReceiptAction{Kind: ReceiptJoined, Channel: channel})
	e.mu.Unlock()

	f := frame.New(protocol.CommandSubscribe)
	f.Append(protocol.HeaderDestination, "/"+channel)
	f.Append(protocol.HeaderID, strconv.Itoa(subID))
	f.Append(protocol.HeaderReceipt, strconv.Itoa(receiptID))
	e.send(f)
}

func (e *Engine) leave(channel string) {
	e.mu.Lock()
	subID, err := e.subs.Leave(channel)
	if err != nil {
		e.mu.Unlock()
		e.console.Notice("Not subscribed to " + channel)
		return
	}
	receiptID := e.receipts.Register(ReceiptAction{Kind: ReceiptExited, Channel: channel})
	e.mu.Unlock()

	f := frame.New(protocol.CommandUnsubscribe)
	f.Append(protocol.HeaderID, strconv.Itoa(subID))
	f.Append(protocol.HeaderReceipt, strconv.Itoa(receiptID))
	e.send(f)
}

func (e *Engine) report(path string) {
	rep, err := e.source.LoadReport(path)
	if err != nil {
		e.log.Warn().Err(err).Str("path", path).Msg("report load failed")
		e.console.Error("Error parsing file: " + path)
		return
	}

	channel := rep.Channel()
	e.mu.Lock()
	subscribed := e.subs.Subscribed(channel)
	user := e.currentUser
	e.mu.Unlock()
	if !subscribed {
		e.console.Error("Not subscribed to " + channel)
		return
	}

	for _, ev := range rep.Events {
		f := frame.New(protocol.CommandSend)
		f.Append(protocol.HeaderDestination, "/"+channel)
		f.Body = events.EncodeBody(user, ev)
		if err := e.send(f); err != nil {
			return
		}

		// The sender sees its own reports in its own summary.
		e.mu.Lock()
		e.ledger.Record(channel, user, ev)
		e.mu.Unlock()
		e.console.Notice("Sent event: " + ev.Name)
	}
}

func (e *Engine) summary(channel, user, path string) {
	e.mu.Lock()
	sum, ok := e.ledger.Aggregate(channel, user)
	e.mu.Unlock()
	if !ok {
		e.console.Error("No updates found for user " + user + " in game " + channel)
		return
	}

	out, err := os.Create(path)
	if err != nil {
		e.console.Error("Could not open file " + path)
		return
	}
	defer out.Close()
	if err := RenderSummary(out, sum); err != nil {
		e.log.Error().Err(err).Str("path", path).Msg("summary write failed")
		e.console.Error("Could not write file " + path)
	}
}

func (e *Engine) logout() {
	e.mu.Lock()
	if e.logoutRequested {
		e.mu.Unlock()
		return
	}
	e.logoutRequested = true
	receiptID := e.receipts.Register(ReceiptAction{Kind: ReceiptLoggedOut})
	e.mu.Unlock()

	f := frame.New(protocol.CommandDisconnect)
	f.Append(protocol.HeaderReceipt, strconv.Itoa(receiptID))
	e.send(f)
}

func (e *Engine) handleConnected() {
	e.mu.Lock()
	e.connected = true
	e.mu.Unlock()
	e.console.Notice("Login successful")
}

func (e *Engine) handleMessage(f frame.Frame) {
	subRaw, ok := f.Get(protocol.HeaderSubscription)
	if !ok {
		return
	}
	subID, err := strconv.Atoi(subRaw)
	if err != nil {
		return
	}

	e.mu.Lock()
	channel, ok := e.subs.Resolve(subID)
	e.mu.Unlock()
	if !ok {
		// Stale or foreign subscription id.
		return
	}

	reporter, ok := events.ReporterFromBody(f.Body)
	if !ok {
		e.console.Error("No user field found in message body")
		return
	}
	ev, err := events.ParseBody(f.Body)
	if err != nil {
		e.log.Debug().Err(err).Msg("dropping malformed message body")
		e.console.Error("Malformed event in message body")
		return
	}

	e.mu.Lock()
	e.ledger.Record(channel, reporter, ev)
	e.mu.Unlock()

	e.console.Notice("Received update in " + channel + " from " + reporter)
}

func (e *Engine) handleReceipt(f frame.Frame) {
	raw, ok := f.Get(protocol.HeaderReceiptID)
	if !ok {
		return
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return
	}

	e.mu.Lock()
	action, ok := e.receipts.Resolve(id)
	if !ok {
		// Duplicate or foreign receipt.
		e.mu.Unlock()
		return
	}
	loggedOut := action.Kind == ReceiptLoggedOut
	if loggedOut {
		e.connected = false
	}
	e.mu.Unlock()

	if loggedOut {
		if err := e.transport.Close(); err != nil {
			e.log.Debug().Err(err).Msg("transport close failed")
		}
		e.console.Notice("Disconnected")
		return
	}
	e.console.Notice(action.String())
}

func (e *Engine) handleError(f frame.Frame) {
	e.mu.Lock()
	e.connected = false
	e.halted = true
	e.mu.Unlock()

	e.console.Error("Received ERROR frame from server")
	if msg, ok := f.Get(protocol.HeaderMessage); ok {
		e.console.Error("Message: " + msg)
	}
	if f.Body != "" {
		e.console.Error("Body: " + f.Body)
	}
}

// send serializes the frame, appends the terminator byte and hands the
// result to the transport. Never called while holding the mutex.
func (e *Engine) send(f frame.Frame) error {
	buf := append(frame.Serialize(f), frame.Terminator)
	if err := e.transport.Send(buf); err != nil {
		e.log.Error().Err(err).Str("command", string(f.Command)).Msg("send failed")
		e.console.Error("Could not send " + string(f.Command) + " frame")
		return err
	}
	e.log.Debug().Str("command", string(f.Command)).Int("bytes", len(buf)).Msg("frame sent")
	return nil
}
