package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/stompctl/stompctl/internal/logging"
	"github.com/stompctl/stompctl/internal/protocol/session"
	"github.com/stompctl/stompctl/internal/transport"
)

func main() {
	configPath := flag.String("config", "", "path to optional client config file")
	flag.Parse()

	logging.ConfigureRuntime()

	cfg := defaultClientConfig()
	if *configPath != "" {
		loaded, err := loadClientConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "stompctl: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	console := newConsole(cfg.NoColor)
	reader := newLineReader(cfg)
	defer reader.Close()

	run(cfg, console, reader)
}

// run is the outer session loop: wait for a valid login command, drive
// one session to completion, then allow a fresh login.
func run(cfg clientConfig, console *terminalConsole, reader lineReader) {
	log := logging.Logger("stompctl")

	for {
		line, err := reader.ReadLine(cfg.Prompt)
		if err != nil {
			return
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		if args[0] != "login" {
			console.Error("Unknown command. Please login first.")
			continue
		}
		if len(args) < 4 {
			console.Error("Usage: login {host:port} {username} {password}")
			continue
		}

		host, port, err := splitHostPort(args[1])
		if err != nil {
			console.Error("Invalid host:port format")
			continue
		}

		conn, err := transport.Dial(host, port, logging.Logger("transport"))
		if err != nil {
			log.Warn().Err(err).Str("addr", args[1]).Msg("dial failed")
			console.Error("Could not connect to server")
			continue
		}

		engine := session.NewEngine(session.Config{
			Transport: conn,
			Console:   console,
			Logger:    logging.Logger("session"),
		})

		// The login line doubles as the first command: it sends CONNECT.
		engine.HandleCommand(line)

		done := make(chan struct{})
		go func() {
			defer close(done)
			frameLoop(conn, engine, console)
		}()

		commandLoop(cfg, reader, engine)

		conn.Close()
		<-done
		console.Notice("Client disconnected. Ready for new login.")
	}
}

// frameLoop blocks on the transport and feeds inbound frames to the
// engine until the session terminates or the connection drops.
func frameLoop(conn *transport.Conn, engine *session.Engine, console *terminalConsole) {
	for !engine.ShouldTerminate() {
		raw, err := conn.ReadFrame()
		if err != nil {
			if !engine.ShouldTerminate() {
				console.Error("Disconnected from server")
			}
			return
		}
		engine.HandleFrame(raw)
	}
}

// commandLoop blocks on user input and feeds command lines to the
// engine. Termination is polled between reads, so the loop may need one
// extra keystroke to notice the session ended.
func commandLoop(cfg clientConfig, reader lineReader, engine *session.Engine) {
	for !engine.ShouldTerminate() {
		line, err := reader.ReadLine(cfg.Prompt)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return
			}
			engine.HandleCommand("logout")
			return
		}
		engine.HandleCommand(line)
	}
}

func splitHostPort(hostPort string) (string, int, error) {
	host, portRaw, err := net.SplitHostPort(hostPort)
	if err != nil {
		return "", 0, err
	}
	port, err := strconv.Atoi(portRaw)
	if err != nil || port <= 0 {
		return "", 0, fmt.Errorf("invalid port %q", portRaw)
	}
	return host, port, nil
}
