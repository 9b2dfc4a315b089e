// Package sshtest provides an in-process ssh server that answers exec
// requests with canned output, for testing code that runs remote commands.
package sshtest

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"

	"golang.org/x/crypto/ssh"
)

// Response is what the server sends back for one command
type Response struct {
	Stdout     string
	Stderr     string
	ExitStatus int
	// Hang keeps the session open without answering until the server is closed
	Hang bool
}

// Server is an ssh server listening on a random loopback port
type Server struct {
	Host string
	Port int

	config   *ssh.ServerConfig
	listener net.Listener
	stop     chan struct{}
	wg       sync.WaitGroup

	mu          sync.Mutex
	responses   map[string]Response
	stdin       map[string][]byte
	commands    []string
	connections int
}

// NewServer starts a server accepting user with password, and any of authorizedKeys
func NewServer(user, password string, authorizedKeys ...ssh.PublicKey) (*Server, error) {
	_, hostKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	signer, err := ssh.NewSignerFromKey(hostKey)
	if err != nil {
		return nil, err
	}

	config := &ssh.ServerConfig{
		PasswordCallback: func(c ssh.ConnMetadata, pass []byte) (*ssh.Permissions, error) {
			if password != "" && c.User() == user && string(pass) == password {
				return nil, nil
			}
			return nil, fmt.Errorf("password rejected for %q", c.User())
		},
		PublicKeyCallback: func(c ssh.ConnMetadata, key ssh.PublicKey) (*ssh.Permissions, error) {
			if c.User() != user {
				return nil, fmt.Errorf("unknown user %q", c.User())
			}
			for _, authorized := range authorizedKeys {
				if bytes.Equal(key.Marshal(), authorized.Marshal()) {
					return nil, nil
				}
			}
			return nil, fmt.Errorf("public key rejected for %q", c.User())
		},
	}
	config.AddHostKey(signer)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	host, port, _ := net.SplitHostPort(listener.Addr().String())
	portNum, _ := strconv.Atoi(port)

	s := &Server{
		Host:      host,
		Port:      portNum,
		config:    config,
		listener:  listener,
		stop:      make(chan struct{}),
		responses: map[string]Response{},
		stdin:     map[string][]byte{},
	}
	s.wg.Add(1)
	go s.serve()
	return s, nil
}

// Handle registers the response for an exact command line. Unknown
// commands exit with status 127.
func (s *Server) Handle(command string, resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[command] = resp
}

// Stdin returns what the client wrote to the input of command
func (s *Server) Stdin(command string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stdin[command]
}

// Commands returns every command executed so far, in order
func (s *Server) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.commands...)
}

// Connections returns how many ssh connections completed the handshake
func (s *Server) Connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connections
}

// Close stops listening and releases hanging sessions
func (s *Server) Close() {
	close(s.stop)
	s.listener.Close()
	s.wg.Wait()
}

func (s *Server) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(nConn net.Conn) {
	defer nConn.Close()

	_, chans, reqs, err := ssh.NewServerConn(nConn, s.config)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.connections++
	s.mu.Unlock()

	go ssh.DiscardRequests(reqs)
	for newChannel := range chans {
		if newChannel.ChannelType() != "session" {
			newChannel.Reject(ssh.UnknownChannelType, "unknown channel type")
			continue
		}
		channel, requests, err := newChannel.Accept()
		if err != nil {
			return
		}
		go s.handleSession(channel, requests)
	}
}

func (s *Server) handleSession(channel ssh.Channel, requests <-chan *ssh.Request) {
	defer channel.Close()

	for req := range requests {
		if req.Type != "exec" {
			req.Reply(false, nil)
			continue
		}
		var payload struct{ Command string }
		if err := ssh.Unmarshal(req.Payload, &payload); err != nil {
			req.Reply(false, nil)
			return
		}
		req.Reply(true, nil)
		go ssh.DiscardRequests(requests)
		s.exec(channel, payload.Command)
		return
	}
}

func (s *Server) exec(channel ssh.Channel, command string) {
	s.mu.Lock()
	s.commands = append(s.commands, command)
	resp, ok := s.responses[command]
	s.mu.Unlock()

	if !ok {
		resp = Response{Stderr: fmt.Sprintf("sh: %s: command not found\n", command), ExitStatus: 127}
	}
	if resp.Hang {
		<-s.stop
		return
	}

	// the client half-closes its input once it is done writing
	input, _ := io.ReadAll(channel)
	s.mu.Lock()
	s.stdin[command] = input
	s.mu.Unlock()

	io.WriteString(channel, resp.Stdout)
	io.WriteString(channel.Stderr(), resp.Stderr)
	status := struct{ Status uint32 }{uint32(resp.ExitStatus)}
	channel.SendRequest("exit-status", false, ssh.Marshal(&status))
}
