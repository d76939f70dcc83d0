package bancho

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/irc.v3"

	"github.com/KirkDiggler/autoref/internal/engine"
	"github.com/KirkDiggler/autoref/internal/lobby"
)

// DefaultAddr is the public Bancho IRC endpoint
const DefaultAddr = "irc.ppy.sh:6667"

// ErrDisconnected is returned when the IRC connection ended before the lobby was ready
var ErrDisconnected = errors.New("bancho connection closed")

// Config holds configuration for the Bancho dialer
type Config struct {
	// Addr defaults to DefaultAddr
	Addr string

	// DialTimeout bounds the TCP connect
	DialTimeout time.Duration

	// SendLimit and SendBurst are passed to the IRC client's rate limiter
	SendLimit time.Duration
	SendBurst int

	Logger logrus.FieldLogger
}

// Dialer opens tournament lobbies through BanchoBot
type Dialer struct {
	cfg Config
	log logrus.FieldLogger
}

// New creates a Bancho dialer
func New(cfg *Config) (*Dialer, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	c := *cfg
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = 10 * time.Second
	}

	return &Dialer{
		cfg: c,
		log: c.Logger.WithField("component", "bancho"),
	}, nil
}

// Dial logs in as the referee, asks BanchoBot for a tournament lobby and joins it.
// The creation notice is the first line passed to the handler.
func (d *Dialer) Dial(ctx context.Context, input *lobby.DialInput) (lobby.Conn, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.Nick == "" || input.Password == "" {
		return nil, errors.New("nick and password are required")
	}
	if input.Handler == nil {
		return nil, errors.New("handler cannot be nil")
	}

	nd := net.Dialer{Timeout: d.cfg.DialTimeout}
	nc, err := nd.DialContext(ctx, "tcp", d.cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", d.cfg.Addr, err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	c := &conn{
		nick:    input.Nick,
		handler: input.Handler,
		netConn: nc,
		cancel:  cancel,
		welcome: make(chan struct{}),
		created: make(chan struct{}),
		done:    make(chan struct{}),
		log:     d.log.WithField("nick", input.Nick),
	}
	c.client = irc.NewClient(nc, irc.ClientConfig{
		Nick:      input.Nick,
		Pass:      input.Password,
		User:      input.Nick,
		Name:      input.Nick,
		SendLimit: d.cfg.SendLimit,
		SendBurst: d.cfg.SendBurst,
		Handler:   irc.HandlerFunc(c.handle),
	})

	go func() {
		err := c.client.RunContext(runCtx)
		c.runErr = err
		close(c.done)
		if runCtx.Err() != nil {
			return
		}
		if err != nil {
			c.log.WithError(err).Warn("bancho connection ended")
		}
		if c.Channel() != "" {
			c.handler(lobby.Line{Text: "connection to bancho lost", Event: engine.LobbyClosed{}})
		}
	}()

	if err := c.wait(ctx, c.welcome); err != nil {
		c.Close()
		return nil, fmt.Errorf("login failed: %w", err)
	}

	cmd := "!mp make"
	if input.Private {
		cmd = "!mp makeprivate"
	}
	if err := c.privmsg(BotName, strings.TrimSpace(cmd+" "+input.LobbyName)); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to request lobby: %w", err)
	}

	if err := c.wait(ctx, c.created); err != nil {
		c.Close()
		return nil, fmt.Errorf("lobby was not created: %w", err)
	}
	c.log.WithField("channel", c.Channel()).Info("joined lobby")

	return c, nil
}

type conn struct {
	nick    string
	handler lobby.Handler
	client  *irc.Client
	netConn net.Conn
	cancel  context.CancelFunc
	log     logrus.FieldLogger

	welcome     chan struct{}
	welcomeOnce sync.Once
	created     chan struct{}
	done        chan struct{}
	runErr      error

	mu      sync.RWMutex
	channel string
	closed  bool
}

func (c *conn) wait(ctx context.Context, ch <-chan struct{}) error {
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		if c.runErr != nil {
			return fmt.Errorf("%w: %w", ErrDisconnected, c.runErr)
		}
		return ErrDisconnected
	}
}

func (c *conn) handle(_ *irc.Client, m *irc.Message) {
	switch m.Command {
	case "001":
		c.welcomeOnce.Do(func() { close(c.welcome) })

	case "PRIVMSG":
		if m.Prefix == nil || len(m.Params) < 2 {
			return
		}
		sender, target, text := m.Prefix.Name, m.Params[0], m.Trailing()

		if sender == BotName && strings.EqualFold(target, c.nick) {
			if ch, ok := LobbyChannel(text); ok && c.setChannel(ch) {
				if err := c.client.WriteMessage(&irc.Message{Command: "JOIN", Params: []string{ch}}); err != nil {
					c.log.WithError(err).Error("failed to join lobby")
				}
				c.handler(lobby.Line{Sender: sender, Text: text, Event: Parse(sender, text)})
				close(c.created)
			}
			return
		}

		if ch := c.Channel(); ch != "" && strings.EqualFold(target, ch) {
			c.handler(lobby.Line{Sender: sender, Text: text, Event: Parse(sender, text)})
		}
	}
}

// setChannel records the first lobby channel and reports whether it was set
func (c *conn) setChannel(ch string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel != "" {
		return false
	}
	c.channel = ch
	return true
}

func (c *conn) Channel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.channel
}

func (c *conn) privmsg(target, text string) error {
	return c.client.WriteMessage(&irc.Message{Command: "PRIVMSG", Params: []string{target, text}})
}

func (c *conn) Send(ctx context.Context, line string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.RLock()
	channel, closed := c.channel, c.closed
	c.mu.RUnlock()
	if closed {
		return ErrDisconnected
	}
	if channel == "" {
		return errors.New("lobby channel not joined")
	}
	return c.privmsg(channel, line)
}

func (c *conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	channel := c.channel
	c.mu.Unlock()

	if channel != "" {
		if err := c.client.WriteMessage(&irc.Message{Command: "PART", Params: []string{channel}}); err != nil {
			c.log.WithError(err).Debug("failed to part lobby")
		}
	}
	c.cancel()
	return c.netConn.Close()
}
