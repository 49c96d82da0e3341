package tui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-flappy/internal/commerce"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// SSHServerConfig configures the flappy SSH server.
type SSHServerConfig struct {
	// Address to listen on, host:port.
	Address string

	// HostKeyPath is generated on first start when missing.
	// Empty means ~/.flappy/host_key.
	HostKeyPath string

	// DBPath holds high scores and the shared score history.
	DBPath string

	IdleTimeout time.Duration
	TickRate    int

	// Game is shared by every session.
	Game config.FlappyConfig
}

// DefaultSSHServerConfig returns the server defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.flappy/flappy.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		Game:        config.DefaultFlappyConfig(),
	}
}

// SSHServer serves one game per SSH connection. High scores are kept per
// SSH user; the commerce client and the database are shared.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	store   *storage.Store
	client  commerce.Client
	logger  *log.Logger
	players atomic.Int64
}

// NewSSHServer opens the database and prepares the wish server. A database
// that cannot be opened only disables persistence.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy-ssh",
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("playing without persistence", "db", cfg.DBPath, "error", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		client: commerce.New(cfg.Game.Commerce, logger),
		logger: logger,
	}

	keyPath, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		srv.closeStore()
		return nil, err
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
			srv.sessionMiddleware,
		),
		// Flaps are single bytes; don't let Nagle batch them.
		ssh.WrapConn(func(_ ssh.Context, conn net.Conn) net.Conn {
			if tcp, ok := conn.(*net.TCPConn); ok {
				_ = tcp.SetNoDelay(true)
			}
			return conn
		}),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

func resolveHostKey(path string) (string, error) {
	if path == "" {
		path = config.UserPath("host_key")
		if path == "" {
			return "", errors.New("tui: cannot get home directory for host key")
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("tui: cannot create host key directory: %w", err)
	}
	return path, nil
}

// teaHandler builds the game for one session. activeterm has already
// rejected sessions without a PTY.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	user := sess.User()

	opts := Options{
		Config: s.config.Game,
		Runtime: core.RuntimeConfig{
			ScreenW:  pty.Window.Width,
			ScreenH:  pty.Window.Height,
			TickRate: s.config.TickRate,
			Seed:     time.Now().UnixNano(),
		},
		Client:    s.client,
		Player:    user,
		Logger:    s.logger.With("session", uuid.NewString(), "user", user),
		Clipboard: sess,
	}
	if s.store != nil {
		opts.History = s.store
		opts.Scores = s.store.Scoped(user)
	}

	return NewModel(opts), []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// sessionMiddleware tracks connected players and logs connects and
// disconnects with the session duration.
func (s *SSHServer) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		remote := sess.RemoteAddr().String()
		online := s.players.Add(1)
		s.logger.Info("player connected", "user", sess.User(), "remote", remote, "online", online)

		next(sess)

		online = s.players.Add(-1)
		s.logger.Info("player left",
			"user", sess.User(),
			"remote", remote,
			"played", time.Since(start).Round(time.Second),
			"online", online,
		)
	}
}

// Players returns the number of connected sessions.
func (s *SSHServer) Players() int {
	return int(s.players.Load())
}

// ListenAndServe serves until SIGINT or SIGTERM, then shuts down.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("listening", "address", s.config.Address)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	failed := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			failed <- err
		}
	}()

	select {
	case <-stop:
		s.logger.Info("shutting down", "online", s.Players())
		return s.Shutdown()
	case err := <-failed:
		s.closeStore()
		return fmt.Errorf("tui: SSH server: %w", err)
	}
}

// Shutdown stops accepting sessions and closes the database.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close() //nolint:errcheck // Best-effort close on shutdown
		s.store = nil
	}
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
