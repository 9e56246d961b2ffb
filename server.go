package devstatic

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
)

// Listen binds addr. A "unix:", "tcp:", "tcp4:" or "tcp6:" prefix selects the
// network, anything else is TCP on all interfaces.
func Listen(addr string) (net.Listener, error) {
	network, address := "tcp", addr
	protos := strings.SplitN(addr, ":", 2)
	switch protos[0] {
	case "unix", "tcp", "tcp4", "tcp6":
		network, address = protos[0], protos[1]
	}
	ln, err := net.Listen(network, address)
	if err != nil {
		return nil, errors.Wrapf(err, "listen %s", addr)
	}
	return ln, nil
}

type Server struct {
	cfg Config
	out io.Writer
}

func New(cfg Config, out io.Writer) *Server {
	return &Server{cfg: cfg, out: out}
}

func (s *Server) banner(port int) {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	bold.Fprintf(s.out, "Serving %s directory at ", s.cfg.RootDir)
	cyan.Fprintln(s.out, s.cfg.URL(port))
	bold.Fprint(s.out, "Open ")
	cyan.Fprint(s.out, s.cfg.IndexURL(port))
	bold.Fprintln(s.out, " in your browser")
	color.New(color.Faint).Fprintln(s.out, "Press Ctrl+C to stop the server")
}

// Serve serves the root directory on ln until ctx is cancelled. ln is closed
// on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	fsys := os.DirFS(s.cfg.RootDir).(fs.StatFS)
	server := http.Server{
		Handler: NewHandler(fsys, s.cfg.Index),
	}
	defer ln.Close()

	port := s.cfg.Port
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		port = addr.Port
	}
	s.banner(port)
	slog.Info("starting server", "addr", ln.Addr().String(), "root", s.cfg.RootDir)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		slog.Info("shutting down server")
		if err := server.Close(); err != nil {
			slog.Error("close error", "error", err)
		}
	}()

	err := server.Serve(ln)
	if !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serve")
	}
	<-stopped
	color.New(color.FgYellow).Fprintln(s.out, "\nServer stopped.")
	return nil
}

// Run checks the configuration, binds the port and serves until ctx is
// cancelled. Nothing is bound when the checks fail.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if err := Check(cfg); err != nil {
		return err
	}
	ln, err := Listen(cfg.Addr())
	if err != nil {
		slog.Error("listen error", "addr", cfg.Addr(), "error", err)
		return err
	}
	return New(cfg, out).Serve(ctx, ln)
}
