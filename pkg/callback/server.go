package callback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mydatashare/mdscore/pkg/logger"
)

// HandlerFunc completes an authorization with the parameters of the redirect.
type HandlerFunc func(ctx context.Context, params url.Values) error

type config struct {
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger
	startHooks      []func(string)
	stopHooks       []func()
}

func defaultConfig() *config {
	return &config{
		readTimeout:     10 * time.Second,
		writeTimeout:    time.Minute,
		shutdownTimeout: 5 * time.Second,
	}
}

// Server listens on the redirect URI of a native client and hands the first
// authorization response it receives to a HandlerFunc.
type Server struct {
	cfg    *config
	addr   string
	path   string
	handle HandlerFunc
	done   chan error
	taken  atomic.Bool

	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
	once     sync.Once
}

// New returns a server for redirectURI, which must be a plain http URL such
// as "http://127.0.0.1:8765/callback". Port 0 picks a free port.
func New(redirectURI string, handle HandlerFunc, opts ...Option) (*Server, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return nil, errors.Join(ErrInvalidRedirectURI, err)
	}
	if u.Scheme != "http" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRedirectURI, redirectURI)
	}
	if handle == nil {
		return nil, ErrNilHandler
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.Discard()
	}
	cfg.logger = cfg.logger.With(logger.Component("callback"))

	path := u.Path
	if path == "" {
		path = "/"
	}

	return &Server{
		cfg:    cfg,
		addr:   u.Host,
		path:   path,
		handle: handle,
		done:   make(chan error, 1),
	}, nil
}

// Handler routes GET (query response mode) and POST (form_post response
// mode) requests of the callback path. Anything else is answered with 404.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get(s.path, s.callback)
	r.Post(s.path, s.callback)
	return r
}

// URL returns the callback URL, with the bound port once Run listens.
func (s *Server) URL() string {
	addr := s.addr
	s.mu.Lock()
	if s.listener != nil {
		addr = s.listener.Addr().String()
	}
	s.mu.Unlock()
	return "http://" + addr + s.path
}

// callback hands the first request to the handler. Later ones, such as a
// reload of the callback page, get 409 and do not reach it.
func (s *Server) callback(w http.ResponseWriter, r *http.Request) {
	if !s.taken.CompareAndSwap(false, true) {
		http.Error(w, "Authorization response already received.", http.StatusConflict)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid authorization response", http.StatusBadRequest)
		return
	}

	err := s.handle(r.Context(), r.Form)
	if err != nil {
		s.cfg.logger.WarnContext(r.Context(), "authorization failed", logger.Error(err))
		http.Error(w, "Authorization failed: "+err.Error(), http.StatusBadRequest)
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Authorization complete. You can close this window."))
	}

	select {
	case s.done <- err:
	default:
	}
}

// Run listens and blocks until the first authorization response has been
// handled, then shuts down and returns the handler's error. It returns
// ErrNoCallback when ctx ends, an interrupt or TERM signal arrives, or
// Shutdown is called first, and ErrStart when the address cannot be bound.
func (s *Server) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, errors.New("server already running"))
	}
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, err)
	}
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       s.cfg.readTimeout,
		ReadHeaderTimeout: s.cfg.readTimeout,
		WriteTimeout:      s.cfg.writeTimeout,
	}
	s.srv = srv
	s.listener = ln
	s.mu.Unlock()

	callbackURL := s.URL()
	for _, h := range s.cfg.startHooks {
		h(callbackURL)
	}
	s.cfg.logger.DebugContext(ctx, "waiting for authorization response", logger.URL(callbackURL))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	var result error
	select {
	case <-ctx.Done():
		result = errors.Join(ErrNoCallback, ctx.Err())
	case <-stop:
		result = ErrNoCallback
	case result = <-s.done:
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return errors.Join(ErrStart, err)
		}
		return ErrNoCallback
	}

	if err := s.Shutdown(context.Background()); err != nil {
		result = errors.Join(result, err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		result = errors.Join(result, err)
	}
	return result
}

// Shutdown stops the server gracefully, letting an in-flight callback
// response finish. It is safe for repeated calls.
// Any error from http.Server.Shutdown is wrapped with ErrShutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	var err error
	s.once.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
		defer cancel()
		err = srv.Shutdown(ctx)
		for _, h := range s.cfg.stopHooks {
			h()
		}
	})

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}
