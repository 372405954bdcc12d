package webtui

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	defaultCols  = 100
	defaultRows  = 30
	frameSize    = 32 * 1024
	writeTimeout = 10 * time.Second
)

type controlFrame struct {
	Type string `json:"type"`
	Cols int    `json:"cols"`
	Rows int    `json:"rows"`
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  frameSize,
	WriteBufferSize: frameSize,
	CheckOrigin:     sameOrigin,
}

// sameOrigin accepts requests without an Origin (non-browser clients) and
// browser requests whose origin host equals the request host exactly.
func sameOrigin(r *http.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	return strings.EqualFold(u.Host, strings.TrimSpace(r.Host))
}

// ptySession is one picker process attached to one browser tab.
type ptySession struct {
	id   string
	cmd  *exec.Cmd
	tty  *os.File
	log  *slog.Logger
	once sync.Once
}

func startSession(argv []string, log *slog.Logger) (*ptySession, error) {
	if len(argv) == 0 {
		return nil, errors.New("webtui: empty command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"COLORTERM=truecolor",
		// The browser terminal is always dark.
		"DATEWHEEL_TUI_DARKBG=1",
	)
	tty, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: defaultCols, Rows: defaultRows})
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	return &ptySession{id: id, cmd: cmd, tty: tty, log: log.With("session", id)}, nil
}

func (p *ptySession) resize(cols, rows int) {
	if err := pty.Setsize(p.tty, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)}); err != nil {
		p.log.Debug("resize", "err", err)
	}
}

// stop kills the process and releases the PTY. Safe to call repeatedly.
func (p *ptySession) stop() {
	p.once.Do(func() {
		_ = p.cmd.Process.Kill()
		_ = p.tty.Close()
		_, _ = p.cmd.Process.Wait()
	})
}

// output copies terminal output to the socket as binary frames until the
// process exits or the socket fails.
func (p *ptySession) output(ctx context.Context, conn *websocket.Conn) error {
	buf := make([]byte, frameSize)
	for ctx.Err() == nil {
		n, err := p.tty.Read(buf)
		if n > 0 {
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if werr := conn.WriteMessage(websocket.BinaryMessage, buf[:n]); werr != nil {
				return werr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return ctx.Err()
}

// input feeds socket frames to the terminal. Text frames holding JSON are
// control messages; everything else is keystrokes.
func (p *ptySession) input(ctx context.Context, conn *websocket.Conn) error {
	for ctx.Err() == nil {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if f, ok := parseControl(mt, data); ok {
			if f.Type == "resize" {
				p.resize(f.Cols, f.Rows)
			}
			continue
		}
		if len(data) == 0 {
			continue
		}
		if _, err := p.tty.Write(data); err != nil {
			return err
		}
	}
	return ctx.Err()
}

// parseControl decodes a JSON control frame. Malformed or out-of-range
// frames are reported as control frames with an empty type so they are
// dropped rather than typed into the TUI.
func parseControl(mt int, data []byte) (controlFrame, bool) {
	if mt != websocket.TextMessage || len(data) == 0 || data[0] != '{' {
		return controlFrame{}, false
	}
	var f controlFrame
	if err := json.Unmarshal(data, &f); err != nil {
		return controlFrame{}, true
	}
	f.Type = strings.ToLower(strings.TrimSpace(f.Type))
	if f.Type == "resize" && (f.Cols <= 0 || f.Rows <= 0 || f.Cols > 1000 || f.Rows > 1000) {
		return controlFrame{}, true
	}
	return f, true
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		return
	}
	defer conn.Close()

	code := s.sessionLocale(r)
	argv, err := s.sessionArgs(code)
	if err == nil {
		var sess *ptySession
		if sess, err = startSession(argv, s.log.With("locale", code)); err == nil {
			s.serve(r.Context(), conn, sess)
			return
		}
	}
	s.log.Error("start pty", "err", err)
	_ = conn.WriteMessage(websocket.TextMessage, []byte("failed to start session: "+err.Error()))
}

// serve runs both directions until either one stops, then tears the session
// down and waits for the other.
func (s *Server) serve(ctx context.Context, conn *websocket.Conn, sess *ptySession) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	sess.log.Debug("session start", "pid", sess.cmd.Process.Pid)

	done := make(chan error, 2)
	var wg sync.WaitGroup
	for _, pump := range []func(context.Context, *websocket.Conn) error{sess.output, sess.input} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			done <- pump(ctx, conn)
		}()
	}

	select {
	case <-ctx.Done():
	case err := <-done:
		if err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			sess.log.Debug("session pump stopped", "err", err)
		}
	}
	cancel()

	// Closing both ends unblocks the pending PTY read and socket read.
	sess.stop()
	_ = conn.Close()
	wg.Wait()
	sess.log.Debug("session end")
}

// sessionArgs is the argv for one browser session.
func (s *Server) sessionArgs(code string) ([]string, error) {
	if len(s.cfg.Command) > 0 {
		return append([]string(nil), s.cfg.Command...), nil
	}
	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}
	args := []string{exe, "--locale", code}
	if p := strings.TrimSpace(s.cfg.ConfigPath); p != "" {
		args = append(args, "--config", p)
	}
	// No subcommand => interactive host.
	return args, nil
}
