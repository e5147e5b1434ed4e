package web

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"sync"

	"github.com/coder/websocket"
	"github.com/creack/pty/v2"
)

type resizeMsg struct {
	Type string `json:"type"`
	Cols uint16 `json:"cols"`
	Rows uint16 `json:"rows"`
}

// parseResize reports whether data is a resize control frame.
func parseResize(data []byte) (resizeMsg, bool) {
	if len(data) == 0 || data[0] != '{' {
		return resizeMsg{}, false
	}
	var msg resizeMsg
	if json.Unmarshal(data, &msg) != nil || msg.Type != "resize" || msg.Cols == 0 || msg.Rows == 0 {
		return resizeMsg{}, false
	}
	return msg, true
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		s.log.Error("websocket accept", "err", err)
		return
	}
	defer conn.CloseNow()

	cols := parseUint16(r.URL.Query().Get("cols"), 80)
	rows := parseUint16(r.URL.Query().Get("rows"), 24)

	exe, err := s.executable()
	if err != nil {
		s.log.Error("find executable", "err", err)
		conn.Close(websocket.StatusInternalError, "cannot find executable")
		return
	}

	cmd := exec.Command(exe, s.tuiArgs()...)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color", "COLORTERM=truecolor")

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: rows, Cols: cols})
	if err != nil {
		s.log.Error("pty start", "err", err)
		conn.Close(websocket.StatusInternalError, "failed to start pty")
		return
	}
	s.log.Info("terminal session started", "remote", r.RemoteAddr, "pid", cmd.Process.Pid, "cols", cols, "rows", rows)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	var once sync.Once
	cleanup := func() {
		cancel()
		ptmx.Close()
		if cmd.Process != nil {
			cmd.Process.Kill()
			cmd.Wait()
		}
		s.log.Info("terminal session ended", "remote", r.RemoteAddr)
	}
	defer once.Do(cleanup)

	// Binary frames skip UTF-8 validation of partial escape sequences.
	go func() {
		buf := make([]byte, 32*1024)
		for {
			n, err := ptmx.Read(buf)
			if err != nil {
				once.Do(cleanup)
				conn.Close(websocket.StatusNormalClosure, "process exited")
				return
			}
			if err := conn.Write(ctx, websocket.MessageBinary, buf[:n]); err != nil {
				s.log.Debug("ws write", "err", err)
				once.Do(cleanup)
				return
			}
		}
	}()

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			s.log.Debug("ws read", "err", err)
			return
		}

		if resize, ok := parseResize(data); ok {
			pty.Setsize(ptmx, &pty.Winsize{Rows: resize.Rows, Cols: resize.Cols})
			continue
		}

		if _, err := ptmx.Write(data); err != nil {
			return
		}
	}
}

func parseUint16(s string, def uint16) uint16 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil || v == 0 {
		return def
	}
	return uint16(v)
}
