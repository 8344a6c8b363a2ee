package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/feathercam/picamera/pkg/camera"
)

const helpText = `commands:
  open                           open a local camera handle
  start HOST PORT MAX_CONN       open a service and start listening
  connect HOST PORT              connect to a remote service
  is busy|remote|service|connected
  get FIELD
  set FIELD VALUE...
  capture PATH
  capture_video SECONDS PATH
  help
  exit | quit | x | q`

// REPL drives a Handle from line-oriented commands matching spec §6's
// grammar. It owns at most one Handle at a time; open/start/connect
// replace whatever Handle (if any) came before, closing it first.
type REPL struct {
	console Console
	handle  *camera.Handle
}

func New(console Console) *REPL {
	return &REPL{console: console}
}

// Run reads commands until exit/quit/x/q, ConnectionClosed, or the
// Console's input is exhausted.
func (r *REPL) Run() {
	r.console.WriteLine("picamera shell — type help for commands")
	for {
		line, err := r.console.ReadLine()
		if err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		cmd, args := fields[0], fields[1:]
		switch cmd {
		case "help":
			r.console.WriteLine(helpText)
		case "exit", "quit", "x", "q":
			if r.handle != nil {
				_ = r.handle.Close()
			}
			return
		case "open":
			r.setHandle(camera.OpenLocal())
			r.console.WriteLine(okStyle.Render("opened local handle"))
		case "start":
			r.cmdStart(args)
		case "connect":
			r.cmdConnect(args)
		case "is":
			r.cmdIs(args)
		case "get":
			r.cmdGet(args)
		case "set":
			r.cmdSet(args)
		case "capture":
			r.cmdCapture(args)
		case "capture_video":
			r.cmdCaptureVideo(args)
		default:
			r.console.WriteLine(errorStyle.Render(fmt.Sprintf("unknown command: %s", cmd)))
		}

		if r.handle != nil && r.handle.IsRemote() && !r.handle.IsConnected() {
			r.console.WriteLine(errorStyle.Render("connection closed"))
			return
		}
	}
}

func (r *REPL) cmdStart(args []string) {
	if len(args) < 3 {
		r.console.WriteLine(errorStyle.Render("usage: start HOST PORT MAX_CONN"))
		return
	}
	port, err := strconv.ParseUint(args[1], 10, 16)
	if err != nil {
		r.console.WriteLine(errorStyle.Render("invalid port"))
		return
	}
	maxConn, err := strconv.Atoi(args[2])
	if err != nil {
		r.console.WriteLine(errorStyle.Render("invalid max_connections"))
		return
	}

	h, ec := camera.OpenService(camera.ServiceConfig{
		Host:           args[0],
		Port:           uint16(port),
		MaxConnections: maxConn,
	})
	if ec != camera.Success {
		r.console.WriteLine(r.formatResult("start", ec))
		return
	}

	r.setHandle(h)
	go func() {
		_ = runService(h)
	}()
	r.console.WriteLine(okStyle.Render(fmt.Sprintf("service listening on %s:%d", args[0], port)))
}

// runService is a tiny indirection so tests can substitute a handle whose
// Run never blocks forever.
var runService = func(h *camera.Handle) error {
	return h.RunService()
}

func (r *REPL) cmdConnect(args []string) {
	if len(args) < 2 {
		r.console.WriteLine(errorStyle.Render("usage: connect HOST PORT"))
		return
	}
	port, err := strconv.ParseUint(args[1], 10, 16)
	if err != nil {
		r.console.WriteLine(errorStyle.Render("invalid port"))
		return
	}

	h, ec := camera.OpenRemote(args[0], uint16(port))
	if ec != camera.Success {
		r.console.WriteLine(r.formatResult("connect", ec))
		return
	}
	r.setHandle(h)
	r.console.WriteLine(okStyle.Render(fmt.Sprintf("connected to %s:%d", args[0], port)))
}

// setHandle installs h as the REPL's Handle, closing the one it replaces.
func (r *REPL) setHandle(h *camera.Handle) {
	if r.handle != nil {
		_ = r.handle.Close()
	}
	r.handle = h
}

func (r *REPL) cmdIs(args []string) {
	if len(args) < 1 || r.handle == nil {
		r.console.WriteLine(errorStyle.Render("usage: is busy|remote|service|connected (no handle open)"))
		return
	}
	switch args[0] {
	case "busy":
		v, ec := r.handle.IsBusy()
		r.console.WriteLine(r.formatBool("is busy", v, ec))
	case "remote":
		r.console.WriteLine(r.formatBool("is remote", r.handle.IsRemote(), camera.Success))
	case "service":
		r.console.WriteLine(r.formatBool("is service", r.handle.IsService(), camera.Success))
	case "connected":
		r.console.WriteLine(r.formatBool("is connected", r.handle.IsConnected(), camera.Success))
	default:
		r.console.WriteLine(errorStyle.Render("usage: is busy|remote|service|connected"))
	}
}

func (r *REPL) cmdGet(args []string) {
	if r.handle == nil {
		r.console.WriteLine(errorStyle.Render("no handle open"))
		return
	}
	if len(args) < 1 {
		r.console.WriteLine(errorStyle.Render("usage: get FIELD"))
		return
	}
	if args[0] == "config" {
		cfg, ec := r.handle.GetConfig()
		if ec != camera.Success {
			r.console.WriteLine(r.formatResult("get config", ec))
			return
		}
		r.console.WriteLine(fmt.Sprintf("%+v", cfg))
		return
	}

	f, ok := lookupField(args[0])
	if !ok {
		r.console.WriteLine(errorStyle.Render("unknown field: " + args[0]))
		return
	}
	v, ec := f.get(r.handle)
	if ec != camera.Success {
		r.console.WriteLine(r.formatResult("get "+f.name, ec))
		return
	}
	r.console.WriteLine(v)
}

func (r *REPL) cmdSet(args []string) {
	if r.handle == nil {
		r.console.WriteLine(errorStyle.Render("no handle open"))
		return
	}
	if len(args) < 2 {
		r.console.WriteLine(errorStyle.Render("usage: set FIELD VALUE..."))
		return
	}

	f, ok := lookupField(args[0])
	if !ok {
		r.console.WriteLine(errorStyle.Render("unknown field: " + args[0]))
		return
	}
	ec := f.set(r.handle, args[1:])
	r.console.WriteLine(r.formatResult("set "+f.name, ec))
}

func (r *REPL) cmdCapture(args []string) {
	if r.handle == nil {
		r.console.WriteLine(errorStyle.Render("no handle open"))
		return
	}
	if len(args) < 1 {
		r.console.WriteLine(errorStyle.Render("usage: capture PATH"))
		return
	}
	ec := r.handle.Capture(args[0])
	r.console.WriteLine(r.formatResult("capture", ec))
}

func (r *REPL) cmdCaptureVideo(args []string) {
	if r.handle == nil {
		r.console.WriteLine(errorStyle.Render("no handle open"))
		return
	}
	if len(args) < 2 {
		r.console.WriteLine(errorStyle.Render("usage: capture_video SECONDS PATH"))
		return
	}
	seconds, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		r.console.WriteLine(errorStyle.Render("invalid seconds"))
		return
	}
	ec := r.handle.CaptureVideo(args[1], uint32(seconds))
	r.console.WriteLine(r.formatResult("capture_video", ec))
}

func (r *REPL) formatResult(cmd string, ec camera.ErrorCode) string {
	if ec == camera.Success {
		return okStyle.Render(cmd + " returned 0: success")
	}
	return errorStyle.Render(fmt.Sprintf("%s returned %d: %s", cmd, uint8(ec), ec.String()))
}

func (r *REPL) formatBool(cmd string, v bool, ec camera.ErrorCode) string {
	if ec != camera.Success {
		return r.formatResult(cmd, ec)
	}
	return okStyle.Render(fmt.Sprintf("%s: %t", cmd, v))
}
