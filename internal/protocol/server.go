// SPDX-License-Identifier: EPL-2.0

// Package protocol implements the request/response loop the host editor
// drives: newline-delimited JSON objects on stdin, one JSON response per
// line on stdout, flushed after every response. The loop is strictly
// single-threaded — one request is fully processed before the next line is
// read — and total: malformed input and handler panics become structured
// error responses, never session termination.
package protocol

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"pdkserve/internal/discover"
	"pdkserve/internal/install"
	"pdkserve/pkg/pdk"

	"github.com/charmbracelet/log"
)

// Server dispatches protocol commands to the discovery service and the
// installer.
type Server struct {
	in        io.Reader
	out       io.Writer
	discovery *discover.Service
	installer *install.Runner
	logger    *log.Logger
}

// New wires a Server. A nil logger discards diagnostics.
func New(in io.Reader, out io.Writer, discovery *discover.Service, installer *install.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		in:        in,
		out:       out,
		discovery: discovery,
		installer: installer,
		logger:    logger,
	}
}

// Run reads requests until the input is exhausted or the context is
// cancelled. Blank lines are ignored. Lines are unbounded: the request
// stays alive no matter how large a definition payload the editor sends.
// Nothing but protocol responses is ever written to the output stream.
func (s *Server) Run(ctx context.Context) error {
	reader := bufio.NewReader(s.in)
	writer := bufio.NewWriter(s.out)
	encoder := json.NewEncoder(writer)

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line, readErr := reader.ReadString('\n')

		if trimmed := strings.TrimSpace(line); trimmed != "" {
			resp := s.Handle(ctx, trimmed)
			if err := encoder.Encode(resp); err != nil {
				return fmt.Errorf("failed to encode response: %w", err)
			}
			if err := writer.Flush(); err != nil {
				return fmt.Errorf("failed to flush response: %w", err)
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read request: %w", readErr)
		}
	}
}

// Handle processes one request line and always produces a response value:
// malformed JSON, unknown actions, missing fields, and even panics inside
// an action handler all resolve to structured errors.
func (s *Server) Handle(ctx context.Context, line string) (resp any) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("command handler panicked", "panic", r)
			resp = errorMessage(fmt.Sprintf("%v", r))
		}
	}()

	var req Request
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		return errorMessage("Invalid JSON: " + err.Error())
	}

	return s.dispatch(ctx, req)
}

func (s *Server) dispatch(ctx context.Context, req Request) any {
	switch req.Action {
	case ActionDiscover:
		pdks := s.discovery.All()
		if pdks == nil {
			pdks = []pdk.Package{}
		}
		return DiscoverResponse{Status: StatusOK, PDKs: pdks}

	case ActionAddLocalPath:
		if req.Path == "" {
			return errorMessage("No path specified")
		}
		s.discovery.AddPath(req.Path)
		return okMessage("Added local PDK path: " + req.Path)

	case ActionInstall:
		if req.Package == "" {
			return errorMessage("No package specified")
		}
		result := s.installer.Install(ctx, req.Package)
		status := StatusOK
		if !result.Ok() {
			status = StatusError
		}
		return InstallResponse{
			Status:     status,
			Output:     result.Output,
			ReturnCode: result.ReturnCode,
		}

	case ActionGetDeviceDetails:
		device, found := s.discovery.Device(req.PDK, req.Device)
		if !found {
			return errorMessage(fmt.Sprintf("Device %s not found in %s", req.Device, req.PDK))
		}
		return DeviceResponse{Status: StatusOK, Device: device}

	case ActionPing:
		return okMessage("pong")

	default:
		if req.Action == "" {
			return errorMessage("No action specified")
		}
		return errorMessage("Unknown action: " + req.Action)
	}
}
