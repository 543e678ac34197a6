// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package rpc is the editor/embedding surface: a JSON-RPC service
// exposing simplification over stdio or a socket, for a driver that
// wants to call into a long-lived session without re-paying process
// startup on every request, kept deliberately out of pkg/simplify's own
// scope.
package rpc

import (
	"context"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/segmentio/encoding/json"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/varro-lang/varro/pkg/config"
	"github.com/varro-lang/varro/pkg/env"
	"github.com/varro-lang/varro/pkg/rules"
	"github.com/varro-lang/varro/pkg/simplify"
	"github.com/varro-lang/varro/pkg/term"
	"github.com/varro-lang/varro/pkg/typecheck"
)

// MethodSimplify is the single custom JSON-RPC method this server
// exposes; there is no textDocument/* routing here, unlike a full LSP
// server, so go.lsp.dev/protocol and go.lsp.dev/uri have no call site.
const MethodSimplify = "varro/simplify"

// SimplifyParams is the varro/simplify request payload: a term in the
// concrete syntax pkg/term.Term.Lisp() produces, the names of the named
// rule sets to simplify against, and an optional profile name
// (pkg/config), defaulting like the CLI does.
type SimplifyParams struct {
	Term     string   `json:"term"`
	RuleSets []string `json:"ruleSets,omitempty"`
	Profile  string   `json:"profile,omitempty"`
}

// SimplifyResult is the varro/simplify response payload.
type SimplifyResult struct {
	Term  string `json:"term"`
	Proof string `json:"proof"`
}

// Server drives zero or more JSON-RPC connections against a shared
// environment, checker and named rule-set table. A Server is safe for
// concurrent use: Shutdown may be called from any goroutine while
// Serve is in flight on another.
type Server struct {
	env      env.Environment
	checker  typecheck.Checker
	ruleSets map[string]*rules.RuleSet
	logger   *zap.Logger

	shutdown *atomic.Bool
	nextID   *atomic.Int64

	mu    sync.Mutex
	conns []jsonrpc2.Conn
}

// NewServer builds a Server over e, indexing ruleSets by their own Name
// for lookup by SimplifyParams.RuleSets. logger is the connection-level
// logger jsonrpc2 itself requires (deliberately distinct from the CLI's
// logrus logger: this package's logging concern belongs to the
// connection, not the process).
func NewServer(e env.Environment, ruleSets []*rules.RuleSet, logger *zap.Logger) *Server {
	byName := make(map[string]*rules.RuleSet, len(ruleSets))
	for _, rs := range ruleSets {
		byName[rs.Name] = rs
	}

	return &Server{
		env:      e,
		checker:  typecheck.New(e),
		ruleSets: byName,
		logger:   logger,
		shutdown: atomic.NewBool(false),
		nextID:   atomic.NewInt64(0),
	}
}

// Serve accepts connections from every listener concurrently, each on
// its own goroutine running the varro/simplify handler, until every
// listener's Accept loop returns (typically because the caller closed
// it after Shutdown). Errors from every listener are aggregated via multierr rather
// than short-circuiting on the first one, so one misbehaving listener
// does not hide another's failure.
func (s *Server) Serve(ctx context.Context, listeners ...net.Listener) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs error
	)

	wg.Add(len(listeners))

	for _, l := range listeners {
		l := l

		go func() {
			defer wg.Done()

			if err := s.acceptLoop(ctx, l); err != nil && !s.shutdown.Load() {
				mu.Lock()
				errs = multierr.Append(errs, err)
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	return errs
}

func (s *Server) acceptLoop(ctx context.Context, l net.Listener) error {
	for {
		conn, err := l.Accept()
		if err != nil {
			return fmt.Errorf("accepting connection: %w", err)
		}

		go s.handleConn(ctx, conn)
	}
}

// ServeStdio runs a single connection over rwc (typically os.Stdin/
// os.Stdout paired by the caller), blocking until that connection
// closes. It is the path used when a driver launches this binary in
// "serve" mode without a socket, the common embedding-glue case.
func (s *Server) ServeStdio(ctx context.Context, rwc io.ReadWriteCloser) error {
	s.handleConn(ctx, rwc)
	return nil
}

func (s *Server) handleConn(ctx context.Context, rwc io.ReadWriteCloser) {
	id := s.nextID.Inc()

	stream := jsonrpc2.NewStream(rwc)
	conn := jsonrpc2.NewConn(stream)

	s.mu.Lock()
	s.conns = append(s.conns, conn)
	s.mu.Unlock()

	s.logger.Info("connection opened", zap.Int64("conn", id))

	conn.Go(ctx, s.handle)

	<-conn.Done()

	if err := conn.Err(); err != nil {
		s.logger.Warn("connection closed with error", zap.Int64("conn", id), zap.Error(err))
	} else {
		s.logger.Info("connection closed", zap.Int64("conn", id))
	}
}

func (s *Server) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	switch req.Method() {
	case MethodSimplify:
		return s.handleSimplify(ctx, reply, req)
	default:
		return reply(ctx, nil, fmt.Errorf("rpc: unknown method %q", req.Method()))
	}
}

func (s *Server) handleSimplify(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params SimplifyParams
	if err := json.Unmarshal([]byte(req.Params()), &params); err != nil {
		return reply(ctx, nil, fmt.Errorf("rpc: decoding %s params: %w", MethodSimplify, err))
	}

	t, err := rules.ParseText("rpc:term", params.Term)
	if err != nil {
		return reply(ctx, nil, fmt.Errorf("rpc: parsing term: %w", err))
	}

	ruleSets := make([]*rules.RuleSet, 0, len(params.RuleSets))

	for _, name := range params.RuleSets {
		rs, ok := s.ruleSets[name]
		if !ok {
			return reply(ctx, nil, fmt.Errorf("rpc: unknown rule set %q", name))
		}

		ruleSets = append(ruleSets, rs)
	}

	opts := config.Resolve(params.Profile)
	session := simplify.NewSession(s.env, s.checker, ruleSets, opts)

	out, proof, err := session.Simplify(t, term.NewContext())
	if err != nil {
		return reply(ctx, nil, fmt.Errorf("rpc: simplifying: %w", err))
	}

	return reply(ctx, SimplifyResult{
		Term:  term.String(out),
		Proof: term.String(proof),
	}, nil)
}

// Shutdown marks the server as shutting down (so Serve no longer
// reports Accept errors once the caller closes the listeners) and closes
// every connection opened so far, aggregating their close errors. It
// does not close the listeners themselves.
func (s *Server) Shutdown() error {
	s.shutdown.Store(true)

	s.mu.Lock()
	defer s.mu.Unlock()

	var errs error

	for _, c := range s.conns {
		errs = multierr.Append(errs, c.Close())
	}

	return errs
}
