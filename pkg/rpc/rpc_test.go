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
package rpc_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/zap"

	"github.com/varro-lang/varro/pkg/env"
	"github.com/varro-lang/varro/pkg/rpc"
)

func TestSimplifyParamsRoundTripsThroughJSON(t *testing.T) {
	in := rpc.SimplifyParams{
		Term:     "((lambda x Field #0) a)",
		RuleSets: []string{"arith"},
		Profile:  "thorough",
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out rpc.SimplifyParams
	require.NoError(t, json.Unmarshal(data, &out))
	require.Equal(t, in, out)
}

// End-to-end: a client dials the server over an in-memory pipe and
// calls varro/simplify, exercising the real jsonrpc2 wire format rather
// than calling Server's unexported handler directly.
func TestServerSimplifiesOverJSONRPC(t *testing.T) {
	serverSide, clientSide := net.Pipe()

	srv := rpc.NewServer(env.New(), nil, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go func() {
		_ = srv.ServeStdio(ctx, serverSide)
	}()

	clientConn := jsonrpc2.NewConn(jsonrpc2.NewStream(clientSide))
	clientConn.Go(ctx, func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		return reply(ctx, nil, nil)
	})

	defer clientConn.Close()

	params := rpc.SimplifyParams{Term: "((lambda x Field #0) a)"}

	var result rpc.SimplifyResult
	_, err := clientConn.Call(ctx, rpc.MethodSimplify, params, &result)
	require.NoError(t, err)
	require.Equal(t, "a", result.Term)
}

func TestServerRejectsUnknownRuleSet(t *testing.T) {
	serverSide, clientSide := net.Pipe()

	srv := rpc.NewServer(env.New(), nil, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go func() {
		_ = srv.ServeStdio(ctx, serverSide)
	}()

	clientConn := jsonrpc2.NewConn(jsonrpc2.NewStream(clientSide))
	clientConn.Go(ctx, func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		return reply(ctx, nil, nil)
	})

	defer clientConn.Close()

	params := rpc.SimplifyParams{Term: "a", RuleSets: []string{"nonexistent"}}

	var result rpc.SimplifyResult
	_, err := clientConn.Call(ctx, rpc.MethodSimplify, params, &result)
	require.Error(t, err)
}
