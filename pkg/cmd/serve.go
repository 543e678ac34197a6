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
package cmd

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/varro-lang/varro/pkg/config"
	"github.com/varro-lang/varro/pkg/env"
	"github.com/varro-lang/varro/pkg/eval"
	"github.com/varro-lang/varro/pkg/rpc"
)

var serveCmd = &cobra.Command{
	Use:   "serve [flags]",
	Short: "Serve simplification requests over JSON-RPC.",
	Long: `Serve starts the varro/simplify JSON-RPC service (pkg/rpc), either over
stdio (the default, for a driver that launches this binary as a subprocess) or
a TCP socket given with --addr.`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		ruleSets, err := config.LoadRuleSets(GetStringArray(cmd, "rules"))
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		e := env.New()
		eval.RegisterBuiltins(e)

		logger := newConnLogger(GetFlag(cmd, "verbose"))
		defer logger.Sync() //nolint:errcheck

		srv := rpc.NewServer(e, ruleSets, logger)

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		addr := GetString(cmd, "addr")
		if addr == "" {
			log.Info("serve: listening on stdio")

			if err := srv.ServeStdio(ctx, stdioReadWriteCloser{}); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}

			return
		}

		listener, err := net.Listen("tcp", addr)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		log.Infof("serve: listening on %s", addr)

		go func() {
			<-ctx.Done()
			log.Info("serve: shutting down")

			if err := srv.Shutdown(); err != nil {
				log.Warnf("serve: shutdown: %s", err)
			}

			listener.Close() //nolint:errcheck
		}()

		if err := srv.Serve(ctx, listener); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "TCP address to listen on (default: serve over stdio)")
}

func newConnLogger(verbose bool) *zap.Logger {
	if verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			return logger
		}
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}

	return logger
}

// stdioReadWriteCloser adapts os.Stdin/os.Stdout to a single
// io.ReadWriteCloser, the shape pkg/rpc.Server.ServeStdio expects.
type stdioReadWriteCloser struct{}

func (stdioReadWriteCloser) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdioReadWriteCloser) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdioReadWriteCloser) Close() error                { return os.Stdin.Close() }
