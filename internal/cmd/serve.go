// Copyright (c) 2026 dotandev
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"github.com/dotandev/svginvert/internal/daemon"
	"github.com/spf13/cobra"
)

var (
	serveAddr      string
	serveAuthToken string
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	GroupID: "core",
	Short:   "Start a JSON-RPC server that inverts documents",
	Long: `Start a JSON-RPC 2.0 server on POST /rpc, with a health check on GET /health.
All requests share one color cache.

Methods:
  - InvertService.Invert:      {"document": "<svg ...>"} -> inverted document and stats
  - InvertService.InvertColor: {"colors": ["#fff", ...]} -> inverted literals
  - InvertService.Stats:       {} -> request and cache counters

Example:
  svginvert serve --addr :8080
  svginvert serve --addr 127.0.0.1:8080 --auth-token secret123`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.ServeAddr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}
		token := cfg.AuthToken
		if cmd.Flags().Changed("auth-token") {
			token = serveAuthToken
		}

		inv, err := newInverter()
		if err != nil {
			return err
		}

		server := daemon.NewServer(inv, daemon.Config{
			Addr:      addr,
			AuthToken: token,
		})
		return server.Start(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Address to listen on")
	serveCmd.Flags().StringVar(&serveAuthToken, "auth-token", "", "Require this bearer token on every RPC call")
	rootCmd.AddCommand(serveCmd)
}
