// SPDX-License-Identifier: EPL-2.0

package cmd

import (
	"os"

	"pdkserve/internal/protocol"

	"github.com/spf13/cobra"
)

var serveLocalPaths []string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the discovery protocol on stdin/stdout",
	Long: `Run the persistent request/response loop the host editor drives:
newline-delimited JSON requests on stdin, one JSON response per line on
stdout. Discovery imports device-definition packages on every request;
nothing is cached across requests.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		svc := newDiscovery(logger)
		for _, path := range serveLocalPaths {
			svc.AddPath(path)
		}

		server := protocol.New(os.Stdin, os.Stdout, svc, newInstaller(), logger)
		return server.Run(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringArrayVar(&serveLocalPaths, "local-path", nil,
		"pre-seed a local PDK path into the registry (repeatable)")
}
