// SPDX-License-Identifier: EPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install <package>",
	Short: "Install a PDK package via the configured installer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result := newInstaller().Install(cmd.Context(), args[0])

		if result.Output != "" {
			fmt.Fprintln(os.Stderr, result.Output)
		}
		if !result.Ok() {
			return fmt.Errorf("installer exited with code %d", result.ReturnCode)
		}

		fmt.Println(SuccessStyle.Render("Installed ") + args[0])
		return nil
	},
}
