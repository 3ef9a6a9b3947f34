// SPDX-License-Identifier: EPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"pdkserve/pkg/pdk"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var deviceLocalPaths []string

var deviceCmd = &cobra.Command{
	Use:   "device <pdk> <device>",
	Short: "Show one discovered device's ports and parameters",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		svc := newDiscovery(logger)
		for _, path := range deviceLocalPaths {
			svc.AddPath(path)
		}

		device, found := svc.Device(args[0], args[1])
		if !found {
			return fmt.Errorf("device %s not found in %s", args[1], args[0])
		}

		rendered, err := glamour.Render(deviceMarkdown(device), "dark")
		if err != nil {
			// Fall back to the raw markdown on rendering trouble.
			fmt.Println(deviceMarkdown(device))
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

// deviceMarkdown formats a device descriptor for terminal rendering.
func deviceMarkdown(d pdk.Device) string {
	var md strings.Builder

	fmt.Fprintf(&md, "# %s\n\n", d.Name)
	fmt.Fprintf(&md, "- **Module path**: `%s`\n", d.ModulePath)
	fmt.Fprintf(&md, "- **Category**: %s\n", d.Category)
	fmt.Fprintf(&md, "- **Symbol**: %s\n\n", d.SymbolType)

	md.WriteString("## Ports\n\n")
	md.WriteString("| Name | Direction |\n|---|---|\n")
	for _, p := range d.Ports {
		fmt.Fprintf(&md, "| %s | %s |\n", p.Name, p.Direction)
	}

	if len(d.Params) > 0 {
		md.WriteString("\n## Parameters\n\n")
		md.WriteString("| Name | Type | Default | Description |\n|---|---|---|---|\n")
		for _, p := range d.Params {
			def := "—"
			if p.Default != nil {
				def = fmt.Sprintf("%v", p.Default)
			}
			fmt.Fprintf(&md, "| %s | %s | %s | %s |\n", p.Name, p.DType, def, p.Description)
		}
	}

	return md.String()
}

func init() {
	deviceCmd.Flags().StringArrayVar(&deviceLocalPaths, "local-path", nil,
		"add a local PDK path to the registry (repeatable)")
}
