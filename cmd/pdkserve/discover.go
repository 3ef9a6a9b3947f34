// SPDX-License-Identifier: EPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var discoverLocalPaths []string

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Run one discovery pass and list the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		svc := newDiscovery(logger)
		for _, path := range discoverLocalPaths {
			svc.AddPath(path)
		}

		pdks := svc.All()
		if len(pdks) == 0 {
			fmt.Println(SubtitleStyle.Render("No PDKs discovered."))
			return nil
		}

		for _, p := range pdks {
			fmt.Printf("%s %s\n",
				TitleStyle.Render(p.Name),
				SubtitleStyle.Render("v"+p.Version))
			if p.Description != "" {
				fmt.Println("  " + SubtitleStyle.Render(p.Description))
			}
			for _, d := range p.Devices {
				fmt.Printf("  %s  %s\n",
					DeviceStyle.Render(d.Name),
					SubtitleStyle.Render(fmt.Sprintf("%s  %s  %d ports",
						d.Category, d.SymbolType, len(d.Ports))))
			}
		}
		return nil
	},
}

func init() {
	discoverCmd.Flags().StringArrayVar(&discoverLocalPaths, "local-path", nil,
		"add a local PDK path to the registry (repeatable)")
}
