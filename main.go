// SPDX-License-Identifier: EPL-2.0

package main

import cmd "pdkserve/cmd/pdkserve"

func main() {
	cmd.Execute()
}
