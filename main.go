// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/persephone/persephone/cmd/persephone"

func main() {
	cmd.Execute()
}
