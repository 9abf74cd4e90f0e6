// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/persephone/persephone/internal/issue"
	"github.com/persephone/persephone/pkg/platform"
	"github.com/persephone/persephone/pkg/types"
)

// writeOutput prints doc to stdout, or writes it to path when set.
func (a *App) writeOutput(path, doc string) error {
	if path == "" {
		_, err := fmt.Fprint(a.stdout, doc)
		return err
	}

	err := platform.CheckOutputPath(runtime.GOOS, path)
	if err == nil {
		err = os.WriteFile(path, []byte(doc), 0o644)
	}
	if err != nil {
		return a.fail(issue.NewErrorContext().
			WithOperation("write document").
			WithResource(path).
			WithIssue(issue.OutputWriteFailedId).
			Wrap(err).
			BuildError(), types.ExitFailure, 0)
	}

	fmt.Fprintf(a.stderr, "%s Wrote %s\n", successIcon, CmdStyle.Render(path))
	return nil
}
