// Command convkit converts integers between bases 2 to 36 and data sizes
// between bits and exabytes, exactly.
package main

import (
	"context"
	"os"

	"github.com/agbru/convkit/internal/app"
	apperrors "github.com/agbru/convkit/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		if err := app.PrintVersion(os.Stdout, app.HasJSONFlag(os.Args[1:])); err != nil {
			os.Exit(apperrors.ExitErrorGeneric)
		}
		os.Exit(apperrors.ExitSuccess)
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.ExitErrorConfig)
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
