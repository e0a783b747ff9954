package main

import (
	"os"

	"github.com/ytget/smd/internal/errors"
	"github.com/ytget/smd/internal/logging"
)

func main() {
	if err := Execute(); err != nil {
		logging.UserError("%v", err)
		os.Exit(errors.GetExitCode(err))
	}
}
