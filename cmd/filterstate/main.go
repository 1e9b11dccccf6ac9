package main

import (
	"os"

	"github.com/ocp-advisor/filterstate/cmd"
	clierrors "github.com/ocp-advisor/filterstate/internal/errors"
)

func main() {
	err := cmd.Execute()
	closeErr := client.Close()
	if err == nil {
		err = closeErr
	}
	os.Exit(clierrors.NewDefaultCLIHandler().Handle(err))
}
