package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
)

// RunExtension attempts to find and execute an external sb-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
//
// The resolved global settings are passed as environment variables, so that
// extensions read the same data directory.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "sb-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Printf("External command %q not found in PATH: %v", externalCmdName, err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extensionEnv()...)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}

// extensionEnv returns the global settings as environment variables.
func extensionEnv() []string {
	return []string{
		EnvData + "=" + DataDir(),
		EnvCurrency + "=" + Currency(),
		EnvPriceURL + "=" + PriceURL(),
		EnvDB + "=" + DBPath(),
		EnvVerbose + "=" + strconv.FormatBool(*Verbose),
	}
}
