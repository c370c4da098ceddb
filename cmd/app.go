// Package cmd implements the CLI application to analyse a portfolio.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

// Environment variables giving the defaults of the global flags.
const (
	EnvData     = "SNOWBALL_DATA"
	EnvCurrency = "SNOWBALL_CURRENCY"
	EnvPriceURL = "SNOWBALL_PRICE_URL"
	EnvDB       = "SNOWBALL_DB"
	EnvVerbose  = "SNOWBALL_VERBOSE"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	dataFlag     = flag.String("data", "", "Path to the data directory. Defaults to $"+EnvData+" or the current directory.")
	currencyFlag = flag.String("currency", "", "Reporting currency. Defaults to $"+EnvCurrency+" or PLN.")
	priceURLFlag = flag.String("price-url", "", "Quote endpoint with a {symbol} parameter. Defaults to $"+EnvPriceURL+".")
	dbFlag       = flag.String("db", "", "Path to the quote sessions database. Defaults to $"+EnvDB+" or <data>/sessions.db.")
	Verbose      = flag.Bool("v", false, "Print diagnostic logs.")
)

// Commands are the subcommands of the application.
var Commands = []subcommands.Command{
	&summaryCmd{},
	&timelineCmd{},
	&calendarCmd{},
	&drawdownCmd{},
	&assetsCmd{},
	&checkCmd{},
	&projectCmd{},
	&exportCmd{},
	&cpiCmd{},
	&AssistCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
}

// Setup loads the .env file of the working directory, if any, and configures
// the logs. It must be called once flags are parsed.
func Setup() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot load .env: %w", err)
	}
	if !*Verbose && os.Getenv(EnvVerbose) != "true" {
		log.SetOutput(io.Discard)
	}
	return nil
}

// setting returns the flag value, or the environment variable, or def.
func setting(flagValue, env, def string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

// DataDir is the data directory.
func DataDir() string { return setting(*dataFlag, EnvData, ".") }

// Currency is the reporting currency.
func Currency() string { return setting(*currencyFlag, EnvCurrency, "PLN") }

// PriceURL is the quote endpoint, empty when prices are not fetched.
func PriceURL() string { return setting(*priceURLFlag, EnvPriceURL, "") }

// DBPath is the quote sessions database.
func DBPath() string {
	return setting(*dbFlag, EnvDB, DataDir()+string(os.PathSeparator)+"sessions.db")
}
