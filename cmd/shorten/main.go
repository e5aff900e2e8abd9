// shorten отправляет одну длинную ссылку в сервис сокращения и печатает ссылку для показа.
//
// Example:
//
//	shorten https://habr.com/ru/post/66931/
//	shorten --html -e http://localhost:3000/shorten https://ya.ru
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/UndeadDemidov/shortlink-form/internal/app/display"
	"github.com/UndeadDemidov/shortlink-form/internal/app/shortening"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

const (
	defaultAPIEndpoint = "https://8oxqs9zlt6.execute-api.us-east-1.amazonaws.com/dev/shorten"
	defaultDisplayBase = "https://omteja04.github.io"
)

var errUsage = errors.New("usage: shorten [flags] <long-url>")

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		logger.Fatal().Err(err).Msg("Error")
	}
}

func run(ctx context.Context, args []string, stdout io.Writer, stderr io.Writer) error {
	fs := pflag.NewFlagSet("shorten", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	endpoint := fs.StringP("api-endpoint", "e", defaultAPIEndpoint, "URL of the shortening API /shorten route")
	base := fs.StringP("display-base", "b", defaultDisplayBase, "base URL for displayed short link")
	timeout := fs.DurationP("request-timeout", "t", 0, "timeout for shortening API call, 0 means none")
	asHTML := fs.Bool("html", false, "print <a> element instead of bare link")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() != 1 {
		fs.PrintDefaults()
		return errUsage
	}

	code, err := shortening.New(*endpoint, shortening.WithTimeout(*timeout)).Shorten(ctx, fs.Arg(0))
	if err != nil {
		return err
	}

	displayURL := display.URL(*base, code)
	if *asHTML {
		_, err = fmt.Fprintln(stdout, display.Anchor(displayURL))
		return err
	}
	_, err = fmt.Fprintln(stdout, displayURL)
	return err
}
