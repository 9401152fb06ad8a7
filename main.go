package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/spf13/cobra"

	"github.com/oaiiae/huma-phonebook/cli/api"
	"github.com/oaiiae/huma-phonebook/cli/logger"
	"github.com/oaiiae/huma-phonebook/datastores"
)

const title = "Phonebook API"

// Set at build time with -ldflags "-X main.version=...".
var (
	version  = "dev"
	revision = ""
	created  = ""
)

// Options for the CLI. Pass `--port` or set the `SERVICE_PORT` env var.
type Options struct {
	api.ServerOptions
	api.RouterOptions
	api.StoreOptions
	logger.Options
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		log, logCloser := logger.New(&options.Options)
		svc := api.NewService(
			func(ctx context.Context) (datastores.ContactsStore, io.Closer, error) {
				return api.OpenStore(ctx, &options.StoreOptions, log)
			},
			func(store datastores.ContactsStore) *http.Server {
				return api.NewServer(&options.ServerOptions,
					api.NewRouter(&options.RouterOptions, title, version, revision, created, store, log),
					log,
				)
			},
			log,
		)

		hooks.OnStart(func() {
			if err := svc.Run(context.Background()); err != nil {
				log.Error("service failed", "err", err)
				logCloser.Close()
				os.Exit(1)
			}
		})
		hooks.OnStop(func() {
			defer logCloser.Close()
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := svc.Stop(ctx); err != nil {
				log.Warn("could not stop the service", "err", err)
			}
		})
	})

	cli.Root().Use = "phonebook"
	cli.Root().Version = version
	cli.Root().AddCommand(&cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document",
		Run: humacli.WithOptions(func(cmd *cobra.Command, _ []string, options *Options) {
			var oapi *huma.OpenAPI
			api.NewRouter(&options.RouterOptions, title, version, revision, created,
				datastores.NewContactsInmem(), slog.New(slog.DiscardHandler),
				func(a huma.API) { oapi = a.OpenAPI() },
			)
			b, err := oapi.YAML()
			if err != nil {
				cmd.PrintErrln(err)
				os.Exit(1)
			}
			_, _ = cmd.OutOrStdout().Write(b)
		}),
	})
	cli.Run()
}
