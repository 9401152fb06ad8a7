package api

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/danielgtaylor/huma/v2"

	"github.com/oaiiae/huma-phonebook/datastores"
	"github.com/oaiiae/huma-phonebook/handlers"
	"github.com/oaiiae/huma-phonebook/router"
)

type ServerOptions struct {
	Host              string        `short:"H" doc:"host to listen on"                    default:""`
	Port              string        `short:"p" doc:"port to listen on"                    default:"3003"`
	ReadHeaderTimeout time.Duration `          doc:"time allowed to read request headers" default:"15s"`
}

func NewServer(options *ServerOptions, handler http.Handler, logger *slog.Logger) *http.Server {
	return &http.Server{
		Addr:              options.Host + ":" + options.Port,
		ReadHeaderTimeout: options.ReadHeaderTimeout,
		Handler:           handler,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

type RouterOptions struct {
	EndpointsPrefix string `doc:"mount endpoints at a prefix"                   default:"/api"`
	CORSOrigin      string `doc:"origin allowed to make cross-origin requests" default:"*"`
}

func NewRouter(
	options *RouterOptions,
	title string,
	version string,
	revision string,
	created string,
	store datastores.ContactsStore,
	logger *slog.Logger,
	opts ...func(huma.API),
) http.Handler {
	huma.NewError = handlers.NewError

	buildinfoMetric := joinQuote("build_info{goversion=", runtime.Version(),
		",title=", title,
		",version=", version,
		",revision=", revision,
		",created=", created,
		"} 1\n")
	metriks := metrics.NewSet()
	metriks.NewGauge("phonebook_contacts", func() float64 {
		n, err := store.Count(context.Background())
		if err != nil {
			return math.NaN()
		}
		return float64(n)
	})
	errorHandler := ctxlog{}.errorHandler(logger)

	return router.CORS(options.CORSOrigin, router.New(title, version,
		readiness(store),
		func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, buildinfoMetric)
			metriks.WritePrometheus(w)
			metrics.WriteProcessMetrics(w)
		},
		router.OptUseMiddleware(
			ctxlog{}.loggerMiddleware(logger),
			meterRequests(metriks),
			ctxlog{}.recoverMiddleware(logger),
		),
		router.OptAutoRegister(&handlers.Info{
			Store:        store,
			ErrorHandler: errorHandler,
		}),
		router.OptGroup(options.EndpointsPrefix,
			router.OptGroup("/persons", router.OptAutoRegister(&handlers.Persons{
				Store:        store,
				ErrorHandler: errorHandler,
			})),
		),
		func(api huma.API) {
			for _, opt := range opts {
				opt(api)
			}
		},
	))
}

// readiness reports 503 while a store that can be pinged does not answer.
func readiness(store datastores.ContactsStore) http.HandlerFunc {
	pinger, ok := store.(interface{ Ping(context.Context) error })
	if !ok {
		return func(http.ResponseWriter, *http.Request) {}
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second) //nolint: mnd // arbitrary
		defer cancel()
		if err := pinger.Ping(ctx); err != nil {
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		}
	}
}

// joinQuote is [strings.Join] with " as separator.
func joinQuote(elems ...string) string { return strings.Join(elems, `"`) }

// joinSpace is [strings.Join] with space as separator.
func joinSpace(elems ...string) string { return strings.Join(elems, ` `) }
