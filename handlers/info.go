package handlers

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	ds "github.com/oaiiae/huma-phonebook/datastores"
)

// Info serves a short HTML summary of the phonebook.
type Info struct {
	Store        ds.ContactsStore
	ErrorHandler func(context.Context, error)
	Now          func() time.Time // defaults to [time.Now]
}

func (h *Info) RegisterInfo(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/info",
		handlerWithErrors(h.info, h.ErrorHandler),
		opID("get-info"),
		opErrors(http.StatusInternalServerError),
		func(o *huma.Operation) {
			o.Responses = map[string]*huma.Response{
				"200": {
					Description: "Phonebook summary",
					Content:     map[string]*huma.MediaType{"text/html": {}},
				},
			}
		},
	)
}

type InfoOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

func (h *Info) info(ctx context.Context, _ *struct{}) (*InfoOutput, error) {
	n, err := h.Store.Count(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	return &InfoOutput{
		ContentType: "text/html; charset=utf-8",
		Body: fmt.Appendf(nil, "<p>Phonebook has info for %d people</p>\n<p>%s</p>\n",
			n, html.EscapeString(now().Format(time.RFC1123Z))),
	}, nil
}
