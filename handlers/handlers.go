package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
)

type handler[I, O any] = func(context.Context, *I) (*O, error)

// handlerWithErrors maps every error returned by handler with [mapError],
// then passes the mapped error to do when it is not nil.
func handlerWithErrors[I, O any](handler handler[I, O], do func(context.Context, error)) handler[I, O] {
	return handlerWithErrorHandler(handlerWithErrorMapper(handler), do)
}

func handlerWithErrorMapper[I, O any](handler handler[I, O]) handler[I, O] {
	return func(ctx context.Context, i *I) (*O, error) {
		o, err := handler(ctx, i)
		if err != nil {
			return nil, mapError(err)
		}
		return o, nil
	}
}

func handlerWithErrorHandler[I, O any](handler handler[I, O], do func(context.Context, error)) handler[I, O] {
	if do == nil {
		return handler
	}

	return func(ctx context.Context, i *I) (*O, error) {
		o, err := handler(ctx, i)
		if err != nil {
			do(ctx, err)
		}
		return o, err
	}
}

func opID(id string) func(*huma.Operation) {
	return func(o *huma.Operation) { o.OperationID = id }
}

func opStatus(code int) func(*huma.Operation) {
	return func(o *huma.Operation) { o.DefaultStatus = code }
}

func opErrors(codes ...int) func(*huma.Operation) {
	return func(o *huma.Operation) { o.Errors = codes }
}
