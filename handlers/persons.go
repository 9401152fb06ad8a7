package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	ds "github.com/oaiiae/huma-phonebook/datastores"
)

// Persons serves the phonebook contacts.
type Persons struct {
	Store        ds.ContactsStore
	ErrorHandler func(context.Context, error)
}

type PersonModel struct {
	ID     ds.ContactID `json:"id"     readOnly:"true" example:"1"`
	Name   string       `json:"name"   example:"Arto Hellas"`
	Number string       `json:"number" example:"040-123456"`
}

func newPersonModel(c *ds.Contact) PersonModel {
	return PersonModel{ID: c.ID, Name: c.Name, Number: c.Number}
}

// PersonInput is the body of create and update requests. Missing fields are
// reported by [validateContact] rather than by the schema, and unknown
// fields (such as the id echoed back by clients) are ignored.
type PersonInput struct {
	_      struct{} `json:"-"                additionalProperties:"true"`
	Name   string   `json:"name,omitempty"   required:"false" example:"Ada Lovelace"`
	Number string   `json:"number,omitempty" required:"false" example:"39-44-5323523"`
}

type PersonOutput struct {
	Body PersonModel
}

func (h *Persons) RegisterList(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "",
		handlerWithErrors(h.list, h.ErrorHandler),
		opID("list-persons"),
		opErrors(http.StatusInternalServerError),
	)
}

type PersonsListOutput struct {
	Body []PersonModel
}

func (h *Persons) list(ctx context.Context, _ *struct{}) (*PersonsListOutput, error) {
	contacts, err := h.Store.List(ctx)
	if err != nil {
		return nil, err
	}

	body := make([]PersonModel, 0, len(contacts))
	for _, contact := range contacts {
		body = append(body, newPersonModel(contact))
	}

	return &PersonsListOutput{Body: body}, nil
}

func (h *Persons) RegisterGet(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/{id}",
		handlerWithErrors(h.get, h.ErrorHandler),
		opID("get-person"),
		opErrors(http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError),
	)
}

func (h *Persons) get(ctx context.Context, input *struct {
	ID string `path:"id" example:"1" doc:"ID of the person to get"`
}) (*PersonOutput, error) {
	id, err := ds.ParseContactID(input.ID)
	if err != nil {
		return nil, err
	}

	contact, err := h.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &PersonOutput{Body: newPersonModel(contact)}, nil
}

func (h *Persons) RegisterCreate(api huma.API) { // called by [huma.AutoRegister]
	huma.Post(api, "",
		handlerWithErrors(h.create, h.ErrorHandler),
		opID("create-person"),
		opStatus(http.StatusCreated),
		opErrors(http.StatusBadRequest, http.StatusInternalServerError),
	)
}

func (h *Persons) create(ctx context.Context, input *struct {
	Body PersonInput
}) (*PersonOutput, error) {
	err := validateContact(input.Body.Name, input.Body.Number)
	if err != nil {
		return nil, err
	}

	// stores enforce the same constraint on insert
	contacts, err := h.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range contacts {
		if c.Name == input.Body.Name {
			return nil, ds.ErrDuplicateName
		}
	}

	contact := &ds.Contact{Name: input.Body.Name, Number: input.Body.Number}
	contact.ID, err = h.Store.Create(ctx, contact)
	if err != nil {
		return nil, err
	}

	return &PersonOutput{Body: newPersonModel(contact)}, nil
}

func (h *Persons) RegisterUpdate(api huma.API) { // called by [huma.AutoRegister]
	huma.Put(api, "/{id}",
		handlerWithErrors(h.update, h.ErrorHandler),
		opID("update-person"),
		opErrors(http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError),
	)
}

func (h *Persons) update(ctx context.Context, input *struct {
	ID   string `path:"id" example:"1" doc:"ID of the person to update"`
	Body PersonInput
}) (*PersonOutput, error) {
	id, err := ds.ParseContactID(input.ID)
	if err != nil {
		return nil, err
	}

	err = validateContact(input.Body.Name, input.Body.Number)
	if err != nil {
		return nil, err
	}

	contact, err := h.Store.Update(ctx, id, &ds.Contact{Name: input.Body.Name, Number: input.Body.Number})
	if err != nil {
		return nil, err
	}

	return &PersonOutput{Body: newPersonModel(contact)}, nil
}

func (h *Persons) RegisterDelete(api huma.API) { // called by [huma.AutoRegister]
	huma.Delete(api, "/{id}",
		handlerWithErrors(h.del, h.ErrorHandler),
		opID("delete-person"),
		opErrors(http.StatusBadRequest, http.StatusInternalServerError),
	)
}

// del answers 204 whether or not the person existed.
func (h *Persons) del(ctx context.Context, input *struct {
	ID string `path:"id" example:"1" doc:"ID of the person to delete"`
}) (*struct{}, error) {
	id, err := ds.ParseContactID(input.ID)
	if err != nil {
		return nil, err
	}

	return nil, h.Store.Delete(ctx, id)
}
