package apidoc

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-openapi/spec"
)

// SecurityScheme is the name of the bearer token security definition.
const SecurityScheme = "bearerAuth"

// Info describes the API as a whole.
type Info struct {
	Title       string
	Version     string
	Description string
}

// Resource describes one collection for documentation.
type Resource struct {
	// Name is the tag grouping the resource's operations.
	Name string
	// Label is the singular display name, e.g. "Watchlist item".
	Label string
	// Path is the collection route.
	Path string
	// Payload is the client-writable struct type.
	Payload reflect.Type
	// Defaults are values applied to absent payload fields.
	Defaults map[string]any
	// WriteRole, when set, is the role required for writes in addition to
	// the write scope.
	WriteRole string
}

// Build returns the Swagger document for resources.
func Build(info Info, resources []Resource) *spec.Swagger {
	bearer := spec.APIKeyAuth("Authorization", "header")
	bearer.Description = `Bearer access token, sent as "Bearer <token>"`

	doc := &spec.Swagger{
		SwaggerProps: spec.SwaggerProps{
			Swagger: "2.0",
			Info: &spec.Info{
				InfoProps: spec.InfoProps{
					Title:       info.Title,
					Version:     info.Version,
					Description: info.Description,
				},
			},
			BasePath: "/",
			Consumes: []string{"application/json"},
			Produces: []string{"application/json"},
			Paths:    &spec.Paths{Paths: make(map[string]spec.PathItem)},
			Definitions: spec.Definitions{
				"Error":   errorSchema(),
				"Created": *new(spec.Schema).Typed("object", "").SetProperty("id", *objectIDSchema()).WithRequired("id"),
			},
			SecurityDefinitions: spec.SecurityDefinitions{
				SecurityScheme: bearer,
			},
		},
	}

	for _, res := range resources {
		addResource(doc, res)
	}

	return doc
}

func addResource(doc *spec.Swagger, res Resource) {
	name := definitionName(res.Label)
	input := payloadSchema(res.Payload, res.Defaults)
	doc.Definitions[name+"Input"] = *input
	doc.Definitions[name] = *recordSchema(input)

	recordRef := spec.RefSchema("#/definitions/" + name)
	inputRef := spec.RefSchema("#/definitions/" + name + "Input")
	label := strings.ToLower(res.Label)
	idParam := spec.PathParam("id").Typed("string", "").
		WithPattern(objectIDPattern).
		WithDescription(res.Label + " identifier")

	list := spec.NewOperation("list"+name).
		WithTags(res.Name).
		WithSummary("List every "+label).
		RespondsWith(http.StatusOK, spec.NewResponse().
			WithDescription("All documents in creation order").
			WithSchema(spec.ArrayProperty(recordRef)))

	create := spec.NewOperation("create"+name).
		WithTags(res.Name).
		WithSummary("Create "+label).
		AddParam(spec.BodyParam("body", inputRef).AsRequired()).
		RespondsWith(http.StatusCreated, spec.NewResponse().
			WithDescription("Created").
			WithSchema(spec.RefSchema("#/definitions/Created")).
			AddHeader("Location", spec.ResponseHeader().Typed("string", "").
				WithDescription("Path of the new document")))
	addWriteResponses(create, res)

	get := spec.NewOperation("get"+name).
		WithTags(res.Name).
		WithSummary("Get "+label).
		AddParam(idParam).
		RespondsWith(http.StatusOK, spec.NewResponse().WithDescription("The document").WithSchema(recordRef)).
		RespondsWith(http.StatusBadRequest, errorResponse("Invalid id")).
		RespondsWith(http.StatusNotFound, errorResponse(res.Label+" not found"))

	replace := spec.NewOperation("replace"+name).
		WithTags(res.Name).
		WithSummary("Replace "+label).
		AddParam(idParam).
		AddParam(spec.BodyParam("body", inputRef).AsRequired()).
		RespondsWith(http.StatusNoContent, spec.NewResponse().WithDescription("Replaced")).
		RespondsWith(http.StatusNotFound, errorResponse(res.Label+" not found"))
	addWriteResponses(replace, res)

	del := spec.NewOperation("delete"+name).
		WithTags(res.Name).
		WithSummary("Delete "+label).
		AddParam(idParam).
		RespondsWith(http.StatusNoContent, spec.NewResponse().WithDescription("Deleted")).
		RespondsWith(http.StatusBadRequest, errorResponse("Invalid id")).
		RespondsWith(http.StatusNotFound, errorResponse(res.Label+" not found"))
	addAuthResponses(del, res)

	doc.Paths.Paths[res.Path] = spec.PathItem{
		PathItemProps: spec.PathItemProps{Get: list, Post: create},
	}
	doc.Paths.Paths[res.Path+"/{id}"] = spec.PathItem{
		PathItemProps: spec.PathItemProps{Get: get, Put: replace, Delete: del},
	}
}

func addWriteResponses(op *spec.Operation, res Resource) {
	op.RespondsWith(http.StatusBadRequest, errorResponse("Invalid id, malformed body or validation failure")).
		RespondsWith(http.StatusRequestEntityTooLarge, errorResponse("Request body too large")).
		RespondsWith(http.StatusUnsupportedMediaType, errorResponse("Content-Type must be application/json"))
	addAuthResponses(op, res)
}

func addAuthResponses(op *spec.Operation, res Resource) {
	forbidden := "Token lacks the write scope"
	if res.WriteRole != "" {
		forbidden += " or the " + res.WriteRole + " role"
	}
	op.SecuredWith(SecurityScheme).
		RespondsWith(http.StatusUnauthorized, errorResponse("Missing or invalid bearer token")).
		RespondsWith(http.StatusForbidden, errorResponse(forbidden))
}

func errorResponse(description string) *spec.Response {
	return spec.NewResponse().
		WithDescription(description).
		WithSchema(spec.RefSchema("#/definitions/Error"))
}

// definitionName turns "Watchlist item" into "WatchlistItem".
func definitionName(label string) string {
	var b strings.Builder
	for _, word := range strings.Fields(label) {
		b.WriteString(strings.ToUpper(word[:1]))
		b.WriteString(word[1:])
	}
	return b.String()
}
