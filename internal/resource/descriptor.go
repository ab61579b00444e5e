package resource

import (
	"reflect"

	"github.com/phrazzld/anime-api/internal/apidoc"
	"github.com/phrazzld/anime-api/internal/domain"
)

// Descriptor describes one resource collection. P is the client-writable
// payload struct whose validate tags define the resource's schema.
type Descriptor[P any] struct {
	// Name is the resource name used in documentation tags.
	Name string
	// Label is the singular, human-readable name used in messages.
	Label string
	// Path is the collection route, e.g. "/anime".
	Path string
	// Collection is the database collection holding the documents.
	Collection string
	// Defaults are applied to absent payload fields before validation.
	Defaults map[string]any
}

// AnimeDescriptor describes the anime catalog.
func AnimeDescriptor() Descriptor[domain.AnimeFields] {
	return Descriptor[domain.AnimeFields]{
		Name:       "anime",
		Label:      "Anime",
		Path:       "/anime",
		Collection: "anime",
	}
}

// MangaDescriptor describes the manga catalog.
func MangaDescriptor() Descriptor[domain.MangaFields] {
	return Descriptor[domain.MangaFields]{
		Name:       "manga",
		Label:      "Manga",
		Path:       "/manga",
		Collection: "manga",
	}
}

// UserDescriptor describes user profiles. New users default to the user role.
func UserDescriptor() Descriptor[domain.UserFields] {
	return Descriptor[domain.UserFields]{
		Name:       "users",
		Label:      "User",
		Path:       "/users",
		Collection: "users",
		Defaults:   map[string]any{"role": domain.RoleUser},
	}
}

// WatchlistDescriptor describes watchlist entries. New entries default to planned.
func WatchlistDescriptor() Descriptor[domain.WatchItemFields] {
	return Descriptor[domain.WatchItemFields]{
		Name:       "watchlists",
		Label:      "Watchlist item",
		Path:       "/watchlists",
		Collection: "watchlists",
		Defaults:   map[string]any{"status": domain.WatchStatusPlanned},
	}
}

// Doc returns the documentation view of the descriptor.
func (d Descriptor[P]) Doc() apidoc.Resource {
	return apidoc.Resource{
		Name:     d.Name,
		Label:    d.Label,
		Path:     d.Path,
		Payload:  reflect.TypeFor[P](),
		Defaults: d.Defaults,
	}
}
