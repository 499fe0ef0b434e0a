package cms

// Sys carries the identity portion of every CMS record.
type Sys struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	LinkType string `json:"linkType,omitempty"`
}

// Link is an unresolved reference embedded in an entry's fields. The target
// (entry or asset) must be fetched separately before its data is available.
type Link struct {
	Sys Sys `json:"sys"`
}

// EntryFields is the superset of fields the gateway reads across posts,
// categories, and authors. Fields absent on a given content type decode to
// their zero value.
type EntryFields struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Slug          string `json:"slug"`
	ID            string `json:"id"`
	PublishedDate string `json:"publishedDate"`
	Image         *Link  `json:"image"`
	Author        *Link  `json:"author"`
	Category      *Link  `json:"category"`
}

type Entry struct {
	Sys    Sys         `json:"sys"`
	Fields EntryFields `json:"fields"`
}

// SlugOrID returns the entry's slug, falling back to the fields-level id and
// finally the sys id. Some content types carry only one of the three.
func (e *Entry) SlugOrID() string {
	if e.Fields.Slug != "" {
		return e.Fields.Slug
	}
	if e.Fields.ID != "" {
		return e.Fields.ID
	}
	return e.Sys.ID
}

type ListResponse struct {
	Items []Entry `json:"items"`
	Total int     `json:"total"`
}

type AssetFile struct {
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
}

type AssetFields struct {
	Title string     `json:"title"`
	File  *AssetFile `json:"file"`
}

type Asset struct {
	Sys    Sys         `json:"sys"`
	Fields AssetFields `json:"fields"`
}

// ListParams are the query parameters accepted by the CMS list endpoints.
// Zero values are omitted from the request.
type ListParams struct {
	Limit    int
	Skip     int
	Category string
	Slug     string
}
