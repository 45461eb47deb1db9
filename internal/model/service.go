package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Service is an offering in the car doctor catalog. Services are
// read-only for this API.
type Service struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ServiceID   string             `json:"service_id" bson:"service_id"`
	Title       string             `json:"title" bson:"title"`
	Price       float64            `json:"price" bson:"price"`
	Img         string             `json:"img" bson:"img"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Facility    []Facility         `json:"facility,omitempty" bson:"facility,omitempty"`
}

// Facility is one bullet of a service's detail page.
type Facility struct {
	Name    string `json:"name" bson:"name"`
	Details string `json:"details" bson:"details"`
}

// SortOrder orders the catalog by price.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// ParseSortOrder maps "asc" to ascending; any other value, including
// the empty string, is descending.
func ParseSortOrder(s string) SortOrder {
	if s == string(SortAscending) {
		return SortAscending
	}
	return SortDescending
}

// ServiceQuery narrows a catalog listing.
type ServiceQuery struct {
	// Search is a case-insensitive substring of the title. Empty matches all.
	Search string
	Sort   SortOrder
}

type ListServicesPayload struct {
	Search string `query:"search" validate:"max=100"`
	Sort   string `query:"sort" validate:"max=10"`
}

func (p *ListServicesPayload) Validate() error {
	return validate.Struct(p)
}

// Query converts the payload into a ServiceQuery.
func (p *ListServicesPayload) Query() ServiceQuery {
	return ServiceQuery{Search: p.Search, Sort: ParseSortOrder(p.Sort)}
}

type GetServicePayload struct {
	ID string `param:"id" validate:"required"`
}

func (p *GetServicePayload) Validate() error {
	return validate.Struct(p)
}
