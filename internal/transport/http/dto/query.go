package dto

// DestinationListQuery - параметры GET /destinations.
type DestinationListQuery struct {
	ID               string `query:"id"`
	IncludeTourCount string `query:"includeTourCount" validate:"omitempty,oneof=true false 1 0"`
	Limit            int    `query:"limit" validate:"gte=0,lte=1000"`
}

// WantTourCount: toursCount is computed unless the caller opts out.
func (q DestinationListQuery) WantTourCount() bool {
	return q.IncludeTourCount != "false" && q.IncludeTourCount != "0"
}

type TourListQuery struct {
	Status   string `query:"status" validate:"omitempty,oneof=active draft archived ACTIVE DRAFT ARCHIVED"`
	Featured string `query:"featured" validate:"omitempty,oneof=true false"`
	Limit    int    `query:"limit" validate:"gte=0,lte=1000"`
}

// FeaturedOnly returns nil when the featured filter is not set.
func (q TourListQuery) FeaturedOnly() *bool {
	if q.Featured == "" {
		return nil
	}
	v := q.Featured == "true"
	return &v
}

type BlogQuery struct {
	ID       string `query:"id"`
	Status   string `query:"status" validate:"omitempty,oneof=Draft Published Archived"`
	Category string `query:"category" validate:"omitempty,max=100"`
}

type IDQuery struct {
	ID string `query:"id"`
}
