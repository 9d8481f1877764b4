package models

// Kind names a resource family served by the persistence layer.
type Kind string

const (
	KindDestinations Kind = "destinations"
	KindTours        Kind = "tours"
	KindBlog         Kind = "blog"
	KindSiteContent  Kind = "site-content"
)

func Kinds() []Kind {
	return []Kind{KindDestinations, KindTours, KindBlog, KindSiteContent}
}
