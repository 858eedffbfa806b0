package domain

// Post is an article authored by CreatedBy.
type Post struct {
	Base      `bson:",inline"`
	Title     string `json:"title" bson:"title"`
	Body      string `json:"body" bson:"body"`
	CreatedBy string `json:"createdBy" bson:"created_by"`
}

func (p *Post) OwnerID() string    { return p.CreatedBy }
func (p *Post) SetOwner(id string) { p.CreatedBy = id }
func (p *Post) Clone() *Post       { c := *p; return &c }

func (p *Post) Validate() error {
	return required("title", p.Title, "body", p.Body, "createdBy", p.CreatedBy)
}
