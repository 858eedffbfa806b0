package domain

// Comment is a message left on a Post. Comments are listed by PostID,
// but gated for mutation by CreatedBy like every other record.
type Comment struct {
	Base      `bson:",inline"`
	Message   string `json:"message" bson:"message"`
	PostID    string `json:"postId" bson:"post_id"`
	CreatedBy string `json:"createdBy" bson:"created_by"`
}

func (c *Comment) OwnerID() string    { return c.CreatedBy }
func (c *Comment) SetOwner(id string) { c.CreatedBy = id }
func (c *Comment) Clone() *Comment    { cp := *c; return &cp }

func (c *Comment) Validate() error {
	return required("message", c.Message, "postId", c.PostID, "createdBy", c.CreatedBy)
}
