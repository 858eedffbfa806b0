package domain

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the domain entity for a user account.
type User struct {
	Base         `bson:",inline"`
	Name         string `json:"name" bson:"name"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"-" bson:"password_hash"`
	Role         string `json:"role" bson:"role"`
}

func (u *User) Clone() *User { c := *u; return &c }

func (u *User) Validate() error {
	return required("name", u.Name, "email", u.Email, "password", u.PasswordHash)
}
