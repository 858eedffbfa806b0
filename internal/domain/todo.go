package domain

// TodoStatus is the workflow state of a todo.
type TodoStatus string

const (
	StatusBacklog    TodoStatus = "BACKLOG"
	StatusInProgress TodoStatus = "INPROGRESS"
	StatusCompleted  TodoStatus = "COMPLETED"
)

// TodoStatuses lists every accepted status value.
var TodoStatuses = []TodoStatus{StatusBacklog, StatusInProgress, StatusCompleted}

// Valid reports whether s is one of TodoStatuses.
func (s TodoStatus) Valid() bool {
	for _, v := range TodoStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Todo is a task owned by the user who created it.
type Todo struct {
	Base        `bson:",inline"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Status      TodoStatus `json:"status" bson:"status"`
	UserID      string     `json:"userId" bson:"user_id"`
}

func (t *Todo) OwnerID() string    { return t.UserID }
func (t *Todo) SetOwner(id string) { t.UserID = id }
func (t *Todo) Clone() *Todo       { c := *t; return &c }

// Validate checks the fields the store refuses to persist without.
func (t *Todo) Validate() error {
	if err := required("title", t.Title, "description", t.Description, "userId", t.UserID); err != nil {
		return err
	}
	if !t.Status.Valid() {
		return errInvalidStatus(t.Status)
	}
	return nil
}
