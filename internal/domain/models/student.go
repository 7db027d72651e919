// internal/domain/models/student.go
package models

// Student is an enrolled (or formerly enrolled) identity. Students are
// never hard-deleted; removal only takes them out of group membership.
type Student struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameCI string `json:"name_ci"` // lowercase, diacritics-stripped
	Phone  string `json:"phone"`
	Avatar string `json:"avatar,omitempty"`
}

// PendingStudent is a signed-up identity awaiting group assignment.
// It is removed from the pending list once an admin assigns it to a
// group, at which point it is promoted to a Student.
type PendingStudent struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	RequestedAt int64  `json:"requestedAt"` // unix millis
}
