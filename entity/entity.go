package entity

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Entity is the structural constraint every repository record must satisfy.
// The repository owns the three fields it describes: it assigns ID and
// CreatedAt once, at creation, and refreshes UpdatedAt on every write.
// Callers never supply them.
type Entity interface {
	GetID() string
	SetID(id string)
	GetCreatedAt() time.Time
	SetCreatedAt(t time.Time)
	GetUpdatedAt() time.Time
	SetUpdatedAt(t time.Time)
}

// Model is the embeddable base carrying the repository-owned fields.
// Embed it by pointer-compatible value in a domain struct:
//
//	type Article struct {
//		entity.Model
//		Title string `bun:"title" json:"title"`
//	}
//
// *Article then satisfies Entity.
type Model struct {
	ID        string    `bun:"id,pk" json:"id"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

func (m *Model) GetID() string            { return m.ID }
func (m *Model) SetID(id string)          { m.ID = id }
func (m *Model) GetCreatedAt() time.Time  { return m.CreatedAt }
func (m *Model) SetCreatedAt(t time.Time) { m.CreatedAt = t }
func (m *Model) GetUpdatedAt() time.Time  { return m.UpdatedAt }
func (m *Model) SetUpdatedAt(t time.Time) { m.UpdatedAt = t }

// NewID generates a collection-unique identifier. UUIDv7 keeps the original
// timestamp-then-random layout, so identifiers remain roughly sortable by
// creation time while collisions stay negligible.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// New allocates a fresh zero value of T's underlying struct. T must be a
// pointer type, which is already implied by the Entity setter methods.
func New[T Entity]() T {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return reflect.New(t.Elem()).Interface().(T)
}
