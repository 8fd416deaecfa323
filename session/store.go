package session

import (
	"errors"
	"time"

	"github.com/hupe1980/telcoagents/core"
)

var (
	// ErrNotFound is returned when no record exists under the given id.
	ErrNotFound = errors.New("session: record not found")

	// ErrExists is returned when creating a record whose id is taken.
	ErrExists = errors.New("session: record already exists")
)

// Record is one episode's stored conversation plus identifying fields.
type Record struct {
	// ID uniquely names the record within the store.
	ID string

	// Strategy is the coordination strategy that drove the episode.
	Strategy string

	// Episode is the episode index within its strategy.
	Episode int

	// CreatedAt is when the record was created.
	CreatedAt time.Time

	// Messages holds the committed conversation in order. Tool result
	// bundles are stored flattened, one entry per result.
	Messages []core.Message
}

// Clone returns a copy whose message slice is independent of the original.
// Committed messages are treated as immutable, so the entries are shared.
func (r *Record) Clone() *Record {
	out := *r
	out.Messages = make([]core.Message, len(r.Messages))
	copy(out.Messages, r.Messages)

	return &out
}

// Store is the episode record storage surface the runner writes through.
// Implementations must be safe for concurrent use.
type Store interface {
	// Create stores a new record. ErrExists when the id is taken.
	Create(rec *Record) error

	// Append adds committed messages to an existing record. Tool result
	// bundles are flattened. ErrNotFound when the id is unknown.
	Append(id string, msgs ...core.Message) error

	// Get returns a clone of the record. ErrNotFound when the id is unknown.
	Get(id string) (*Record, error)

	// List returns clones of all records in creation order.
	List() []*Record

	// Delete removes a record. ErrNotFound when the id is unknown.
	Delete(id string) error
}
