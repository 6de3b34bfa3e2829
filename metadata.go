package paylock

import "github.com/iov-one/paylock/errors"

// Metadata is carried by every persisted model. Schema is the version of the
// model serialization and must be greater than zero.
type Metadata struct {
	Schema uint32 `json:"schema"`
}

// Validate returns an error if the schema version is not set.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "missing metadata")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "invalid schema version")
	}
	return nil
}
