package orm

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/errors"
)

// person is a model used only by the tests of this package.
type person struct {
	Metadata *paylock.Metadata
	Name     string
	City     string
}

var _ Model = (*person)(nil)

func (p *person) Validate() error {
	if err := p.Metadata.Validate(); err != nil {
		return err
	}
	if p.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	return nil
}

func (p *person) Marshal() ([]byte, error) {
	return paylock.Marshal(p)
}

func (p *person) Unmarshal(raw []byte) error {
	return paylock.Unmarshal(raw, p)
}

type other struct {
	Metadata *paylock.Metadata
}

func (o *other) Validate() error            { return nil }
func (o *other) Marshal() ([]byte, error)   { return paylock.Marshal(o) }
func (o *other) Unmarshal(raw []byte) error { return paylock.Unmarshal(raw, o) }

func newPerson(name, city string) *person {
	return &person{Metadata: &paylock.Metadata{Schema: 1}, Name: name, City: city}
}

func cityIndexer(obj Object) ([]byte, error) {
	p, ok := obj.Value().(*person)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return []byte(p.City), nil
}

func nameIndexer(obj Object) ([]byte, error) {
	p, ok := obj.Value().(*person)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return []byte(p.Name), nil
}
