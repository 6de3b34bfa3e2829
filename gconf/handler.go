package gconf

import (
	"reflect"

	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/x"
)

// AdminFunc returns the address that is allowed to change a configuration.
type AdminFunc func(paylock.ReadOnlyKVStore) (paylock.Address, error)

// UpdateConfigurationHandler applies configuration patches. The message must
// carry a "Patch" field of the same type as the configuration.
type UpdateConfigurationHandler struct {
	pkg    string
	config Configuration
	auth   x.Authenticator
	admin  AdminFunc
}

var _ paylock.Handler = UpdateConfigurationHandler{}

// NewUpdateConfigurationHandler returns a message handler that process
// configuration patch message. Each message must be signed by the address
// returned by admin.
func NewUpdateConfigurationHandler(pkg string, config Configuration, auth x.Authenticator, admin AdminFunc) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:    pkg,
		config: config,
		auth:   auth,
		admin:  admin,
	}
}

func (h UpdateConfigurationHandler) Check(ctx paylock.Context, store paylock.KVStore, tx paylock.Tx) (*paylock.CheckResult, error) {
	if err := h.applyTx(ctx, store, tx); err != nil {
		return nil, err
	}
	return &paylock.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx paylock.Context, store paylock.KVStore, tx paylock.Tx) (*paylock.DeliverResult, error) {
	if err := h.applyTx(ctx, store, tx); err != nil {
		return nil, err
	}
	return &paylock.DeliverResult{}, nil
}

func (h UpdateConfigurationHandler) applyTx(ctx paylock.Context, store paylock.KVStore, tx paylock.Tx) error {
	admin, err := h.admin(store)
	if err != nil {
		return errors.Wrap(err, "get configuration admin")
	}
	if len(admin) == 0 || !h.auth.HasAddress(ctx, admin) {
		return errors.Wrap(errors.ErrUnauthorized, "admin signature required")
	}

	// Handlers are shared between calls, work on a fresh copy.
	config := reflect.New(reflect.TypeOf(h.config).Elem()).Interface().(Configuration)
	if err := Load(store, h.pkg, config); err != nil {
		return errors.Wrap(err, "load current configuration")
	}

	payload, err := patchPayload(tx)
	if err != nil {
		return errors.Wrap(err, "cannot get message payload")
	}
	if err := patch(config, payload); err != nil {
		return errors.Wrap(err, "cannot patch config with message payload")
	}
	if err := Save(store, h.pkg, config); err != nil {
		return errors.Wrap(err, "cannot save updated config")
	}
	return nil
}

func patch(config Configuration, payload Configuration) error {
	pType := reflect.TypeOf(payload)
	cType := reflect.TypeOf(config)
	if pType != cType {
		return errors.Wrap(errors.ErrMsg, "config in message doesn't match store")
	}

	cval := reflect.ValueOf(config).Elem()
	pval := reflect.ValueOf(payload).Elem()
	for i := 0; i < cval.NumField(); i++ {
		got := pval.Field(i)
		// Zero values do not update the original configuration.
		if isZero(got) {
			continue
		}
		cval.Field(i).Set(got)
	}
	return nil
}

func isZero(val reflect.Value) bool {
	zero := reflect.Zero(val.Type()).Interface()
	return reflect.DeepEqual(val.Interface(), zero)
}

// patchPayload expects the transaction to have a message with "Patch" field
// holding a configuration. Content of this field is extracted and returned.
func patchPayload(tx paylock.Tx) (Configuration, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	pval := reflect.ValueOf(msg)
	if pval.Kind() != reflect.Ptr || pval.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInput, "invalid message container value: %T", msg)
	}
	field := pval.Elem().FieldByName("Patch")
	if !field.IsValid() || field.Kind() != reflect.Ptr {
		return nil, errors.Wrapf(errors.ErrInput, `%T has no "Patch" field`, msg)
	}
	if field.IsNil() {
		return nil, errors.Wrap(errors.ErrState, `"Patch" field is required`)
	}
	payload, ok := field.Interface().(Configuration)
	if !ok {
		return nil, errors.Wrap(errors.ErrInput, `"Patch" field is of a wrong type`)
	}
	return payload, nil
}
