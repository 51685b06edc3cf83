package registry

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Errors returned by Register.
var (
	// ErrEmptyName is returned when registering a Kind without a name.
	ErrEmptyName = errors.New("header field name is empty")

	// ErrNilKind is returned when registering a nil Kind.
	ErrNilKind = errors.New("header field kind is nil")
)

// DefaultKinds returns the registrations a Registry starts with unless
// WithoutDefaults is given. The map is a fresh copy.
func DefaultKinds() map[string]Kind {
	return map[string]Kind{
		"subject":                   UniqueUnstructured,
		"date":                      UniqueDate,
		"resent-date":               Date,
		"orig-date":                 UniqueDate,
		"sender":                    UniqueSingleAddress,
		"resent-sender":             SingleAddress,
		"to":                        UniqueAddress,
		"resent-to":                 Address,
		"cc":                        UniqueAddress,
		"resent-cc":                 Address,
		"bcc":                       UniqueAddress,
		"resent-bcc":                Address,
		"from":                      UniqueAddress,
		"resent-from":               Address,
		"reply-to":                  UniqueAddress,
		"mime-version":              MIMEVersion,
		"content-type":              ContentType,
		"content-disposition":       ContentDisposition,
		"content-transfer-encoding": ContentTransferEncoding,
		"message-id":                ResilientMessageID,
	}
}

// Registry maps header field names to the Kind used to parse them.
type Registry struct {
	mu          sync.RWMutex
	kinds       map[string]Kind
	defaultKind Kind
	logger      logrus.FieldLogger

	// optErrs holds failed WithKind registrations until New can log them.
	optErrs []error
}

// Option configures a Registry in New.
type Option func(r *Registry)

// WithoutDefaults is an Option that starts the Registry with no registrations,
// so every field is parsed with the default kind until something is
// registered.
func WithoutDefaults() Option {
	return func(r *Registry) { r.kinds = map[string]Kind{} }
}

// WithKind is an Option that registers a Kind for a name, as Register does.
// A registration with an empty name or nil Kind is dropped, and New logs it
// as a warning. Call Register directly to get the error instead.
func WithKind(name string, k Kind) Option {
	return func(r *Registry) {
		if err := r.Register(name, k); err != nil {
			r.optErrs = append(r.optErrs, fmt.Errorf("option WithKind(%q): %w", name, err))
		}
	}
}

// WithDefaultKind is an Option that replaces the Kind used for names that
// have no registration. It is Unstructured unless changed.
func WithDefaultKind(k Kind) Option {
	return func(r *Registry) {
		if k != nil {
			r.defaultKind = k
		}
	}
}

// WithLogger is an Option that sets the logger. Nothing is logged by default.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// discardLogger returns a logger that writes nowhere.
func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// New returns a Registry with the DefaultKinds registered, modified by the
// given options in order.
func New(opts ...Option) *Registry {
	r := &Registry{
		kinds:       DefaultKinds(),
		defaultKind: Unstructured,
		logger:      discardLogger(),
	}

	for _, opt := range opts {
		opt(r)
	}

	for _, err := range r.optErrs {
		r.logger.WithError(err).Warn("registration ignored")
	}
	r.optErrs = nil

	return r
}

// Register associates the Kind with the name, case-insensitively, replacing
// any earlier registration for that name.
func (r *Registry) Register(name string, k Kind) error {
	if name == "" {
		return ErrEmptyName
	}
	if k == nil {
		return ErrNilKind
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[strings.ToLower(name)] = k
	return nil
}

// Lookup returns the Kind registered for the name or the default kind if
// there is none.
func (r *Registry) Lookup(name string) Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if k, ok := r.kinds[strings.ToLower(name)]; ok {
		return k
	}
	return r.defaultKind
}

// Names returns the registered names, lower-cased and sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ns := make([]string, 0, len(r.kinds))
	for n := range r.kinds {
		ns = append(ns, n)
	}
	sort.Strings(ns)
	return ns
}

// Construct parses the field body with the Kind looked up for the name and
// returns the resulting Instance. The body is also parsed on its own as
// unstructured text, even when the Kind is Unstructured, and attached to the
// Instance as its AsUnstructured view.
//
// An error is returned only when the Kind fails to parse the value. In that
// case no Instance is returned.
func (r *Registry) Construct(name, value string) (*Instance, error) {
	k := r.Lookup(name)
	log := r.logger.WithFields(logrus.Fields{
		"field": name,
		"kind":  k.Name(),
	})

	res, err := k.Parse(value)
	if err != nil {
		log.WithError(err).Warn("header field could not be parsed")
		return nil, fmt.Errorf("unable to parse %s field as %s: %w", name, k.Name(), err)
	}

	if len(res.Defects) > 0 {
		log.WithField("defects", len(res.Defects)).Debug("header field parsed with defects")
	}

	return &Instance{
		name:         name,
		kind:         k,
		result:       res,
		unstructured: newUnstructuredView(name, value),
	}, nil
}
