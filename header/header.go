package header

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/go-mailhdr/header/field"
	"github.com/zostay/go-mailhdr/header/grammar"
	"github.com/zostay/go-mailhdr/header/param"
	"github.com/zostay/go-mailhdr/header/registry"
)

// Errors returned by the Header getters.
var (
	// ErrNoSuchField is returned when the named field is not in the header.
	ErrNoSuchField = errors.New("no such header field")

	// ErrManyFields is returned along with the first value when a getter for
	// a single value finds more than one field with the name.
	ErrManyFields = errors.New("many header fields found")

	// ErrTooManyFields is returned by Validate when a field occurs more often
	// than its Kind allows.
	ErrTooManyFields = errors.New("header field occurs too many times")

	// ErrInvalidValue is returned when the field exists but its value could
	// not be interpreted as the type requested.
	ErrInvalidValue = errors.New("header field value is invalid")
)

// Commonly used field names.
const (
	Bcc                     = "Bcc"
	Cc                      = "Cc"
	ContentDisposition      = "Content-Disposition"
	ContentTransferEncoding = "Content-Transfer-Encoding"
	ContentType             = "Content-Type"
	Date                    = "Date"
	From                    = "From"
	MessageID               = "Message-ID"
	MIMEVersion             = "MIME-Version"
	ReplyTo                 = "Reply-To"
	Sender                  = "Sender"
	Subject                 = "Subject"
	To                      = "To"
)

// Header wraps a Base and interprets its fields using a registry.Registry.
//
// The getters return ErrNoSuchField when the named field is missing. Parsed
// instances are cached per field until the field is deleted or the registry
// is replaced. The getters may be called from several goroutines at once;
// changing the fields needs the caller's own locking.
type Header struct {
	Base

	mu        sync.Mutex
	reg       *registry.Registry
	instances map[*field.Field]*registry.Instance
}

// Registry returns the registry used to interpret fields. Unless one was set,
// the header makes its own registry.New() on first use.
func (h *Header) Registry() *registry.Registry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.registry()
}

// registry must be called with mu held.
func (h *Header) registry() *registry.Registry {
	if h.reg == nil {
		h.reg = registry.New()
	}
	return h.reg
}

// SetRegistry replaces the registry and forgets every cached instance.
func (h *Header) SetRegistry(reg *registry.Registry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reg = reg
	h.instances = nil
}

// Clone returns a copy of the header. The copy shares the registry and the
// cached instances, which are immutable.
func (h *Header) Clone() *Header {
	h.mu.Lock()
	defer h.mu.Unlock()

	is := make(map[*field.Field]*registry.Instance, len(h.instances))
	for f, i := range h.instances {
		is[f] = i
	}

	return &Header{
		Base:      *h.Base.Clone(),
		reg:       h.reg,
		instances: is,
	}
}

// DeleteField removes the nth field and its cached instance.
func (h *Header) DeleteField(n int) error {
	if f := h.GetField(n); f != nil {
		h.mu.Lock()
		delete(h.instances, f)
		h.mu.Unlock()
	}
	return h.Base.DeleteField(n)
}

// ClearFields removes every field and the cached instances.
func (h *Header) ClearFields() {
	h.mu.Lock()
	h.instances = nil
	h.mu.Unlock()
	h.Base.ClearFields()
}

// Add appends a new field to the end of the header.
func (h *Header) Add(name, body string) {
	h.InsertBeforeField(h.Len(), name, body)
}

// Set replaces the first field with the given name, or appends one if there
// is none. Any other fields with that name are removed.
func (h *Header) Set(name, body string) {
	ixs := h.GetIndexesNamed(name)
	if len(ixs) == 0 {
		h.Add(name, body)
		return
	}

	for i := len(ixs) - 1; i > 0; i-- {
		_ = h.DeleteField(ixs[i])
	}

	_ = h.DeleteField(ixs[0])
	h.InsertBeforeField(ixs[0], name, body)
}

// instance builds or fetches the cached instance for the field.
func (h *Header) instance(f *field.Field) (*registry.Instance, error) {
	h.mu.Lock()
	i, ok := h.instances[f]
	reg := h.registry()
	h.mu.Unlock()
	if ok {
		return i, nil
	}

	i, err := reg.Construct(f.Name(), f.Body())
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.reg != reg {
		// registry replaced meanwhile, do not cache
		return i, nil
	}
	if h.instances == nil {
		h.instances = make(map[*field.Field]*registry.Instance, h.Len())
	}
	h.instances[f] = i
	return i, nil
}

// Get returns the body of the named field. If there are several, the first is
// returned with ErrManyFields.
func (h *Header) Get(name string) (string, error) {
	fs := h.GetAllFieldsNamed(name)
	switch len(fs) {
	case 0:
		return "", ErrNoSuchField
	case 1:
		return fs[0].Body(), nil
	default:
		return fs[0].Body(), ErrManyFields
	}
}

// GetAll returns the bodies of every field with the name.
func (h *Header) GetAll(name string) ([]string, error) {
	fs := h.GetAllFieldsNamed(name)
	if len(fs) == 0 {
		return nil, ErrNoSuchField
	}

	bs := make([]string, len(fs))
	for i, f := range fs {
		bs[i] = f.Body()
	}
	return bs, nil
}

// GetInstance returns the registry.Instance for the named field. If there are
// several, the first is returned with ErrManyFields.
func (h *Header) GetInstance(name string) (*registry.Instance, error) {
	fs := h.GetAllFieldsNamed(name)
	if len(fs) == 0 {
		return nil, ErrNoSuchField
	}

	i, err := h.instance(fs[0])
	if err != nil {
		return nil, err
	}

	if len(fs) > 1 {
		return i, ErrManyFields
	}
	return i, nil
}

// GetAllInstances returns an instance for every field with the name. The
// first construction error stops the scan.
func (h *Header) GetAllInstances(name string) ([]*registry.Instance, error) {
	fs := h.GetAllFieldsNamed(name)
	if len(fs) == 0 {
		return nil, ErrNoSuchField
	}

	is := make([]*registry.Instance, len(fs))
	for n, f := range fs {
		i, err := h.instance(f)
		if err != nil {
			return nil, err
		}
		is[n] = i
	}
	return is, nil
}

// InstanceAt returns the instance for the nth field.
func (h *Header) InstanceAt(n int) (*registry.Instance, error) {
	f := h.GetField(n)
	if f == nil {
		return nil, ErrIndexOutOfRange
	}
	return h.instance(f)
}

// Instances returns an instance for every field in header order.
func (h *Header) Instances() ([]*registry.Instance, error) {
	is := make([]*registry.Instance, h.Len())
	for n, f := range h.fields {
		i, err := h.instance(f)
		if err != nil {
			return nil, err
		}
		is[n] = i
	}
	return is, nil
}

// single fetches the instance for a field expected to occur once. Having more
// than one is not an error here, Validate reports that.
func (h *Header) single(name string) (*registry.Instance, error) {
	i, err := h.GetInstance(name)
	if errors.Is(err, ErrManyFields) {
		return i, nil
	}
	return i, err
}

// GetTime returns the named field as a time. When the registry does not
// treat the field as a date, the body is parsed as one anyway.
func (h *Header) GetTime(name string) (time.Time, error) {
	i, err := h.single(name)
	if err != nil {
		return time.Time{}, err
	}

	dt, ok := i.Tree().(*grammar.DateTime)
	if !ok {
		dt = grammar.ParseDateTime(h.GetFieldNamed(name, 0).Body())
	}

	if !dt.Valid() {
		return time.Time{}, fmt.Errorf("%s: time string %q cannot be parsed: %w", name, dt.Raw(), ErrInvalidValue)
	}
	return dt.Time(), nil
}

// GetDate returns the Date field as a time.
func (h *Header) GetDate() (time.Time, error) {
	return h.GetTime(Date)
}

// GetAddressList returns the named field as a list of addresses. When the
// registry does not treat the field as an address list, the body is parsed as
// one anyway.
func (h *Header) GetAddressList(name string) (addr.AddressList, error) {
	i, err := h.single(name)
	if err != nil {
		return nil, err
	}

	al, ok := i.Tree().(*grammar.AddressList)
	if !ok {
		al = grammar.ParseAddressList(h.GetFieldNamed(name, 0).Body())
	}
	return al.Addresses(), nil
}

// GetMessageID returns the Message-ID field. If the value is not a valid
// msg-id, the error wraps ErrInvalidValue.
func (h *Header) GetMessageID() (*grammar.MessageID, error) {
	i, err := h.single(MessageID)
	if err != nil {
		return nil, err
	}

	tree := i.Tree()
	if _, isMsgID := tree.(*grammar.MessageID); !isMsgID {
		if _, isInvalid := tree.(*grammar.InvalidMessageID); !isInvalid {
			tree, err = grammar.ParseMessageID(h.GetFieldNamed(MessageID, 0).Body())
			if err != nil {
				return nil, fmt.Errorf("%s: %w: %v", MessageID, ErrInvalidValue, err)
			}
		}
	}

	mid, ok := tree.(*grammar.MessageID)
	if !ok {
		return nil, fmt.Errorf("%s: %q is not a msg-id: %w", MessageID, i.AsUnstructured().Decoded(), ErrInvalidValue)
	}
	return mid, nil
}

// GetParamValue returns the named field as a parameterized value, such as a
// Content-Type.
func (h *Header) GetParamValue(name string) (*param.Value, error) {
	i, err := h.single(name)
	if err != nil {
		return nil, err
	}

	var pv *param.Value
	if p, ok := i.Tree().(*grammar.ParamValue); ok {
		pv = p.Value()
	} else {
		pv, err = param.Parse(h.GetFieldNamed(name, 0).Body())
		if err != nil {
			pv = nil
		}
	}

	if pv == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrInvalidValue)
	}
	return pv, nil
}

// GetContentType returns the Content-Type field.
func (h *Header) GetContentType() (*param.Value, error) {
	return h.GetParamValue(ContentType)
}

// GetMediaType returns the media type of the Content-Type field.
func (h *Header) GetMediaType() (string, error) {
	pv, err := h.GetContentType()
	if err != nil {
		return "", err
	}
	return pv.MediaType(), nil
}

// GetContentDisposition returns the Content-Disposition field.
func (h *Header) GetContentDisposition() (*param.Value, error) {
	return h.GetParamValue(ContentDisposition)
}

// Validate checks that no field occurs more often than the MaxCount of the
// Kind the registry assigns it. The first field over its limit is reported.
func (h *Header) Validate() error {
	reg := h.Registry()
	counts := make(map[string]int, h.Len())
	for _, f := range h.fields {
		n := strings.ToLower(f.Name())
		counts[n]++

		k := reg.Lookup(n)
		if limit := k.MaxCount(); limit > 0 && counts[n] > limit {
			return fmt.Errorf("%s may occur at most %d time(s): %w", f.Name(), limit, ErrTooManyFields)
		}
	}
	return nil
}
