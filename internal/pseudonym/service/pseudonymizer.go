package service

import (
	"github.com/allisson/pseudonymizer/internal/pseudonym/domain"
)

// Pseudonymizer maps identifier strings to short, stable pseudonyms under one key.
//
// A Pseudonymizer is immutable once constructed and safe for concurrent use. The zero
// value is not usable: its methods return domain.ErrNotInitialized.
type Pseudonymizer struct {
	engine         DigestEngine
	truncateLength int
	encoding       domain.Encoding
}

type options struct {
	truncateLength int
	encoding       domain.Encoding
}

// Option configures a Pseudonymizer.
type Option func(*options)

// WithTruncateLength sets how many digest bytes are kept (default 15, minimum 12).
func WithTruncateLength(n int) Option {
	return func(o *options) {
		o.truncateLength = n
	}
}

// WithEncoding sets the output alphabet (default standard base64).
func WithEncoding(enc domain.Encoding) Option {
	return func(o *options) {
		o.encoding = enc
	}
}

// NewPseudonymizer binds key to a new Pseudonymizer.
//
// The key must be at least domain.MinKeySize bytes; nil or short keys fail with
// domain.ErrInvalidKey. A missing key is never replaced by a random one here: callers
// that want a non-reproducible key use NewThrowawayPseudonymizer.
func NewPseudonymizer(key []byte, opts ...Option) (*Pseudonymizer, error) {
	if len(key) < domain.MinKeySize {
		return nil, domain.ErrInvalidKey
	}

	o := options{
		truncateLength: domain.DefaultTruncateLength,
		encoding:       domain.EncodingBase64,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.truncateLength < domain.MinTruncateLength || o.truncateLength > domain.MaxTruncateLength {
		return nil, domain.ErrInvalidArgument
	}
	if err := o.encoding.Validate(); err != nil {
		return nil, domain.ErrInvalidArgument
	}

	engine, err := NewHMACSHA256(key)
	if err != nil {
		return nil, err
	}

	return &Pseudonymizer{
		engine:         engine,
		truncateLength: o.truncateLength,
		encoding:       o.encoding,
	}, nil
}

// NewThrowawayPseudonymizer builds a Pseudonymizer around a fresh random key that is
// discarded once the digest engine is keyed. Its pseudonyms cannot be reproduced by any
// other instance, in this process or another.
func NewThrowawayPseudonymizer(opts ...Option) (*Pseudonymizer, error) {
	key, err := domain.GenerateSecretKey()
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	material := key.Expose()
	defer domain.Zero(material)

	return NewPseudonymizer(material, opts...)
}

// Anonymize returns the pseudonym of src: HMAC-SHA256 of its UTF-8 bytes, truncated,
// then encoded.
func (p *Pseudonymizer) Anonymize(src string) (string, error) {
	if p == nil || p.engine == nil {
		return "", domain.ErrNotInitialized
	}

	sum, err := p.engine.Sum(src)
	if err != nil {
		return "", err
	}
	defer domain.Zero(sum)

	truncated, err := Truncate(sum, p.truncateLength)
	if err != nil {
		return "", err
	}

	return Encode(truncated, p.encoding)
}

// AnonymizeAll anonymizes values in order and stops at the first error.
func (p *Pseudonymizer) AnonymizeAll(values []string) ([]string, error) {
	if p == nil || p.engine == nil {
		return nil, domain.ErrNotInitialized
	}

	out := make([]string, len(values))
	for i, v := range values {
		anon, err := p.Anonymize(v)
		if err != nil {
			return nil, err
		}
		out[i] = anon
	}
	return out, nil
}

// TruncateLength returns the number of digest bytes kept per pseudonym.
func (p *Pseudonymizer) TruncateLength() int {
	if p == nil {
		return 0
	}
	return p.truncateLength
}

// Encoding returns the output alphabet.
func (p *Pseudonymizer) Encoding() domain.Encoding {
	if p == nil {
		return ""
	}
	return p.encoding
}

// PseudonymLen returns the length of every pseudonym this instance produces.
func (p *Pseudonymizer) PseudonymLen() int {
	if p == nil || p.engine == nil {
		return 0
	}
	return EncodedLen(min(p.truncateLength, p.engine.Size()), p.encoding)
}
