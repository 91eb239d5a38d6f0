// Package param parses and manipulates the parameter list attached to
// structured header values such as Content-Type and Content-Disposition.
package param

import (
	"mime"
	"strings"
)

// Value is a parsed structured header value: a bare value (e.g. a MIME
// type/subtype pair, or a disposition like "attachment") plus its
// parameter map.
type Value struct {
	v  string
	ps map[string]string
}

// Parse parses a raw header value of the form `value; name=value; ...`.
func Parse(raw string) (*Value, error) {
	v, ps, err := mime.ParseMediaType(raw)
	if err != nil {
		return nil, err
	}
	if ps == nil {
		ps = make(map[string]string)
	}
	return &Value{v: v, ps: ps}, nil
}

// Value returns the bare value, lower-cased (as mime.ParseMediaType does).
func (p *Value) Value() string { return p.v }

// Type returns the portion of Value() before the first '/'.
func (p *Value) Type() string {
	for i := 0; i < len(p.v); i++ {
		if p.v[i] == '/' {
			return p.v[:i]
		}
	}
	return p.v
}

// Subtype returns the portion of Value() after the first '/', or "" if
// there isn't one.
func (p *Value) Subtype() string {
	for i := 0; i < len(p.v); i++ {
		if p.v[i] == '/' {
			return p.v[i+1:]
		}
	}
	return ""
}

// IsType reports whether the type/subtype match, treating "*" as a
// wildcard on either side.
func (p *Value) IsType(typ, subtype string) bool {
	return (typ == "*" || typ == p.Type()) && (subtype == "*" || subtype == p.Subtype())
}

// Get returns a parameter value (case-insensitive per RFC 2045 token rules
// as normalized by mime.ParseMediaType) and whether it was present.
func (p *Value) Get(name string) (string, bool) {
	v, ok := p.ps[strings.ToLower(name)]
	return v, ok
}

// Set assigns a parameter value, adding it if not already present.
func (p *Value) Set(name, value string) {
	if p.ps == nil {
		p.ps = make(map[string]string)
	}
	p.ps[name] = value
}

// Delete removes a parameter.
func (p *Value) Delete(name string) { delete(p.ps, name) }

// String renders the value back into `value; name=value; ...` form.
func (p *Value) String() string {
	return mime.FormatMediaType(p.v, p.ps)
}
