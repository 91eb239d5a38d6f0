package object

// Multipart is a branch MIME object: a multipart/* part with an ordered
// list of subparts plus the raw preface/postface bytes surrounding them.
// Grounded on the teacher's message.Multipart (message/multipart.go),
// adapted to carry an explicit boundary string and CRLF-normalised
// preface/postface per spec.md §4.5 rule 2 (no teacher equivalent for the
// normalisation step; grounded on
// original_source/gmime/gmime-parser.c:crlf2lf).
type Multipart struct {
	base
	boundary        string
	preface         []byte
	postface        []byte
	parts           []Object
}

// NewMultipart constructs an empty multipart object of the given subtype
// (e.g. "mixed", "alternative", "signed").
func NewMultipart(subtype string) *Multipart {
	return &Multipart{base: base{mtype: "multipart", subtype: subtype}}
}

func (m *Multipart) SetBoundary(b string)  { m.boundary = b }
func (m *Multipart) Boundary() string      { return m.boundary }
func (m *Multipart) SetPreface(b []byte)   { m.preface = b }
func (m *Multipart) Preface() []byte       { return m.preface }
func (m *Multipart) SetPostface(b []byte)  { m.postface = b }
func (m *Multipart) Postface() []byte      { return m.postface }
func (m *Multipart) AddPart(p Object)      { m.parts = append(m.parts, p) }
func (m *Multipart) Parts() []Object       { return m.parts }

var _ MultipartParent = (*Multipart)(nil)
