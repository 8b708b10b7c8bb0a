package domain

import "fmt"

// Field is a reconcilable output field of the published record.
type Field string

// Reconcilable fields.
const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldPublisher   Field = "publisher"
	FieldReleaseDate Field = "release_date"
	FieldPageCount   Field = "page_count"
	FieldThumbnail   Field = "thumbnail"
)

// AllFields lists every reconcilable field in display order.
func AllFields() []Field {
	return []Field{
		FieldTitle,
		FieldDescription,
		FieldPublisher,
		FieldReleaseDate,
		FieldPageCount,
		FieldThumbnail,
	}
}

// Valid reports whether f is a known field.
func (f Field) Valid() bool {
	switch f {
	case FieldTitle, FieldDescription, FieldPublisher, FieldReleaseDate, FieldPageCount, FieldThumbnail:
		return true
	}
	return false
}

// ParseField validates a raw field name.
func ParseField(raw string) (Field, error) {
	f := Field(raw)
	if !f.Valid() {
		return "", fmt.Errorf("unknown field %q", raw)
	}
	return f, nil
}

// FieldDefault is the persisted, cross-session preference for which source
// to use for a field.
type FieldDefault struct {
	Field  Field    `json:"field"`
	Source SourceID `json:"source_id"`
}
