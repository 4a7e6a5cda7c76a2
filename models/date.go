package models

// EdtfDate is a raw date string in EDTF (ISO 8601-2) notation, kept
// unparsed until rendering so that malformed input degrades per entry
// instead of failing the whole library. Parsing lives in pkg/edtf.
type EdtfDate string

// IsZero reports whether the date is absent.
func (d EdtfDate) IsZero() bool {
	return d == ""
}

// String returns the raw EDTF text.
func (d EdtfDate) String() string {
	return string(d)
}
