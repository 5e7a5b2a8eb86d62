package apiclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// Form is a multipart/form-data body. The client sets the multipart content
// type, boundary included, and never the JSON default.
type Form struct {
	parts []formPart
}

type formPart struct {
	field    string
	value    string
	filename string
	file     io.Reader
}

// NewForm creates an empty form.
func NewForm() *Form {
	return &Form{}
}

// AddField appends a plain value.
func (f *Form) AddField(name, value string) *Form {
	f.parts = append(f.parts, formPart{field: name, value: value})
	return f
}

// AddFile appends a file part read from r.
func (f *Form) AddFile(field, filename string, r io.Reader) *Form {
	f.parts = append(f.parts, formPart{field: field, filename: filename, file: r})
	return f
}

func (f *Form) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, p := range f.parts {
		if p.file == nil {
			if err := w.WriteField(p.field, p.value); err != nil {
				return nil, "", fmt.Errorf("write field %s: %w", p.field, err)
			}
			continue
		}
		part, err := w.CreateFormFile(p.field, p.filename)
		if err != nil {
			return nil, "", fmt.Errorf("create file part %s: %w", p.field, err)
		}
		if _, err := io.Copy(part, p.file); err != nil {
			return nil, "", fmt.Errorf("copy file part %s: %w", p.field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
