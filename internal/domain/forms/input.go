// Package forms holds raw, untyped form input and the typed form shapes it is decoded into.
package forms

import (
	"net/url"
	"strings"
)

// File is one uploaded file of a multipart form.
type File struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Input is raw form input as submitted by a caller: text fields plus file parts.
type Input struct {
	Values url.Values
	Files  map[string][]File
}

// NewInput returns an empty Input.
func NewInput() Input {
	return Input{Values: url.Values{}, Files: map[string][]File{}}
}

// FromValues wraps text-only input.
func FromValues(v url.Values) Input {
	if v == nil {
		v = url.Values{}
	}
	return Input{Values: v, Files: map[string][]File{}}
}

// FromMap builds text-only input from single-valued fields.
func FromMap(m map[string]string) Input {
	in := NewInput()
	for k, v := range m {
		in.Values.Set(k, v)
	}
	return in
}

// Set replaces a text field and returns in for chaining.
func (in Input) Set(key, value string) Input {
	if in.Values == nil {
		in.Values = url.Values{}
	}
	in.Values.Set(key, value)
	return in
}

// AddFile appends a file part under key.
func (in Input) AddFile(key string, f File) Input {
	if in.Files == nil {
		in.Files = map[string][]File{}
	}
	in.Files[key] = append(in.Files[key], f)
	return in
}

// Get returns the first value of key.
func (in Input) Get(key string) string {
	return in.Values.Get(key)
}

// HasFiles reports whether any file part is present.
func (in Input) HasFiles() bool {
	for _, fs := range in.Files {
		if len(fs) > 0 {
			return true
		}
	}
	return false
}

// Map flattens text fields for decoding: one value becomes a string, several become
// a []string. Blank fields are dropped so optional fields decode as absent.
// A trailing "[]" on a key (PHP-style arrays) is stripped.
func (in Input) Map() map[string]any {
	out := make(map[string]any, len(in.Values))
	for k, vs := range in.Values {
		key := strings.TrimSuffix(k, "[]")
		kept := make([]string, 0, len(vs))
		for _, v := range vs {
			if strings.TrimSpace(v) != "" {
				kept = append(kept, v)
			}
		}
		switch {
		case len(kept) == 0:
			continue
		case len(kept) == 1 && !strings.HasSuffix(k, "[]"):
			out[key] = kept[0]
		default:
			out[key] = kept
		}
	}
	return out
}
