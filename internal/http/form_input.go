package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/simbrella/cms-console/internal/domain/forms"
)

const maxMemoryBytes = 8 << 20

// readInput collects a request body as raw form input. Multipart, urlencoded and
// JSON object bodies are accepted. JSON arrays become repeated "key[]" fields so
// they decode as lists even with one element.
func readInput(r *http.Request) (forms.Input, error) {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil && r.Header.Get("Content-Type") != "" {
		return forms.Input{}, fmt.Errorf("parse content type: %w", err)
	}

	switch ct {
	case "multipart/form-data":
		return readMultipart(r)
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return forms.Input{}, fmt.Errorf("parse form: %w", err)
		}
		return forms.FromValues(r.PostForm), nil
	default:
		return readJSONInput(r.Body)
	}
}

func readMultipart(r *http.Request) (forms.Input, error) {
	if err := r.ParseMultipartForm(maxMemoryBytes); err != nil {
		return forms.Input{}, fmt.Errorf("parse multipart form: %w", err)
	}
	in := forms.FromValues(r.MultipartForm.Value)
	for key, headers := range r.MultipartForm.File {
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				return forms.Input{}, fmt.Errorf("open upload %s: %w", key, err)
			}
			content, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return forms.Input{}, fmt.Errorf("read upload %s: %w", key, err)
			}
			in = in.AddFile(key, forms.File{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Content:     content,
			})
		}
	}
	return in, nil
}

func readJSONInput(body io.Reader) (forms.Input, error) {
	in := forms.NewInput()
	dec := json.NewDecoder(io.LimitReader(body, maxBodyBytes))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return in, nil
		}
		return forms.Input{}, fmt.Errorf("decode json body: %w", err)
	}
	for k, v := range raw {
		if list, ok := v.([]any); ok {
			for _, item := range list {
				if s, ok := scalar(item); ok {
					in.Values.Add(k+"[]", s)
				}
			}
			continue
		}
		if s, ok := scalar(v); ok {
			in.Values.Set(k, s)
		}
	}
	return in, nil
}

func scalar(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}
