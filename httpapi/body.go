package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/url"
)

// Payload is a transport-ready request body.
type Payload struct {
	ContentType string
	Data        []byte
}

// JSONPayload marshals v as an application/json payload.
func JSONPayload(v any) (Payload, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Payload{}, fmt.Errorf("marshal JSON payload: %w", err)
	}
	return Payload{ContentType: "application/json", Data: data}, nil
}

// TextPayload wraps s as a text/plain payload.
func TextPayload(s string) Payload {
	return Payload{ContentType: "text/plain; charset=utf-8", Data: []byte(s)}
}

// BytesPayload wraps raw bytes with an explicit content type.
func BytesPayload(contentType string, data []byte) Payload {
	return Payload{ContentType: contentType, Data: data}
}

// FormPayload encodes values as an application/x-www-form-urlencoded
// payload.
func FormPayload(values url.Values) Payload {
	return Payload{
		ContentType: "application/x-www-form-urlencoded",
		Data:        []byte(values.Encode()),
	}
}

// MultipartPayload builds a multipart/form-data payload from form
// fields and file attachments, keyed by filename under the given field
// name.
func MultipartPayload(fileField string, fields map[string]string, files map[string][]byte) (Payload, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return Payload{}, fmt.Errorf("write field %s: %w", key, err)
		}
	}

	for filename, content := range files {
		part, err := writer.CreateFormFile(fileField, filename)
		if err != nil {
			return Payload{}, fmt.Errorf("create form file %s: %w", filename, err)
		}
		if _, err := part.Write(content); err != nil {
			return Payload{}, fmt.Errorf("write file content %s: %w", filename, err)
		}
	}

	if err := writer.Close(); err != nil {
		return Payload{}, fmt.Errorf("close multipart writer: %w", err)
	}

	return Payload{ContentType: writer.FormDataContentType(), Data: buf.Bytes()}, nil
}

type bodyKind uint8

const (
	bodyNone bodyKind = iota
	bodySchema
	bodyLiteral
	bodyDynamic
)

// Body is the declarative request body of a route. Three variants:
// schema-validated projection of the call parameters, fixed literal
// value, or a function producing an arbitrary payload.
type Body[P any] struct {
	kind    bodyKind
	project func(P) any
	literal any
	fn      func(ctx context.Context, p P) (Payload, error)
}

// BodyOf declares a body taken from the call parameters via project.
// The projected value is checked against its validate struct tags and
// serialized as JSON; a validation failure surfaces as an EncodeError
// and the request is not dispatched.
func BodyOf[P any](project func(P) any) Body[P] {
	return Body[P]{kind: bodySchema, project: project}
}

// BodyValue declares a fixed, pre-validated body serialized as JSON on
// every call, ignoring the call parameters.
func BodyValue[P any](v any) Body[P] {
	return Body[P]{kind: bodyLiteral, literal: v}
}

// BodyFunc declares a body computed per call. The function owns
// correctness entirely: no schema validation is applied to its result.
func BodyFunc[P any](fn func(ctx context.Context, p P) (Payload, error)) Body[P] {
	return Body[P]{kind: bodyDynamic, fn: fn}
}

func (b Body[P]) isZero() bool { return b.kind == bodyNone }

// encode produces the request payload. ok is false when the route
// declares no body. All failures are EncodeErrors: they happen before
// dispatch.
func (b Body[P]) encode(ctx context.Context, p P) (payload Payload, ok bool, err error) {
	switch b.kind {
	case bodySchema:
		v := b.project(p)
		if err := validateValue(v); err != nil {
			return Payload{}, false, &EncodeError{Err: fmt.Errorf("body validation: %w", err)}
		}
		payload, err := JSONPayload(v)
		if err != nil {
			return Payload{}, false, &EncodeError{Err: err}
		}
		return payload, true, nil
	case bodyLiteral:
		payload, err := JSONPayload(b.literal)
		if err != nil {
			return Payload{}, false, &EncodeError{Err: err}
		}
		return payload, true, nil
	case bodyDynamic:
		payload, err := b.fn(ctx, p)
		if err != nil {
			return Payload{}, false, &EncodeError{Err: err}
		}
		return payload, true, nil
	}
	return Payload{}, false, nil
}
