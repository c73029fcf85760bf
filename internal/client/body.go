package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
)

// Body is a request payload in the wire format its endpoint expects
type Body interface {
	Encode() (io.Reader, string, error)
}

// JSONBody sends v as application/json
type JSONBody struct {
	Value any
}

func (b JSONBody) Encode() (io.Reader, string, error) {
	data, err := json.Marshal(b.Value)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(data), "application/json", nil
}

// FileBody sends a single file as multipart/form-data
type FileBody struct {
	Field    string
	Filename string
	Content  io.Reader
}

func (b FileBody) Encode() (io.Reader, string, error) {
	field := b.Field
	if field == "" {
		field = "file"
	}

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	part, err := writer.CreateFormFile(field, b.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if b.Content != nil {
		if _, err := io.Copy(part, b.Content); err != nil {
			return nil, "", fmt.Errorf("failed to write file data: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return buf, writer.FormDataContentType(), nil
}
