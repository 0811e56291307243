package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/target/schoolsite-ui/internal/domain/api"
	"github.com/target/schoolsite-ui/internal/ports"
)

// resourcePath joins a collection path and an escaped record ID.
func resourcePath(collection, id string) string {
	return collection + "/" + url.PathEscape(id)
}

func get(ctx context.Context, client ports.APIClient, path string) (*api.Response, error) {
	return client.Send(ctx, api.Request{Method: http.MethodGet, Path: path})
}

func send(ctx context.Context, client ports.APIClient, method, path string, body any) error {
	_, err := client.Send(ctx, api.Request{Method: method, Path: path, Body: body})
	return err
}

// listEnvelope accepts the wrapped list shapes some backend routes return.
type listEnvelope[T any] struct {
	Data  []T `json:"data"`
	Items []T `json:"items"`
}

// fetchList GETs path and decodes either a bare JSON array or a {data|items: [...]} envelope.
func fetchList[T any](ctx context.Context, client ports.APIClient, path string) ([]T, error) {
	resp, err := get(ctx, client, path)
	if err != nil {
		return nil, err
	}
	return decodeList[T](resp.Body)
}

func decodeList[T any](body []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return items, nil
	}

	var env listEnvelope[T]
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decode list envelope: %w", err)
	}
	if env.Data != nil {
		return env.Data, nil
	}
	if env.Items != nil {
		return env.Items, nil
	}
	return []T{}, nil
}

// recordEnvelope accepts {data: {...}} wrapped single records.
type recordEnvelope[T any] struct {
	Data *T `json:"data"`
}

func decodeRecord[T any](body []byte) (*T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var env recordEnvelope[T]
	if err := json.Unmarshal(trimmed, &env); err == nil && env.Data != nil {
		return env.Data, nil
	}

	var rec T
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &rec, nil
}

// formValue is one submitted field; value is a string, bool or []string.
type formValue struct {
	name  string
	value any
}

// formBody returns a multipart body when attachment is set, otherwise a JSON object.
// Multipart fields keep their order; list values become repeated fields.
func formBody(values []formValue, attachment *api.Attachment) any {
	if attachment != nil {
		m := &api.Multipart{File: attachment}
		for _, v := range values {
			switch x := v.value.(type) {
			case string:
				m.Add(v.name, x)
			case bool:
				m.Add(v.name, strconv.FormatBool(x))
			case []string:
				for _, item := range x {
					m.Add(v.name, item)
				}
			default:
				m.Add(v.name, fmt.Sprint(x))
			}
		}
		return m
	}

	obj := make(map[string]any, len(values))
	for _, v := range values {
		obj[v.name] = v.value
	}
	return obj
}
