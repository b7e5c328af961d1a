package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/noah-isme/portfolio-api/pkg/docstore"
)

// encodeDocument flattens item through its JSON form so every backend stores
// plain maps, slices, strings and numbers. Timestamps become RFC 3339 strings.
func encodeDocument(item interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	data := map[string]interface{}{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	// the id is the document key, never a stored field
	delete(data, "id")
	return data, nil
}

// decodeDocument maps stored fields onto T using the json tag names.
func decodeDocument[T any](doc docstore.Document) (*T, error) {
	data := make(map[string]interface{}, len(doc.Data)+1)
	for k, v := range doc.Data {
		data[k] = v
	}
	data["id"] = doc.ID

	item := new(T)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  item,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("decode document %s: %w", doc.ID, err)
	}
	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", doc.ID, err)
	}
	return item, nil
}
