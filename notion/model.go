package notion

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

type User struct {
	Object string `json:"object"`
	Id     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
}

type Parent struct {
	Type       string `json:"type"`
	DatabaseId string `json:"database_id,omitempty"`
	PageId     string `json:"page_id,omitempty"`
	Workspace  bool   `json:"workspace,omitempty"`
}

type Page struct {
	Object     string       `json:"object"`
	Id         string       `json:"id"`
	Parent     Parent       `json:"parent"`
	Url        string       `json:"url"`
	Properties *PropertyMap `json:"properties"`
}

type Database struct {
	Object     string       `json:"object"`
	Id         string       `json:"id"`
	Parent     Parent       `json:"parent"`
	Properties *PropertyMap `json:"properties"`
}

// Property is a typed field on a page or database. Number is kept raw
// because pages carry the numeric value while databases carry a schema
// object under the same key.
type Property struct {
	Id     string          `json:"id"`
	Type   string          `json:"type"`
	Number json.RawMessage `json:"number,omitempty"`
}

func (property Property) NumberValue() float64 {
	var value float64
	if err := json.Unmarshal(property.Number, &value); err != nil {
		return 0
	}
	return value
}

// PropertyMap preserves the order properties appear in on the wire, the
// resolver's last fallback depends on it.
type PropertyMap struct {
	entries *linkedhashmap.Map
}

func NewPropertyMap() *PropertyMap {
	return &PropertyMap{entries: linkedhashmap.New()}
}

func (pm *PropertyMap) Put(name string, property Property) {
	if pm.entries == nil {
		pm.entries = linkedhashmap.New()
	}
	pm.entries.Put(name, property)
}

func (pm *PropertyMap) Get(name string) (Property, bool) {
	if pm.entries == nil {
		return Property{}, false
	}
	value, found := pm.entries.Get(name)
	if !found {
		return Property{}, false
	}
	return value.(Property), true
}

func (pm *PropertyMap) Names() []string {
	if pm.entries == nil {
		return nil
	}
	names := make([]string, 0, pm.entries.Size())
	it := pm.entries.Iterator()
	for it.Next() {
		names = append(names, it.Key().(string))
	}
	return names
}

func (pm *PropertyMap) Each(f func(name string, property Property)) {
	if pm.entries == nil {
		return
	}
	it := pm.entries.Iterator()
	for it.Next() {
		f(it.Key().(string), it.Value().(Property))
	}
}

func (pm *PropertyMap) Size() int {
	if pm.entries == nil {
		return 0
	}
	return pm.entries.Size()
}

func (pm *PropertyMap) UnmarshalJSON(data []byte) error {
	pm.entries = linkedhashmap.New()

	dec := json.NewDecoder(bytes.NewReader(data))
	token, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("notion: properties is not an object")
	}
	for dec.More() {
		token, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := token.(string)
		if !ok {
			return fmt.Errorf("notion: property name is not a string")
		}
		var property Property
		if err := dec.Decode(&property); err != nil {
			return err
		}
		pm.entries.Put(name, property)
	}
	return nil
}

func (pm *PropertyMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	pm.Each(func(name string, property Property) {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, _ := json.Marshal(name)
		value, _ := json.Marshal(property)
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	})
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
