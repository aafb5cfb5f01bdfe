package detail

import (
	"bytes"
	"encoding/json"
	"strings"
)

type Kind int

const (
	KindMove Kind = iota
	KindAbility
	KindItem
	KindTeraType
)

var Kinds = []Kind{KindMove, KindAbility, KindItem, KindTeraType}

func (k Kind) String() string {
	switch k {
	case KindAbility:
		return "ability"
	case KindItem:
		return "item"
	case KindTeraType:
		return "tera_type"
	default:
		return "move"
	}
}

// SubjectField is the JSON field naming the decoded subject of a row.
func (k Kind) SubjectField() string {
	switch k {
	case KindAbility:
		return "ability_name"
	case KindItem:
		return "item_name"
	case KindTeraType:
		return "tera_type"
	default:
		return "move_name"
	}
}

var zeroRate = json.RawMessage("0")

// Row is one usage line for a Pokémon form. All four kinds share the shape
// and differ only in the name of the subject field.
type Row struct {
	Kind        Kind
	PokemonID   string
	PokemonName string
	FormID      string
	Rank        int
	Subject     string
	// UsageRate is passed through as published; numbers stay numbers.
	UsageRate json.RawMessage
}

func (r Row) Rate() string {
	if len(r.UsageRate) == 0 {
		return "0"
	}
	var text string
	if err := json.Unmarshal(r.UsageRate, &text); err == nil {
		return text
	}
	return strings.TrimSpace(string(r.UsageRate))
}

func (r Row) MarshalJSON() ([]byte, error) {
	rate := r.UsageRate
	if len(bytes.TrimSpace(rate)) == 0 || bytes.Equal(bytes.TrimSpace(rate), []byte("null")) {
		rate = zeroRate
	}
	fields := []struct {
		key   string
		value any
	}{
		{"pokemon_id", r.PokemonID},
		{"pokemon_name", r.PokemonName},
		{"form_id", r.FormID},
		{"rank", r.Rank},
		{r.Kind.SubjectField(), r.Subject},
		{"usage_rate", rate},
	}
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	buf.WriteByte('{')
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encoder.Encode(field.key); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1)
		buf.WriteByte(':')
		if err := encoder.Encode(field.value); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type Result struct {
	Moves     []Row
	Abilities []Row
	Items     []Row
	TeraTypes []Row
}

func (r *Result) Extend(other Result) {
	r.Moves = append(r.Moves, other.Moves...)
	r.Abilities = append(r.Abilities, other.Abilities...)
	r.Items = append(r.Items, other.Items...)
	r.TeraTypes = append(r.TeraTypes, other.TeraTypes...)
}

func (r *Result) Rows(kind Kind) []Row {
	switch kind {
	case KindAbility:
		return r.Abilities
	case KindItem:
		return r.Items
	case KindTeraType:
		return r.TeraTypes
	default:
		return r.Moves
	}
}

func (r *Result) appendRow(row Row) {
	switch row.Kind {
	case KindAbility:
		r.Abilities = append(r.Abilities, row)
	case KindItem:
		r.Items = append(r.Items, row)
	case KindTeraType:
		r.TeraTypes = append(r.TeraTypes, row)
	default:
		r.Moves = append(r.Moves, row)
	}
}

// All returns every row, grouped by kind in Kinds order.
func (r *Result) All() []Row {
	all := make([]Row, 0, len(r.Moves)+len(r.Abilities)+len(r.Items)+len(r.TeraTypes))
	for _, kind := range Kinds {
		all = append(all, r.Rows(kind)...)
	}
	return all
}
