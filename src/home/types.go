package home

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/tidwall/gjson"
)

var ErrUnexpectedShape = errors.New("unexpected response shape")

type SeasonListRequest struct {
	Soft string `json:"soft"`
	Lang string `json:"lng"`
}

// SeasonList holds the seasons under "list" in the order the service
// returned them. A missing or non-object "list" decodes to no seasons.
type SeasonList struct {
	Seasons []Season
}

type Season struct {
	Key     string
	Ladders []Ladder
}

type Ladder struct {
	Key    string
	Record SeasonRecord
}

func (l *SeasonList) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: invalid season list", ErrUnexpectedShape)
	}
	var seasons []Season
	list := gjson.GetBytes(data, "list")
	if list.IsObject() {
		list.ForEach(func(key, value gjson.Result) bool {
			season := Season{Key: key.String()}
			if value.IsObject() {
				value.ForEach(func(key, value gjson.Result) bool {
					season.Ladders = append(season.Ladders, Ladder{Key: key.String(), Record: parseRecord(value)})
					return true
				})
			}
			seasons = append(seasons, season)
			return true
		})
	}
	*l = SeasonList{Seasons: seasons}
	return nil
}

// SeasonRecord keeps the fields the scraper reads from a ladder record.
// Everything else in the record is ignored, whatever its type.
type SeasonRecord struct {
	// CompetitionID is empty when "cid" is absent or not a scalar.
	CompetitionID string
	// Rule is nil unless "rule" is an integer.
	Rule        *int
	RankingType int
	// Timestamp is ts2, falling back to ts1.
	Timestamp int64
	Name      string
}

func (r *SeasonRecord) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: invalid season record", ErrUnexpectedShape)
	}
	*r = parseRecord(gjson.ParseBytes(data))
	return nil
}

func parseRecord(value gjson.Result) SeasonRecord {
	record := SeasonRecord{
		RankingType: int(value.Get("rst").Int()),
		Name:        value.Get("name").String(),
	}
	if cid := value.Get("cid"); cid.Type == gjson.String || cid.Type == gjson.Number {
		record.CompetitionID = cid.String()
	}
	if rule := value.Get("rule"); rule.Type == gjson.Number && rule.Num == math.Trunc(rule.Num) {
		n := int(rule.Num)
		record.Rule = &n
	}
	ts := value.Get("ts2")
	if ts.Type == gjson.Null {
		ts = value.Get("ts1")
	}
	record.Timestamp = ts.Int()
	return record
}

// RankingEntry is one ranked Pokémon exactly as published upstream.
type RankingEntry json.RawMessage

func (e RankingEntry) MarshalJSON() ([]byte, error) {
	if len(e) == 0 {
		return []byte("null"), nil
	}
	return e, nil
}

func (e *RankingEntry) UnmarshalJSON(data []byte) error {
	*e = append((*e)[0:0], data...)
	return nil
}

type RankingIdentity struct {
	ID   int
	Form int
}

func (e RankingEntry) Identity() (RankingIdentity, error) {
	var raw struct {
		ID   *int `json:"id"`
		Form int  `json:"form"`
	}
	if err := json.Unmarshal(e, &raw); err != nil {
		return RankingIdentity{}, err
	}
	if raw.ID == nil {
		return RankingIdentity{}, errors.New("ranking entry has no id")
	}
	return RankingIdentity{ID: *raw.ID, Form: raw.Form}, nil
}

type Shape int

const (
	ShapeList Shape = iota
	ShapeObject
)

func (s Shape) String() string {
	if s == ShapeObject {
		return "object"
	}
	return "list"
}

// Member is one object member kept verbatim.
type Member struct {
	Key   string
	Value json.RawMessage
}

// Ranking is the ranking endpoint payload. The service answers either with
// a bare array of entries or with an object holding them under "pokemon";
// both decode into the same value and Shape records which one arrived.
type Ranking struct {
	Shape   Shape
	Entries []RankingEntry
	// Extra holds the object form's other members in document order.
	Extra []Member
}

const rankingEntriesKey = "pokemon"

func (r *Ranking) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: invalid ranking body", ErrUnexpectedShape)
	}
	body := gjson.ParseBytes(data)
	switch {
	case body.IsArray():
		*r = Ranking{Shape: ShapeList, Entries: entriesOf(body)}
		return nil
	case body.IsObject():
		result := Ranking{Shape: ShapeObject}
		var err error
		body.ForEach(func(key, value gjson.Result) bool {
			if key.String() != rankingEntriesKey {
				result.Extra = append(result.Extra, Member{Key: key.String(), Value: json.RawMessage(value.Raw)})
				return true
			}
			switch {
			case value.IsArray():
				result.Entries = entriesOf(value)
			case value.Type != gjson.Null:
				err = fmt.Errorf("%w: %q is %s, not an array", ErrUnexpectedShape, rankingEntriesKey, value.Type)
				return false
			}
			return true
		})
		if err != nil {
			return err
		}
		*r = result
		return nil
	default:
		return fmt.Errorf("%w: ranking body is %s", ErrUnexpectedShape, body.Type)
	}
}

func entriesOf(array gjson.Result) []RankingEntry {
	entries := make([]RankingEntry, 0)
	array.ForEach(func(_, value gjson.Result) bool {
		entries = append(entries, RankingEntry(value.Raw))
		return true
	})
	return entries
}

// MarshalJSON always writes the object form so consumers see one layout.
func (r Ranking) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for _, member := range r.Extra {
		if err := writeKey(&buf, member.Key); err != nil {
			return nil, err
		}
		if len(member.Value) == 0 {
			buf.WriteString("null")
		} else {
			buf.Write(member.Value)
		}
		buf.WriteByte(',')
	}
	if err := writeKey(&buf, rankingEntriesKey); err != nil {
		return nil, err
	}
	buf.WriteByte('[')
	for i, entry := range r.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		raw, _ := entry.MarshalJSON()
		buf.Write(raw)
	}
	buf.WriteString("]}")
	return buf.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	encoded, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(encoded)
	buf.WriteByte(':')
	return nil
}

// Top returns a copy holding at most n entries.
func (r Ranking) Top(n int) Ranking {
	if n < 0 {
		n = 0
	}
	entries := r.Entries
	if len(entries) > n {
		entries = entries[:n]
	}
	return Ranking{
		Shape:   r.Shape,
		Entries: append([]RankingEntry(nil), entries...),
		Extra:   r.Extra,
	}
}

type UsageEntry struct {
	ID  json.RawMessage `json:"id"`
	Val json.RawMessage `json:"val"`
}

type Usage struct {
	Moves     []UsageEntry `json:"waza"`
	Abilities []UsageEntry `json:"tokusei"`
	Items     []UsageEntry `json:"motimono"`
	TeraTypes []UsageEntry `json:"terastal"`
}

type FormUsage struct {
	FormID string
	// Usage is nil when the form carries no "temoti" block.
	Usage *Usage
}

type PokemonUsage struct {
	PokemonID string
	Forms     []FormUsage
}

// DetailPage is one pdetail-N document: Pokémon id to form id to usage,
// kept in document order.
type DetailPage []PokemonUsage

func (p *DetailPage) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: invalid detail page", ErrUnexpectedShape)
	}
	body := gjson.ParseBytes(data)
	if !body.IsObject() {
		return fmt.Errorf("%w: detail page is %s", ErrUnexpectedShape, body.Type)
	}
	page := DetailPage{}
	var err error
	body.ForEach(func(pokemonID, forms gjson.Result) bool {
		if !forms.IsObject() {
			err = fmt.Errorf("%w: pokemon %s is %s", ErrUnexpectedShape, pokemonID.String(), forms.Type)
			return false
		}
		usage := PokemonUsage{PokemonID: pokemonID.String()}
		forms.ForEach(func(formID, form gjson.Result) bool {
			entry := FormUsage{FormID: formID.String()}
			if temoti := form.Get("temoti"); temoti.IsObject() {
				entry.Usage = &Usage{}
				if err = json.Unmarshal([]byte(temoti.Raw), entry.Usage); err != nil {
					err = fmt.Errorf("%w: pokemon %s form %s: %s", ErrUnexpectedShape, pokemonID.String(), formID.String(), err)
					return false
				}
			}
			usage.Forms = append(usage.Forms, entry)
			return true
		})
		page = append(page, usage)
		return err == nil
	})
	if err != nil {
		return err
	}
	*p = page
	return nil
}
