package element

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Unknown preserves an element variant this client does not understand. It
// renders as nothing and round-trips its raw bytes so newer variants survive
// an edit made here.
type Unknown struct {
	Type string
	Raw  json.RawMessage
}

func (u Unknown) Kind() Kind       { return Kind(u.Type) }
func (u Unknown) Valid() bool      { return false }
func (u Unknown) Accept(v Visitor) { v.VisitUnknown(u) }

// List is an ordered element sequence with the store's wire encoding: each
// element is an object carrying a "type" discriminator beside its fields.
type List []Element

type envelope struct {
	Type     string          `json:"type"`
	Content  string          `json:"content,omitempty"`
	Items    []ChecklistItem `json:"items,omitempty"`
	Problem  string          `json:"problem,omitempty"`
	Solution string          `json:"solution,omitempty"`
}

func (l List) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, 0, len(l))
	for _, el := range l {
		raw, err := Marshal(el)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return json.Marshal(out)
}

func (l *List) UnmarshalJSON(b []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return err
	}
	list := make(List, 0, len(raws))
	for _, raw := range raws {
		el, err := Unmarshal(raw)
		if err != nil {
			return err
		}
		list = append(list, el)
	}
	*l = list
	return nil
}

// Marshal encodes a single element with its discriminator. Unknown elements
// emit their original bytes verbatim.
func Marshal(el Element) ([]byte, error) {
	switch e := el.(type) {
	case Text:
		return json.Marshal(envelope{Type: string(KindText), Content: e.Content})
	case Highlight:
		return json.Marshal(envelope{Type: string(KindHighlight), Content: e.Content})
	case Achievement:
		return json.Marshal(envelope{Type: string(KindAchievement), Content: e.Content})
	case Checklist:
		items := e.Items
		if items == nil {
			items = []ChecklistItem{}
		}
		return json.Marshal(struct {
			Type  string          `json:"type"`
			Items []ChecklistItem `json:"items"`
		}{Type: string(KindChecklist), Items: items})
	case Problem:
		return json.Marshal(envelope{Type: string(KindProblem), Problem: e.Problem, Solution: e.Solution})
	case Unknown:
		if len(e.Raw) > 0 {
			return append(json.RawMessage(nil), e.Raw...), nil
		}
		return json.Marshal(envelope{Type: e.Type})
	default:
		return nil, fmt.Errorf("element: cannot marshal %T", el)
	}
}

// Unmarshal decodes a single element object, falling back to Unknown for
// discriminators this client does not recognize.
func Unmarshal(raw json.RawMessage) (Element, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("element: decode: %w", err)
	}
	switch Kind(env.Type) {
	case KindText:
		return Text{Content: env.Content}, nil
	case KindChecklist:
		return Checklist{Items: env.Items}, nil
	case KindHighlight:
		return Highlight{Content: env.Content}, nil
	case KindProblem:
		return Problem{Problem: env.Problem, Solution: env.Solution}, nil
	case KindAchievement:
		return Achievement{Content: env.Content}, nil
	default:
		return Unknown{Type: env.Type, Raw: compact(raw)}, nil
	}
}

func compact(raw json.RawMessage) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return append(json.RawMessage(nil), raw...)
	}
	return append(json.RawMessage(nil), buf.Bytes()...)
}
