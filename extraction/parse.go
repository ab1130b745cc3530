package extraction

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kbukum/voicelist/grocery"
)

// Recovery stages reported by ParseFailure.
const (
	StageDecode = "decode"
	StageShape  = "shape"
)

// ParseFailure means the model output could not be read as an item array.
type ParseFailure struct {
	Stage string
	// Raw is the trimmed model output.
	Raw string
	Err error
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("parse llm output (%s): %v", e.Stage, e.Err)
}

func (e *ParseFailure) Unwrap() error { return e.Err }

// arraySpan is greedy and crosses newlines: first "[" to last "]".
var arraySpan = regexp.MustCompile(`(?s)\[.*\]`)

// ParseItems recovers a JSON item array from free-form model output. The
// first-to-last bracket span is decoded when present, the whole text
// otherwise. Elements are read leniently: non-objects and objects without
// an item are skipped, scalar fields are stringified and a missing quantity
// becomes "1 unit".
func ParseItems(raw string) ([]grocery.Item, error) {
	text := strings.TrimSpace(raw)
	payload := text
	if span := arraySpan.FindString(text); span != "" {
		payload = span
	}

	var decoded any
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return nil, &ParseFailure{Stage: StageDecode, Raw: text, Err: err}
	}
	elements, ok := decoded.([]any)
	if !ok {
		return nil, &ParseFailure{Stage: StageShape, Raw: text, Err: fmt.Errorf("got %T, want array", decoded)}
	}

	items := make([]grocery.Item, 0, len(elements))
	for _, el := range elements {
		obj, ok := el.(map[string]any)
		if !ok {
			continue
		}
		name := strings.TrimSpace(stringify(obj["item"]))
		if name == "" {
			continue
		}
		quantity := strings.TrimSpace(stringify(obj["quantity"]))
		if quantity == "" {
			quantity = grocery.DefaultQuantity
		}
		items = append(items, grocery.Item{Item: name, Quantity: quantity})
	}
	return items, nil
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}
