package annotation

import "fmt"

// Recognized block and key names.
const (
	BlockDetail = "detail"
	KeyStatus   = "status"
	KeyMessage  = "message"
)

// RequiredKeys lists the keys every variant must supply, in report order.
var RequiredKeys = []string{KeyStatus, KeyMessage}

// Set maps recognized detail keys to their expression text.
type Set map[string]Expr

// Extract merges every detail block of blocks into a Set. Blocks with other
// names and unrecognized keys are ignored. A recognized key given more than
// once is an error, whichever blocks it appears in.
func Extract(blocks []Block) (Set, error) {
	set := Set{}
	for _, b := range blocks {
		if b.Name != BlockDetail {
			continue
		}
		entries, err := b.Entries()
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !recognized(e.Key) {
				continue
			}
			if _, dup := set[e.Key]; dup {
				return nil, &Error{Pos: e.Pos, Msg: fmt.Sprintf("duplicate %s in detail annotation", e.Key)}
			}
			set[e.Key] = e.Value
		}
	}
	return set, nil
}

// Missing returns the required keys absent from s.
func (s Set) Missing() []string {
	var missing []string
	for _, k := range RequiredKeys {
		if _, ok := s[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

func recognized(key string) bool {
	for _, k := range RequiredKeys {
		if k == key {
			return true
		}
	}
	return false
}
