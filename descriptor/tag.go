package descriptor

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	comaTerminatorToken = iota
	scopeBlockToken
)

var (
	comaTerminatorMatcher = parsly.NewToken(comaTerminatorToken, "coma", matcher.NewTerminator(',', true))
	scopeBlockMatcher     = parsly.NewToken(scopeBlockToken, "{ .... }", matcher.NewBlock('{', '}', '\\'))
)

// Tag represents member tag, i.e. `reflect:"fullName,omitempty"` or `reflect:"name=fullName,ignore"`
type Tag struct {
	Name      string
	Omitempty bool
	Ignore    bool
}

func (t *Tag) update(key, value string) error {
	switch strings.ToLower(key) {
	case "name":
		t.Name = value
	case "omitempty":
		t.Omitempty = true
	case "ignore", "-", "transient":
		t.Ignore = true
	default:
		return errors.Newf("unknown tag option %q", key)
	}
	return nil
}

// ParseTag parses member tag; the first bare item is the member name
func ParseTag(tag reflect.StructTag, tagName string) (*Tag, error) {
	ret := &Tag{}
	encoded := strings.TrimSpace(tag.Get(tagName))
	switch encoded {
	case "":
		return ret, nil
	case "-":
		ret.Ignore = true
		return ret, nil
	}
	cursor := parsly.NewCursor("", []byte(encoded), 0)
	for i := 0; cursor.Pos < len(cursor.Input); i++ {
		item := strings.TrimSpace(matchItem(cursor))
		if item == "" {
			continue
		}
		key, value := item, ""
		if index := strings.Index(item, "="); index != -1 {
			key, value = strings.TrimSpace(item[:index]), strings.TrimSpace(item[index+1:])
		} else if i == 0 {
			ret.Name = item
			continue
		}
		if err := ret.update(key, value); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

func matchItem(cursor *parsly.Cursor) string {
	match := cursor.MatchAny(scopeBlockMatcher, comaTerminatorMatcher)
	switch match.Code {
	case scopeBlockToken:
		value := match.Text(cursor)
		cursor.MatchAny(comaTerminatorMatcher)
		return value[1 : len(value)-1]
	case comaTerminatorToken:
		value := match.Text(cursor)
		return value[:len(value)-1]
	}
	value := string(cursor.Input[cursor.Pos:])
	cursor.Pos = len(cursor.Input)
	return value
}
