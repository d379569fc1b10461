package programs

import (
	"errors"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// jsonAPI keeps numbers as json.Number so program fields render exactly as sent
var jsonAPI = jsoniter.Config{UseNumber: true}.Froze()

// ExtractPrograms flattens a filter-endpoint envelope of the form
// {"results": [{"<key>": {...program...}}, ...]} into its program records,
// keeping source order. A document without a results array yields no
// programs. Each entry contributes the first value in document order; entries
// whose first value is not an object are skipped.
func ExtractPrograms(body []byte) ([]Program, error) {
	iter := jsonAPI.BorrowIterator(body)
	defer jsonAPI.ReturnIterator(iter)

	programs := []Program{}

	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		iter.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
			if field != "results" || it.WhatIsNext() != jsoniter.ArrayValue {
				it.Skip()
				return true
			}

			programs = programs[:0]
			it.ReadArrayCB(func(it *jsoniter.Iterator) bool {
				if program, ok := readWrapped(it); ok {
					programs = append(programs, program)
				}
				return true
			})
			return true
		})
	case jsoniter.InvalidValue:
		return nil, errors.New("failed to decode response: not JSON")
	default:
		return programs, nil
	}

	if iter.Error != nil {
		return nil, fmt.Errorf("failed to decode response: %w", iter.Error)
	}

	return programs, nil
}

// readWrapped unwraps one single-key results entry
func readWrapped(it *jsoniter.Iterator) (Program, bool) {
	if it.WhatIsNext() != jsoniter.ObjectValue {
		it.Skip()
		return nil, false
	}

	var program Program
	first := true
	it.ReadObjectCB(func(it *jsoniter.Iterator, _ string) bool {
		if !first || it.WhatIsNext() != jsoniter.ObjectValue {
			first = false
			it.Skip()
			return true
		}

		first = false
		it.ReadVal(&program)
		return true
	})

	return program, program != nil
}

// ParseNameList reads a list-endpoint response. The API answers with an
// object whose values, in document order, are the names; a plain array is
// accepted as the list itself.
func ParseNameList(body []byte) ([]string, error) {
	iter := jsonAPI.BorrowIterator(body)
	defer jsonAPI.ReturnIterator(iter)

	names := []string{}

	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		iter.ReadObjectCB(func(it *jsoniter.Iterator, _ string) bool {
			names = append(names, readName(it))
			return true
		})
	case jsoniter.ArrayValue:
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			names = append(names, readName(it))
			return true
		})
	default:
		return nil, errors.New("unexpected list response: expected a JSON object")
	}

	if iter.Error != nil {
		return nil, fmt.Errorf("failed to decode response: %w", iter.Error)
	}

	return names, nil
}

func readName(it *jsoniter.Iterator) string {
	if it.WhatIsNext() == jsoniter.StringValue {
		return it.ReadString()
	}
	return strings.TrimSpace(string(it.SkipAndReturnBytes()))
}
