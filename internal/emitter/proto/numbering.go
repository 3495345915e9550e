package proto

import (
	"errors"
	"hash/fnv"
	"sort"

	"github.com/jhump/protoreflect/v2/protobuilder"
	"google.golang.org/protobuf/reflect/protoreflect"
)

const (
	maxTag           = 31767
	reservedTagStart = 19000
	reservedTagEnd   = 19999
)

var errTagSpaceExhausted = errors.New("exhausted tag space")

func allocateFieldNumbers(fieldBuilders []*protobuilder.FieldBuilder) error {
	names := make([]string, len(fieldBuilders))
	for i, fb := range fieldBuilders {
		names[i] = string(fb.Name())
	}
	numbers, err := tagNumbers(names)
	if err != nil {
		return err
	}
	for i, fb := range fieldBuilders {
		fb.SetNumber(protoreflect.FieldNumber(numbers[i]))
	}
	return nil
}

func allocateEnumValueNumbers(enumValueBuilders []*protobuilder.EnumValueBuilder) error {
	names := make([]string, len(enumValueBuilders))
	for i, evb := range enumValueBuilders {
		names[i] = string(evb.Name())
	}
	numbers, err := tagNumbers(names)
	if err != nil {
		return err
	}
	for i, evb := range enumValueBuilders {
		evb.SetNumber(protoreflect.EnumNumber(numbers[i]))
	}
	return nil
}

// tagNumbers assigns stable tag numbers derived from names, so that adding or
// reordering fields never renumbers existing ones:
//  1. candidate = FNV32a(name) % maxTag + 1
//  2. candidates in the reserved 19000-19999 block and taken numbers probe
//     linearly, wrapping to 1
//
// Names are visited in sorted order so collision resolution does not depend
// on declaration order.
func tagNumbers(names []string) ([]int, error) {
	if len(names) == 0 {
		return nil, nil
	}
	order := make([]int, len(names))
	for i := range names {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return names[order[i]] < names[order[j]] })

	out := make([]int, len(names))
	used := make(map[int]bool, len(names))
	for _, idx := range order {
		start := int(fnv32(names[idx])%maxTag) + 1
		cand := start
		for {
			if cand < reservedTagStart || cand > reservedTagEnd {
				if !used[cand] {
					used[cand] = true
					out[idx] = cand
					break
				}
			}
			cand++
			if cand > maxTag {
				cand = 1
			}
			if cand == start {
				return nil, errTagSpaceExhausted
			}
		}
	}
	return out, nil
}

func fnv32(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
