package constants

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ClassLevel is the enumerated class (grade) of a student. Zero means the
// label carried no recognisable level; no fee structure can match it.
type ClassLevel int16

const (
	ClassLevelUnassigned ClassLevel = 0
	MinClassLevel        ClassLevel = 1
	MaxClassLevel        ClassLevel = 12
)

const classKeyPrefix = "class-"

func (l ClassLevel) Valid() bool {
	return l >= MinClassLevel && l <= MaxClassLevel
}

// Key is the normalized class key used in reports, e.g. "class-10".
func (l ClassLevel) Key() string {
	if !l.Valid() {
		return ""
	}
	return classKeyPrefix + strconv.Itoa(int(l))
}

func (l ClassLevel) String() string {
	if !l.Valid() {
		return "unassigned"
	}
	return l.Key()
}

// ParseClassLevel derives a level from a free-text label: NFKC-normalize
// (full-width digits become ASCII), drop every non-digit, read the number.
// "Class 10-A" -> 10, "X" -> error.
func ParseClassLevel(raw string) (ClassLevel, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, norm.NFKC.String(raw))

	if digits == "" {
		return ClassLevelUnassigned, fmt.Errorf("class label %q has no digits", raw)
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return ClassLevelUnassigned, fmt.Errorf("class label %q: %w", raw, err)
	}
	lvl := ClassLevel(n)
	if !lvl.Valid() {
		return ClassLevelUnassigned, fmt.Errorf("class level %d out of range [%d,%d]", n, MinClassLevel, MaxClassLevel)
	}
	return lvl, nil
}

// ParseClassKey accepts "class-10", "10" or any label ParseClassLevel accepts.
func ParseClassKey(key string) (ClassLevel, error) {
	return ParseClassLevel(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(key)), classKeyPrefix))
}
