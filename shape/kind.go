// Package shape generates target point clouds for the named formations.
package shape

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned by ParseKind for names outside the formation set
var ErrUnknownKind = errors.New("unknown shape")

// Kind identifies a target formation
type Kind uint8

const (
	Saturn Kind = iota
	Heart
	Sphere
)

var kindNames = [...]string{
	Saturn: "SATURN",
	Heart:  "HEART",
	Sphere: "SPHERE",
}

// Kinds returns all formations in selection order
func Kinds() []Kind {
	return []Kind{Saturn, Heart, Sphere}
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind resolves a case-insensitive formation name
func ParseKind(s string) (Kind, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText encodes the formation name for JSON and TOML
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a formation name
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
