// Package model defines the Squad record exchanged between serialization
// formats. Keys are camelCase in every format.
package model

import (
	"fmt"
	"slices"
)

// Squad is a team of members.
type Squad struct {
	SquadName  string   `json:"squadName" yaml:"squadName"`
	HomeTown   string   `json:"homeTown" yaml:"homeTown"`
	Formed     int64    `json:"formed" yaml:"formed"`
	SecretBase string   `json:"secretBase" yaml:"secretBase"`
	Active     bool     `json:"active" yaml:"active"`
	Members    []Member `json:"members" yaml:"members"`
}

// Member belongs to exactly one Squad.
type Member struct {
	Name           string   `json:"name" yaml:"name"`
	Age            int64    `json:"age" yaml:"age"`
	SecretIdentity string   `json:"secretIdentity" yaml:"secretIdentity"`
	Powers         []string `json:"powers" yaml:"powers"`
}

// MissingFieldError reports a required field absent from a decoded document.
type MissingFieldError struct {
	Record string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing field %q", e.Record, e.Field)
}

// Equal reports whether both squads hold the same values. Nil and empty
// member lists are equal.
func (s Squad) Equal(other Squad) bool {
	return s.SquadName == other.SquadName &&
		s.HomeTown == other.HomeTown &&
		s.Formed == other.Formed &&
		s.SecretBase == other.SecretBase &&
		s.Active == other.Active &&
		slices.EqualFunc(s.Members, other.Members, Member.Equal)
}

// Equal reports whether both members hold the same values. Nil and empty
// power lists are equal.
func (m Member) Equal(other Member) bool {
	return m.Name == other.Name &&
		m.Age == other.Age &&
		m.SecretIdentity == other.SecretIdentity &&
		slices.Equal(m.Powers, other.Powers)
}

// squadDoc mirrors Squad with presence-tracking scalars. Sequence elements
// are pointers too: yaml.v3 never passes a null node to UnmarshalYAML, so a
// null member or power has to be caught here.
type squadDoc struct {
	SquadName  *string   `json:"squadName" yaml:"squadName"`
	HomeTown   *string   `json:"homeTown" yaml:"homeTown"`
	Formed     *int64    `json:"formed" yaml:"formed"`
	SecretBase *string   `json:"secretBase" yaml:"secretBase"`
	Active     *bool     `json:"active" yaml:"active"`
	Members    []*Member `json:"members" yaml:"members"`
}

type memberDoc struct {
	Name           *string   `json:"name" yaml:"name"`
	Age            *int64    `json:"age" yaml:"age"`
	SecretIdentity *string   `json:"secretIdentity" yaml:"secretIdentity"`
	Powers         []*string `json:"powers" yaml:"powers"`
}

func (d squadDoc) squad() (Squad, error) {
	switch {
	case d.SquadName == nil:
		return Squad{}, &MissingFieldError{Record: "squad", Field: "squadName"}
	case d.HomeTown == nil:
		return Squad{}, &MissingFieldError{Record: "squad", Field: "homeTown"}
	case d.Formed == nil:
		return Squad{}, &MissingFieldError{Record: "squad", Field: "formed"}
	case d.SecretBase == nil:
		return Squad{}, &MissingFieldError{Record: "squad", Field: "secretBase"}
	case d.Active == nil:
		return Squad{}, &MissingFieldError{Record: "squad", Field: "active"}
	}

	members := make([]Member, 0, len(d.Members))
	for i, m := range d.Members {
		if m == nil {
			return Squad{}, &MissingFieldError{Record: "squad", Field: fmt.Sprintf("members[%d]", i)}
		}
		members = append(members, *m)
	}
	return Squad{
		SquadName:  *d.SquadName,
		HomeTown:   *d.HomeTown,
		Formed:     *d.Formed,
		SecretBase: *d.SecretBase,
		Active:     *d.Active,
		Members:    members,
	}, nil
}

func (d memberDoc) member() (Member, error) {
	switch {
	case d.Name == nil:
		return Member{}, &MissingFieldError{Record: "member", Field: "name"}
	case d.Age == nil:
		return Member{}, &MissingFieldError{Record: "member", Field: "age"}
	case d.SecretIdentity == nil:
		return Member{}, &MissingFieldError{Record: "member", Field: "secretIdentity"}
	}

	powers := make([]string, 0, len(d.Powers))
	for i, p := range d.Powers {
		if p == nil {
			return Member{}, &MissingFieldError{Record: "member", Field: fmt.Sprintf("powers[%d]", i)}
		}
		powers = append(powers, *p)
	}
	return Member{
		Name:           *d.Name,
		Age:            *d.Age,
		SecretIdentity: *d.SecretIdentity,
		Powers:         powers,
	}, nil
}
