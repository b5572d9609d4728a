package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// UnmarshalJSON decodes a squad, rejecting documents that omit a scalar field.
func (s *Squad) UnmarshalJSON(data []byte) error {
	var d squadDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	decoded, err := d.squad()
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}

// UnmarshalYAML decodes a squad, rejecting documents that omit a scalar field.
func (s *Squad) UnmarshalYAML(value *yaml.Node) error {
	var d squadDoc
	if err := value.Decode(&d); err != nil {
		return err
	}
	decoded, err := d.squad()
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}

// UnmarshalJSON decodes a member, rejecting documents that omit a scalar field.
func (m *Member) UnmarshalJSON(data []byte) error {
	var d memberDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	decoded, err := d.member()
	if err != nil {
		return err
	}
	*m = decoded
	return nil
}

// UnmarshalYAML decodes a member, rejecting documents that omit a scalar field.
func (m *Member) UnmarshalYAML(value *yaml.Node) error {
	var d memberDoc
	if err := value.Decode(&d); err != nil {
		return err
	}
	decoded, err := d.member()
	if err != nil {
		return err
	}
	*m = decoded
	return nil
}
