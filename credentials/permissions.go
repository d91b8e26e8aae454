package credentials

import "encoding/json"

// Permission is a named capability gating access to a route or action. The
// backend serializes permissions either as a plain name string or as an
// object carrying at least a "name" field; both forms decode into Permission.
type Permission struct {
	Name        string `json:"name"`
	ID          uint64 `json:"id,omitempty"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
}

// UnmarshalJSON accepts both the string and the object representation.
func (p *Permission) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*p = Permission{Name: name}
		return nil
	}

	type detailed Permission
	var d detailed
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	*p = Permission(d)
	return nil
}

// Flatten collapses a mixed permission list into plain names, dropping
// entries with no name and duplicates. Order of first appearance is kept.
func Flatten(perms []Permission) []string {
	names := make([]string, 0, len(perms))
	seen := make(map[string]struct{}, len(perms))
	for _, p := range perms {
		if p.Name == "" {
			continue
		}
		if _, ok := seen[p.Name]; ok {
			continue
		}
		seen[p.Name] = struct{}{}
		names = append(names, p.Name)
	}
	return names
}
