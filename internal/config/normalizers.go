// Functions to normalize YAML input before processing into data structure.
package config

import "fmt"

// NormalizeRoot accepts a few spelling liberties in the YAML file before
// mapstructure sees it: aliased keys, scalar searches and scalar attribute
// lists.
func NormalizeRoot(values interface{}) (map[string]interface{}, error) {
	root, ok := values.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("bad YAML document root: %v", values)
	}
	for key, alias := range map[string]string{
		"binddn":   "bind_dn",
		"uri":      "host",
		"searches": "search",
	} {
		if err := Alias(root, key, alias); err != nil {
			return nil, err
		}
	}

	searches, found := root["searches"]
	if !found {
		return root, nil
	}
	list := List(searches)
	for i, item := range list {
		search, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("searches[%d]: bad type: %v", i, item)
		}
		if err := Alias(search, "base", "base_dn"); err != nil {
			return nil, err
		}
		if attributes, found := search["attributes"]; found {
			search["attributes"] = List(attributes)
		}
		// ldap_search reads the whole subtree.
		if _, found := search["scope"]; !found {
			search["scope"] = "sub"
		}
		list[i] = search
	}
	root["searches"] = list
	return root, nil
}

// List ensures yaml is a list, wrapping a scalar or a map in one.
func List(yaml interface{}) (list []interface{}) {
	switch v := yaml.(type) {
	case []interface{}:
		list = v
	case []string:
		for _, s := range v {
			list = append(list, s)
		}
	default:
		list = append(list, yaml)
	}
	return
}

// Alias renames a key in a map. Returns an error if alias and key co-exist.
func Alias(yaml map[string]interface{}, key, alias string) (err error) {
	value, hasAlias := yaml[alias]
	if !hasAlias {
		return
	}

	_, hasKey := yaml[key]
	if hasKey {
		return &conflict{key0: key, key1: alias}
	}

	delete(yaml, alias)
	yaml[key] = value
	return
}

type conflict struct {
	key0 string
	key1 string
}

func (err *conflict) Error() string {
	return fmt.Sprintf("key conflict between %s and %s", err.key0, err.key1)
}
