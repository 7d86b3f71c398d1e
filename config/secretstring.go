package config

// SecretStringValue replaces document passwords wherever configuration is shown.
const SecretStringValue = "<secret>"

// SecretString holds document passwords. Formatting, JSON and YAML output
// never reveal the value, use explicit string conversion to get it.
type SecretString string

func (s SecretString) String() string {
	if len(s) == 0 {
		return ""
	}
	return SecretStringValue
}

func (s SecretString) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return []byte("\"" + SecretStringValue + "\""), nil
}

func (s SecretString) MarshalYAML() (any, error) {
	if len(s) == 0 {
		return nil, nil
	}
	return SecretStringValue, nil
}
