package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	yaml "gopkg.in/yaml.v3"
)

func TestSecretString_Marshal(t *testing.T) {
	tests := []struct {
		name     string
		input    SecretString
		wantJSON string
		wantYAML string
	}{
		{name: "empty", input: "", wantJSON: "null", wantYAML: "null\n"},
		{name: "password", input: "s3cr3t", wantJSON: `"` + SecretStringValue + `"`, wantYAML: SecretStringValue + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.input)
			if err != nil {
				t.Fatalf("json.Marshal() error = %v", err)
			}
			if string(got) != tt.wantJSON {
				t.Errorf("json.Marshal() = %s, want %s", got, tt.wantJSON)
			}
			got, err = yaml.Marshal(tt.input)
			if err != nil {
				t.Fatalf("yaml.Marshal() error = %v", err)
			}
			if string(got) != tt.wantYAML {
				t.Errorf("yaml.Marshal() = %q, want %q", got, tt.wantYAML)
			}
		})
	}
}

func TestSecretString_NotLeakedByDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Document.Password = "hunter2"

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if strings.Contains(string(data), "hunter2") {
		t.Error("password leaked into dumped configuration")
	}
	if !strings.Contains(string(data), SecretStringValue) {
		t.Error("masked password is missing from dumped configuration")
	}
}

func TestSecretString_Decode(t *testing.T) {
	var doc struct {
		Password SecretString `yaml:"password"`
	}
	if err := yaml.Unmarshal([]byte("password: abc\n"), &doc); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if string(doc.Password) != "abc" {
		t.Errorf("Password = %q, want %q", string(doc.Password), "abc")
	}
}

func TestSecretString_Format(t *testing.T) {
	if got := fmt.Sprintf("%v", SecretString("hunter2")); got != SecretStringValue {
		t.Errorf("formatted = %q, want %q", got, SecretStringValue)
	}
	if got := fmt.Sprint(SecretString("")); got != "" {
		t.Errorf("empty formatted = %q", got)
	}
}
