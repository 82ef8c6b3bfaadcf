package classifier

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/aerovista-us/echovalentine/pkg/models"
	"gopkg.in/yaml.v3"
)

var knownRoles = map[models.Role]bool{
	models.RoleUICore:       true,
	models.RoleLogicCore:    true,
	models.RoleConfig:       true,
	models.RoleContentAsset: true,
	models.RoleDependency:   true,
	models.RoleGeneral:      true,
}

// LoadPolicy loads a rule set from a YAML file. An empty path returns the
// built-in policy.
func LoadPolicy(path string) (*Policy, error) {
	if path == "" {
		return DefaultPolicy(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy: %w", err)
	}

	policy, err := ParsePolicy(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return policy, nil
}

// ParsePolicy decodes and normalizes a YAML rule set
func ParsePolicy(data []byte) (*Policy, error) {
	var policy Policy
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&policy); err != nil {
		return nil, err
	}

	// Set defaults
	if policy.DefaultRole == "" {
		policy.DefaultRole = models.RoleGeneral
	}
	if policy.DefaultOwner == "" {
		policy.DefaultOwner = models.OwnerUnknown
	}

	if !knownRoles[policy.DefaultRole] {
		return nil, fmt.Errorf("unknown default role %q", policy.DefaultRole)
	}
	for i := range policy.Roles {
		rule := &policy.Roles[i]
		if !knownRoles[rule.Role] {
			return nil, fmt.Errorf("role rule %d: unknown role %q", i+1, rule.Role)
		}
		rule.Files = lowerAll(rule.Files)
		rule.Extensions = normalizeExtensions(rule.Extensions)
	}
	for i := range policy.OwnerByExt {
		rule := &policy.OwnerByExt[i]
		if rule.Owner == "" {
			return nil, fmt.Errorf("owner extension rule %d: owner is required", i+1)
		}
		rule.Extensions = normalizeExtensions(rule.Extensions)
	}
	for i := range policy.OwnerByPath {
		rule := &policy.OwnerByPath[i]
		if rule.Owner == "" {
			return nil, fmt.Errorf("owner keyword rule %d: owner is required", i+1)
		}
		rule.Keywords = lowerAll(rule.Keywords)
	}

	return &policy, nil
}

// Marshal renders the policy as YAML, in precedence order
func (p *Policy) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}

func lowerAll(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func normalizeExtensions(in []string) []string {
	out := lowerAll(in)
	for i, ext := range out {
		if !strings.HasPrefix(ext, ".") {
			out[i] = "." + ext
		}
	}
	return out
}
