// Package classifier maps files to semantic roles and owner labels through
// ordered, data-driven rule tables. The first matching rule wins.
package classifier

import (
	"strings"

	"github.com/aerovista-us/echovalentine/internal/filesystem"
	"github.com/aerovista-us/echovalentine/pkg/models"
)

// RoleRule assigns Role when the lowercased file name is in Files, or the
// lowercased extension is in Extensions, or the parent directory name is in
// ParentDirs. Within one rule the name test runs before the extension test.
type RoleRule struct {
	Role       models.Role `yaml:"role"`
	Files      []string    `yaml:"files,omitempty"`
	Extensions []string    `yaml:"extensions,omitempty"`
	ParentDirs []string    `yaml:"parent_dirs,omitempty"`
}

// OwnerRule assigns Owner when the extension is in Extensions or, for keyword
// rules, when any keyword is a case-insensitive substring of the full path
type OwnerRule struct {
	Owner      string   `yaml:"owner"`
	Extensions []string `yaml:"extensions,omitempty"`
	Keywords   []string `yaml:"keywords,omitempty"`
}

// Policy is a complete classification rule set
type Policy struct {
	Roles        []RoleRule  `yaml:"roles"`
	DefaultRole  models.Role `yaml:"default_role"`
	OwnerByExt   []OwnerRule `yaml:"owner_extensions"`
	OwnerByPath  []OwnerRule `yaml:"owner_keywords"`
	DefaultOwner string      `yaml:"default_owner"`
}

// DefaultPolicy returns the built-in rule set
func DefaultPolicy() *Policy {
	return &Policy{
		Roles: []RoleRule{
			{
				Role:       models.RoleUICore,
				Files:      []string{"index.html", "style.css", "tailwind.config.js"},
				Extensions: []string{".css", ".html"},
			},
			{
				Role:       models.RoleLogicCore,
				Files:      []string{"main.js", "preload.js", "app.js"},
				Extensions: []string{".js", ".ts"},
			},
			{
				Role:  models.RoleConfig,
				Files: []string{"package.json", "vite.config.js", "webpack.config.js"},
			},
			{
				Role:       models.RoleContentAsset,
				Extensions: []string{".png", ".jpg", ".svg", ".md", ".txt", ".env"},
			},
			{
				Role:       models.RoleDependency,
				ParentDirs: []string{"node_modules"},
			},
		},
		DefaultRole: models.RoleGeneral,
		OwnerByExt: []OwnerRule{
			{Owner: "EchoVerse Audio", Extensions: []string{".mp3"}},
			{Owner: "AeroVista - Lumina", Extensions: []string{".mp4"}},
			{Owner: "Inspiro/Boost/Dish", Extensions: []string{".ppt", ".pptx"}},
		},
		OwnerByPath: []OwnerRule{
			{Owner: "AeroVista", Keywords: []string{"aerovista"}},
			{Owner: "AeroVista - SkyForge", Keywords: []string{"skyforge"}},
			{Owner: "AeroVista - Summit", Keywords: []string{"summit"}},
			{Owner: "AeroVista - Vespera", Keywords: []string{"vespera"}},
			{Owner: "AeroVista - Lumina", Keywords: []string{"lumina"}},
			{Owner: "AeroVista - Horizon Aerial", Keywords: []string{"horizon"}},
			{Owner: "AeroVista - Nexus TechWorks", Keywords: []string{"nexus"}},
			{Owner: "Inspiro/Boost/Dish", Keywords: []string{"inpsiro", "boost", "dish"}},
			{Owner: "Personal", Keywords: []string{"personal", "timbr", "trcam"}},
		},
		DefaultOwner: models.OwnerUnknown,
	}
}

// ClassifyRole maps a file name and its parent directory name to a role
func (p *Policy) ClassifyRole(filename, parentDir string) models.Role {
	name := strings.ToLower(filename)
	ext := filesystem.GetExtension(filename)

	for _, rule := range p.Roles {
		if contains(rule.Files, name) || contains(rule.Extensions, ext) || contains(rule.ParentDirs, parentDir) {
			return rule.Role
		}
	}
	return p.DefaultRole
}

// ClassifyOwner maps a full path to a responsible-owner label. Extension rules
// are consulted before keyword rules; among keyword rules table order decides,
// not match length.
func (p *Policy) ClassifyOwner(fullPath string) string {
	ext := filesystem.GetExtension(fullPath)
	for _, rule := range p.OwnerByExt {
		if contains(rule.Extensions, ext) {
			return rule.Owner
		}
	}

	lower := strings.ToLower(fullPath)
	for _, rule := range p.OwnerByPath {
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
				return rule.Owner
			}
		}
	}
	return p.DefaultOwner
}

func contains(list []string, item string) bool {
	for _, s := range list {
		if s == item {
			return true
		}
	}
	return false
}
