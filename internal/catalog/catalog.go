// Package catalog holds the immutable reference data used by screening: the
// role table and the skills vocabulary. Both ship embedded as YAML and may be
// replaced by files at startup.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/okian/screener/internal/domain/model"
)

//go:embed data/roles.yaml
var rolesYAML []byte

//go:embed data/skills.yaml
var skillsYAML []byte

type rolesFile struct {
	Roles []model.RoleDescriptor `yaml:"roles"`
}

type skillsFile struct {
	Categories      []model.SkillCategory `yaml:"categories"`
	Recommendations struct {
		Default   string            `yaml:"default"`
		Resources map[string]string `yaml:"resources"`
	} `yaml:"recommendations"`
}

// Catalog is read-only after construction and safe for concurrent use.
type Catalog struct {
	roles      []model.RoleDescriptor
	byTitle    map[string]int
	categories []model.SkillCategory
	resources  map[string]string
	fallback   string
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the catalog built from the embedded tables.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(rolesYAML, skillsYAML)
	})
	return defaultCat, defaultErr
}

// MustDefault is Default for callers that cannot proceed without it.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadFiles builds a catalog from YAML files. An empty path selects the
// embedded table for that half.
func LoadFiles(rolesPath, skillsPath string) (*Catalog, error) {
	roles, skills := rolesYAML, skillsYAML
	if rolesPath != "" {
		b, err := os.ReadFile(rolesPath)
		if err != nil {
			return nil, fmt.Errorf("read roles %s: %w", rolesPath, err)
		}
		roles = b
	}
	if skillsPath != "" {
		b, err := os.ReadFile(skillsPath)
		if err != nil {
			return nil, fmt.Errorf("read skills %s: %w", skillsPath, err)
		}
		skills = b
	}
	return Parse(roles, skills)
}

// Parse decodes and validates the two YAML documents.
func Parse(roles, skills []byte) (*Catalog, error) {
	var rf rolesFile
	if err := yaml.Unmarshal(roles, &rf); err != nil {
		return nil, fmt.Errorf("%w: roles: %v", ErrInvalidCatalog, err)
	}
	var sf skillsFile
	if err := yaml.Unmarshal(skills, &sf); err != nil {
		return nil, fmt.Errorf("%w: skills: %v", ErrInvalidCatalog, err)
	}
	if len(rf.Roles) == 0 {
		return nil, fmt.Errorf("%w: no roles", ErrInvalidCatalog)
	}
	if len(sf.Categories) == 0 {
		return nil, fmt.Errorf("%w: no skill categories", ErrInvalidCatalog)
	}

	c := &Catalog{
		roles:     make([]model.RoleDescriptor, 0, len(rf.Roles)),
		byTitle:   make(map[string]int, len(rf.Roles)),
		resources: make(map[string]string, len(sf.Recommendations.Resources)),
		fallback:  sf.Recommendations.Default,
	}
	for _, r := range rf.Roles {
		r.Title = strings.TrimSpace(r.Title)
		if r.Title == "" {
			return nil, fmt.Errorf("%w: role without title", ErrInvalidCatalog)
		}
		if _, dup := c.byTitle[r.Title]; dup {
			return nil, fmt.Errorf("%w: duplicate role %q", ErrInvalidCatalog, r.Title)
		}
		if r.Category == "" {
			r.Category = "Other"
		}
		c.byTitle[r.Title] = len(c.roles)
		c.roles = append(c.roles, r)
	}
	for _, cat := range sf.Categories {
		skills := make([]string, 0, len(cat.Skills))
		for _, s := range cat.Skills {
			if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
				skills = append(skills, s)
			}
		}
		c.categories = append(c.categories, model.SkillCategory{Name: cat.Name, Skills: skills})
	}
	for k, v := range sf.Recommendations.Resources {
		c.resources[strings.ToLower(k)] = v
	}
	if c.fallback == "" {
		c.fallback = "Search for online courses, tutorials, or official documentation"
	}
	return c, nil
}

// Roles returns the role table in its declared order.
func (c *Catalog) Roles() []model.RoleDescriptor {
	out := make([]model.RoleDescriptor, len(c.roles))
	copy(out, c.roles)
	return out
}

// Role looks a role up by its exact title.
func (c *Catalog) Role(title string) (model.RoleDescriptor, error) {
	i, ok := c.byTitle[strings.TrimSpace(title)]
	if !ok {
		return model.RoleDescriptor{}, fmt.Errorf("%w: %q", ErrUnknownRole, title)
	}
	return c.roles[i], nil
}

// Categories returns the skill vocabulary grouped by category.
func (c *Catalog) Categories() []model.SkillCategory {
	out := make([]model.SkillCategory, len(c.categories))
	for i, cat := range c.categories {
		out[i] = model.SkillCategory{Name: cat.Name, Skills: append([]string(nil), cat.Skills...)}
	}
	return out
}

// Resource returns a learning resource for a skill, or the generic advice.
func (c *Catalog) Resource(skill string) (string, bool) {
	if r, ok := c.resources[strings.ToLower(skill)]; ok {
		return r, true
	}
	return c.fallback, false
}
