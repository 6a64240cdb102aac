package docs

import (
	"path/filepath"

	"github.com/orchestkit/orchestkit/internal/frontmatter"
	"github.com/orchestkit/orchestkit/internal/remote"
)

// GenerateSkillsFromRemote renders skill pages from skills fetched out of
// a GitHub repository. Subdirectory sections are not available remotely;
// only the SKILL.md content is rendered. Returns the skill count.
func (g *Generator) GenerateSkillsFromRemote(skills []remote.Skill) (int, error) {
	var indexRows []string
	var slugs []string

	for _, skill := range skills {
		slugs = append(slugs, skill.Slug)
		meta, body := frontmatter.Parse(skill.Content)

		page := buildSkillPage(skill.Slug, meta, body, nil)
		if err := writeFile(filepath.Join(g.cfg.SkillsOut, skill.Slug+".mdx"), []byte(page)); err != nil {
			return 0, err
		}

		indexRows = append(indexRows, skillIndexRow(skill.Slug, meta))
	}

	count := len(skills)
	if err := g.writeSkillsIndex(count, indexRows); err != nil {
		return 0, err
	}
	if err := writeMeta(filepath.Join(g.cfg.SkillsOut, "meta.json"), "Skills", append([]string{"index"}, slugs...)); err != nil {
		return 0, err
	}

	return count, nil
}
