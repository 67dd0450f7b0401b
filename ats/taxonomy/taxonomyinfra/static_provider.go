package taxonomyinfra

import (
	"context"

	"github.com/folioforge/ats/ats/taxonomy"
	"github.com/folioforge/ats/pkg/kernel"
)

// StaticProvider serves taxonomies from a built-in table. Category membership
// for a given (profession, level) pair is fixed at compile time, so scores
// computed against it are reproducible within a deployment.
type StaticProvider struct{}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

func (p *StaticProvider) GetKeywords(ctx context.Context, profession kernel.Profession, level kernel.ExperienceLevel) (*taxonomy.Set, error) {
	key := profession.Normalized()
	if alias, ok := professionAliases[key]; ok {
		key = alias
	}

	table, ok := professionTables[key]
	if !ok {
		return nil, taxonomy.ErrNotFound().
			WithDetail("profession", profession.String()).
			WithDetail("experience_level", level.String())
	}

	set := mergeSets(&table.base, table.byLevel(level))
	return set.Normalized(), nil
}

// Professions lists the professions the static table knows, in no particular order
func (p *StaticProvider) Professions() []string {
	out := make([]string, 0, len(professionTables))
	for key := range professionTables {
		out = append(out, key.String())
	}
	return out
}

func mergeSets(base, extra *taxonomy.Set) *taxonomy.Set {
	if extra == nil {
		return base
	}
	return &taxonomy.Set{
		TechnicalSkills:       append(append([]string{}, base.TechnicalSkills...), extra.TechnicalSkills...),
		SoftSkills:            append(append([]string{}, base.SoftSkills...), extra.SoftSkills...),
		Certifications:        append(append([]string{}, base.Certifications...), extra.Certifications...),
		ExperienceTerms:       append(append([]string{}, base.ExperienceTerms...), extra.ExperienceTerms...),
		EducationRequirements: append(append([]string{}, base.EducationRequirements...), extra.EducationRequirements...),
	}
}

type professionTable struct {
	base   taxonomy.Set
	entry  taxonomy.Set
	mid    taxonomy.Set
	senior taxonomy.Set
}

func (t *professionTable) byLevel(level kernel.ExperienceLevel) *taxonomy.Set {
	switch level {
	case kernel.ExperienceLevelEntry:
		return &t.entry
	case kernel.ExperienceLevelSenior:
		return &t.senior
	default:
		return &t.mid
	}
}

var professionAliases = map[kernel.Profession]kernel.Profession{
	"software developer":  "software engineer",
	"web developer":       "frontend developer",
	"front end developer": "frontend developer",
	"front-end developer": "frontend developer",
	"back end developer":  "backend developer",
	"back-end developer":  "backend developer",
	"sre":                 "devops engineer",
	"site reliability engineer": "devops engineer",
	"quality assurance engineer": "qa engineer",
	"test engineer":              "qa engineer",
}

var professionTables = map[kernel.Profession]professionTable{
	"software engineer": {
		base: taxonomy.Set{
			TechnicalSkills:       []string{"python", "java", "javascript", "git", "sql", "rest api", "data structures", "algorithms", "docker", "unit testing"},
			SoftSkills:            []string{"problem solving", "teamwork", "communication", "time management", "adaptability"},
			Certifications:        []string{"aws certified developer", "oracle certified professional"},
			ExperienceTerms:       []string{"software development", "code review", "agile", "debugging", "version control"},
			EducationRequirements: []string{"computer science", "bachelor's degree", "software engineering"},
		},
		entry: taxonomy.Set{
			TechnicalSkills: []string{"html", "css"},
			ExperienceTerms: []string{"internship", "personal projects"},
		},
		mid: taxonomy.Set{
			TechnicalSkills: []string{"microservices", "ci/cd"},
			ExperienceTerms: []string{"production support", "cross-functional"},
		},
		senior: taxonomy.Set{
			TechnicalSkills: []string{"system design", "distributed systems", "kubernetes"},
			SoftSkills:      []string{"mentoring", "leadership"},
			ExperienceTerms: []string{"technical leadership", "architecture", "stakeholder management"},
		},
	},
	"frontend developer": {
		base: taxonomy.Set{
			TechnicalSkills:       []string{"javascript", "typescript", "react", "html", "css", "responsive design", "rest api", "git", "webpack"},
			SoftSkills:            []string{"attention to detail", "communication", "collaboration", "creativity"},
			Certifications:        []string{"meta front-end developer certificate"},
			ExperienceTerms:       []string{"web development", "ui development", "cross-browser", "accessibility", "code review"},
			EducationRequirements: []string{"computer science", "bachelor's degree"},
		},
		entry: taxonomy.Set{
			TechnicalSkills: []string{"bootstrap", "jquery"},
			ExperienceTerms: []string{"internship", "portfolio"},
		},
		mid: taxonomy.Set{
			TechnicalSkills: []string{"redux", "jest", "next.js"},
			ExperienceTerms: []string{"performance optimization"},
		},
		senior: taxonomy.Set{
			TechnicalSkills: []string{"design systems", "micro frontends", "ci/cd"},
			SoftSkills:      []string{"mentoring", "leadership"},
			ExperienceTerms: []string{"technical leadership", "architecture"},
		},
	},
	"backend developer": {
		base: taxonomy.Set{
			TechnicalSkills:       []string{"go", "java", "python", "sql", "postgresql", "redis", "rest api", "docker", "message queues", "git"},
			SoftSkills:            []string{"problem solving", "communication", "ownership", "teamwork"},
			Certifications:        []string{"aws certified developer", "kubernetes certification"},
			ExperienceTerms:       []string{"api design", "database design", "microservices", "scalability", "code review"},
			EducationRequirements: []string{"computer science", "bachelor's degree"},
		},
		entry: taxonomy.Set{
			TechnicalSkills: []string{"linux", "http"},
			ExperienceTerms: []string{"internship"},
		},
		mid: taxonomy.Set{
			TechnicalSkills: []string{"kafka", "grpc", "ci/cd"},
			ExperienceTerms: []string{"production support", "on-call"},
		},
		senior: taxonomy.Set{
			TechnicalSkills: []string{"system design", "distributed systems", "kubernetes"},
			SoftSkills:      []string{"mentoring", "leadership"},
			ExperienceTerms: []string{"technical leadership", "capacity planning"},
		},
	},
	"data scientist": {
		base: taxonomy.Set{
			TechnicalSkills:       []string{"python", "sql", "pandas", "numpy", "scikit-learn", "machine learning", "statistics", "data visualization", "jupyter"},
			SoftSkills:            []string{"analytical thinking", "communication", "storytelling", "curiosity"},
			Certifications:        []string{"tensorflow developer certificate", "aws certified machine learning"},
			ExperienceTerms:       []string{"data analysis", "predictive modeling", "a/b testing", "feature engineering", "model deployment"},
			EducationRequirements: []string{"statistics", "mathematics", "master's degree", "computer science"},
		},
		entry: taxonomy.Set{
			TechnicalSkills: []string{"excel", "matplotlib"},
			ExperienceTerms: []string{"kaggle", "research projects"},
		},
		mid: taxonomy.Set{
			TechnicalSkills: []string{"tensorflow", "pytorch", "spark"},
			ExperienceTerms: []string{"production models"},
		},
		senior: taxonomy.Set{
			TechnicalSkills: []string{"mlops", "deep learning", "big data"},
			SoftSkills:      []string{"mentoring", "leadership"},
			ExperienceTerms: []string{"research leadership", "stakeholder management"},
		},
	},
	"devops engineer": {
		base: taxonomy.Set{
			TechnicalSkills:       []string{"linux", "docker", "kubernetes", "terraform", "aws", "ci/cd", "bash", "python", "monitoring", "git"},
			SoftSkills:            []string{"problem solving", "collaboration", "communication", "incident response"},
			Certifications:        []string{"aws certified solutions architect", "certified kubernetes administrator"},
			ExperienceTerms:       []string{"infrastructure as code", "automation", "deployment pipelines", "observability", "on-call"},
			EducationRequirements: []string{"computer science", "bachelor's degree"},
		},
		entry: taxonomy.Set{
			TechnicalSkills: []string{"networking", "shell scripting"},
			ExperienceTerms: []string{"internship"},
		},
		mid: taxonomy.Set{
			TechnicalSkills: []string{"ansible", "prometheus", "grafana"},
			ExperienceTerms: []string{"capacity planning"},
		},
		senior: taxonomy.Set{
			TechnicalSkills: []string{"service mesh", "multi-cloud", "cost optimization"},
			SoftSkills:      []string{"mentoring", "leadership"},
			ExperienceTerms: []string{"platform architecture", "sre practices"},
		},
	},
	"product manager": {
		base: taxonomy.Set{
			TechnicalSkills:       []string{"product roadmap", "user research", "analytics", "sql", "a/b testing", "wireframing", "jira"},
			SoftSkills:            []string{"communication", "leadership", "prioritization", "negotiation", "empathy"},
			Certifications:        []string{"certified scrum product owner", "pragmatic marketing certification"},
			ExperienceTerms:       []string{"product strategy", "stakeholder management", "go-to-market", "agile", "backlog management"},
			EducationRequirements: []string{"business administration", "bachelor's degree", "mba"},
		},
		entry: taxonomy.Set{
			TechnicalSkills: []string{"market research"},
			ExperienceTerms: []string{"internship", "case studies"},
		},
		mid: taxonomy.Set{
			TechnicalSkills: []string{"okrs", "product metrics"},
			ExperienceTerms: []string{"feature launches", "cross-functional"},
		},
		senior: taxonomy.Set{
			TechnicalSkills: []string{"portfolio management", "pricing strategy"},
			SoftSkills:      []string{"executive communication", "mentoring"},
			ExperienceTerms: []string{"p&l ownership", "team leadership"},
		},
	},
	"qa engineer": {
		base: taxonomy.Set{
			TechnicalSkills:       []string{"selenium", "test automation", "python", "api testing", "sql", "cypress", "jira", "git"},
			SoftSkills:            []string{"attention to detail", "communication", "analytical thinking", "patience"},
			Certifications:        []string{"istqb certification"},
			ExperienceTerms:       []string{"test planning", "regression testing", "bug tracking", "test cases", "agile"},
			EducationRequirements: []string{"computer science", "bachelor's degree"},
		},
		entry: taxonomy.Set{
			TechnicalSkills: []string{"manual testing"},
			ExperienceTerms: []string{"internship"},
		},
		mid: taxonomy.Set{
			TechnicalSkills: []string{"performance testing", "ci/cd"},
			ExperienceTerms: []string{"test strategy"},
		},
		senior: taxonomy.Set{
			TechnicalSkills: []string{"test architecture", "security testing"},
			SoftSkills:      []string{"mentoring", "leadership"},
			ExperienceTerms: []string{"quality processes", "team leadership"},
		},
	},
}
