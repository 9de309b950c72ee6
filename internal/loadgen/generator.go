package loadgen

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

var (
	firstNames = []string{"Ada", "Grace", "Alan", "Linus", "Barbara", "Ken", "Margaret", "Dennis", "Frances", "Edsger"}
	lastNames  = []string{"Lovelace", "Hopper", "Turing", "Torvalds", "Liskov", "Thompson", "Hamilton", "Ritchie", "Allen", "Dijkstra"}
	degrees    = []string{
		"Bachelor of Science in Computer Science, University of Toronto",
		"Master of Science in Statistics, Stanford University",
		"PhD in Machine Learning, Carnegie Mellon University",
		"Diploma in Software Development, Seneca College",
	}
	skillPool = []string{
		"python", "sql", "machine learning", "statistics", "pandas", "numpy",
		"docker", "kubernetes", "aws", "go", "java", "react", "typescript",
		"tableau", "excel", "git", "linux", "postgresql", "tensorflow", "spark",
	}
)

// Generator builds synthetic resumes. It is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator seeded with seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Resume returns a plain text resume with a random name, experience and
// skill mix.
func (g *Generator) Resume() string {
	first := firstNames[g.rng.IntN(len(firstNames))]
	last := lastNames[g.rng.IntN(len(lastNames))]
	years := 1 + g.rng.IntN(15)

	skills := make([]string, 0, 8)
	for _, i := range g.rng.Perm(len(skillPool))[:3+g.rng.IntN(8)] {
		skills = append(skills, skillPool[i])
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", first, last)
	fmt.Fprintf(&b, "%s.%s@example.com | +1 555 %03d %04d\n\n",
		strings.ToLower(first), strings.ToLower(last), g.rng.IntN(1000), g.rng.IntN(10000))
	fmt.Fprintf(&b, "Engineer with %d years of experience in %s.\n", years, strings.Join(skills, ", "))
	if g.rng.IntN(2) == 0 {
		fmt.Fprintf(&b, "Led %d projects and improved throughput by %d%%.\n", 1+g.rng.IntN(9), 5+g.rng.IntN(60))
	}
	b.WriteString("\nEducation\n")
	b.WriteString(degrees[g.rng.IntN(len(degrees))])
	b.WriteString("\n")
	return b.String()
}

// Request returns a screening request for role with n fresh candidates.
func (g *Generator) Request(role string, n int) Request {
	req := Request{
		RequestID:  uuid.NewString(),
		Role:       role,
		Candidates: make([]Candidate, n),
	}
	for i := range req.Candidates {
		req.Candidates[i] = Candidate{ID: uuid.NewString(), Text: g.Resume()}
	}
	return req
}

// Requests returns count requests.
func (g *Generator) Requests(role string, count, candidates int) []Request {
	out := make([]Request, count)
	for i := range out {
		out[i] = g.Request(role, candidates)
	}
	return out
}
