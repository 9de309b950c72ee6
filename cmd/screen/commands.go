package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/okian/screener/internal/adapters/export"
	service "github.com/okian/screener/internal/app"
	"github.com/okian/screener/internal/catalog"
	"github.com/okian/screener/internal/domain/parser"
	"github.com/okian/screener/pkg/logger"
)

var errUsage = errors.New("usage")

const usage = `Usage:
  screen roles   [--category NAME] [--json]
  screen analyze FILE (--role TITLE | --jd TEXT | --jd-file FILE) [--json]
  screen rank    DIR  (--role TITLE | --jd TEXT | --jd-file FILE) [--top N] [--json | --csv]

Global flags (before the command):
  --roles-file FILE   role table replacing the embedded one
  --skills-file FILE  skill table replacing the embedded one
  --log-level LEVEL   debug, info, warn or error (default warn)
`

// run parses args and executes one command.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	global := pflag.NewFlagSet("screen", pflag.ContinueOnError)
	global.SetOutput(stderr)
	global.SetInterspersed(false)
	rolesFile := global.String("roles-file", "", "role table YAML")
	skillsFile := global.String("skills-file", "", "skill table YAML")
	level := global.String("log-level", "warn", "log level")
	global.Usage = func() { _, _ = io.WriteString(stderr, usage) }
	if err := global.Parse(args); err != nil {
		return err
	}

	if err := logger.Init(logger.WithOutput(stderr)); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if err := logger.SetLevelString(*level); err != nil {
		return err
	}

	rest := global.Args()
	if len(rest) == 0 {
		global.Usage()
		return errUsage
	}

	svc, err := newService(*rolesFile, *skillsFile)
	if err != nil {
		return err
	}

	switch rest[0] {
	case "roles":
		return rolesCmd(svc, rest[1:], stdout, stderr)
	case "analyze":
		return analyzeCmd(ctx, svc, rest[1:], stdout, stderr)
	case "rank":
		return rankCmd(ctx, svc, rest[1:], stdout, stderr)
	case "help", "-h", "--help":
		_, _ = io.WriteString(stdout, usage)
		return nil
	default:
		global.Usage()
		return fmt.Errorf("%w: unknown command %q", errUsage, rest[0])
	}
}

func newService(rolesFile, skillsFile string) (*service.Service, error) {
	if rolesFile == "" && skillsFile == "" {
		return service.New(), nil
	}
	if rolesFile == "" || skillsFile == "" {
		return nil, fmt.Errorf("%w: --roles-file and --skills-file go together", errUsage)
	}
	c, err := catalog.LoadFiles(rolesFile, skillsFile)
	if err != nil {
		return nil, err
	}
	return service.New(service.WithCatalog(c)), nil
}

// targetFlags registers the flags naming the job to compare against.
type targetFlags struct {
	role   *string
	jd     *string
	jdFile *string
}

func addTargetFlags(fs *pflag.FlagSet) targetFlags {
	return targetFlags{
		role:   fs.StringP("role", "r", "", "catalog role title"),
		jd:     fs.String("jd", "", "job description text"),
		jdFile: fs.String("jd-file", "", "file holding the job description"),
	}
}

func (t targetFlags) target() (service.Target, error) {
	out := service.Target{Role: *t.role, JobDescription: *t.jd}
	if *t.jdFile != "" {
		text, err := parser.ReadFile(*t.jdFile)
		if err != nil {
			return out, err
		}
		out.JobDescription = text
	}
	return out, nil
}

func rolesCmd(svc *service.Service, args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("roles", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	category := fs.String("category", "", "only roles of this category")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	roles := svc.Roles()
	if *category != "" {
		kept := roles[:0:0]
		for _, r := range roles {
			if strings.EqualFold(r.Category, *category) {
				kept = append(kept, r)
			}
		}
		roles = kept
	}
	if *asJSON {
		return writeJSON(stdout, roles)
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tCATEGORY\tLEVEL")
	for _, r := range roles {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Title, r.Category, r.Level)
	}
	return tw.Flush()
}

func analyzeCmd(ctx context.Context, svc *service.Service, args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("analyze", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	tf := addTargetFlags(fs)
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: analyze takes one resume file", errUsage)
	}

	text, err := parser.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	t, err := tf.target()
	if err != nil {
		return err
	}
	a, err := svc.Analyze(ctx, text, t)
	if err != nil {
		return err
	}
	if *asJSON {
		return writeJSON(stdout, a)
	}

	fmt.Fprintf(stdout, "Candidate:   %s <%s>\n", a.Record.Name, a.Record.Email)
	fmt.Fprintf(stdout, "Role:        %s\n", a.Role.Title)
	fmt.Fprintf(stdout, "Match score: %.2f\n", a.Match.Score)
	fmt.Fprintf(stdout, "Strength:    %.1f (%s)\n", a.Strength.TotalScore, a.Strength.Grade)
	fmt.Fprintf(stdout, "ATS score:   %d/80\n", a.ATS.Score)
	fmt.Fprintf(stdout, "Skills:      %.0f%% matched (%s)\n", a.SkillGap.MatchPercentage, strings.Join(a.SkillGap.MatchedSkills, ", "))
	if len(a.SkillGap.MissingSkills) > 0 {
		fmt.Fprintf(stdout, "Missing:     %s\n", strings.Join(a.SkillGap.MissingSkills, ", "))
	}
	fmt.Fprintf(stdout, "Verdict:     %s\n", a.Advice.Verdict)
	for _, s := range a.Suggestions {
		fmt.Fprintf(stdout, "  [%s] %s: %s\n", s.Priority, s.Category, s.Suggestion)
	}
	if len(a.RoleFits) > 0 {
		fmt.Fprintln(stdout, "Best fitting roles:")
		for _, f := range a.RoleFits {
			fmt.Fprintf(stdout, "  %-32s %.2f\n", f.Role.Title, f.Score)
		}
	}
	return nil
}

func rankCmd(ctx context.Context, svc *service.Service, args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("rank", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	tf := addTargetFlags(fs)
	top := fs.IntP("top", "n", 0, "only print the best N candidates")
	asJSON := fs.Bool("json", false, "print JSON")
	asCSV := fs.Bool("csv", false, "print CSV")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: rank takes one directory", errUsage)
	}
	if *asJSON && *asCSV {
		return fmt.Errorf("%w: --json and --csv are exclusive", errUsage)
	}

	candidates, err := readDir(fs.Arg(0))
	if err != nil {
		return err
	}
	t, err := tf.target()
	if err != nil {
		return err
	}
	report, err := svc.Rank(ctx, t, candidates)
	if err != nil {
		return err
	}
	if *top > 0 && len(report.Ranking) > *top {
		report.Ranking = report.Ranking[:*top]
	}

	switch {
	case *asJSON:
		return writeJSON(stdout, report)
	case *asCSV:
		return export.WriteCSV(stdout, report.Ranking)
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tFILE\tNAME\tEXPERIENCE\tEDUCATION\tSCORE")
	for _, c := range report.Ranking {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.2f\n", c.Rank, c.ID, c.Name, c.Experience, c.Education, c.Score)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	s := report.Summary
	fmt.Fprintf(stdout, "\n%d candidates, %d strong, average %.2f, top %.2f\n", s.Total, s.Strong, s.AverageScore, s.TopScore)
	return nil
}

// readDir loads every .txt resume of dir in name order. The file name is
// the candidate ID.
func readDir(dir string) ([]service.Candidate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read resumes: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make([]service.Candidate, 0, len(names))
	for _, name := range names {
		text, err := parser.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		out = append(out, service.Candidate{ID: name, Text: text})
	}
	return out, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
