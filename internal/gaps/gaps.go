// Package gaps compares a candidate's skill set against a target job's
// required skills and produces missing/weak skills, course suggestions and
// a fixed-format learning roadmap.
package gaps

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/job-recommender/internal/catalog"
)

const (
	// maxWeak bounds the weak-skill heuristic output.
	maxWeak = 3
	// maxSuggested bounds how many missing skills receive course suggestions.
	maxSuggested = 6
	// maxCoursesPerSkill bounds mapped courses per suggested skill.
	maxCoursesPerSkill = 2
)

// Result is the outcome of a gap analysis. The zero value is the answer for
// any unknown profile, résumé or job id.
type Result struct {
	Present     []string                    `json:"present"`
	Missing     []string                    `json:"missing"`
	Weak        []string                    `json:"weak"`
	Suggestions map[string][]catalog.Course `json:"suggestions"`
	Roadmap     string                      `json:"roadmap_3mo"`
}

// Analyze computes the gap between candidate and job skill sets. Both inputs
// are assumed normalized. Courses may be nil; skills without a mapping get a
// synthesized generic suggestion.
func Analyze(candidateSkills, jobSkills []string, courses catalog.CourseMap) Result {
	job := make(map[string]bool, len(jobSkills))
	for _, s := range jobSkills {
		if s != "" {
			job[s] = true
		}
	}
	cand := make(map[string]bool, len(candidateSkills))
	for _, s := range candidateSkills {
		if s != "" {
			cand[s] = true
		}
	}

	var present, missing []string
	for s := range job {
		if cand[s] {
			present = append(present, s)
		} else {
			missing = append(missing, s)
		}
	}
	sort.Strings(present)
	sort.Strings(missing)

	// Weak skills are a placeholder heuristic: the first few present skills,
	// flagged as possibly needing reinforcement. Not a measured weakness.
	weak := present
	if len(weak) > maxWeak {
		weak = weak[:maxWeak]
	}
	weak = append([]string(nil), weak...)

	suggestions := make(map[string][]catalog.Course)
	for i, s := range missing {
		if i == maxSuggested {
			break
		}
		suggestions[s] = coursesFor(s, courses)
	}

	return Result{
		Present:     present,
		Missing:     missing,
		Weak:        weak,
		Suggestions: suggestions,
		Roadmap:     roadmap(missing),
	}
}

// coursesFor returns up to two mapped courses for the skill, or one
// synthesized placeholder when no mapping exists.
func coursesFor(skill string, courses catalog.CourseMap) []catalog.Course {
	mapped := courses[strings.ToLower(skill)]
	if len(mapped) > maxCoursesPerSkill {
		mapped = mapped[:maxCoursesPerSkill]
	}
	if len(mapped) > 0 {
		return append([]catalog.Course(nil), mapped...)
	}
	return []catalog.Course{{
		CourseName: fmt.Sprintf("Intro to %s", skill),
		Provider:   "Generic",
		Hours:      "10-15",
	}}
}

// roadmap renders the fixed three-month learning template over the first
// four missing skills.
func roadmap(missing []string) string {
	s := missing
	if len(s) > 4 {
		s = s[:4]
	}
	m1 := strings.Join(s[:min(2, len(s))], ", ")
	if m1 == "" {
		m1 = "foundations"
	}
	var m2 string
	if len(s) > 2 {
		m2 = strings.Join(s[2:], ", ")
	}
	if m2 == "" {
		m2 = "intermediate topics"
	}
	capstone := "your stack"
	if len(s) > 0 {
		capstone = s[0]
	}
	return fmt.Sprintf(
		"Month 1: Foundations in %s + 1 mini-project\n"+
			"Month 2: Intermediate %s + an applied project\n"+
			"Month 3: Integration capstone in %s + mock interviews",
		m1, m2, capstone)
}
