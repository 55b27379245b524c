// Package catalog loads the job, résumé and course catalogs from tabular
// files into immutable in-memory tables. Catalogs are reloaded wholesale on
// an explicit reload; absence of any file is an expected steady state, not
// an error.
package catalog

import "strings"

// Job is one posting from the job catalog.
type Job struct {
	JobID           string
	Title           string
	Description     string
	CleanSkills     string // delimiter-separated raw skill text
	ExperienceLevel string
}

// Text concatenates title, description and skills — the representation used
// for both lexical and semantic encoding.
func (j Job) Text() string {
	return j.Title + " \n" + j.Description + " \n" + j.CleanSkills
}

// Resume is one record from the résumé catalog. A résumé is an alternative
// profile source and is converted into the same candidate-text plus
// skill-set shape the recommender consumes.
type Resume struct {
	ResumeID     string
	Summary      string
	Fulltext     string
	CleanSkills  string
	ParsedSkills string
}

// Text returns the candidate text for the résumé, preferring the summary.
func (r Resume) Text() string {
	if strings.TrimSpace(r.Summary) != "" {
		return r.Summary
	}
	return r.Fulltext
}

// Course is one entry of the optional skill→course mapping.
type Course struct {
	CourseName string `json:"course_name"`
	Provider   string `json:"provider"`
	Hours      string `json:"hours"`
}

// CourseMap maps a lowercase skill to its course suggestions.
type CourseMap map[string][]Course

// Catalog is an immutable snapshot of all loaded tables.
type Catalog struct {
	Jobs    []Job
	Resumes []Resume
	Courses CourseMap
}

// JobByID returns the job with the given id, or ok=false.
func (c *Catalog) JobByID(id string) (Job, bool) {
	for _, j := range c.Jobs {
		if j.JobID == id {
			return j, true
		}
	}
	return Job{}, false
}

// ResumeByID returns the résumé with the given id, or ok=false.
func (c *Catalog) ResumeByID(id string) (Resume, bool) {
	for _, r := range c.Resumes {
		if r.ResumeID == id {
			return r, true
		}
	}
	return Resume{}, false
}

// Source produces catalog snapshots. The file-backed implementation is
// DirSource; tests use in-memory sources so independent corpora can coexist.
type Source interface {
	Load() (*Catalog, error)
}

// Static is an in-memory Source returning a fixed catalog.
type Static struct {
	Catalog Catalog
}

// Load returns the fixed catalog.
func (s Static) Load() (*Catalog, error) {
	c := s.Catalog
	return &c, nil
}
