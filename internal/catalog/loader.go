package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Default file names inside the data directory.
const (
	jobsFile    = "clean_jobs.csv"
	resumesFile = "clean_resume_data.csv"
	coursesFile = "skills_to_courses.csv"
)

// skillColumns is the fallback priority order for the job skill field.
var skillColumns = []string{"clean_skills", "skills", "keywords", "responsibilities"}

// DirSource loads catalogs from CSV files in a data directory.
type DirSource struct {
	Dir string
}

// Load reads all catalog files. Missing files yield empty tables.
func (s DirSource) Load() (*Catalog, error) {
	jobs, err := loadJobs(filepath.Join(s.Dir, jobsFile))
	if err != nil {
		return nil, err
	}
	resumes, err := loadResumes(filepath.Join(s.Dir, resumesFile))
	if err != nil {
		return nil, err
	}
	courses, err := loadCourses(filepath.Join(s.Dir, coursesFile))
	if err != nil {
		return nil, err
	}
	return &Catalog{Jobs: jobs, Resumes: resumes, Courses: courses}, nil
}

// table is a parsed CSV with normalized column names.
type table struct {
	columns map[string]int
	rows    [][]string
}

func (t *table) get(row []string, col string) string {
	i, ok := t.columns[col]
	if !ok || i >= len(row) {
		return ""
	}
	v := strings.TrimSpace(row[i])
	// Pandas exports leave these literals behind for absent values.
	if v == "nan" || v == "None" {
		return ""
	}
	return v
}

// readTable parses a CSV file and normalizes headers to
// lowercase_underscore form. A missing file returns nil without error.
func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open catalog file %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	t := &table{columns: make(map[string]int, len(records[0]))}
	for i, name := range records[0] {
		normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
		if _, exists := t.columns[normalized]; !exists {
			t.columns[normalized] = i
		}
	}
	t.rows = records[1:]
	return t, nil
}

func loadJobs(path string) ([]Job, error) {
	t, err := readTable(path)
	if err != nil || t == nil {
		return nil, err
	}

	skillCol := ""
	for _, c := range skillColumns {
		if _, ok := t.columns[c]; ok {
			skillCol = c
			break
		}
	}

	jobs := make([]Job, 0, len(t.rows))
	seen := make(map[string]bool, len(t.rows))
	for i, row := range t.rows {
		j := Job{
			JobID:           t.get(row, "job_id"),
			Title:           t.get(row, "title"),
			Description:     t.get(row, "description"),
			ExperienceLevel: t.get(row, "experience_level"),
		}
		if j.JobID == "" {
			j.JobID = strconv.Itoa(i + 1)
		}
		if skillCol != "" {
			j.CleanSkills = t.get(row, skillCol)
		}
		// Duplicate ids keep the first occurrence.
		if seen[j.JobID] {
			continue
		}
		seen[j.JobID] = true
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func loadResumes(path string) ([]Resume, error) {
	t, err := readTable(path)
	if err != nil || t == nil {
		return nil, err
	}

	resumes := make([]Resume, 0, len(t.rows))
	for i, row := range t.rows {
		r := Resume{
			ResumeID:     t.get(row, "resume_id"),
			Summary:      t.get(row, "summary"),
			Fulltext:     t.get(row, "fulltext"),
			CleanSkills:  t.get(row, "clean_skills"),
			ParsedSkills: t.get(row, "parsed_skills"),
		}
		if r.ResumeID == "" {
			r.ResumeID = strconv.Itoa(i + 1)
		}
		resumes = append(resumes, r)
	}
	return resumes, nil
}

func loadCourses(path string) (CourseMap, error) {
	t, err := readTable(path)
	if err != nil || t == nil {
		return nil, err
	}
	if _, ok := t.columns["skill"]; !ok {
		return nil, nil
	}

	courses := make(CourseMap)
	for _, row := range t.rows {
		skill := strings.ToLower(t.get(row, "skill"))
		if skill == "" {
			continue
		}
		courses[skill] = append(courses[skill], Course{
			CourseName: t.get(row, "course_name"),
			Provider:   t.get(row, "provider"),
			Hours:      t.get(row, "hours"),
		})
	}
	return courses, nil
}
