package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestDirSource_MissingFiles(t *testing.T) {
	c, err := DirSource{Dir: t.TempDir()}.Load()
	require.NoError(t, err)
	assert.Empty(t, c.Jobs)
	assert.Empty(t, c.Resumes)
	assert.Empty(t, c.Courses)
}

func TestLoadJobs_ColumnNormalization(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "clean_jobs.csv",
		"Job ID,Title,Description,Clean Skills\n"+
			"j1,Data Scientist,Builds models,python;ml\n")

	c, err := DirSource{Dir: dir}.Load()
	require.NoError(t, err)
	require.Len(t, c.Jobs, 1)
	assert.Equal(t, "j1", c.Jobs[0].JobID)
	assert.Equal(t, "Data Scientist", c.Jobs[0].Title)
	assert.Equal(t, "python;ml", c.Jobs[0].CleanSkills)
}

func TestLoadJobs_SynthesizesIDs(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "clean_jobs.csv",
		"title,description\nEngineer,Writes code\nAnalyst,Reads data\n")

	c, err := DirSource{Dir: dir}.Load()
	require.NoError(t, err)
	require.Len(t, c.Jobs, 2)
	assert.Equal(t, "1", c.Jobs[0].JobID)
	assert.Equal(t, "2", c.Jobs[1].JobID)
}

func TestLoadJobs_EmptyAndNanIDsSynthesized(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "clean_jobs.csv",
		"job_id,title\n,First\nnan,Second\nreal,Third\n")

	c, err := DirSource{Dir: dir}.Load()
	require.NoError(t, err)
	require.Len(t, c.Jobs, 3)
	assert.Equal(t, "1", c.Jobs[0].JobID)
	assert.Equal(t, "2", c.Jobs[1].JobID)
	assert.Equal(t, "real", c.Jobs[2].JobID)
}

func TestLoadJobs_SkillColumnFallbackOrder(t *testing.T) {
	dir := t.TempDir()
	// No clean_skills/skills column: keywords is next in priority.
	writeDataFile(t, dir, "clean_jobs.csv",
		"job_id,title,keywords,responsibilities\n"+
			"1,Engineer,go;docker,own the backlog\n")

	c, err := DirSource{Dir: dir}.Load()
	require.NoError(t, err)
	require.Len(t, c.Jobs, 1)
	assert.Equal(t, "go;docker", c.Jobs[0].CleanSkills)
}

func TestLoadJobs_DuplicatesKeepFirst(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "clean_jobs.csv",
		"job_id,title\ndup,First\ndup,Second\nother,Third\n")

	c, err := DirSource{Dir: dir}.Load()
	require.NoError(t, err)
	require.Len(t, c.Jobs, 2)
	assert.Equal(t, "First", c.Jobs[0].Title)
	assert.Equal(t, "Third", c.Jobs[1].Title)
}

func TestLoadResumes(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "clean_resume_data.csv",
		"summary,clean_skills\nExperienced data scientist,python;sql\nBackend developer,\n")

	c, err := DirSource{Dir: dir}.Load()
	require.NoError(t, err)
	require.Len(t, c.Resumes, 2)
	assert.Equal(t, "1", c.Resumes[0].ResumeID)
	assert.Equal(t, "2", c.Resumes[1].ResumeID)
	assert.Equal(t, "python;sql", c.Resumes[0].CleanSkills)
}

func TestLoadCourses(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "skills_to_courses.csv",
		"skill,course_name,provider,hours\n"+
			"Python,Python Basics,Coursera,20\n"+
			"python,Advanced Python,edX,30\n")

	c, err := DirSource{Dir: dir}.Load()
	require.NoError(t, err)
	require.Len(t, c.Courses["python"], 2, "skill matching is case-insensitive")
	assert.Equal(t, "Python Basics", c.Courses["python"][0].CourseName)
}

func TestJobText(t *testing.T) {
	j := Job{Title: "Engineer", Description: "Writes code", CleanSkills: "go;docker"}
	text := j.Text()
	assert.Contains(t, text, "Engineer")
	assert.Contains(t, text, "Writes code")
	assert.Contains(t, text, "go;docker")
}

func TestResumeText_PrefersSummary(t *testing.T) {
	r := Resume{Summary: "short summary", Fulltext: "long full text"}
	assert.Equal(t, "short summary", r.Text())
	assert.Equal(t, "long full text", Resume{Fulltext: "long full text"}.Text())
}

func TestCatalogLookups(t *testing.T) {
	c := &Catalog{
		Jobs:    []Job{{JobID: "a"}, {JobID: "b"}},
		Resumes: []Resume{{ResumeID: "1"}},
	}
	_, ok := c.JobByID("b")
	assert.True(t, ok)
	_, ok = c.JobByID("zzz")
	assert.False(t, ok)
	_, ok = c.ResumeByID("1")
	assert.True(t, ok)
}
