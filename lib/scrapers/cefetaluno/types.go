package cefetaluno

// Identity is the minimum the portal tells us about who logged in.
// StudentId is the enrollment number every other page is keyed by.
type Identity struct {
	Name      string `json:"name"`
	StudentId string `json:"studentId"`
}

type LoginResult struct {
	// Session is the value of the upstream session cookie. The caller
	// owns persisting it; the jar it came from is discarded.
	Session string
	Student Identity
}

// Profile holds the fields of the perfil page. Every field is
// independently optional; absence is the empty string, not an error.
type Profile struct {
	Cpf           string `json:"cpf"`
	Enrollment    string `json:"enrollment"`
	Course        string `json:"course"`
	Campus        string `json:"campus"`
	CurrentPeriod string `json:"currentPeriod"`
}

type ReportSummary struct {
	CourseLabel   string `json:"courseLabel"`
	CurrentPeriod string `json:"currentPeriod"`
}

type GradeEntry struct {
	Discipline   string `json:"disciplina"`
	Status       string `json:"situacao"`
	ClassSection string `json:"turma"`
}

// Semester preserves the document order of the grades accordion, which
// is not chronological.
type Semester struct {
	Label   string       `json:"semestre"`
	Entries []GradeEntry `json:"disciplinas"`
}

type Schedule struct {
	Disciplines []string `json:"disciplines"`
	Campus      string   `json:"campus"`
}
