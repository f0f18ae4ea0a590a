package cefetaluno

import (
	"regexp"
	"strings"

	"cefetid-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// Every extractor in this file is total: malformed or missing markup
// yields empty fields, never an error. Callers decide which absences
// are fatal (only the enrollment id is).

// ParseIndex pulls the logged-in student's display name and enrollment
// id out of the portal index page. The name lives in a menu button whose
// markup has shifted between portal revisions, hence the candidate
// chain.
func ParseIndex(doc *goquery.Document) Identity {
	name := textutil.PickFirst(
		doc.Find("#menu .ui-button-text").Text(),
		doc.Find("button .ui-button-text").First().Text(),
		doc.Find("#menu button").Text(),
	)
	studentId := textutil.PickFirst(
		doc.Find("#matricula").AttrOr("value", ""),
		doc.Find("input#matricula").AttrOr("value", ""),
	)
	return Identity{Name: name, StudentId: studentId}
}

// ParseProfile reads the semi-structured perfil page. Each field has its
// own fallback chain and fails independently.
func ParseProfile(doc *goquery.Document) Profile {
	return Profile{
		Cpf: textutil.PickFirst(
			doc.Find("#cpf").Text(),
			doc.Find("#cpf").AttrOr("value", ""),
			doc.Find(`input[name="cpf"]`).AttrOr("value", ""),
			doc.Find(`span:contains("CPF")`).Next().Text(),
		),
		Enrollment: textutil.PickFirst(
			doc.Find("#matriculaInstitucional").Text(),
			doc.Find(`span:contains("Matrícula")`).Next().Text(),
		),
		Course: textutil.PickFirst(
			doc.Find("#curso").Text(),
			doc.Find(`span:contains("Curso")`).Next().Text(),
		),
		Campus: textutil.PickFirst(
			doc.Find("#unidade").Text(),
			doc.Find(`span:contains("Unidade")`).Next().Text(),
			doc.Find(`span:contains("Campus")`).Next().Text(),
		),
		CurrentPeriod: textutil.PickFirst(
			doc.Find("#periodoAtual").Text(),
			doc.Find(`span:contains("Período")`).Next().Text(),
		),
	}
}

// ParseReports scans the label/value cell pairs at the top of the
// relatórios page. Labels match case-insensitively with punctuation
// stripped; the first match per label wins.
func ParseReports(doc *goquery.Document) ReportSummary {
	var out ReportSummary
	doc.Find("div.topopage table.table-topo td").Each(func(_ int, td *goquery.Selection) {
		label := textutil.NormalizeLabel(td.Find("span.label").First().Text())

		clone := td.Clone()
		clone.Find("span.label").Remove()
		value := textutil.NormalizeText(clone.Text())
		if value == "" {
			return
		}

		switch {
		case label == "curso":
			if out.CourseLabel == "" {
				out.CourseLabel = value
			}
		case strings.Contains(label, "período atual"):
			if out.CurrentPeriod == "" {
				out.CurrentPeriod = value
			}
		}
	})
	return out
}

// ParseGrades walks the grades accordion in document order. A header
// with an empty semester label is skipped entirely, which also filters
// the stray headers that have no body panel. Rows need at least 3
// cells; the class section is sometimes a link and sometimes plain
// text.
func ParseGrades(doc *goquery.Document) []Semester {
	var semesters []Semester
	doc.Find("#accordion h3.ui-accordion-header").Each(func(_ int, header *goquery.Selection) {
		label := textutil.NormalizeText(header.Find(".accordionTurma").Text())
		if label == "" {
			return
		}
		panel := header.Next()
		if panel.Length() == 0 {
			return
		}

		var entries []GradeEntry
		panel.Find("table.table-turmas tbody tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() < 3 {
				return
			}
			entries = append(entries, GradeEntry{
				Discipline: textutil.NormalizeText(cells.Eq(0).Text()),
				Status:     textutil.NormalizeText(cells.Eq(1).Text()),
				ClassSection: textutil.PickFirst(
					cells.Eq(2).Find("a").Text(),
					cells.Eq(2).Text(),
				),
			})
		})
		semesters = append(semesters, Semester{Label: label, Entries: entries})
	})
	return semesters
}

var pnotifyRegex = regexp.MustCompile(`pnotify_text\s*:\s*['"]([^'"]+)['"]`)

// ExtractNotifyText digs the portal's notification text out of inline
// script. The login endpoint answers 200 either way; this message is
// the only signal that credentials were rejected.
func ExtractNotifyText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	groups := pnotifyRegex.FindStringSubmatch(doc.Find("script").Text())
	if len(groups) < 2 {
		return ""
	}
	return groups[1]
}

var (
	numericLineRegex = regexp.MustCompile(`^\d+$`)
	// class/section codes look like GCC123T: letters, digits, letters,
	// no separators
	classCodeRegex       = regexp.MustCompile(`^[A-Z]+\d+[A-Z]+$`)
	uppercaseLetterRegex = regexp.MustCompile(`[A-ZÀ-Ÿ]`)
)

// ExtractDisciplineNames works over the line-oriented text of the
// schedule PDF. A purely numeric line anchors a table row; the line two
// positions later is the discipline title when it is non-empty, fully
// uppercase, contains a letter and is not a class code.
func ExtractDisciplineNames(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	var disciplines []string
	for i := 0; i+2 < len(lines); i++ {
		if !numericLineRegex.MatchString(strings.TrimSpace(lines[i])) {
			continue
		}
		candidate := strings.TrimSpace(lines[i+2])
		if candidate == "" || candidate != strings.ToUpper(candidate) {
			continue
		}
		if !uppercaseLetterRegex.MatchString(candidate) {
			continue
		}
		if classCodeRegex.MatchString(candidate) {
			continue
		}
		disciplines = append(disciplines, candidate)
	}
	return disciplines
}

var scheduleCampusRegex = regexp.MustCompile(
	`(?i)Local:Prédio\s+\w\s+-\s+(Angra dos Reis|Itaguaí|Maria da Graça|Nova Friburgo|Nova Iguaçu|Valença|Maracanã)\s+-`,
)

// ExtractScheduleCampus matches the bilingual location label of the
// schedule PDF against the known city names. No match yields "".
func ExtractScheduleCampus(text string) string {
	groups := scheduleCampusRegex.FindStringSubmatch(text)
	if len(groups) < 2 {
		return ""
	}
	return strings.ReplaceAll(strings.ToUpper(groups[1]), " ", "_")
}
