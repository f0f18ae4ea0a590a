package cefetaluno

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

const indexFixture = `
<html><body>
	<span id="menu">
		<button class="ui-button">
			<span class="ui-button-text">JOAO DA SILVA</span>
		</button>
	</span>
	<input type="hidden" id="matricula" value="2023123456"/>
</body></html>`

func TestParseIndex(t *testing.T) {
	identity := ParseIndex(mustDoc(t, indexFixture))
	expected := Identity{Name: "JOAO DA SILVA", StudentId: "2023123456"}
	if diff := cmp.Diff(expected, identity); diff != "" {
		t.Fatal(diff)
	}
}

func TestParseIndexFallbackSelectors(t *testing.T) {
	// older portal revision: no #menu wrapper around the name button
	identity := ParseIndex(mustDoc(t, `
		<button><span class="ui-button-text">  MARIA   CLARA </span></button>
		<input id="matricula" value="99"/>
	`))
	if identity.Name != "MARIA CLARA" {
		t.Fatalf("unexpected name: %q", identity.Name)
	}
	if identity.StudentId != "99" {
		t.Fatalf("unexpected student id: %q", identity.StudentId)
	}
}

func TestParseIndexMissingEverything(t *testing.T) {
	identity := ParseIndex(mustDoc(t, `<html><body><p>sem nada</p></body></html>`))
	if identity.Name != "" || identity.StudentId != "" {
		t.Fatalf("expected empty identity, got %+v", identity)
	}
}

func TestParseProfile(t *testing.T) {
	profile := ParseProfile(mustDoc(t, `
		<div>
			<span>CPF:</span><span>123.456.789-00</span><br/>
			<span>Matrícula:</span><span>2023123456</span><br/>
			<span>Curso:</span><span>NF - BACHARELADO EM SISTEMAS</span><br/>
			<span>Unidade:</span><span>UNED Nova Friburgo</span><br/>
			<span>Período:</span><span>5</span>
		</div>
	`))
	expected := Profile{
		Cpf:           "123.456.789-00",
		Enrollment:    "2023123456",
		Course:        "NF - BACHARELADO EM SISTEMAS",
		Campus:        "UNED Nova Friburgo",
		CurrentPeriod: "5",
	}
	if diff := cmp.Diff(expected, profile); diff != "" {
		t.Fatal(diff)
	}
}

func TestParseProfilePartial(t *testing.T) {
	profile := ParseProfile(mustDoc(t, `
		<div><span id="curso">RJ - ENGENHARIA</span></div>
	`))
	if profile.Course != "RJ - ENGENHARIA" {
		t.Fatalf("unexpected course: %q", profile.Course)
	}
	if profile.Cpf != "" || profile.Enrollment != "" || profile.Campus != "" || profile.CurrentPeriod != "" {
		t.Fatalf("expected missing fields to stay empty: %+v", profile)
	}
}

func TestParseProfileMalformed(t *testing.T) {
	profile := ParseProfile(mustDoc(t, `<table><tr><td>truncated`))
	if diff := cmp.Diff(Profile{}, profile); diff != "" {
		t.Fatal(diff)
	}
}

const reportsFixture = `
<div class="topopage">
	<table class="table-topo"><tbody><tr>
		<td><span class="label">Matrícula:</span> 2023123456</td>
		<td><span class="label">Curso:</span> NF - BACHARELADO EM SISTEMAS</td>
		<td><span class="label">PERÍODO ATUAL</span> 5</td>
		<td><span class="label">Curso:</span> OUTRO CURSO</td>
	</tr></tbody></table>
</div>`

func TestParseReports(t *testing.T) {
	summary := ParseReports(mustDoc(t, reportsFixture))
	expected := ReportSummary{
		CourseLabel:   "NF - BACHARELADO EM SISTEMAS",
		CurrentPeriod: "5",
	}
	// first match per label wins, the duplicate Curso cell is ignored
	if diff := cmp.Diff(expected, summary); diff != "" {
		t.Fatal(diff)
	}
}

func TestParseReportsEmpty(t *testing.T) {
	summary := ParseReports(mustDoc(t, `<div class="topopage"></div>`))
	if diff := cmp.Diff(ReportSummary{}, summary); diff != "" {
		t.Fatal(diff)
	}
}

const gradesFixture = `
<div id="accordion">
	<h3 class="ui-accordion-header"><span class="accordionTurma">2024.1</span></h3>
	<div>
		<table class="table-turmas"><tbody>
			<tr><td>CALCULO I</td><td>Aprovado</td><td><a href="#">1001</a></td></tr>
			<tr><td>FISICA I</td><td>Reprovado</td><td>1002</td></tr>
			<tr><td>linha</td><td>curta</td></tr>
		</tbody></table>
	</div>
	<h3 class="ui-accordion-header"><span class="accordionTurma">  </span></h3>
	<h3 class="ui-accordion-header"><span class="accordionTurma">2023.2</span></h3>
	<div>
		<table class="table-turmas"><tbody>
			<tr><td>ALGEBRA LINEAR</td><td>Aprovado</td><td></td></tr>
		</tbody></table>
	</div>
</div>`

func TestParseGrades(t *testing.T) {
	semesters := ParseGrades(mustDoc(t, gradesFixture))
	expected := []Semester{
		{
			Label: "2024.1",
			Entries: []GradeEntry{
				{Discipline: "CALCULO I", Status: "Aprovado", ClassSection: "1001"},
				{Discipline: "FISICA I", Status: "Reprovado", ClassSection: "1002"},
			},
		},
		{
			Label: "2023.2",
			Entries: []GradeEntry{
				{Discipline: "ALGEBRA LINEAR", Status: "Aprovado", ClassSection: ""},
			},
		},
	}
	if diff := cmp.Diff(expected, semesters); diff != "" {
		t.Fatal(diff)
	}
}

func TestParseGradesEmptyDocument(t *testing.T) {
	semesters := ParseGrades(mustDoc(t, `<html><body></body></html>`))
	if len(semesters) != 0 {
		t.Fatalf("expected no semesters, got %+v", semesters)
	}
}

func TestExtractNotifyText(t *testing.T) {
	html := `<html><head><script>
		new PNotify({
			pnotify_title: 'Erro',
			pnotify_text: 'Usuário ou senha inválidos'
		});
	</script></head></html>`

	if got := ExtractNotifyText(html); got != "Usuário ou senha inválidos" {
		t.Fatalf("unexpected notify text: %q", got)
	}
	if got := ExtractNotifyText(`<html><body>ok</body></html>`); got != "" {
		t.Fatalf("expected empty notify text, got %q", got)
	}
}

func TestExtractDisciplineNames(t *testing.T) {
	text := strings.Join([]string{
		"1",
		"SOME CODE1A",
		"CALCULO I",
		"2",
		"X1Y2Z3A",
		"ALGEBRA LINEAR",
	}, "\n")

	got := ExtractDisciplineNames(text)
	expected := []string{"CALCULO I", "ALGEBRA LINEAR"}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestExtractDisciplineNamesFilters(t *testing.T) {
	testCases := []struct {
		name  string
		lines []string
	}{
		{"code pattern", []string{"1", "x", "GCC123T"}},
		{"lowercase", []string{"1", "x", "Calculo I"}},
		{"empty", []string{"1", "x", ""}},
		{"no numeric anchor", []string{"a", "x", "CALCULO I"}},
		{"digits only", []string{"1", "x", "12345"}},
	}
	for _, tc := range testCases {
		got := ExtractDisciplineNames(strings.Join(tc.lines, "\n"))
		if len(got) != 0 {
			t.Fatalf("%s: expected no disciplines, got %v", tc.name, got)
		}
	}
}

func TestExtractScheduleCampus(t *testing.T) {
	testCases := []struct {
		text     string
		expected string
	}{
		{"Horários\nLocal:Prédio E - Nova Friburgo - RJ", "NOVA_FRIBURGO"},
		{"Local:Prédio A - Maracanã - Rio de Janeiro", "MARACANÃ"},
		{"local:prédio b - itaguaí - RJ", "ITAGUAÍ"},
		{"sem local nenhum", ""},
	}
	for _, tc := range testCases {
		got := ExtractScheduleCampus(tc.text)
		if got != tc.expected {
			t.Fatalf("ExtractScheduleCampus(%q) = %q, expected %q", tc.text, got, tc.expected)
		}
	}
}
