package campus

import (
	"errors"
	"fmt"
	"strings"

	"cefetid-backend/lib/textutil"
)

// Code identifies a CEFET/RJ campus in news feed URLs.
type Code string

const (
	Maracana     Code = "MARACANA"
	AngraDosReis Code = "ANGRA_DOS_REIS"
	Itaguai      Code = "ITAGUAI"
	MariaDaGraca Code = "MARIA_DA_GRACA"
	NovaFriburgo Code = "NOVA_FRIBURGO"
	NovaIguacu   Code = "NOVA_IGUACU"
	Petropolis   Code = "PETROPOLIS"
	Valenca      Code = "VALENCA"

	// Everyone marks the institution-wide feed, which carries no campus
	// slug. It is distinct from an unknown campus.
	Everyone Code = "EVERYONE"
)

// ErrUnknownCampus means a feed URL matched no known slug. Feed URLs are
// built internally, so this is a logic bug, not bad user input.
var ErrUnknownCampus = errors.New("unknown campus in feed url")

var siglaTable = map[string]string{
	// UNEDs
	"NF": "UNED Nova Friburgo",
	"NI": "UNED Nova Iguaçu",
	"PE": "UNED Petrópolis",
	"IT": "UNED Itaguaí",
	"VP": "UNED Valença",

	// main campuses; some courses use MA instead of RJ
	"RJ": "Maracanã (Rio de Janeiro)",
	"MA": "Maracanã (Rio de Janeiro)",
	"MT": "Maria da Graça",

	"AD": "Angra dos Reis",
}

// FromCourseLabel resolves a course label like
// "NF - BACHARELADO EM SISTEMAS" to a canonical campus name via the
// sigla before the first dash. Unknown siglas pass through unchanged as
// a best-effort label; an empty label resolves to "".
func FromCourseLabel(label string) string {
	label = textutil.NormalizeText(label)
	if label == "" {
		return ""
	}
	sigla, _, _ := strings.Cut(label, "-")
	sigla = strings.ToUpper(strings.Trim(sigla, " "))
	if name, ok := siglaTable[sigla]; ok {
		return name
	}
	return sigla
}

var feedSlugs = []struct {
	slug string
	code Code
}{
	{"campus-maracana", Maracana},
	{"campus-angra-dos-reis", AngraDosReis},
	{"campus-itaguai", Itaguai},
	{"campus-maria-da-graca", MariaDaGraca},
	{"campus-nova-friburgo", NovaFriburgo},
	{"campus-nova-iguacu", NovaIguacu},
	{"campus-petropolis", Petropolis},
	{"campus-valenca", Valenca},
}

// FromFeedUrl maps a news RSS feed URL to its campus. The slugless
// institution-wide feed maps to Everyone.
func FromFeedUrl(feedUrl string) (Code, error) {
	for _, entry := range feedSlugs {
		if strings.Contains(feedUrl, entry.slug) {
			return entry.code, nil
		}
	}
	if strings.Contains(feedUrl, "noticias?format=feed&type=rss") {
		return Everyone, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownCampus, feedUrl)
}
