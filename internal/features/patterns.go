package features

import "regexp"

// Word boundaries around letters in any script; RE2's \b only knows ASCII.
const (
	wordStart = `(?:^|[^\p{L}\p{N}_])`
	wordEnd   = `(?:[^\p{L}\p{N}_]|$)`
)

func word(alternatives string) string {
	return wordStart + `(?:` + alternatives + `)` + wordEnd
}

func ci(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + pattern)
}

type flag struct {
	column  string
	pattern *regexp.Regexp
}

var titleFlags = []flag{
	{"key_SAP", ci(`SAP`)},
	{"key_SD", ci(word(`SD`))},
	{"key_MM", ci(word(`MM`))},
	{"key_ABAP", ci(word(`ABAP`))},
	{"key_AMS", ci(`AMS`)},
	{"key_JAVA", ci(`java`)},
	{"key_ORACLE", ci(`oracle`)},
	{"key_CLOUD", ci(`cloud|AWS|Azure`)},
	{"key_EBS", ci(word(`EBS`))},
	{"key_DBA", ci(word(`DBA`))},
	{"key_PROXXI", ci(word(`PROXXI`))},
	{"key_C_HASH", ci(`C#`)},
	{"key_OPERATIONS", ci(`Operations|Operações`)},
	{"key_PMO", ci(word(`PMO`) + `|projetos`)},
	{"key_ADM", ci(word(`Adm|Administ|Administrativo|Administrador`))},
	{"key_MARKETING", ci(`market`)},
	{"key_TI", ci(word(`TI`))},
	{"key_SALESFORCE", ci(`Salesforce`)},
	{"key_PROJETOS", ci(`Projetos`)},
	{"key_DADOS", ci(`Dados|Data`)},
	{"key_SECURITY", ci(word(`Segurança|Security|Cyber`))},
	{"key_WEB", ci(word(`Web`))},
	{"key_SCRUM", ci(word(`Scrum`))},
	{"key_SERVICE", ci(`Service`)},
	{"key_REACT_NATIVE_ANGULAR", ci(wordStart + `(?:react|native|angular)`)},
	{"key_NET", ci(`.net`)},
	{"key_Analista", ci(`Analista|Analyst`)},
	{"key_DEVOPS", ci(`devops`)},
	{"key_PYTHON", ci(word(`python`))},
	{"key_C_PLUS_PLUS", ci(`C\+\+`)},
	{"key_COBOL", ci(`Cobol`)},
	{"key_ANDROID", ci(`Android`)},
	{"key_SQL", ci(`SQL`)},
	{"key_fiscal", ci(`fiscal|contábil|contabilidade`)},
	{"key_software", ci(`Software|Front|FullStack|back`)},
}

const (
	SeniorityColumn = "nivel_vaga"
	OtherSeniority  = "Outros"
)

type tier struct {
	name    string
	ordinal int
	pattern *regexp.Regexp
}

// Evaluated in order; the first match wins.
var seniorityTiers = []tier{
	{"Estágio/Trainee", 0, ci(`est[aá]gi|trainee`)},
	{"Assistente", 1, ci(`assistente`)},
	{"Júnior", 2, ci(`j[uú]nior|` + word(`jr`))},
	{"Pleno", 3, ci(`pleno|` + word(`pl`))},
	{"Sênior", 4, ci(`s[eê]nior|` + word(`sr|sn`))},
	{"Coordenação", 5, ci(`coordenador|l[ií]der`)},
	{"Gerência", 6, ci(`gerente|manager`)},
	{"Diretoria", 7, ci(`diretor`)},
}

const MixedContractColumn = "tipo_misto"

// contractFlags exclude candidate choice from the mixed-contract count.
var contractFlags = []struct {
	flag
	countsAsType bool
}{
	{flag{"tipo_escolha_do_candidato", ci(`candidato poderá escolher`)}, false},
	{flag{"tipo_CLT", ci(`clt`)}, true},
	{flag{"tipo_PJ", ci(`pj`)}, true},
	{flag{"tipo_cooperado", ci(`cooperado`)}, true},
	{flag{"tipo_estagio", ci(`estagiário`)}, true},
	{flag{"tipo_hunting", ci(`hunting`)}, true},
}

const (
	EnglishScoreColumn = "score_ingles"
	SpanishScoreColumn = "score_espanhol"
)

// Keys are lower case; lookups fold the input the same way.
var languageScale = map[string]float64{
	"nenhum":        0,
	"básico":        1,
	"intermediário": 2,
	"avançado":      3,
	"técnico":       3,
	"fluente":       4,
}
