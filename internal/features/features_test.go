package features

import (
	"slices"
	"testing"

	"github.com/spigell/talent-match/internal/records"
)

func valueOf(t *testing.T, values []float64, column string) float64 {
	t.Helper()
	idx := slices.Index(Columns(), column)
	if idx < 0 {
		t.Fatalf("unknown column %s", column)
	}
	return values[idx]
}

func TestSeniority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title   string
		tier    string
		ordinal int
	}{
		{title: "Analista Júnior de Dados", tier: "Júnior", ordinal: 2},
		{title: "Desenvolvedor Java", tier: OtherSeniority, ordinal: 0},
		{title: "Estagiário de TI", tier: "Estágio/Trainee", ordinal: 0},
		{title: "Assistente Administrativo", tier: "Assistente", ordinal: 1},
		{title: "Dev JR", tier: "Júnior", ordinal: 2},
		{title: "Analista Pleno SAP", tier: "Pleno", ordinal: 3},
		{title: "Consultor SAP SD Sênior", tier: "Sênior", ordinal: 4},
		{title: "Engenheiro Senior", tier: "Sênior", ordinal: 4},
		{title: "Líder Técnico", tier: "Coordenação", ordinal: 5},
		{title: "Project Manager", tier: "Gerência", ordinal: 6},
		{title: "Diretor de Operações", tier: "Diretoria", ordinal: 7},
		{title: "Gerente de Projetos Sênior", tier: "Sênior", ordinal: 4},
		{title: "", tier: OtherSeniority, ordinal: 0},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			t.Parallel()
			if got := SeniorityTier(tt.title); got != tt.tier {
				t.Fatalf("expected tier %q, got %q", tt.tier, got)
			}
			if got := Seniority(tt.title); got != tt.ordinal {
				t.Fatalf("expected ordinal %d, got %d", tt.ordinal, got)
			}
		})
	}
}

func TestTitleFlagsRespectWordBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title  string
		column string
		expect float64
	}{
		{title: "Consultor SAP SD", column: "key_SD", expect: 1},
		{title: "Consultor SAP SDK", column: "key_SD", expect: 0},
		{title: "Analista de TI", column: "key_TI", expect: 1},
		{title: "Técnico de Suporte", column: "key_TI", expect: 0},
		{title: "Gestão de Segurança", column: "key_SECURITY", expect: 1},
		{title: "Desenvolvedor .NET", column: "key_NET", expect: 1},
		{title: "Desenvolvedor ASP Net", column: "key_NET", expect: 1},
		{title: "Dev Dotnet Pleno", column: "key_NET", expect: 1},
		{title: "Analista de Internet", column: "key_NET", expect: 1},
		{title: "Net Developer", column: "key_NET", expect: 0},
		{title: "Analista de Redes", column: "key_NET", expect: 0},
		{title: "Desenvolvedor C#", column: "key_C_HASH", expect: 1},
		{title: "Programador C++", column: "key_C_PLUS_PLUS", expect: 1},
		{title: "Engenheiro de Dados", column: "key_DADOS", expect: 1},
		{title: "Auxiliar Administrativo", column: "key_ADM", expect: 1},
		{title: "Admissão", column: "key_ADM", expect: 0},
		{title: "Dev React Native", column: "key_REACT_NATIVE_ANGULAR", expect: 1},
		{title: "python developer", column: "key_PYTHON", expect: 1},
		{title: "Gerente de Projetos", column: "key_PMO", expect: 1},
	}

	for _, tt := range tests {
		t.Run(tt.title+"/"+tt.column, func(t *testing.T) {
			t.Parallel()
			values := Row(records.Row{TitleColumn: tt.title})
			if got := valueOf(t, values, tt.column); got != tt.expect {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestContractFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		contract string
		expect   map[string]float64
	}{
		{
			contract: "CLT Full",
			expect:   map[string]float64{"tipo_CLT": 1, "tipo_PJ": 0, MixedContractColumn: 0},
		},
		{
			contract: "PJ/Autônomo, CLT Full",
			expect:   map[string]float64{"tipo_CLT": 1, "tipo_PJ": 1, MixedContractColumn: 1},
		},
		{
			contract: "Hunting PJ/Autônomo",
			expect:   map[string]float64{"tipo_hunting": 1, "tipo_PJ": 1, MixedContractColumn: 1},
		},
		{
			contract: "Candidato poderá escolher",
			expect:   map[string]float64{"tipo_escolha_do_candidato": 1, MixedContractColumn: 0},
		},
		{
			contract: "Estagiário",
			expect:   map[string]float64{"tipo_estagio": 1, MixedContractColumn: 0},
		},
		{
			contract: "",
			expect:   map[string]float64{"tipo_CLT": 0, "tipo_cooperado": 0, MixedContractColumn: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.contract, func(t *testing.T) {
			t.Parallel()
			values := Row(records.Row{ContractColumn: tt.contract})
			for column, expect := range tt.expect {
				if got := valueOf(t, values, column); got != expect {
					t.Fatalf("%s: expected %v, got %v", column, expect, got)
				}
			}
		})
	}
}

func TestLanguageScore(t *testing.T) {
	t.Parallel()

	tests := map[string]float64{
		"Nenhum":         0,
		"Básico":         1,
		"intermediário":  2,
		" Avançado ":     3,
		"Técnico":        3,
		"Fluente":        4,
		"":               0,
		"Nativo":         0,
	}

	for level, expect := range tests {
		if got := LanguageScore(level); got != expect {
			t.Fatalf("%q: expected %v, got %v", level, expect, got)
		}
	}
}

func TestEngineerIsPerRow(t *testing.T) {
	t.Parallel()

	table := records.NewTable(records.KindUnified, []string{TitleColumn, ContractColumn, EnglishColumn})
	table.Append(records.Row{TitleColumn: "Analista Júnior de Dados", ContractColumn: "CLT Full", EnglishColumn: "Fluente"})
	table.Append(records.Row{TitleColumn: "Operation Lead"})

	matrix := Engineer(table)
	if matrix.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", matrix.Len())
	}
	if !slices.Equal(matrix.Index, []string{"0", "1"}) {
		t.Fatalf("expected positional index, got %v", matrix.Index)
	}
	if slices.Contains(matrix.Columns, TitleColumn) {
		t.Fatalf("input columns must not be carried into the feature matrix")
	}

	alone := Row(table.Rows[1])
	if !slices.Equal(alone, matrix.Values[1]) {
		t.Fatalf("row features depend on other rows")
	}
	if got := valueOf(t, matrix.Values[0], EnglishScoreColumn); got != 4 {
		t.Fatalf("expected english score 4, got %v", got)
	}
	if got := valueOf(t, matrix.Values[1], SpanishScoreColumn); got != 0 {
		t.Fatalf("expected missing spanish level to score 0, got %v", got)
	}
}
