package records

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const applicantsFixture = `{
  "31000": {
    "infos_basicas": {
      "telefone_recado": "",
      "telefone": "(11) 97048-2708",
      "objetivo_profissional": "Analista Administrativo",
      "data_criacao": "10-11-2021 07:29:49",
      "email": "carolina@example.com",
      "codigo_profissional": "31000",
      "nome": "Carolina Aparecida"
    },
    "informacoes_pessoais": {
      "nome": "Carolina Aparecida",
      "telefone_recado": "(11) 2222-3333",
      "data_nascimento": "0000-00-00",
      "pcd": null
    },
    "informacoes_profissionais": {
      "titulo_profissional": "Analista Administrativo",
      "remuneracao": "Mensal / 5.000,00"
    },
    "formacao_e_idiomas": {
      "nivel_ingles": "Intermediário"
    },
    "cargo_atual": {},
    "cv_pt": "experiência em rotinas administrativas",
    "cv_en": null
  },
  "31001": {
    "infos_basicas": {"codigo_profissional": "31001", "nome": "Eduardo Rios"}
  },
  "31000": {
    "infos_basicas": {"codigo_profissional": "99999", "nome": "Duplicate"}
  }
}`

const jobsFixture = `{
  "5185": {
    "informacoes_basicas": {
      "data_requicisao": "04-05-2021",
      "titulo_vaga": "Operation Lead",
      "tipo_contratacao": "CLT Full"
    },
    "perfil_vaga": {
      "nivel profissional": "Sênior",
      "nivel_ingles": "Avançado"
    },
    "beneficios": {
      "valor_venda": "-"
    }
  }
}`

const prospectsFixture = `{
  "4530": {
    "titulo": "CONSULTOR CONTROL M",
    "modalidade": "",
    "prospects": [
      {"nome": "José Vieira", "codigo": "25632", "situacao_candidado": "Encaminhado ao Requisitante", "data_candidatura": "25-03-2021"},
      {"nome": "Srta. Isabela Cavalcante", "codigo": "25529", "situacao_candidado": "Aprovado"}
    ]
  },
  "4531": {
    "titulo": null,
    "modalidade": null,
    "prospects": []
  }
}`

func writeFixture(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestLoadApplicantsFlattensSections(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "applicants.json", applicantsFixture)

	core, observed := observer.New(zapcore.WarnLevel)
	table := NewLoader(dir, zap.New(core)).LoadApplicants("applicants.json")

	require.Equal(t, 2, table.Len())
	assert.Equal(t, KindApplicants, table.Kind)
	assert.Equal(t, ApplicantColumns(), table.Columns)

	first := table.Rows[0]
	assert.Equal(t, "31000", first[ApplicantIDColumn])
	assert.Equal(t, "Carolina Aparecida", first["infos_basicas_nome"])
	assert.Equal(t, "10-11-2021 07:29:49", first["infos_basicas_data_criacao"])
	assert.Equal(t, "(11) 2222-3333", first["telefone_recado"])
	assert.Equal(t, "Mensal / 5.000,00", first[ApplicantCompensation])
	assert.Equal(t, "", first["pcd"], "null values default to empty text")
	assert.Equal(t, "", first["cargo_atual"], "empty sections default every field")
	assert.Equal(t, "", first["cv_en"])

	second := table.Rows[1]
	assert.Equal(t, "31001", second[ApplicantIDColumn])
	assert.Equal(t, "", second["titulo_profissional"], "missing sections default every field")

	dups := observed.FilterMessage("rejecting duplicate external id").All()
	require.Len(t, dups, 1)
	assert.Equal(t, "31000", dups[0].ContextMap()["id"])
}

func TestLoadJobsKeepsSpacedColumn(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "vagas.json", jobsFixture)

	table := NewLoader(dir, zap.NewNop()).LoadJobs("vagas.json")

	require.Equal(t, 1, table.Len())
	row := table.Rows[0]
	assert.Equal(t, "5185", row[JobIDColumn])
	assert.Equal(t, "Operation Lead", row[JobTitleColumn])
	assert.Equal(t, "Sênior", row["nivel profissional"])
	assert.Equal(t, "-", row[JobSaleValueColumn])
	assert.Equal(t, "", row["data_final"])
}

func TestLoadProspectsFansOut(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "prospects.json", prospectsFixture)

	table := NewLoader(dir, zap.NewNop()).LoadProspects("prospects.json")

	require.Equal(t, 2, table.Len(), "an entry without applications yields no rows")
	for _, row := range table.Rows {
		assert.Equal(t, "4530", row[ProspectJobColumn])
		assert.Equal(t, "CONSULTOR CONTROL M", row[ProspectJobTitleColumn])
		assert.Equal(t, 2, row[ProspectFanOutColumn])
	}
	assert.Equal(t, "25632", table.Rows[0][ProspectCodeColumn])
	assert.Equal(t, "Aprovado", table.Rows[1][ProspectOutcomeColumn])
	assert.Equal(t, "", table.Rows[1]["data_candidatura"])
}

func TestLoaderReturnsEmptyTableOnBadSource(t *testing.T) {
	tests := []struct {
		name string
		body string
		file string
	}{
		{name: "missing file", file: "absent.json"},
		{name: "malformed json", file: "bad.json", body: `{"1": {"infos_basicas": `},
		{name: "top-level array", file: "array.json", body: `[{"id": 1}]`},
		{name: "section is not an object", file: "scalar.json", body: `{"1": {"infos_basicas": "oops"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.body != "" {
				writeFixture(t, dir, tt.file, tt.body)
			}

			core, observed := observer.New(zapcore.ErrorLevel)
			table := NewLoader(dir, zap.New(core)).LoadApplicants(tt.file)

			if table == nil {
				t.Fatalf("expected an empty table, got nil")
			}
			if table.Len() != 0 {
				t.Fatalf("expected no rows, got %d", table.Len())
			}
			if len(table.Columns) == 0 {
				t.Fatalf("expected declared columns on empty table")
			}
			if observed.Len() != 1 {
				t.Fatalf("expected 1 error log, got %d", observed.Len())
			}
		})
	}
}
