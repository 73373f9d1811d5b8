// Package normalize coerces flattened record tables into typed, cleaned columns.
// Every function returns a new table and leaves its input untouched; running a
// table through the same function twice yields the same values.
package normalize

import (
	"github.com/spigell/talent-match/internal/records"
)

// Schema lists the coercion applied to each column of an entity. Columns absent
// from the table are skipped.
type Schema struct {
	Strings []string
	Times   []string
	Ints    []string
}

var ApplicantSchema = Schema{
	Strings: []string{
		records.ApplicantIDColumn,
		"telefone_recado", "telefone", "infos_basicas_objetivo_profissional",
		"infos_basicas_inserido_por", "infos_basicas_email", "infos_basicas_local",
		"infos_basicas_sabendo_de_nos_por", "infos_basicas_nome", "data_aceite",
		"nome", "cpf", "fonte_indicacao",
		"email", "email_secundario", "telefone_celular",
		"sexo", "estado_civil", "pcd",
		"endereco", "skype", "url_linkedin",
		"facebook", "titulo_profissional", "area_atuacao",
		"conhecimentos_tecnicos", "certificacoes", "outras_certificacoes",
		"nivel_profissional", "nivel_academico", "nivel_ingles",
		"nivel_espanhol", "outro_idioma", "instituicao_ensino_superior",
		"cursos", "ano_conclusao", "download_cv", "qualificacoes",
		"experiencias", "outro_curso", "email_corporativo",
		"cargo_atual", "projeto_atual", "cliente",
		"unidade", "nome_superior_imediato", "email_superior_imediato",
		"cv_pt", "cv_en",
	},
	Times: []string{
		"infos_basicas_data_criacao", "infos_basicas_data_atualizacao", "data_nascimento",
		"data_admissao", "data_ultima_promocao",
	},
	Ints: []string{records.ApplicantCodeColumn, "id_ibrati"},
}

var JobSchema = Schema{
	Strings: []string{
		records.JobIDColumn,
		"titulo_vaga", "vaga_sap", "cliente", "solicitante_cliente",
		"empresa_divisao", "requisitante", "analista_responsavel",
		"tipo_contratacao", "prazo_contratacao", "objetivo_vaga",
		"prioridade_vaga", "origem_vaga", "superior_imediato",
		"nome", "telefone", "pais", "estado", "cidade", "bairro",
		"regiao", "local_trabalho", "vaga_especifica_para_pcd",
		"faixa_etaria", "horario_trabalho", "nivel profissional", "nivel_academico",
		"nivel_ingles", "nivel_espanhol", "outro_idioma", "areas_atuacao",
		"principais_atividades", "competencia_tecnicas_e_comportamentais",
		"demais_observacoes", "viagens_requeridas", "equipamentos_necessarios",
		"valor_compra_1", "valor_compra_2", "habilidades_comportamentais_necessarias",
		"nome_substituto", records.JobContractGroupColumn,
	},
	Times: []string{
		"data_requicisao", "limite_esperado_para_contratacao",
		"data_inicial", "data_final",
	},
}

var ProspectSchema = Schema{
	Strings: []string{
		records.ProspectJobColumn,
		"titulo", "modalidade", "nome", "situacao_candidado", "comentario", "recrutador",
	},
	Times: []string{"data_candidatura", "ultima_atualizacao"},
	Ints:  []string{records.ProspectFanOutColumn, records.ProspectCodeColumn},
}

// Apply returns a copy of t with every listed column coerced.
func (s Schema) Apply(t *records.Table) *records.Table {
	out := t.Clone()
	s.coerce(out)
	return out
}

func (s Schema) coerce(t *records.Table) {
	for _, row := range t.Rows {
		for _, col := range s.Strings {
			if t.HasColumn(col) {
				row[col] = coerceString(row[col])
			}
		}
		for _, col := range s.Times {
			if t.HasColumn(col) {
				row[col] = coerceTime(row[col])
			}
		}
		for _, col := range s.Ints {
			if t.HasColumn(col) {
				row[col] = coerceInt(row[col])
			}
		}
	}
}

// Applicants cleans compensation and coerces applicant columns.
func Applicants(t *records.Table) *records.Table {
	out := t.Clone()
	if out.HasColumn(records.ApplicantCompensation) {
		for _, row := range out.Rows {
			row[records.ApplicantCompensation] = Compensation(row[records.ApplicantCompensation])
		}
	}
	ApplicantSchema.coerce(out)
	return out
}

// Jobs cleans the sale value, derives the grouped contract category and coerces
// job columns.
func Jobs(t *records.Table) *records.Table {
	out := t.Clone()
	if !out.HasColumn(records.JobContractGroupColumn) {
		out.Columns = append(out.Columns, records.JobContractGroupColumn)
	}

	for _, row := range out.Rows {
		if out.HasColumn(records.JobSaleValueColumn) {
			row[records.JobSaleValueColumn] = SaleValue(row[records.JobSaleValueColumn])
		}
		row[records.JobContractGroupColumn] = ContractCategory(row.Text(records.JobContractColumn))
	}

	JobSchema.coerce(out)
	return out
}

// Prospects coerces prospect columns.
func Prospects(t *records.Table) *records.Table {
	return ProspectSchema.Apply(t)
}
